package mappers

import (
	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/models"
)

func ToGORMRawProduct(product *domain.RawProduct) *models.RawProductModel {
	return &models.RawProductModel{
		ID:                product.ID,
		RetailerID:        product.RetailerID,
		RetailerProductID: product.RetailerProductID,
		ProductURL:        product.ProductURL,
		Title:             product.Title,
		BrandRaw:          product.BrandRaw,
		SizeRaw:           product.SizeRaw,
		CategoryRaw:       product.CategoryRaw,
		ImageURL:          product.ImageURL,
		EAN:               product.EAN,
		FirstSeenAt:       product.FirstSeenAt,
		LastSeenAt:        product.LastSeenAt,
	}
}

func ToDomainRawProduct(model *models.RawProductModel) *domain.RawProduct {
	return &domain.RawProduct{
		ID:                model.ID,
		RetailerID:        model.RetailerID,
		RetailerProductID: model.RetailerProductID,
		ProductURL:        model.ProductURL,
		Title:             model.Title,
		BrandRaw:          model.BrandRaw,
		SizeRaw:           model.SizeRaw,
		CategoryRaw:       model.CategoryRaw,
		ImageURL:          model.ImageURL,
		EAN:               model.EAN,
		FirstSeenAt:       model.FirstSeenAt,
		LastSeenAt:        model.LastSeenAt,
	}
}

func ToGORMCanonicalProduct(product *domain.CanonicalProduct) *models.CanonicalProductModel {
	return &models.CanonicalProductModel{
		ID:            product.ID,
		CanonicalName: product.CanonicalName,
		BrandNorm:     product.BrandNorm,
		SizeValue:     product.SizeValue,
		SizeUnit:      product.SizeUnit,
		CategoryNorm:  product.CategoryNorm,
		EAN:           product.EAN,
		CreatedAt:     product.CreatedAt,
	}
}

func ToDomainCanonicalProduct(model *models.CanonicalProductModel) *domain.CanonicalProduct {
	return &domain.CanonicalProduct{
		ID:            model.ID,
		CanonicalName: model.CanonicalName,
		BrandNorm:     model.BrandNorm,
		SizeValue:     model.SizeValue,
		SizeUnit:      model.SizeUnit,
		CategoryNorm:  model.CategoryNorm,
		EAN:           model.EAN,
		CreatedAt:     model.CreatedAt,
	}
}
