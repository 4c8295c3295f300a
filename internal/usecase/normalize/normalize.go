// Package normalize turns raw brand/size/category strings into the
// comparable forms the matcher keys on. Everything here is a pure
// function of its inputs.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	sizeRe       = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(ml|g|kg|l|un)\b`)
)

// brandAliases maps known spelling variants to one canonical brand.
// Lookup happens after lower-casing and whitespace collapse.
var brandAliases = map[string]string{
	"la roche posay": "la roche-posay",
	"laroche-posay":  "la roche-posay",
	"loreal":         "l'oreal",
	"l'oréal":        "l'oreal",
	"l oreal":        "l'oreal",
	"neutrogena®":    "neutrogena",
	"eucerin®":       "eucerin",
	"isdin®":         "isdin",
}

// categoryKeywords maps taxonomy categories to the raw-category
// keywords that select them. First hit wins, in declaration order.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"skincare", []string{"skin", "facial", "crema", "serum", "dermo", "solar", "sunscreen", "hidratante", "moistur"}},
	{"haircare", []string{"hair", "cabello", "shampoo", "acondicionador", "conditioner", "capilar"}},
	{"oral-care", []string{"oral", "dental", "bucal", "toothpaste", "pasta dental"}},
	{"makeup", []string{"makeup", "maquillaje", "labial", "lipstick", "mascara"}},
	{"fragrance", []string{"perfume", "fragancia", "fragrance", "colonia", "eau de"}},
	{"vitamins", []string{"vitamin", "vitamina", "suplemento", "supplement"}},
	{"baby", []string{"baby", "bebe", "bebé", "infantil", "pañal"}},
}

// CategoryOther is the catch-all: unknown categories never fail
// normalization, they land here.
const CategoryOther = "other"

// Text lower-cases, trims, and collapses internal whitespace.
func Text(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	return whitespaceRe.ReplaceAllString(value, " ")
}

// Brand normalizes a raw brand string and resolves known aliases.
func Brand(raw string) string {
	brand := Text(raw)
	if canonical, ok := brandAliases[brand]; ok {
		return canonical
	}
	return brand
}

// Size parses "150 ml", "1,5L", "90g" into a numeric value and a
// canonical unit. Litres and kilograms collapse into ml/g so sizes
// compare across retailers. Unparsable sizes return (nil, nil), never
// an error.
func Size(raw string) (*float64, *string) {
	m := sizeRe.FindStringSubmatch(raw)
	if m == nil {
		return nil, nil
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return nil, nil
	}
	unit := strings.ToLower(m[2])
	switch unit {
	case "l":
		value *= 1000
		unit = "ml"
	case "kg":
		value *= 1000
		unit = "g"
	}
	return &value, &unit
}

// Category maps a raw category string onto the fixed taxonomy,
// defaulting to the catch-all rather than failing.
func Category(raw string) string {
	category := Text(raw)
	if category == "" {
		return CategoryOther
	}
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(category, kw) {
				return entry.category
			}
		}
	}
	return CategoryOther
}
