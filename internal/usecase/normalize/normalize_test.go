package normalize

import "testing"

func TestText(t *testing.T) {
	t.Run("lowercases and collapses whitespace", func(t *testing.T) {
		if got := Text("  Crema   Hidratante \t"); got != "crema hidratante" {
			t.Errorf("Text = %q, want %q", got, "crema hidratante")
		}
	})
}

func TestBrand(t *testing.T) {
	t.Run("resolves alias", func(t *testing.T) {
		if got := Brand("La Roche Posay"); got != "la roche-posay" {
			t.Errorf("Brand = %q, want la roche-posay", got)
		}
	})

	t.Run("passes through unknown brands lowercased", func(t *testing.T) {
		if got := Brand(" CeraVe "); got != "cerave" {
			t.Errorf("Brand = %q, want cerave", got)
		}
	})
}

func TestSize(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		wantValue float64
		wantUnit  string
	}{
		{"plain ml", "150 ml", 150, "ml"},
		{"no space uppercase", "400ML", 400, "ml"},
		{"comma decimal litres to ml", "1,5 L", 1500, "ml"},
		{"kilograms to grams", "2kg", 2000, "g"},
		{"units", "30 un", 30, "un"},
		{"embedded in title", "Protector Solar FPS50 50 ml x2", 50, "ml"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value, unit := Size(tc.raw)
			if value == nil || unit == nil {
				t.Fatalf("Size(%q) = (%v, %v), want parsed", tc.raw, value, unit)
			}
			if *value != tc.wantValue || *unit != tc.wantUnit {
				t.Errorf("Size(%q) = (%v, %q), want (%v, %q)", tc.raw, *value, *unit, tc.wantValue, tc.wantUnit)
			}
		})
	}

	t.Run("unparsable yields nil not error", func(t *testing.T) {
		value, unit := Size("tamaño único")
		if value != nil || unit != nil {
			t.Errorf("Size = (%v, %v), want (nil, nil)", value, unit)
		}
	})

	t.Run("empty string", func(t *testing.T) {
		value, unit := Size("")
		if value != nil || unit != nil {
			t.Errorf("Size = (%v, %v), want (nil, nil)", value, unit)
		}
	})
}

func TestCategory(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Dermocosmética / Protección Solar", "skincare"},
		{"Cuidado del Cabello", "haircare"},
		{"Higiene Bucal", "oral-care"},
		{"Vitaminas y Suplementos", "vitamins"},
		{"Electrodomésticos", CategoryOther},
		{"", CategoryOther},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			if got := Category(tc.raw); got != tc.want {
				t.Errorf("Category(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}
