package brand

import (
	"github.com/raqueto/backend/internal/domain/brand"
)

func strPtr(s string) *string { return &s }

// DefaultCatalog is the racquet-sport brand list loaded by cmd/seed
func DefaultCatalog() []brand.CreateInput {
	return []brand.CreateInput{
		{
			Name:        "Yonex",
			Slug:        "yonex",
			Description: strPtr("Japanese racquet sports equipment manufacturer, known for innovation and quality"),
			LogoURL:     strPtr("/brands/yonex-logo.png"),
			WebsiteURL:  strPtr("https://yonex.com"),
			Sports:      []string{brand.SportTennis, brand.SportBadminton},
			Country:     strPtr("Japan"),
			Metadata:    map[string]any{"founded": "1946", "headquarters": "Tokyo, Japan"},
		},
		{
			Name:        "Wilson",
			Slug:        "wilson",
			Description: strPtr("American sports equipment manufacturer with a rich tennis heritage"),
			LogoURL:     strPtr("/brands/wilson-logo.png"),
			WebsiteURL:  strPtr("https://wilson.com"),
			Sports:      []string{brand.SportTennis, brand.SportPadel},
			Country:     strPtr("USA"),
			Metadata:    map[string]any{"founded": "1913", "headquarters": "Chicago, USA"},
		},
		{
			Name:        "Head",
			Slug:        "head",
			Description: strPtr("Austrian sports equipment manufacturer, official supplier of professional tours"),
			LogoURL:     strPtr("/brands/head-logo.png"),
			WebsiteURL:  strPtr("https://head.com"),
			Sports:      []string{brand.SportTennis, brand.SportPadel},
			Country:     strPtr("Austria"),
			Metadata:    map[string]any{"founded": "1950", "headquarters": "Amsterdam, Netherlands"},
		},
		{
			Name:        "Babolat",
			Slug:        "babolat",
			Description: strPtr("French tennis equipment manufacturer, pioneer in string technology"),
			LogoURL:     strPtr("/brands/babolat-logo.png"),
			WebsiteURL:  strPtr("https://babolat.com"),
			Sports:      []string{brand.SportTennis, brand.SportPadel},
			Country:     strPtr("France"),
			Metadata:    map[string]any{"founded": "1875", "headquarters": "Lyon, France"},
		},
		{
			Name:        "Prince",
			Slug:        "prince",
			Description: strPtr("American tennis equipment brand with innovative racquet designs"),
			LogoURL:     strPtr("/brands/prince-logo.png"),
			WebsiteURL:  strPtr("https://princetennis.com"),
			Sports:      []string{brand.SportTennis},
			Country:     strPtr("USA"),
			Metadata:    map[string]any{"founded": "1970"},
		},
		{
			Name:        "Bullpadel",
			Slug:        "bullpadel",
			Description: strPtr("Leading Spanish padel equipment brand, official World Padel Tour supplier"),
			LogoURL:     strPtr("/brands/bullpadel-logo.png"),
			WebsiteURL:  strPtr("https://bullpadel.com"),
			Sports:      []string{brand.SportPadel},
			Country:     strPtr("Spain"),
			Metadata:    map[string]any{"founded": "1995", "headquarters": "Valencia, Spain"},
		},
		{
			Name:        "Nox",
			Slug:        "nox",
			Description: strPtr("Spanish padel equipment brand known for innovation and pro player endorsements"),
			LogoURL:     strPtr("/brands/nox-logo.png"),
			WebsiteURL:  strPtr("https://noxpadel.com"),
			Sports:      []string{brand.SportPadel},
			Country:     strPtr("Spain"),
			Metadata:    map[string]any{"founded": "2009", "headquarters": "Madrid, Spain"},
		},
		{
			Name:        "Dunlop",
			Slug:        "dunlop",
			Description: strPtr("British sports equipment brand with strong presence in padel"),
			LogoURL:     strPtr("/brands/dunlop-logo.png"),
			WebsiteURL:  strPtr("https://dunlop.com"),
			Sports:      []string{brand.SportTennis, brand.SportPadel},
			Country:     strPtr("United Kingdom"),
			Metadata:    map[string]any{"founded": "1910"},
		},
	}
}
