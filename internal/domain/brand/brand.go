package brand

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/raqueto/backend/internal/domain/shared"
)

// DefaultOrder is the sort position given to brands created without one
const DefaultOrder = 999

// Known sport tags used by the storefront filters
const (
	SportTennis     = "tennis"
	SportPadel      = "padel"
	SportBadminton  = "badminton"
	SportPickleball = "pickleball"
	SportSquash     = "squash"
)

// Brand is a racquet-sport manufacturer shown in the storefront.
type Brand struct {
	shared.BaseEntity
	Name        string
	Slug        string
	Description *string
	LogoURL     *string
	WebsiteURL  *string
	Order       *int
	IsActive    bool
	Sports      []string
	Country     *string
	Metadata    map[string]any
}

// CreateInput holds the fields accepted when creating a brand.
// Nil pointers mean "not provided".
type CreateInput struct {
	Name        string
	Slug        string
	Description *string
	LogoURL     *string
	WebsiteURL  *string
	Order       *int
	IsActive    *bool
	Sports      []string
	Country     *string
	Metadata    map[string]any
}

// Patch holds a partial update. Nil fields are left untouched.
type Patch struct {
	Name        *string
	Slug        *string
	Description *string
	LogoURL     *string
	WebsiteURL  *string
	Order       *int
	IsActive    *bool
	Sports      []string
	Country     *string
	Metadata    map[string]any
}

// NewBrand validates the input and builds a new brand with defaults applied
func NewBrand(input CreateInput) (*Brand, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateWebsiteURL(input.WebsiteURL); err != nil {
		return nil, err
	}
	if err := validateOrder(input.Order); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(name)
	}

	order := DefaultOrder
	if input.Order != nil {
		order = *input.Order
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	return &Brand{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Slug:        slug,
		Description: input.Description,
		LogoURL:     input.LogoURL,
		WebsiteURL:  input.WebsiteURL,
		Order:       &order,
		IsActive:    isActive,
		Sports:      cloneStrings(input.Sports),
		Country:     input.Country,
		Metadata:    cloneMap(input.Metadata),
	}, nil
}

// Apply merges the patch onto the brand. When the name changes and no slug
// is given, the slug is regenerated from the new name.
func (b *Brand) Apply(p Patch) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if err := validateName(name); err != nil {
			return err
		}
		if name != b.Name && (p.Slug == nil || strings.TrimSpace(*p.Slug) == "") {
			b.Slug = Slugify(name)
		}
		b.Name = name
	}
	if p.Slug != nil && strings.TrimSpace(*p.Slug) != "" {
		b.Slug = strings.TrimSpace(*p.Slug)
	}
	if p.WebsiteURL != nil {
		if err := validateWebsiteURL(p.WebsiteURL); err != nil {
			return err
		}
		b.WebsiteURL = p.WebsiteURL
	}
	if p.Order != nil {
		if err := validateOrder(p.Order); err != nil {
			return err
		}
		order := *p.Order
		b.Order = &order
	}
	if p.Description != nil {
		b.Description = p.Description
	}
	if p.LogoURL != nil {
		b.LogoURL = p.LogoURL
	}
	if p.IsActive != nil {
		b.IsActive = *p.IsActive
	}
	if p.Sports != nil {
		b.Sports = cloneStrings(p.Sports)
	}
	if p.Country != nil {
		b.Country = p.Country
	}
	if p.Metadata != nil {
		b.Metadata = cloneMap(p.Metadata)
	}
	b.UpdatedAt = time.Now()
	return nil
}

// Snapshot returns a deep copy of the brand
func (b *Brand) Snapshot() *Brand {
	c := *b
	c.Description = clonePtr(b.Description)
	c.LogoURL = clonePtr(b.LogoURL)
	c.WebsiteURL = clonePtr(b.WebsiteURL)
	c.Country = clonePtr(b.Country)
	c.Order = clonePtr(b.Order)
	c.Sports = cloneStrings(b.Sports)
	c.Metadata = cloneMap(b.Metadata)
	if b.DeletedAt != nil {
		d := *b.DeletedAt
		c.DeletedAt = &d
	}
	return &c
}

// Restore overwrites every field with a copy of the snapshot
func (b *Brand) Restore(snapshot *Brand) {
	*b = *snapshot.Snapshot()
}

// SortOrder returns the effective sort position
func (b *Brand) SortOrder() int {
	if b.Order == nil {
		return DefaultOrder
	}
	return *b.Order
}

// HasSport reports whether the brand is tagged with the sport
func (b *Brand) HasSport(sport string) bool {
	sport = strings.ToLower(strings.TrimSpace(sport))
	for _, s := range b.Sports {
		if strings.ToLower(s) == sport {
			return true
		}
	}
	return false
}

func validateName(name string) error {
	if name == "" {
		return shared.InvalidInput("Brand name is required")
	}
	if utf8.RuneCountInString(name) > 200 {
		return shared.InvalidInput("Brand name cannot exceed 200 characters")
	}
	return nil
}

func validateWebsiteURL(raw *string) error {
	if raw == nil || *raw == "" {
		return nil
	}
	u, err := url.Parse(*raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return shared.InvalidInput("website_url must be a valid URL")
	}
	return nil
}

func validateOrder(order *int) error {
	if order != nil && *order < 0 {
		return shared.InvalidInput("order must be zero or greater")
	}
	return nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
