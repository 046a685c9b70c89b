package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/example/luxa-shop/internal/apperr"
	"golang.org/x/text/unicode/norm"
)

type Category string

const (
	CategoryVisage      Category = "visage"
	CategoryYeux        Category = "yeux"
	CategoryLevres      Category = "levres"
	CategoryPalettes    Category = "palettes"
	CategoryAccessoires Category = "accessoires"
)

// Categories lists the catalog categories in display order.
var Categories = []Category{
	CategoryVisage,
	CategoryYeux,
	CategoryLevres,
	CategoryPalettes,
	CategoryAccessoires,
}

var categoryLabels = map[Category]string{
	CategoryVisage:      "Visage",
	CategoryYeux:        "Yeux",
	CategoryLevres:      "Lèvres",
	CategoryPalettes:    "Palettes",
	CategoryAccessoires: "Accessoires",
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

var ErrInvalidSlug = errors.New("slug must be lowercase letters, digits and dashes")

// Variant is a named option axis, e.g. {"Teinte", ["Nude", "Rose"]}.
type Variant struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Price        int       `json:"price"`
	Description  string    `json:"description,omitempty"`
	Category     Category  `json:"category"`
	Images       []string  `json:"images"`
	Stock        *int      `json:"stock,omitempty"`
	IsNew        bool      `json:"is_new"`
	IsBestseller bool      `json:"is_bestseller"`
	Variants     []Variant `json:"variants,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasVariants reports whether the product declares at least one option.
func (p *Product) HasVariants() bool {
	for _, v := range p.Variants {
		if len(v.Options) > 0 {
			return true
		}
	}
	return false
}

// HasVariantOption reports whether option is declared by any of the
// product's variant axes.
func (p *Product) HasVariantOption(option string) bool {
	for _, v := range p.Variants {
		for _, o := range v.Options {
			if o == option {
				return true
			}
		}
	}
	return false
}

// InStock is informational only; carts never check it.
func (p *Product) InStock() bool {
	return p.Stock == nil || *p.Stock > 0
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Validate checks the fields an admin can edit.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.Validation("name", "is required")
	}
	if !slugPattern.MatchString(p.Slug) {
		return apperr.Validation("slug", ErrInvalidSlug.Error())
	}
	if p.Price < 0 {
		return apperr.Validation("price", "must not be negative")
	}
	if !p.Category.Valid() {
		return apperr.Validation("category", fmt.Sprintf("unknown category %q", p.Category))
	}
	if p.Stock != nil && *p.Stock < 0 {
		return apperr.Validation("stock", "must not be negative")
	}
	for i, v := range p.Variants {
		if strings.TrimSpace(v.Name) == "" {
			return apperr.Validation(fmt.Sprintf("variants[%d].name", i), "is required")
		}
		if len(v.Options) == 0 {
			return apperr.Validation(fmt.Sprintf("variants[%d].options", i), "must not be empty")
		}
	}
	return nil
}

// Slugify turns a product name into a URL-safe slug: accents are stripped,
// runs of anything else collapse to a single dash.
func Slugify(name string) string {
	decomposed := norm.NFD.String(strings.ToLower(name))

	var b strings.Builder
	dash := false
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
