// Package route converts between URL fragments and navigation targets.
//
// Fragments take three shapes:
//
//	#home                   the landing section
//	#<section>              a named section such as posts-all
//	#detail-<kind>-<slug>   a single game or post; the slug may contain hyphens
package route

import (
	"net/url"
	"strings"

	"github.com/frinky/devlog/internal/model"
)

// Variant distinguishes the route shapes.
type Variant uint8

const (
	VariantHome Variant = iota
	VariantSection
	VariantDetail
)

const (
	// HomeFragment is the encoded form of Home.
	HomeFragment = "home"

	detailMarker = "detail"
	detailPrefix = detailMarker + "-"
)

// Route is a navigation target. The zero value is Home. Routes are
// comparable with ==.
type Route struct {
	Variant Variant
	Section string
	Kind    model.Kind
	Slug    string
}

// Home is the default route.
func Home() Route { return Route{} }

// Section routes to a named section container.
func Section(name string) Route { return Route{Variant: VariantSection, Section: name} }

// Detail routes to a single entry.
func Detail(kind model.Kind, slug string) Route {
	return Route{Variant: VariantDetail, Kind: kind, Slug: slug}
}

func (r Route) IsHome() bool   { return r.Variant == VariantHome }
func (r Route) IsDetail() bool { return r.Variant == VariantDetail }

// Decode parses a fragment, with or without its leading '#'. It never
// fails: empty input is Home, and anything that is not a well-formed
// detail fragment is returned as a section candidate for the caller to
// validate.
func Decode(fragment string) Route {
	fragment = strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	if unescaped, err := url.PathUnescape(fragment); err == nil {
		fragment = unescaped
	}
	if fragment == "" || fragment == HomeFragment {
		return Home()
	}

	if rest, ok := strings.CutPrefix(fragment, detailPrefix); ok {
		kindPart, slug, _ := strings.Cut(rest, "-")
		if kind, err := model.ParseKind(kindPart); err == nil && slug != "" {
			return Detail(kind, slug)
		}
	}
	return Section(fragment)
}

// Encode renders r as a fragment without the leading '#'. Section names
// and slugs are path-escaped, mirroring the unescape in Decode.
func Encode(r Route) string {
	switch r.Variant {
	case VariantDetail:
		return detailPrefix + string(r.Kind) + "-" + url.PathEscape(r.Slug)
	case VariantSection:
		return url.PathEscape(r.Section)
	default:
		return HomeFragment
	}
}

// Fragment is Encode with the leading '#', ready for an href.
func (r Route) Fragment() string { return "#" + Encode(r) }

func (r Route) String() string { return Encode(r) }
