package search

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Facets is the unordered bag of optional filters parsed from a search
// query string. Every field is independently combinable; zero values
// mean "not requested".
type Facets struct {
	Keyword    string
	Mode       string
	Region     string
	Prefecture string
	City       string
	Line       string
	Station    string
	RentMin    *int // man-yen, converted to yen at compile time
	RentMax    *int // man-yen
	WalkMax    *int // minutes
	Gender     string
	RoomTypes  []string
	Amenities  []string
	Feature    string
	Page       int
}

const (
	ModeArea    = "area"
	ModeStation = "station"
)

// Feature shortcut codes. Each expands to one of the regular predicates
// before compilation and composes with explicitly chosen facets.
const (
	FeatureCheap       = "cheap"
	FeaturePet         = "pet"
	FeatureWifi        = "wifi"
	FeatureNearStation = "near_station"
)

const (
	cheapRentCeilingYen    = 30000
	nearStationWalkMinutes = 5

	amenityPetFriendly = "ペット可"
	amenityWifi        = "Wi-Fi"
)

// roomTypeLabels maps the localized labels used by the search form to
// the internal room type codes. Raw codes pass through unchanged.
var roomTypeLabels = map[string]string{
	"個室":           "private",
	"半個室":          "semi_private",
	"相部屋":          "shared",
	"シェア":          "shared",
	"private":      "private",
	"semi_private": "semi_private",
	"shared":       "shared",
}

// ParseFacets reads facet values from a query string. Malformed values
// are skipped, not fatal: the returned error slice is advisory and the
// Facets are always usable.
func ParseFacets(values url.Values) (Facets, []error) {
	var errs []error

	f := Facets{
		Keyword:    strings.TrimSpace(values.Get("keyword")),
		Mode:       values.Get("mode"),
		Region:     values.Get("region"),
		Prefecture: values.Get("prefecture"),
		City:       values.Get("city"),
		Line:       values.Get("line"),
		Station:    values.Get("station"),
		Gender:     values.Get("gender"),
		Feature:    values.Get("feature"),
		Page:       1,
	}

	if f.Mode == "" {
		f.Mode = ModeArea
	}

	for _, v := range values["room_type"] {
		if v != "" {
			f.RoomTypes = append(f.RoomTypes, v)
		}
	}
	for _, v := range values["amenity"] {
		if v != "" {
			f.Amenities = append(f.Amenities, v)
		}
	}

	f.RentMin = parseOptionalInt(values, "rent_min", &errs)
	f.RentMax = parseOptionalInt(values, "rent_max", &errs)
	f.WalkMax = parseOptionalInt(values, "walk_max", &errs)

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			errs = append(errs, fmt.Errorf("invalid page %q", raw))
		} else {
			f.Page = page
		}
	}

	return f, errs
}

func parseOptionalInt(values url.Values, key string, errs *[]error) *int {
	raw := values.Get(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		*errs = append(*errs, fmt.Errorf("invalid %s %q", key, raw))
		return nil
	}
	return &n
}
