package search

import (
	"fmt"
	"strings"

	"roomshare/internal/domain"
)

// PageSize is the fixed number of listings per result page.
const PageSize = 20

// Compiled is a self-contained WHERE clause with positional arguments,
// ready to be embedded in both the page query and the count query.
type Compiled struct {
	Where string
	Args  []any
}

// Offset converts a 1-based page number to a row offset.
func Offset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}

// keyword matches case-insensitively across these columns, OR'd together.
var keywordColumns = []string{
	"title", "description", "address", "prefecture", "city", "station_name", "station_line",
}

// Compile folds the facets into a single filtered predicate set. The
// builder order is fixed, so identical facets always produce an
// identical clause and argument list.
func Compile(f Facets) Compiled {
	b := &clauseBuilder{}

	// Visibility is not a facet: only public listings are ever searchable.
	b.add("is_public = TRUE")

	compileKeyword(b, f)
	compileGeography(b, f)
	compileRoomTypes(b, f)

	rentMinYen, rentMaxYen, walkMax, amenities := expandFeature(f)

	if rentMinYen != nil {
		b.add(fmt.Sprintf("price >= $%d", b.bind(*rentMinYen)))
	}
	if rentMaxYen != nil {
		b.add(fmt.Sprintf("price <= $%d", b.bind(*rentMaxYen)))
	}
	if f.Gender == domain.GenderMale || f.Gender == domain.GenderFemale {
		b.add(fmt.Sprintf("gender_restriction = $%d", b.bind(f.Gender)))
	}
	if len(amenities) > 0 {
		// Superset check: the listing must carry every requested tag.
		b.add(fmt.Sprintf("amenities @> $%d", b.bind(amenities)))
	}
	if walkMax != nil {
		b.add(fmt.Sprintf("walk_minutes <= $%d", b.bind(*walkMax)))
	}

	return Compiled{Where: strings.Join(b.conds, " AND "), Args: b.args}
}

func compileKeyword(b *clauseBuilder, f Facets) {
	if f.Keyword == "" {
		return
	}
	n := b.bind("%" + escapeLike(f.Keyword) + "%")
	parts := make([]string, len(keywordColumns))
	for i, col := range keywordColumns {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", col, n)
	}
	b.add("(" + strings.Join(parts, " OR ") + ")")
}

func compileGeography(b *clauseBuilder, f Facets) {
	if f.Mode == ModeStation {
		if f.Prefecture != "" {
			b.add(fmt.Sprintf("prefecture = $%d", b.bind(f.Prefecture)))
		}
		// Line and station names are commonly abbreviated, so both are
		// partial matches rather than exact.
		if f.Line != "" {
			b.add(fmt.Sprintf("station_line ILIKE $%d", b.bind("%"+escapeLike(f.Line)+"%")))
		}
		if f.Station != "" {
			b.add(fmt.Sprintf("station_name ILIKE $%d", b.bind("%"+escapeLike(f.Station)+"%")))
		}
		return
	}

	// Area mode: an explicit prefecture wins over a region.
	switch {
	case f.Prefecture != "":
		b.add(fmt.Sprintf("prefecture = $%d", b.bind(f.Prefecture)))
	case f.Region != "":
		if prefs := RegionPrefectures(f.Region); len(prefs) > 0 {
			b.add(fmt.Sprintf("prefecture = ANY($%d)", b.bind(prefs)))
		}
	}
	if f.City != "" {
		b.add(fmt.Sprintf("city = $%d", b.bind(f.City)))
	}
}

func compileRoomTypes(b *clauseBuilder, f Facets) {
	var codes []string
	seen := map[string]bool{}
	for _, label := range f.RoomTypes {
		code, ok := roomTypeLabels[label]
		if ok && !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	if len(codes) > 0 {
		b.add(fmt.Sprintf("room_type = ANY($%d)", b.bind(codes)))
	}
}

// expandFeature resolves the feature shortcut and the man-yen rent
// bounds into effective yen bounds, walk ceiling and amenity set. A
// shortcut composes with explicit facets: the stricter bound wins and
// amenity tags are unioned.
func expandFeature(f Facets) (rentMinYen, rentMaxYen, walkMax *int, amenities []string) {
	rentMinYen = manYenToYen(f.RentMin)
	rentMaxYen = manYenToYen(f.RentMax)
	walkMax = f.WalkMax
	amenities = append(amenities, f.Amenities...)

	switch f.Feature {
	case FeatureCheap:
		rentMaxYen = stricterCeiling(rentMaxYen, cheapRentCeilingYen)
	case FeaturePet:
		amenities = appendUnique(amenities, amenityPetFriendly)
	case FeatureWifi:
		amenities = appendUnique(amenities, amenityWifi)
	case FeatureNearStation:
		walkMax = stricterCeiling(walkMax, nearStationWalkMinutes)
	}
	return rentMinYen, rentMaxYen, walkMax, amenities
}

func manYenToYen(v *int) *int {
	if v == nil {
		return nil
	}
	yen := *v * 10000
	return &yen
}

func stricterCeiling(current *int, ceiling int) *int {
	if current == nil || *current > ceiling {
		return &ceiling
	}
	return current
}

func appendUnique(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}

type clauseBuilder struct {
	conds []string
	args  []any
}

func (b *clauseBuilder) add(cond string) {
	b.conds = append(b.conds, cond)
}

// bind registers an argument and returns its 1-based placeholder index.
func (b *clauseBuilder) bind(v any) int {
	b.args = append(b.args, v)
	return len(b.args)
}
