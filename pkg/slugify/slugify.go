package slugify

import (
	"strings"

	"github.com/gosimple/slug"
)

// Place builds a URL-safe ASCII slug from a prefecture and city pair.
// Input that cannot be transliterated yields an empty slug; callers
// treat that as a degraded result, never an error.
func Place(prefecture, city string) string {
	source := strings.TrimSpace(strings.TrimSpace(prefecture) + " " + strings.TrimSpace(city))
	if source == "" {
		return ""
	}
	return slug.Make(source)
}
