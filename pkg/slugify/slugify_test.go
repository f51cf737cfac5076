package slugify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlace(t *testing.T) {
	t.Run("ascii input", func(t *testing.T) {
		assert.Equal(t, "tokyo-shibuya", Place("Tokyo", "Shibuya"))
	})

	t.Run("diacritics fold to ascii", func(t *testing.T) {
		assert.Equal(t, "saitama-kawagoe", Place("Saitama", "Kawagoé"))
	})

	t.Run("prefecture only", func(t *testing.T) {
		assert.Equal(t, "osaka", Place("Osaka", ""))
	})

	t.Run("city only", func(t *testing.T) {
		assert.Equal(t, "yokohama", Place("", "Yokohama"))
	})

	t.Run("empty input degrades to empty slug", func(t *testing.T) {
		assert.Equal(t, "", Place("", ""))
		assert.Equal(t, "", Place("   ", "  "))
	})

	t.Run("symbol only input degrades to empty slug", func(t *testing.T) {
		assert.Equal(t, "", Place("★", "☆"))
	})
}
