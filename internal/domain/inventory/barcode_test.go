package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBarcodePrefix(t *testing.T) {
	date := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, "1234520240601", BarcodePrefix("12345", date))
}

func TestNextBarcode(t *testing.T) {
	prefix := "1234520240601"

	t.Run("starts at 1 with no existing barcodes", func(t *testing.T) {
		assert.Equal(t, "12345202406011", NextBarcode(prefix, nil))
	})

	t.Run("increments the highest existing suffix", func(t *testing.T) {
		existing := []string{"12345202406013", "12345202406012", "12345202406011"}

		assert.Equal(t, "12345202406014", NextBarcode(prefix, existing))
	})

	t.Run("is not fooled by suffix ordering", func(t *testing.T) {
		// lexicographic descending puts "9" above "10"
		existing := []string{"123452024060119", "12345202406012", "123452024060110"}

		assert.Equal(t, "123452024060120", NextBarcode(prefix, existing))
	})

	t.Run("skips malformed suffixes and falls back to 1", func(t *testing.T) {
		existing := []string{"1234520240601X", "1234520240601"}

		assert.Equal(t, "12345202406011", NextBarcode(prefix, existing))
	})

	t.Run("ignores barcodes without the prefix", func(t *testing.T) {
		existing := []string{"99999202406017"}

		assert.Equal(t, "12345202406011", NextBarcode(prefix, existing))
	})
}
