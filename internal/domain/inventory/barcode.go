package inventory

import (
	"strconv"
	"strings"
	"time"
)

// BarcodePrefix builds the per-product, per-day barcode base from the
// product's numeric code and the purchase business date.
func BarcodePrefix(productCode string, businessDate time.Time) string {
	return productCode + businessDate.Format("20060102")
}

// NextBarcode allocates the next sequential barcode for a prefix given
// the existing barcodes with that prefix. Suffixes count up from 1; a
// malformed suffix is skipped rather than failing the allocation.
func NextBarcode(prefix string, existing []string) string {
	highest := int64(0)
	for _, barcode := range existing {
		suffix := strings.TrimPrefix(barcode, prefix)
		if suffix == barcode || suffix == "" {
			continue
		}
		n, err := strconv.ParseInt(suffix, 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return prefix + strconv.FormatInt(highest+1, 10)
}
