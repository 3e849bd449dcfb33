package inventory

import (
	"fmt"
	"strings"

	"github.com/invkit/recount/pkg/errors"
)

// Column names for the two source tables and the joined review-line table.
// Matching is case-insensitive after trimming, so workbook headers with
// stray whitespace or casing differences still validate.
var (
	// RecountColumns are required in the recount workbook.
	RecountColumns = []string{
		"Whs",
		"Item",
		"Location",
		"Batch/lot",
		"Item Rev Default Location",
		"Count 1 cutoff on-hand qty",
		"Count 1 qty",
		"Count 1 variance qty",
	}

	// LocationColumns are required in the warehouse-locations workbook.
	LocationColumns = []string{
		"Whs",
		"Location",
		"Location Type",
		"Allocation Category",
	}

)

// MissingColumns returns the required columns absent from headers,
// preserving the required order.
func MissingColumns(headers, required []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[strings.ToLower(strings.TrimSpace(h))] = true
	}

	var missing []string
	for _, col := range required {
		if !present[strings.ToLower(col)] {
			missing = append(missing, col)
		}
	}
	return missing
}

// ValidateColumns fails fast with a SchemaError enumerating every required
// column absent from headers. Data-quality conditions on individual rows
// are not schema errors; those route groups to INVESTIGATE downstream.
func ValidateColumns(source string, headers, required []string) error {
	if missing := MissingColumns(headers, required); len(missing) > 0 {
		return errors.NewSchemaError(source, missing)
	}
	return nil
}

// ValidateRecords checks the grouping keys the engine cannot work without.
// Blank lots and default locations are legal; a blank default routes the
// group to investigation rather than failing the run.
func ValidateRecords(records []ReviewRecord) error {
	for i := range records {
		r := &records[i]
		var missing []string
		if strings.TrimSpace(r.Warehouse) == "" {
			missing = append(missing, "warehouse")
		}
		if strings.TrimSpace(r.Item) == "" {
			missing = append(missing, "item")
		}
		if strings.TrimSpace(r.Location) == "" {
			missing = append(missing, "location")
		}
		if len(missing) > 0 {
			return errors.NewValidationError("records", i,
				fmt.Sprintf("record %d is missing %s", i, strings.Join(missing, ", ")))
		}
	}
	return nil
}
