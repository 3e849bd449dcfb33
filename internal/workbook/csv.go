package workbook

import (
	"encoding/csv"
	"os"

	"github.com/invkit/recount/pkg/errors"
	"github.com/invkit/recount/pkg/inventory"
)

// LoadRecountCSV reads recount lines from a CSV export with the same
// column headers as the workbook sheet.
func LoadRecountCSV(path string) ([]inventory.CountLine, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	return parseRecountRows(rows)
}

// LoadLocationsCSV reads the location master from a CSV export.
func LoadLocationsCSV(path string) ([]inventory.LocationMaster, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	return parseLocationRows(rows)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged exports are common; columns are validated by name
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}
	return rows, nil
}
