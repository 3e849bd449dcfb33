// Package workbook loads the two source tables from xlsx workbooks or CSV
// exports: the recount lines and the warehouse-locations master. Loaders
// validate required columns up front and coerce numerics; per-row data
// quality is left to the engine.
package workbook

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/invkit/recount/pkg/errors"
	"github.com/invkit/recount/pkg/inventory"
)

// Sheet names looked for in the source workbooks.
const (
	recountSheet   = "Sheet2"
	locationsSheet = "All Locations"
)

// LoadRecount reads the recount workbook at path. The ".csv" extension
// selects the CSV loader; anything else is opened as an xlsx workbook.
func LoadRecount(path string) ([]inventory.CountLine, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return LoadRecountCSV(path)
	}
	return LoadRecountXLSX(path)
}

// LoadLocations reads the warehouse-locations workbook at path.
func LoadLocations(path string) ([]inventory.LocationMaster, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return LoadLocationsCSV(path)
	}
	return LoadLocationsXLSX(path)
}

// LoadRecountXLSX reads recount lines from an xlsx workbook, preferring
// sheet "Sheet2" when present, otherwise the first sheet.
func LoadRecountXLSX(path string) ([]inventory.CountLine, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetList()[0]
	for _, name := range f.GetSheetList() {
		if name == recountSheet {
			sheet = name
			break
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	return parseRecountRows(rows)
}

// LoadLocationsXLSX reads the location master from the "All Locations"
// sheet of an xlsx workbook.
func LoadLocationsXLSX(path string) ([]inventory.LocationMaster, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(locationsSheet)
	if err != nil {
		return nil, errors.NewParseError("xlsx", path,
			"sheet '"+locationsSheet+"' not found", err)
	}
	return parseLocationRows(rows)
}

// header maps normalized column names to their positions.
type header map[string]int

func newHeader(cells []string) header {
	h := make(header, len(cells))
	for i, c := range cells {
		h[strings.ToLower(strings.TrimSpace(c))] = i
	}
	return h
}

func (h header) cell(row []string, column string) string {
	i, ok := h[strings.ToLower(column)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// number coerces a cell to a float64. Blank or unparseable cells read as
// zero; ok reports whether a value was actually present and numeric.
func (h header) number(row []string, column string) (float64, bool) {
	s := h.cell(row, column)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseRecountRows(rows [][]string) ([]inventory.CountLine, error) {
	if len(rows) == 0 {
		return nil, errors.NewSchemaError("recount", inventory.RecountColumns)
	}

	h := newHeader(rows[0])
	if err := inventory.ValidateColumns("recount", rows[0], inventory.RecountColumns); err != nil {
		return nil, err
	}

	lines := make([]inventory.CountLine, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		line := inventory.CountLine{
			Warehouse:       h.cell(row, "Whs"),
			Item:            h.cell(row, "Item"),
			Lot:             h.cell(row, "Batch/lot"),
			Location:        h.cell(row, "Location"),
			DefaultLocation: h.cell(row, "Item Rev Default Location"),
			Tag:             h.cell(row, "Tag"),
			AssignedTo:      h.cell(row, "Assigned to"),
			Description:     h.cell(row, "Description"),
			CountStatus:     h.cell(row, "Count Status"),
			Notes:           h.cell(row, "Notes"),
		}
		line.SystemQty, _ = h.number(row, "Count 1 cutoff on-hand qty")
		line.CountQty, line.Counted = h.number(row, "Count 1 qty")
		line.VarianceQty, _ = h.number(row, "Count 1 variance qty")
		line.Normalize()
		lines = append(lines, line)
	}
	return lines, nil
}

func parseLocationRows(rows [][]string) ([]inventory.LocationMaster, error) {
	if len(rows) == 0 {
		return nil, errors.NewSchemaError("locations", inventory.LocationColumns)
	}

	h := newHeader(rows[0])
	if err := inventory.ValidateColumns("locations", rows[0], inventory.LocationColumns); err != nil {
		return nil, err
	}

	masters := make([]inventory.LocationMaster, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		m := inventory.LocationMaster{
			Warehouse:          h.cell(row, "Whs"),
			Location:           h.cell(row, "Location"),
			LocationType:       h.cell(row, "Location Type"),
			AllocationCategory: h.cell(row, "Allocation Category"),
		}
		m.Normalize()
		masters = append(masters, m)
	}
	return masters, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
