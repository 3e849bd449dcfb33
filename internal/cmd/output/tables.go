package output

import (
	"os"
	"strconv"

	"github.com/invkit/recount/pkg/inventory"
	"github.com/invkit/recount/pkg/recommend"
)

// RecordsToTableData converts review records to tabular form.
func RecordsToTableData(records []inventory.ReviewRecord) Data {
	data := Data{
		Headers: []string{
			"WHS", "ITEM", "LOT", "LOCATION", "ROLE", "SYSTEM", "COUNT",
			"ACTION", "QTY", "FROM", "TO", "CONF", "SEV", "REASON",
		},
	}
	for i := range records {
		r := &records[i]
		data.Rows = append(data.Rows, []string{
			r.Warehouse, r.Item, r.Lot, r.Location, string(r.Role),
			qty(r.SystemQty), qty(r.CountQty),
			string(r.Action), qty(r.RecommendedQty),
			r.FromLocation, r.ToLocation,
			string(r.Confidence), strconv.Itoa(r.Severity), r.Reason,
		})
	}
	return data
}

// TransfersToTableData converts transfer suggestions to tabular form.
func TransfersToTableData(transfers []recommend.TransferSuggestion) Data {
	data := Data{
		Headers: []string{"WHS", "ITEM", "LOT", "QTY", "FROM", "TO", "CONF", "SEV", "REASON"},
	}
	for _, t := range transfers {
		data.Rows = append(data.Rows, []string{
			t.Warehouse, t.Item, t.Lot, qty(t.Qty), t.From, t.To,
			string(t.Confidence), strconv.Itoa(t.Severity), t.Reason,
		})
	}
	return data
}

// SummariesToTableData converts group summaries to tabular form.
func SummariesToTableData(summaries []recommend.GroupSummary) Data {
	data := Data{
		Headers: []string{
			"WHS", "ITEM", "LOT", "DEFAULT", "SYSTEM", "COUNT", "VARIANCE",
			"REMAINING", "FLAGS", "CONF", "SEV", "HEADLINE",
		},
	}
	for _, s := range summaries {
		data.Rows = append(data.Rows, []string{
			s.Key.Warehouse, s.Key.Item, s.Key.Lot, s.DefaultLocation,
			qty(s.SystemTotal), qty(s.CountTotal), qty(s.NetVariance),
			qty(s.RemainingAdj), s.Flags.String(),
			string(s.Confidence), strconv.Itoa(s.Severity), s.Headline,
		})
	}
	return data
}

// FormatRecords renders review records on stdout in the given format.
func FormatRecords(records []inventory.ReviewRecord, format Format) error {
	return formatAs(records, RecordsToTableData(records), format)
}

// FormatTransfers renders transfer suggestions on stdout in the given format.
func FormatTransfers(transfers []recommend.TransferSuggestion, format Format) error {
	return formatAs(transfers, TransfersToTableData(transfers), format)
}

// FormatSummaries renders group summaries on stdout in the given format.
func FormatSummaries(summaries []recommend.GroupSummary, format Format) error {
	return formatAs(summaries, SummariesToTableData(summaries), format)
}

// FormatAny renders any data type on stdout in the given format.
func FormatAny(data any, format Format) error {
	return NewFormatter(format).Format(os.Stdout, data)
}

// formatAs picks the tabular form for table and CSV output, the raw
// structs otherwise.
func formatAs(raw any, tabular Data, format Format) error {
	switch format {
	case FormatTable, FormatCSV, "":
		return NewFormatter(format).Format(os.Stdout, tabular)
	default:
		return NewFormatter(format).Format(os.Stdout, raw)
	}
}

func qty(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
