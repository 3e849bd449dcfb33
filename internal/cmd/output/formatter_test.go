package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invkit/recount/internal/cmd/output"
	"github.com/invkit/recount/pkg/inventory"
	"github.com/invkit/recount/pkg/recommend"
)

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", "yaml", "csv", ""} {
		_, err := output.ParseFormat(s)
		assert.NoError(t, err, s)
	}

	_, err := output.ParseFormat("xml")
	assert.Error(t, err)
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatJSON)

	records := []inventory.ReviewRecord{
		{Warehouse: "50", Item: "itm-1", Location: "A01", SystemQty: 10},
	}
	require.NoError(t, f.Format(&buf, records))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "50", decoded[0]["warehouse"])
	assert.Equal(t, float64(10), decoded[0]["system_qty"])
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatYAML)

	require.NoError(t, f.Format(&buf, []recommend.TransferSuggestion{
		{Warehouse: "50", Item: "itm-1", Qty: 3, From: "B02", To: "A01"},
	}))
	assert.Contains(t, buf.String(), "from_location: B02")
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatCSV)

	data := output.TransfersToTableData([]recommend.TransferSuggestion{
		{Warehouse: "50", Item: "itm-1", Qty: 3, From: "B02", To: "A01",
			Confidence: inventory.ConfidenceHigh, Severity: 90},
	})
	require.NoError(t, f.Format(&buf, data))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "WHS,ITEM,LOT,QTY,FROM,TO,CONF,SEV,REASON", lines[0])
	assert.Contains(t, lines[1], "B02,A01")
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatTable)

	data := output.SummariesToTableData([]recommend.GroupSummary{
		{Key: inventory.GroupKey{Warehouse: "50", Item: "itm-1"},
			DefaultLocation: "A01", Headline: "No variance",
			Confidence: inventory.ConfidenceHigh},
	})
	require.NoError(t, f.Format(&buf, data))
	assert.Contains(t, buf.String(), "itm-1")
	assert.Contains(t, buf.String(), "No variance")
}

func TestRecordsToTableData(t *testing.T) {
	data := output.RecordsToTableData([]inventory.ReviewRecord{
		{Warehouse: "50", Item: "itm-1", Location: "B02",
			Action: inventory.ActionTransfer, RecommendedQty: 2.5,
			FromLocation: "B02", ToLocation: "A01", Severity: 90},
	})
	require.Len(t, data.Rows, 1)
	assert.Len(t, data.Rows[0], len(data.Headers))
	assert.Contains(t, data.Rows[0], "TRANSFER")
	assert.Contains(t, data.Rows[0], "2.5")
}
