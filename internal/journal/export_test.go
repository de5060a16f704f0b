package journal

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"crypto-trade-journal/internal/models"
	"crypto-trade-journal/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)
	seed(t, svc, "u1", models.SessionNY, 50500)
	_, err := svc.CreateTrade(ctx, "u1", longTrade())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, "u1", store.TradeFilter{}, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := records[0]
	col := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		t.Fatalf("missing column %s", name)
		return -1
	}

	results := []string{records[1][col("trade_result")], records[2][col("trade_result")]}
	assert.ElementsMatch(t, []string{"Win", ""}, results)
	assert.Equal(t, "NY Session", records[1][col("session")])
	assert.Equal(t, "52000", records[1][col("take_profit")])
}

func TestRowOf_OptionalFields(t *testing.T) {
	tr := longTrade()
	tr.TakeProfit = nil
	tr.PLDollar = models.Float(-12.5)

	row := RowOf(tr)

	assert.Empty(t, row.TakeProfit)
	assert.Equal(t, "-12.5", row.PLDollar)
	assert.Empty(t, row.ExitPrice)
}
