package reservation

import (
	"testing"

	"github.com/teaseong5-stack/azit-erp-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookFromRows(t *testing.T, rows [][]any) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &row))
	}
	return f
}

func TestParseXLSX(t *testing.T) {
	f := workbookFromRows(t, [][]any{
		{"customer_name", "phone_number", "manager", "tour_name", "category",
			"reservation_date", "start_date", "total_price", "total_cost", "status", "details"},
		{"Nguyen Van A", "0901234567", "kim", "Ha Long Bay", "tour",
			"2026-03-10", "2026-03-15", "1,500,000", 1100000, "confirmed",
			`{"adults":2,"children":1}`},
		{"", "", "", "skipped row without customer", "", "", "", "", "", "", ""},
		{"Tran Thi B", "", "", "Hanoi Hotel", "ACCOMMODATION",
			"2026-03-12", "", "", "", "", ""},
	})

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	records, err := ParseXLSX(buf)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Nguyen Van A", first.CustomerName)
	assert.Equal(t, "kim", first.Manager)
	assert.Equal(t, models.CategoryTour, first.Category)
	assert.Equal(t, models.StatusConfirmed, first.Status)
	require.NotNil(t, first.TotalPrice)
	assert.Equal(t, 1500000.0, *first.TotalPrice)
	require.NotNil(t, first.TotalCost)
	assert.Equal(t, 1100000.0, *first.TotalCost)
	assert.JSONEq(t, `{"adults":2,"children":1}`, string(first.Details))

	second := records[1]
	assert.Equal(t, models.CategoryAccommodation, second.Category)
	assert.Nil(t, second.TotalPrice)
	assert.Empty(t, second.StartDate)
}

func TestParseXLSXRejectsBadInput(t *testing.T) {
	noHeader := workbookFromRows(t, [][]any{
		{"name", "product"},
		{"Nguyen Van A", "Ha Long Bay"},
	})
	buf, err := noHeader.WriteToBuffer()
	require.NoError(t, err)
	_, err = ParseXLSX(buf)
	assert.ErrorContains(t, err, "customer_name")

	badNumber := workbookFromRows(t, [][]any{
		{"customer_name", "tour_name", "total_price"},
		{"Nguyen Van A", "Ha Long Bay", "1.5m"},
	})
	buf, err = badNumber.WriteToBuffer()
	require.NoError(t, err)
	_, err = ParseXLSX(buf)
	assert.ErrorContains(t, err, "total_price")

	badJSON := workbookFromRows(t, [][]any{
		{"customer_name", "tour_name", "details"},
		{"Nguyen Van A", "Ha Long Bay", "{not json"},
	})
	buf, err = badJSON.WriteToBuffer()
	require.NoError(t, err)
	_, err = ParseXLSX(buf)
	assert.ErrorContains(t, err, "details")
}
