package reservation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/teaseong5-stack/azit-erp-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validImportRecord() ImportRecord {
	id := uint(7)
	price := 1500000.0
	cost := 1100000.0
	return ImportRecord{
		CustomerID:      &id,
		TourName:        " Ha Long Bay Day Trip ",
		Category:        models.CategoryTour,
		ReservationDate: "2026-03-10",
		StartDate:       "2026-03-15",
		TotalPrice:      &price,
		TotalCost:       &cost,
	}
}

func TestParseImportRecordNormalizes(t *testing.T) {
	rec := validImportRecord()
	p, err := ParseImportRecord(&rec)
	require.NoError(t, err)

	assert.Equal(t, "Ha Long Bay Day Trip", rec.TourName)
	assert.Equal(t, models.StatusPending, rec.Status)
	assert.Equal(t, models.PaymentUnpaid, rec.PaymentStatus)
	assert.Equal(t, "2026-03-10", p.resDate.Format("2006-01-02"))
	require.NotNil(t, p.startDate)
	assert.Equal(t, "2026-03-15", p.startDate.Format("2006-01-02"))
	assert.Nil(t, p.endDate)
}

func TestParseImportRecordAcceptsIDKeyedRecord(t *testing.T) {
	// the exact record shape the upload pages send
	raw := `{"customer_id":1, "reservation_date":"2024-01-01", "start_date":"2024-02-01",
		"category":"TOUR", "tour_name":"Halong Bay", "total_price":1000000, "total_cost":600000}`

	var rec ImportRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	p, err := ParseImportRecord(&rec)
	require.NoError(t, err)
	require.NotNil(t, rec.CustomerID)
	assert.Equal(t, uint(1), *rec.CustomerID)
	assert.Nil(t, rec.ManagerID) // manager falls back to the submitting user
	assert.True(t, KeyComplete(rec.CustomerID, p.startDate))
}

func TestParseImportRecordAcceptsMissingCustomer(t *testing.T) {
	rec := validImportRecord()
	rec.CustomerID = nil
	rec.CustomerName = ""

	p, err := ParseImportRecord(&rec)
	require.NoError(t, err)
	assert.False(t, KeyComplete(rec.CustomerID, p.startDate))
}

func TestParseImportRecordErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ImportRecord)
	}{
		{"missing tour name", func(r *ImportRecord) { r.TourName = "   " }},
		{"bad category", func(r *ImportRecord) { r.Category = "CRUISE" }},
		{"bad status", func(r *ImportRecord) { r.Status = "MAYBE" }},
		{"bad payment status", func(r *ImportRecord) { r.PaymentStatus = "HALF" }},
		{"bad reservation date", func(r *ImportRecord) { r.ReservationDate = "10/03/2026" }},
		{"bad start date", func(r *ImportRecord) { r.StartDate = "next tuesday" }},
		{"negative price", func(r *ImportRecord) {
			v := -1.0
			r.TotalPrice = &v
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validImportRecord()
			tt.mutate(&rec)
			_, err := ParseImportRecord(&rec)
			assert.Error(t, err)
		})
	}
}

func TestKeyComplete(t *testing.T) {
	id := uint(7)
	start := day("2026-03-15")

	assert.True(t, KeyComplete(&id, &start))
	// a record missing either optional key component is always a fresh
	// insert, never matched against existing rows
	assert.False(t, KeyComplete(nil, &start))
	assert.False(t, KeyComplete(&id, nil))
	assert.False(t, KeyComplete(nil, nil))
}

func TestNaturalKeyStability(t *testing.T) {
	resDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	a := NaturalKey(7, resDate, start, models.CategoryTour, "Ha Long Bay Day Trip")
	b := NaturalKey(7, resDate, start, models.CategoryTour, "Ha Long Bay Day Trip")
	assert.Equal(t, a, b)

	// Every tuple component must change the key.
	assert.NotEqual(t, a, NaturalKey(8, resDate, start, models.CategoryTour, "Ha Long Bay Day Trip"))
	assert.NotEqual(t, a, NaturalKey(7, resDate, start.AddDate(0, 0, 1), models.CategoryTour, "Ha Long Bay Day Trip"))
	assert.NotEqual(t, a, NaturalKey(7, resDate, start, models.CategoryTicket, "Ha Long Bay Day Trip"))
	assert.NotEqual(t, a, NaturalKey(7, resDate, start, models.CategoryTour, "Sapa Trek"))

	assert.Equal(t, "7|2026-03-10|2026-03-15|TOUR|Sunrise",
		NaturalKey(7, resDate, start, models.CategoryTour, "Sunrise"))
}
