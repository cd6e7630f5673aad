package reservation

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/teaseong5-stack/azit-erp-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestBuildCSV(t *testing.T) {
	start := day("2026-03-15")
	rows := []models.Reservation{
		{
			Customer:        &models.Customer{Name: "Nguyen Van A"},
			Manager:         &models.User{Username: "kim"},
			TourName:        "Ha Long Bay",
			Category:        models.CategoryTour,
			ReservationDate: day("2026-03-10"),
			StartDate:       &start,
			TotalPrice:      f(1500000),
			TotalCost:       f(1100000),
			PaymentAmount:   f(500000),
			Status:          models.StatusConfirmed,
			Details:         datatypes.JSON(`{"adults":2,"children":1,"infants":0}`),
		},
		{
			TourName:        "Hanoi Hotel",
			Category:        models.CategoryAccommodation,
			ReservationDate: day("2026-03-11"),
			Status:          models.StatusPending,
			Details:         datatypes.JSON(`{"nights":2,"room_count":3,"guests":4}`),
		},
	}

	payload, err := BuildCSV(rows)
	require.NoError(t, err)

	// Excel needs the BOM up front
	require.True(t, bytes.HasPrefix(payload, []byte(utf8BOM)))

	records, err := csv.NewReader(bytes.NewReader(payload[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])

	tour := records[1]
	assert.Equal(t, "Nguyen Van A", tour[0])
	assert.Equal(t, "2026-03-10", tour[1])
	assert.Equal(t, "2026-03-15", tour[2])
	assert.Equal(t, "Tour", tour[3]) // display label, not the enum code
	assert.Equal(t, "1100000", tour[5])
	assert.Equal(t, "1500000", tour[6])
	assert.Equal(t, "400000", tour[8]) // margin = price - cost
	assert.Equal(t, "2", tour[9])
	assert.Equal(t, "1", tour[10])
	assert.Equal(t, "0", tour[11])
	assert.Equal(t, "", tour[12]) // quantity empty for tours
	assert.Equal(t, "Confirmed", tour[13])
	assert.Equal(t, "kim", tour[14])

	stay := records[2]
	assert.Equal(t, "", stay[0]) // no customer linked
	assert.Equal(t, "", stay[2]) // no start date
	assert.Equal(t, "", stay[5]) // NULL cost exports empty, not 0
	assert.Equal(t, "0", stay[8])
	assert.Equal(t, "", stay[9]) // party columns empty for stays
	assert.Equal(t, "6", stay[12])
	assert.Equal(t, "Pending", stay[13])
	assert.Equal(t, "", stay[14])
}

func TestBuildCSVEmpty(t *testing.T) {
	payload, err := BuildCSV(nil)
	require.NoError(t, err)

	text := strings.TrimPrefix(string(payload), utf8BOM)
	assert.Equal(t, strings.Join(csvHeader, ",")+"\n", text)
}
