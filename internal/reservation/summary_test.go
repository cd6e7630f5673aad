package reservation

import (
	"testing"
	"time"

	"github.com/teaseong5-stack/azit-erp-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func f(v float64) *float64 { return &v }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	d := day(s)
	return &d
}

func summaryFixture() []models.Reservation {
	kim := &models.User{ID: 1, Username: "kim"}
	lee := &models.User{ID: 2, Username: "lee"}
	return []models.Reservation{
		{TourName: "Ha Long Bay", Category: models.CategoryTour,
			ReservationDate: day("2026-01-05"), StartDate: dayPtr("2026-01-10"), Manager: kim,
			TotalPrice: f(1000), TotalCost: f(600), PaymentAmount: f(1000)},
		{TourName: "Ha Long Bay", Category: models.CategoryTour,
			ReservationDate: day("2026-01-20"), StartDate: dayPtr("2026-01-25"), Manager: lee,
			TotalPrice: f(2000), TotalCost: f(1500)},
		{TourName: "Hanoi Hotel", Category: models.CategoryAccommodation,
			ReservationDate: day("2026-01-28"), StartDate: dayPtr("2026-02-05"), Manager: kim,
			TotalPrice: f(3000), TotalCost: nil, PaymentAmount: f(500),
			Details: datatypes.JSON(`{"room_type":"Twin","nights":2,"room_count":3,"guests":4}`)},
		{TourName: "Links Course", Category: models.CategoryGolf,
			ReservationDate: day("2026-02-10"), // no start date booked yet
			TotalPrice: nil, TotalCost: f(200),
			Details: datatypes.JSON(`{"players":4}`)},
	}
}

func TestBuildOverallSummary(t *testing.T) {
	out := BuildOverallSummary(summaryFixture())

	assert.Equal(t, 6000.0, out.Totals.TotalSales)
	assert.Equal(t, 2300.0, out.Totals.TotalCost)
	// margin must always equal sales minus cost with NULLs read as zero
	assert.Equal(t, out.Totals.TotalSales-out.Totals.TotalCost, out.Totals.TotalMargin)

	require.Len(t, out.ManagerCounts, 3)
	assert.Equal(t, ManagerCount{Manager: "kim", Count: 2}, out.ManagerCounts[0])
	// single-count ties break by name, uppercase Unassigned sorts first
	assert.Equal(t, "Unassigned", out.ManagerCounts[1].Manager)
	assert.Equal(t, "lee", out.ManagerCounts[2].Manager)
}

func TestBuildCategorySummary(t *testing.T) {
	out := BuildCategorySummary(summaryFixture())

	require.Len(t, out, 3)
	// ordered by category key
	assert.Equal(t, models.CategoryAccommodation, out[0].Category)
	assert.Equal(t, models.CategoryGolf, out[1].Category)
	assert.Equal(t, models.CategoryTour, out[2].Category)

	assert.Equal(t, 3000.0, out[0].Sales)
	assert.Equal(t, 3000.0, out[0].Margin)
	assert.Equal(t, -200.0, out[1].Margin)
	assert.Equal(t, 2, out[2].Count)
	for _, row := range out {
		assert.Equal(t, row.Sales-row.Cost, row.Margin)
	}
}

func TestBuildManagerSummary(t *testing.T) {
	out := BuildManagerSummary(summaryFixture())

	require.Len(t, out, 3)
	// sales descending
	assert.Equal(t, "kim", out[0].Manager)
	assert.Equal(t, 4000.0, out[0].Sales)
	assert.Equal(t, "lee", out[1].Manager)
	assert.Equal(t, "Unassigned", out[2].Manager)
	assert.Equal(t, 0.0, out[2].Sales)
}

func TestBuildMonthSummary(t *testing.T) {
	out := BuildMonthSummary(summaryFixture())

	// months key on the start date; the golf row has none and is skipped
	require.Len(t, out, 2)
	assert.Equal(t, "2026-01-01", out[0].Month)
	assert.Equal(t, 3000.0, out[0].Sales)
	assert.Equal(t, 1000.0, out[0].PaidAmount)
	assert.Equal(t, 2, out[0].Count)
	assert.Equal(t, "2026-02-01", out[1].Month)
	assert.Equal(t, 3000.0, out[1].Sales)
	assert.Equal(t, 3000.0, out[1].Margin)
	assert.Equal(t, 500.0, out[1].PaidAmount)
	assert.Equal(t, 1, out[1].Count)
}

func TestBuildProductSummary(t *testing.T) {
	tours := BuildProductSummary(models.CategoryTour, summaryFixture())
	require.Len(t, tours, 1)
	assert.Equal(t, "Ha Long Bay", tours[0].Product)
	assert.Equal(t, 3000.0, tours[0].Sales)
	assert.Equal(t, 2, tours[0].Count)
	assert.Nil(t, tours[0].RoomNights)
	assert.Nil(t, tours[0].Players)

	stays := BuildProductSummary(models.CategoryAccommodation, summaryFixture())
	require.Len(t, stays, 1)
	require.NotNil(t, stays[0].RoomNights)
	assert.Equal(t, 6, *stays[0].RoomNights)

	golf := BuildProductSummary(models.CategoryGolf, summaryFixture())
	require.Len(t, golf, 1)
	require.NotNil(t, golf[0].Players)
	assert.Equal(t, 4, *golf[0].Players)
}
