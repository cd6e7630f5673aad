package dashboard

import (
	"time"

	"github.com/teaseong5-stack/azit-erp-backend/internal/database"
	"github.com/teaseong5-stack/azit-erp-backend/internal/models"
	"github.com/teaseong5-stack/azit-erp-backend/internal/reservation"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

type KPIBlock struct {
	MonthSales        float64 `json:"month_sales"`
	MonthMargin       float64 `json:"month_margin"`
	MonthCount        int     `json:"month_count"`
	TodayReservations int64   `json:"today_reservations"`
	TodayDepartures   int64   `json:"today_departures"`
}

type SummaryResponse struct {
	KPI           KPIBlock                          `json:"kpi"`
	ActionItems   []reservation.ReservationResponse `json:"action_items"`
	CategoryChart []reservation.CategoryRow         `json:"category_chart"`
	MonthlyTrend  []reservation.MonthRow            `json:"monthly_trend"`
	ManagerChart  []reservation.ManagerRow          `json:"manager_chart"`
}

type BoardBucket struct {
	TotalSales float64                           `json:"total_sales"`
	TotalCount int                               `json:"total_count"`
	Schedules  []reservation.ReservationResponse `json:"schedules"`
}

type BoardResponse struct {
	Today BoardBucket `json:"today"`
	Week  BoardBucket `json:"week"`
	Month BoardBucket `json:"month"`
}

func monthBounds(now time.Time) (time.Time, time.Time) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, 0)
}

// weekBounds returns the Monday of now's week and the Monday after.
func weekBounds(now time.Time) (time.Time, time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 7)
}

func activeBetween(column string, from, to time.Time) ([]models.Reservation, error) {
	var rows []models.Reservation
	err := database.DB.Model(&models.Reservation{}).
		Where("status IN ?", models.ActiveStatuses).
		Where(column+" >= ? AND "+column+" < ?", from.Format(dateLayout), to.Format(dateLayout)).
		Preload("Customer").Preload("Manager").
		Order(column + " ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

// GET /api/dashboard/summary
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now().UTC()
		today := now.Format(dateLayout)
		monthStart, monthEnd := monthBounds(now)

		// current-month active reservations drive the KPIs and charts
		monthRows, err := activeBetween("reservation_date", monthStart, monthEnd)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load reservations")
		}
		totals := reservation.BuildOverallSummary(monthRows).Totals

		kpi := KPIBlock{
			MonthSales:  totals.TotalSales,
			MonthMargin: totals.TotalMargin,
			MonthCount:  len(monthRows),
		}
		if err := database.DB.Model(&models.Reservation{}).
			Where("reservation_date = ?", today).
			Count(&kpi.TodayReservations).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count reservations")
		}
		if err := database.DB.Model(&models.Reservation{}).
			Where("start_date = ?", today).
			Count(&kpi.TodayDepartures).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count departures")
		}

		// pending bookings with the nearest start dates need attention first
		var pending []models.Reservation
		if err := database.DB.Model(&models.Reservation{}).
			Where("status = ?", models.StatusPending).
			Preload("Customer").Preload("Manager").
			Order("start_date ASC NULLS LAST, id ASC").
			Limit(10).
			Find(&pending).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load pending reservations")
		}
		actionItems := make([]reservation.ReservationResponse, 0, len(pending))
		for i := range pending {
			actionItems = append(actionItems, reservation.Response(&pending[i]))
		}

		// trend months key on start date, so bound the window on it too
		trendStart := monthStart.AddDate(0, -5, 0)
		trendRows, err := activeBetween("start_date", trendStart, monthEnd)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load reservations")
		}

		return c.JSON(SummaryResponse{
			KPI:           kpi,
			ActionItems:   actionItems,
			CategoryChart: reservation.BuildCategorySummary(monthRows),
			MonthlyTrend:  reservation.BuildMonthSummary(trendRows),
			ManagerChart:  reservation.BuildManagerSummary(monthRows),
		})
	}
}

func bucket(rows []models.Reservation) BoardBucket {
	b := BoardBucket{Schedules: make([]reservation.ReservationResponse, 0, len(rows))}
	for i := range rows {
		r := &rows[i]
		if r.TotalPrice != nil {
			b.TotalSales += *r.TotalPrice
		}
		b.TotalCount++
		b.Schedules = append(b.Schedules, reservation.Response(r))
	}
	return b
}

// GET /api/dashboard/booking-board
// Upcoming schedules keyed on start date, confirmed-and-beyond only.
func BookingBoardHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now().UTC()
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		weekStart, weekEnd := weekBounds(now)
		monthStart, monthEnd := monthBounds(now)

		todayRows, err := activeBetween("start_date", day, day.AddDate(0, 0, 1))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load schedules")
		}
		weekRows, err := activeBetween("start_date", weekStart, weekEnd)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load schedules")
		}
		monthRows, err := activeBetween("start_date", monthStart, monthEnd)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load schedules")
		}

		return c.JSON(BoardResponse{
			Today: bucket(todayRows),
			Week:  bucket(weekRows),
			Month: bucket(monthRows),
		})
	}
}
