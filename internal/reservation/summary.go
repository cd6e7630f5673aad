package reservation

import (
	"sort"
	"time"

	"github.com/teaseong5-stack/azit-erp-backend/internal/models"
)

// Summary roll-ups. All amounts treat NULL price/cost/payment columns as
// zero, so sales-cost always equals the margin reported per group.

type Totals struct {
	TotalSales  float64 `json:"total_sales"`
	TotalCost   float64 `json:"total_cost"`
	TotalMargin float64 `json:"total_margin"`
}

type ManagerCount struct {
	Manager string `json:"manager"`
	Count   int    `json:"count"`
}

type OverallSummary struct {
	Totals        Totals         `json:"totals"`
	ManagerCounts []ManagerCount `json:"manager_counts"`
}

type CategoryRow struct {
	Category models.ReservationCategory `json:"category"`
	Sales    float64                    `json:"sales"`
	Cost     float64                    `json:"cost"`
	Margin   float64                    `json:"margin"`
	Count    int                        `json:"count"`
}

type ManagerRow struct {
	Manager string  `json:"manager"`
	Sales   float64 `json:"sales"`
	Cost    float64 `json:"cost"`
	Margin  float64 `json:"margin"`
	Count   int     `json:"count"`
}

type MonthRow struct {
	Month      string  `json:"month"` // first day of month, YYYY-MM-01
	Sales      float64 `json:"sales"`
	Cost       float64 `json:"cost"`
	Margin     float64 `json:"margin"`
	PaidAmount float64 `json:"paid_amount"`
	Count      int     `json:"count"`
}

type ProductRow struct {
	Product    string  `json:"product"`
	Sales      float64 `json:"sales"`
	Count      int     `json:"count"`
	RoomNights *int    `json:"room_nights,omitempty"` // ACCOMMODATION only
	Players    *int    `json:"players,omitempty"`     // GOLF only
}

const unassignedManager = "Unassigned"

func managerName(r *models.Reservation) string {
	if r.Manager != nil {
		return r.Manager.Username
	}
	return unassignedManager
}

// BuildOverallSummary sums the whole slice and counts reservations per
// manager. Manager counts come back ordered by count descending, then name.
func BuildOverallSummary(rows []models.Reservation) OverallSummary {
	out := OverallSummary{ManagerCounts: []ManagerCount{}}
	counts := map[string]int{}
	for i := range rows {
		r := &rows[i]
		out.Totals.TotalSales += amount(r.TotalPrice)
		out.Totals.TotalCost += amount(r.TotalCost)
		counts[managerName(r)]++
	}
	out.Totals.TotalMargin = out.Totals.TotalSales - out.Totals.TotalCost

	for manager, count := range counts {
		out.ManagerCounts = append(out.ManagerCounts, ManagerCount{Manager: manager, Count: count})
	}
	sort.Slice(out.ManagerCounts, func(i, j int) bool {
		a, b := out.ManagerCounts[i], out.ManagerCounts[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Manager < b.Manager
	})
	return out
}

// BuildCategorySummary groups by category, ordered by category key.
func BuildCategorySummary(rows []models.Reservation) []CategoryRow {
	byCat := map[models.ReservationCategory]*CategoryRow{}
	for i := range rows {
		r := &rows[i]
		row, ok := byCat[r.Category]
		if !ok {
			row = &CategoryRow{Category: r.Category}
			byCat[r.Category] = row
		}
		row.Sales += amount(r.TotalPrice)
		row.Cost += amount(r.TotalCost)
		row.Count++
	}

	out := make([]CategoryRow, 0, len(byCat))
	for _, row := range byCat {
		row.Margin = row.Sales - row.Cost
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// BuildManagerSummary groups by manager username, ordered by sales
// descending then name so ties stay stable.
func BuildManagerSummary(rows []models.Reservation) []ManagerRow {
	byManager := map[string]*ManagerRow{}
	for i := range rows {
		r := &rows[i]
		name := managerName(r)
		row, ok := byManager[name]
		if !ok {
			row = &ManagerRow{Manager: name}
			byManager[name] = row
		}
		row.Sales += amount(r.TotalPrice)
		row.Cost += amount(r.TotalCost)
		row.Count++
	}

	out := make([]ManagerRow, 0, len(byManager))
	for _, row := range byManager {
		row.Margin = row.Sales - row.Cost
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sales != out[j].Sales {
			return out[i].Sales > out[j].Sales
		}
		return out[i].Manager < out[j].Manager
	})
	return out
}

// BuildMonthSummary groups by the calendar month of the start date,
// ascending, matching the year/month list filter so a filtered query never
// emits rows labelled with other months. Rows without a start date belong
// to no travel month and are skipped; months with no reservations are
// simply absent.
func BuildMonthSummary(rows []models.Reservation) []MonthRow {
	byMonth := map[string]*MonthRow{}
	for i := range rows {
		r := &rows[i]
		if r.StartDate == nil {
			continue
		}
		key := time.Date(r.StartDate.Year(), r.StartDate.Month(), 1, 0, 0, 0, 0, time.UTC).
			Format(dateLayout)
		row, ok := byMonth[key]
		if !ok {
			row = &MonthRow{Month: key}
			byMonth[key] = row
		}
		row.Sales += amount(r.TotalPrice)
		row.Cost += amount(r.TotalCost)
		row.PaidAmount += amount(r.PaymentAmount)
		row.Count++
	}

	out := make([]MonthRow, 0, len(byMonth))
	for _, row := range byMonth {
		row.Margin = row.Sales - row.Cost
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// BuildProductSummary groups rows of a single category by tour name, ordered
// by sales descending. Accommodation rows also report room-nights and golf
// rows player counts, pulled from the details payload.
func BuildProductSummary(category models.ReservationCategory, rows []models.Reservation) []ProductRow {
	byProduct := map[string]*ProductRow{}
	for i := range rows {
		r := &rows[i]
		if r.Category != category {
			continue
		}
		row, ok := byProduct[r.TourName]
		if !ok {
			row = &ProductRow{Product: r.TourName}
			byProduct[r.TourName] = row
		}
		row.Sales += amount(r.TotalPrice)
		row.Count++

		switch category {
		case models.CategoryAccommodation:
			n := RoomNights(r.Details)
			if row.RoomNights == nil {
				row.RoomNights = new(int)
			}
			*row.RoomNights += n
		case models.CategoryGolf:
			n := Players(r.Details)
			if row.Players == nil {
				row.Players = new(int)
			}
			*row.Players += n
		}
	}

	out := make([]ProductRow, 0, len(byProduct))
	for _, row := range byProduct {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sales != out[j].Sales {
			return out[i].Sales > out[j].Sales
		}
		return out[i].Product < out[j].Product
	})
	return out
}
