package reservation

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"time"

	"github.com/teaseong5-stack/azit-erp-backend/internal/database"
	"github.com/teaseong5-stack/azit-erp-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// utf8BOM prefixes the export so Excel decodes Vietnamese names correctly.
const utf8BOM = "\ufeff"

var csvHeader = []string{
	"Customer", "ReservationDate", "StartDate", "Category", "Product",
	"Cost", "Price", "PaymentAmount", "Margin",
	"Adults", "Children", "Infants", "Quantity", "Status", "Manager",
}

func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// csvRow renders one reservation. Quantity is room-nights for accommodation
// and player count for golf; other categories leave it empty. The party
// columns are only meaningful for the party-detail categories.
func csvRow(r *models.Reservation) []string {
	customer := ""
	if r.Customer != nil {
		customer = r.Customer.Name
	}
	manager := ""
	if r.Manager != nil {
		manager = r.Manager.Username
	}
	start := ""
	if r.StartDate != nil {
		start = r.StartDate.Format(dateLayout)
	}

	adults, children, infants := "", "", ""
	var party PartyDetails
	if len(r.Details) > 0 && json.Unmarshal(r.Details, &party) == nil {
		switch r.Category {
		case models.CategoryTour, models.CategoryRentalCar, models.CategoryTicket, models.CategoryOther:
			adults = strconv.Itoa(party.Adults)
			children = strconv.Itoa(party.Children)
			infants = strconv.Itoa(party.Infants)
		}
	}

	quantity := ""
	switch r.Category {
	case models.CategoryAccommodation:
		quantity = strconv.Itoa(RoomNights(r.Details))
	case models.CategoryGolf:
		quantity = strconv.Itoa(Players(r.Details))
	}

	margin := amount(r.TotalPrice) - amount(r.TotalCost)

	return []string{
		customer,
		r.ReservationDate.Format(dateLayout),
		start,
		r.Category.Label(),
		r.TourName,
		formatAmount(r.TotalCost),
		formatAmount(r.TotalPrice),
		formatAmount(r.PaymentAmount),
		strconv.FormatFloat(margin, 'f', -1, 64),
		adults,
		children,
		infants,
		quantity,
		r.Status.Label(),
		manager,
	}
}

// BuildCSV writes the export for the given rows, BOM first.
func BuildCSV(rows []models.Reservation) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for i := range rows {
		if err := w.Write(csvRow(&rows[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GET /api/reservations/export/csv
// Takes the same filters as the list endpoint. Export is a ledger dump, so
// no status restriction is applied beyond what the client asks for.
func ExportCSVHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := applyFilters(database.DB.Model(&models.Reservation{}), filtersFromQuery(c))

		var rows []models.Reservation
		if err := dbq.Preload("Customer").Preload("Manager").
			Order("reservations.reservation_date ASC, reservations.id ASC").
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load reservations")
		}

		payload, err := BuildCSV(rows)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build export")
		}

		filename := "reservations_" + time.Now().Format("20060102") + ".csv"
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(payload)
	}
}
