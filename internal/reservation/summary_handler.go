package reservation

import (
	"github.com/teaseong5-stack/azit-erp-backend/internal/database"
	"github.com/teaseong5-stack/azit-erp-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/reservations/summary?group_by=category|manager|month|product
// Takes the same filters as the list endpoint, restricted to active revenue
// statuses so pending and canceled bookings never inflate the numbers.
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := applyFilters(database.DB.Model(&models.Reservation{}), filtersFromQuery(c)).
			Where("reservations.status IN ?", models.ActiveStatuses)

		groupBy := c.Query("group_by")

		var category models.ReservationCategory
		if groupBy == "product" {
			category = models.ReservationCategory(c.Query("category"))
			if !category.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "group_by=product requires a valid category")
			}
		}

		var rows []models.Reservation
		if err := dbq.Preload("Manager").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load reservations")
		}

		switch groupBy {
		case "":
			return c.JSON(BuildOverallSummary(rows))
		case "category":
			return c.JSON(BuildCategorySummary(rows))
		case "manager":
			return c.JSON(BuildManagerSummary(rows))
		case "month":
			return c.JSON(BuildMonthSummary(rows))
		case "product":
			return c.JSON(BuildProductSummary(category, rows))
		default:
			return fiber.NewError(fiber.StatusBadRequest,
				"group_by must be one of category|manager|month|product")
		}
	}
}
