package reservation

import (
	"fmt"

	"github.com/teaseong5-stack/azit-erp-backend/internal/audit"
	"github.com/teaseong5-stack/azit-erp-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const maxBulkRecords = 5000

// POST /api/reservations/bulk — body is a bare JSON array of records.
func BulkImportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var records []ImportRecord
		if err := c.BodyParser(&records); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if len(records) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "records must not be empty")
		}
		if len(records) > maxBulkRecords {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("at most %d records per upload", maxBulkRecords))
		}

		userID, userName := currentUser(c)
		result := Import(records, userID)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "reservation",
			Action:      models.AuditActionImport,
			Description: result.Message,
		})

		return c.JSON(result)
	}
}
