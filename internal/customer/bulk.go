package customer

import (
	"fmt"
	"strings"

	"github.com/teaseong5-stack/azit-erp-backend/internal/database"
	"github.com/teaseong5-stack/azit-erp-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type BulkRecord struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

type BulkError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type BulkResponse struct {
	Created int         `json:"created"`
	Failed  int         `json:"failed"`
	Errors  []BulkError `json:"errors"`
	Message string      `json:"message"`
}

// ValidateBulkRecord trims the record in place and returns the reason it
// cannot be imported, or "" when it is fine.
func ValidateBulkRecord(rec *BulkRecord) string {
	rec.Name = strings.TrimSpace(rec.Name)
	rec.PhoneNumber = strings.TrimSpace(rec.PhoneNumber)
	rec.Email = strings.TrimSpace(rec.Email)

	if rec.Name == "" {
		return "name is required"
	}
	if rec.Email != "" && !strings.Contains(rec.Email, "@") {
		return "email is not valid"
	}
	return ""
}

// POST /api/customers/bulk
// One bad record never aborts the batch; it is reported and skipped.
func BulkImportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var records []BulkRecord
		if err := c.BodyParser(&records); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Request body must be a JSON array of customers")
		}
		if len(records) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No records to import")
		}

		resp := BulkResponse{Errors: []BulkError{}}
		for i := range records {
			if reason := ValidateBulkRecord(&records[i]); reason != "" {
				resp.Failed++
				resp.Errors = append(resp.Errors, BulkError{Index: i, Reason: reason})
				continue
			}

			customer := models.Customer{
				Name:        records[i].Name,
				PhoneNumber: records[i].PhoneNumber,
				Email:       records[i].Email,
			}
			if err := database.DB.Create(&customer).Error; err != nil {
				resp.Failed++
				resp.Errors = append(resp.Errors, BulkError{Index: i, Reason: "database error"})
				continue
			}
			resp.Created++
		}

		resp.Message = fmt.Sprintf("%d customers created, %d failed", resp.Created, resp.Failed)
		return c.JSON(resp)
	}
}
