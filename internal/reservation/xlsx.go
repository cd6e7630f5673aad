package reservation

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/teaseong5-stack/azit-erp-backend/internal/audit"
	"github.com/teaseong5-stack/azit-erp-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads the first sheet of an uploaded workbook into import
// records. The first row must be a header, matched case-insensitively;
// column positions come from it, so extra or reordered columns are fine as
// long as the names match.
func ParseXLSX(r io.Reader) ([]ImportRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not read workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("workbook has no data rows")
	}

	colIndex := map[string]int{}
	for i, cell := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name != "" {
			colIndex[name] = i
		}
	}
	if _, ok := colIndex["customer_name"]; !ok {
		return nil, fmt.Errorf("header row must contain customer_name")
	}

	cell := func(row []string, name string) string {
		idx, ok := colIndex[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	records := make([]ImportRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 || cell(row, "customer_name") == "" {
			continue
		}
		rec := ImportRecord{
			CustomerName:    cell(row, "customer_name"),
			PhoneNumber:     cell(row, "phone_number"),
			Email:           cell(row, "email"),
			Manager:         cell(row, "manager"),
			TourName:        cell(row, "tour_name"),
			Category:        models.ReservationCategory(strings.ToUpper(cell(row, "category"))),
			ReservationDate: cell(row, "reservation_date"),
			StartDate:       cell(row, "start_date"),
			EndDate:         cell(row, "end_date"),
			Status:          models.ReservationStatus(strings.ToUpper(cell(row, "status"))),
			PaymentStatus:   models.PaymentStatus(strings.ToUpper(cell(row, "payment_status"))),
			Notes:           cell(row, "notes"),
			Requests:        cell(row, "requests"),
			SpecialNotes:    cell(row, "special_notes"),
		}
		for name, dst := range map[string]**float64{
			"total_price":    &rec.TotalPrice,
			"total_cost":     &rec.TotalCost,
			"payment_amount": &rec.PaymentAmount,
		} {
			raw := strings.ReplaceAll(cell(row, name), ",", "")
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("row with customer %q: %s is not a number", rec.CustomerName, name)
			}
			*dst = &v
		}
		if raw := cell(row, "details"); raw != "" {
			if !json.Valid([]byte(raw)) {
				return nil, fmt.Errorf("row with customer %q: details is not valid JSON", rec.CustomerName)
			}
			rec.Details = json.RawMessage(raw)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("workbook has no data rows")
	}
	return records, nil
}

// POST /api/reservations/bulk-file
// Accepts a multipart .xlsx upload and runs it through the same upsert
// pipeline as the JSON bulk endpoint.
func BulkFileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File upload failed: "+err.Error())
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx files are accepted")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not open uploaded file")
		}
		defer file.Close()

		records, err := ParseXLSX(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
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
			Description: fmt.Sprintf("%s (file %s)", result.Message, fileHeader.Filename),
		})

		return c.JSON(result)
	}
}
