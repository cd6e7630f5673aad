package reservation

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/teaseong5-stack/azit-erp-backend/internal/database"
	"github.com/teaseong5-stack/azit-erp-backend/internal/models"

	"gorm.io/gorm"
)

// ImportRecord is one row of a bulk upload. The JSON path references
// customers and managers by id; spreadsheet uploads carry names instead
// (customer_name, manager username), which are resolved during import.
type ImportRecord struct {
	CustomerID      *uint                      `json:"customer_id"`
	ManagerID       *uint                      `json:"manager_id"`
	CustomerName    string                     `json:"customer_name"`
	PhoneNumber     string                     `json:"phone_number"`
	Email           string                     `json:"email"`
	Manager         string                     `json:"manager"`
	TourName        string                     `json:"tour_name"`
	Category        models.ReservationCategory `json:"category"`
	ReservationDate string                     `json:"reservation_date"`
	StartDate       string                     `json:"start_date"`
	EndDate         string                     `json:"end_date"`
	TotalPrice      *float64                   `json:"total_price"`
	TotalCost       *float64                   `json:"total_cost"`
	PaymentAmount   *float64                   `json:"payment_amount"`
	Status          models.ReservationStatus   `json:"status"`
	PaymentStatus   models.PaymentStatus       `json:"payment_status"`
	Notes           string                     `json:"notes"`
	Requests        string                     `json:"requests"`
	SpecialNotes    string                     `json:"special_notes"`
	Details         json.RawMessage            `json:"details"`
}

type ImportError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Created int           `json:"created"`
	Updated int           `json:"updated"`
	Failed  int           `json:"failed"`
	Errors  []ImportError `json:"errors"`
	Message string        `json:"message"`
}

// parsedRecord is an ImportRecord after validation, with dates and payload
// resolved but related rows not yet looked up.
type parsedRecord struct {
	rec       *ImportRecord
	resDate   time.Time
	startDate *time.Time
	endDate   *time.Time
	details   []byte
}

// ParseImportRecord validates a record and normalizes its fields in place.
// It performs no database work so it can be exercised on its own. A record
// may omit the customer entirely; such rows can never match an existing
// reservation and are inserted as-is.
func ParseImportRecord(rec *ImportRecord) (*parsedRecord, error) {
	rec.CustomerName = strings.TrimSpace(rec.CustomerName)
	rec.TourName = strings.TrimSpace(rec.TourName)
	rec.Manager = strings.TrimSpace(rec.Manager)

	if rec.TourName == "" {
		return nil, fmt.Errorf("tour_name is required")
	}
	if !rec.Category.Valid() {
		return nil, fmt.Errorf("invalid category %q", rec.Category)
	}
	if rec.Status == "" {
		rec.Status = models.StatusPending
	} else if !rec.Status.Valid() {
		return nil, fmt.Errorf("invalid status %q", rec.Status)
	}
	if rec.PaymentStatus == "" {
		rec.PaymentStatus = models.PaymentUnpaid
	} else if !rec.PaymentStatus.Valid() {
		return nil, fmt.Errorf("invalid payment_status %q", rec.PaymentStatus)
	}

	p := parsedRecord{rec: rec}
	resDate, err := parseDate(rec.ReservationDate)
	if err != nil {
		return nil, fmt.Errorf("reservation_date must be YYYY-MM-DD")
	}
	p.resDate = resDate
	if strings.TrimSpace(rec.StartDate) != "" {
		d, err := parseDate(rec.StartDate)
		if err != nil {
			return nil, fmt.Errorf("start_date must be YYYY-MM-DD")
		}
		p.startDate = &d
	}
	if strings.TrimSpace(rec.EndDate) != "" {
		d, err := parseDate(rec.EndDate)
		if err != nil {
			return nil, fmt.Errorf("end_date must be YYYY-MM-DD")
		}
		p.endDate = &d
	}
	for field, v := range map[string]*float64{
		"total_price":    rec.TotalPrice,
		"total_cost":     rec.TotalCost,
		"payment_amount": rec.PaymentAmount,
	} {
		if v != nil && *v < 0 {
			return nil, fmt.Errorf("%s must not be negative", field)
		}
	}

	details, err := ValidateDetails(rec.Category, rec.Details)
	if err != nil {
		return nil, err
	}
	p.details = details
	return &p, nil
}

// KeyComplete reports whether the dedup tuple is fully present. Tour name,
// category and reservation date are already guaranteed by validation, so
// only the two optional components can be missing. An incomplete key means
// the record is always a fresh insert, never matched against existing rows.
func KeyComplete(customerID *uint, startDate *time.Time) bool {
	return customerID != nil && startDate != nil
}

// NaturalKey renders the dedup tuple as a stable string. It feeds the
// advisory-lock hash, so two records with the same tuple must always render
// identically.
func NaturalKey(customerID uint, resDate time.Time, startDate time.Time, category models.ReservationCategory, tourName string) string {
	return fmt.Sprintf("%d|%s|%s|%s|%s",
		customerID, resDate.Format(dateLayout), startDate.Format(dateLayout), category, tourName)
}

// Import runs the bulk upsert on behalf of submitterID. Each record gets its
// own transaction so one bad row never rolls back the rest. Inside a
// record's transaction we take a pg_advisory_xact_lock on the natural key
// before the find-or-insert, which makes concurrent imports of the same
// tuple serialize instead of racing into duplicates (the tuple has no
// unique constraint).
func Import(records []ImportRecord, submitterID uint) ImportResult {
	result := ImportResult{Errors: []ImportError{}}

	for i := range records {
		updated, err := importOne(&records[i], submitterID)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ImportError{Index: i, Reason: err.Error()})
			continue
		}
		if updated {
			result.Updated++
		} else {
			result.Created++
		}
	}

	result.Message = fmt.Sprintf("%d created, %d updated, %d failed",
		result.Created, result.Updated, result.Failed)
	return result
}

func importOne(rec *ImportRecord, submitterID uint) (updated bool, err error) {
	p, err := ParseImportRecord(rec)
	if err != nil {
		return false, err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		customerID, err := resolveCustomer(tx, rec)
		if err != nil {
			return err
		}
		managerID, err := resolveManager(tx, rec, submitterID)
		if err != nil {
			return err
		}

		insert := func() error {
			m := models.Reservation{
				CustomerID:      customerID,
				ManagerID:       &managerID,
				TourName:        rec.TourName,
				Category:        rec.Category,
				ReservationDate: p.resDate,
				StartDate:       p.startDate,
				EndDate:         p.endDate,
				TotalPrice:      rec.TotalPrice,
				TotalCost:       rec.TotalCost,
				PaymentAmount:   rec.PaymentAmount,
				Status:          rec.Status,
				PaymentStatus:   rec.PaymentStatus,
				Notes:           rec.Notes,
				Requests:        rec.Requests,
				SpecialNotes:    rec.SpecialNotes,
				Details:         p.details,
			}
			return tx.Create(&m).Error
		}

		if !KeyComplete(customerID, p.startDate) {
			return insert()
		}

		key := NaturalKey(*customerID, p.resDate, *p.startDate, rec.Category, rec.TourName)
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
			return err
		}

		// Duplicate tuples can exist from the manual create path; the import
		// always collapses onto the oldest row.
		var existing models.Reservation
		err = tx.Where("customer_id = ? AND reservation_date = ? AND start_date = ? AND category = ? AND tour_name = ?",
			*customerID, p.resDate.Format(dateLayout), p.startDate.Format(dateLayout), rec.Category, rec.TourName).
			Order("id ASC").First(&existing).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			return insert()
		case err != nil:
			return err
		}

		existing.ManagerID = &managerID
		existing.EndDate = p.endDate
		existing.TotalPrice = rec.TotalPrice
		existing.TotalCost = rec.TotalCost
		existing.PaymentAmount = rec.PaymentAmount
		existing.Status = rec.Status
		existing.PaymentStatus = rec.PaymentStatus
		existing.Notes = rec.Notes
		existing.Requests = rec.Requests
		existing.SpecialNotes = rec.SpecialNotes
		existing.Details = p.details
		updated = true
		return tx.Save(&existing).Error
	})
	return updated, err
}

// resolveCustomer returns the customer id for the record, or nil when it
// names none. An explicit id must exist; a name (spreadsheet path) is
// matched by exact name, preferring a row that also matches the uploaded
// phone number, and created when absent.
func resolveCustomer(tx *gorm.DB, rec *ImportRecord) (*uint, error) {
	if rec.CustomerID != nil {
		var n int64
		if err := tx.Model(&models.Customer{}).Where("id = ?", *rec.CustomerID).Count(&n).Error; err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fmt.Errorf("customer %d does not exist", *rec.CustomerID)
		}
		return rec.CustomerID, nil
	}
	if rec.CustomerName == "" {
		return nil, nil
	}

	var customer models.Customer
	if rec.PhoneNumber != "" {
		err := tx.Where("name = ? AND phone_number = ?", rec.CustomerName, rec.PhoneNumber).
			Order("id ASC").First(&customer).Error
		if err == nil {
			return &customer.ID, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}
	err := tx.Where("name = ?", rec.CustomerName).Order("id ASC").First(&customer).Error
	if err == nil {
		return &customer.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	customer = models.Customer{
		Name:        rec.CustomerName,
		PhoneNumber: rec.PhoneNumber,
		Email:       rec.Email,
	}
	if err := tx.Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer.ID, nil
}

// resolveManager picks an explicit manager id when it is present and valid,
// then a manager username (spreadsheet path), and otherwise falls back to
// the user submitting the batch.
func resolveManager(tx *gorm.DB, rec *ImportRecord, submitterID uint) (uint, error) {
	if rec.ManagerID != nil {
		var n int64
		if err := tx.Model(&models.User{}).Where("id = ?", *rec.ManagerID).Count(&n).Error; err != nil {
			return 0, err
		}
		if n > 0 {
			return *rec.ManagerID, nil
		}
	}
	if rec.Manager != "" {
		var manager models.User
		err := tx.Where("username = ?", rec.Manager).First(&manager).Error
		if err == nil {
			return manager.ID, nil
		}
		if err != gorm.ErrRecordNotFound {
			return 0, err
		}
		return 0, fmt.Errorf("manager %q does not exist", rec.Manager)
	}
	return submitterID, nil
}
