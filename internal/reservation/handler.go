package reservation

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/teaseong5-stack/azit-erp-backend/internal/audit"
	"github.com/teaseong5-stack/azit-erp-backend/internal/auth"
	"github.com/teaseong5-stack/azit-erp-backend/internal/database"
	"github.com/teaseong5-stack/azit-erp-backend/internal/models"
	"github.com/teaseong5-stack/azit-erp-backend/internal/pagination"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type ReservationRequest struct {
	CustomerID      *uint                      `json:"customer_id"`
	ManagerID       *uint                      `json:"manager_id"`
	TourName        string                     `json:"tour_name"`
	Category        models.ReservationCategory `json:"category"`
	ReservationDate string                     `json:"reservation_date"`
	StartDate       *string                    `json:"start_date"`
	EndDate         *string                    `json:"end_date"`
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

type CustomerBrief struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

type ManagerBrief struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type ReservationResponse struct {
	ID              uint                       `json:"id"`
	Customer        *CustomerBrief             `json:"customer"`
	Manager         *ManagerBrief              `json:"manager"`
	TourName        string                     `json:"tour_name"`
	Category        models.ReservationCategory `json:"category"`
	CategoryLabel   string                     `json:"category_label"`
	ReservationDate string                     `json:"reservation_date"`
	StartDate       *string                    `json:"start_date"`
	EndDate         *string                    `json:"end_date"`
	TotalPrice      *float64                   `json:"total_price"`
	TotalCost       *float64                   `json:"total_cost"`
	PaymentAmount   *float64                   `json:"payment_amount"`
	Margin          float64                    `json:"margin"`
	Status          models.ReservationStatus   `json:"status"`
	StatusLabel     string                     `json:"status_label"`
	PaymentStatus   models.PaymentStatus       `json:"payment_status"`
	Notes           string                     `json:"notes"`
	Requests        string                     `json:"requests"`
	SpecialNotes    string                     `json:"special_notes"`
	Details         json.RawMessage            `json:"details"`
	CreatedAt       string                     `json:"created_at"`
	UpdatedAt       string                     `json:"updated_at"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

// amount dereferences a nullable currency column, treating NULL as zero the
// same way the report queries COALESCE it.
func amount(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func Response(m *models.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:              m.ID,
		TourName:        m.TourName,
		Category:        m.Category,
		CategoryLabel:   m.Category.Label(),
		ReservationDate: m.ReservationDate.Format(dateLayout),
		StartDate:       formatDate(m.StartDate),
		EndDate:         formatDate(m.EndDate),
		TotalPrice:      m.TotalPrice,
		TotalCost:       m.TotalCost,
		PaymentAmount:   m.PaymentAmount,
		Margin:          amount(m.TotalPrice) - amount(m.TotalCost),
		Status:          m.Status,
		StatusLabel:     m.Status.Label(),
		PaymentStatus:   m.PaymentStatus,
		Notes:           m.Notes,
		Requests:        m.Requests,
		SpecialNotes:    m.SpecialNotes,
		Details:         json.RawMessage(m.Details),
		CreatedAt:       m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       m.UpdatedAt.Format(time.RFC3339),
	}
	if m.Customer != nil {
		resp.Customer = &CustomerBrief{
			ID:          m.Customer.ID,
			Name:        m.Customer.Name,
			PhoneNumber: m.Customer.PhoneNumber,
			Email:       m.Customer.Email,
		}
	}
	if m.Manager != nil {
		resp.Manager = &ManagerBrief{ID: m.Manager.ID, Username: m.Manager.Username}
	}
	return resp
}

// apply copies a validated request onto the model. Related rows must already
// be resolved by the caller.
func apply(m *models.Reservation, body *ReservationRequest) error {
	resDate, err := parseDate(body.ReservationDate)
	if err != nil {
		return fmt.Errorf("reservation_date must be YYYY-MM-DD")
	}
	m.ReservationDate = resDate

	m.StartDate = nil
	if body.StartDate != nil && strings.TrimSpace(*body.StartDate) != "" {
		d, err := parseDate(*body.StartDate)
		if err != nil {
			return fmt.Errorf("start_date must be YYYY-MM-DD")
		}
		m.StartDate = &d
	}
	m.EndDate = nil
	if body.EndDate != nil && strings.TrimSpace(*body.EndDate) != "" {
		d, err := parseDate(*body.EndDate)
		if err != nil {
			return fmt.Errorf("end_date must be YYYY-MM-DD")
		}
		m.EndDate = &d
	}
	if m.StartDate != nil && m.EndDate != nil && m.EndDate.Before(*m.StartDate) {
		return fmt.Errorf("end_date must not be before start_date")
	}

	details, err := ValidateDetails(body.Category, body.Details)
	if err != nil {
		return err
	}

	m.CustomerID = body.CustomerID
	m.ManagerID = body.ManagerID
	m.TourName = strings.TrimSpace(body.TourName)
	m.Category = body.Category
	m.TotalPrice = body.TotalPrice
	m.TotalCost = body.TotalCost
	m.PaymentAmount = body.PaymentAmount
	m.Status = body.Status
	m.PaymentStatus = body.PaymentStatus
	m.Notes = body.Notes
	m.Requests = body.Requests
	m.SpecialNotes = body.SpecialNotes
	m.Details = details
	return nil
}

func validate(body *ReservationRequest) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(body.TourName) == "" {
		errs["tour_name"] = "tour_name is required"
	}
	if !body.Category.Valid() {
		errs["category"] = "category must be one of TOUR|RENTAL_CAR|ACCOMMODATION|GOLF|TICKET|OTHER"
	}
	if strings.TrimSpace(body.ReservationDate) == "" {
		errs["reservation_date"] = "reservation_date is required"
	}
	if body.Status == "" {
		body.Status = models.StatusPending
	} else if !body.Status.Valid() {
		errs["status"] = "status must be one of PENDING|CONFIRMED|PAID|COMPLETED|CANCELED"
	}
	if body.PaymentStatus == "" {
		body.PaymentStatus = models.PaymentUnpaid
	} else if !body.PaymentStatus.Valid() {
		errs["payment_status"] = "payment_status must be one of UNPAID|DEPOSIT|PAID"
	}
	for field, v := range map[string]*float64{
		"total_price":    body.TotalPrice,
		"total_cost":     body.TotalCost,
		"payment_amount": body.PaymentAmount,
	} {
		if v != nil && *v < 0 {
			errs[field] = field + " must not be negative"
		}
	}
	return errs
}

// resolveRelations checks that referenced customer and manager rows exist.
// Missing rows are a client error, not a 500 from the FK.
func resolveRelations(body *ReservationRequest, errs map[string]string) {
	if body.CustomerID != nil {
		var n int64
		database.DB.Model(&models.Customer{}).Where("id = ?", *body.CustomerID).Count(&n)
		if n == 0 {
			errs["customer_id"] = fmt.Sprintf("customer %d does not exist", *body.CustomerID)
		}
	}
	if body.ManagerID != nil {
		var n int64
		database.DB.Model(&models.User{}).Where("id = ?", *body.ManagerID).Count(&n)
		if n == 0 {
			errs["manager_id"] = fmt.Sprintf("user %d does not exist", *body.ManagerID)
		}
	}
}

func currentUser(c *fiber.Ctx) (uint, string) {
	id, _ := auth.CurrentUserID(c)
	name, _ := c.Locals(auth.CtxUsernameKey).(string)
	return id, name
}

type listFilters struct {
	Search       string
	Category     string
	Status       string
	ManagerID    int
	ReservedFrom string
	ReservedTo   string
	StartFrom    string
	StartTo      string
	Year         int
	Month        int
}

func applyFilters(dbq *gorm.DB, f listFilters) *gorm.DB {
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		dbq = dbq.Joins("LEFT JOIN customers ON customers.id = reservations.customer_id").
			Where("reservations.tour_name ILIKE ? OR customers.name ILIKE ?", pattern, pattern)
	}
	if f.Category != "" {
		dbq = dbq.Where("reservations.category = ?", f.Category)
	}
	if f.Status != "" {
		dbq = dbq.Where("reservations.status = ?", f.Status)
	}
	if f.ManagerID > 0 {
		dbq = dbq.Where("reservations.manager_id = ?", f.ManagerID)
	}
	if f.ReservedFrom != "" {
		dbq = dbq.Where("reservations.reservation_date >= ?", f.ReservedFrom)
	}
	if f.ReservedTo != "" {
		dbq = dbq.Where("reservations.reservation_date <= ?", f.ReservedTo)
	}
	if f.StartFrom != "" {
		dbq = dbq.Where("reservations.start_date >= ?", f.StartFrom)
	}
	if f.StartTo != "" {
		dbq = dbq.Where("reservations.start_date <= ?", f.StartTo)
	}
	if from, to, ok := yearMonthBounds(f.Year, f.Month); ok {
		dbq = dbq.Where("reservations.start_date >= ? AND reservations.start_date < ?", from, to)
	}
	return dbq
}

// yearMonthBounds turns a year filter into [from, to) date bounds on the
// start date. A year alone covers the whole year; a valid month narrows it.
// ok is false when no year was given.
func yearMonthBounds(year, month int) (from, to string, ok bool) {
	if year <= 0 {
		return "", "", false
	}
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(1, 0, 0)
	if month >= 1 && month <= 12 {
		first = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		next = first.AddDate(0, 1, 0)
	}
	return first.Format(dateLayout), next.Format(dateLayout), true
}

func filtersFromQuery(c *fiber.Ctx) listFilters {
	return listFilters{
		Search:       strings.TrimSpace(c.Query("search")),
		Category:     c.Query("category"),
		Status:       c.Query("status"),
		ManagerID:    c.QueryInt("manager_id"),
		ReservedFrom: c.Query("reserved_from"),
		ReservedTo:   c.Query("reserved_to"),
		StartFrom:    c.Query("start_from"),
		StartTo:      c.Query("start_to"),
		Year:         c.QueryInt("year"),
		Month:        c.QueryInt("month"),
	}
}

// GET /api/reservations
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := pagination.Parse(c)

		dbq := applyFilters(database.DB.Model(&models.Reservation{}), filtersFromQuery(c))

		var count int64
		if err := dbq.Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count reservations")
		}

		var reservations []models.Reservation
		if err := dbq.Preload("Customer").Preload("Manager").
			Order("reservations.reservation_date DESC, reservations.id DESC").
			Offset(params.Offset()).Limit(params.PageSize).
			Find(&reservations).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list reservations")
		}

		results := make([]ReservationResponse, 0, len(reservations))
		for i := range reservations {
			results = append(results, Response(&reservations[i]))
		}
		return c.JSON(pagination.NewPage(params, count, results))
	}
}

// GET /api/reservations/all
// Unpaginated variant feeding the booking board and exports on the client.
func ListAllHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := applyFilters(database.DB.Model(&models.Reservation{}), filtersFromQuery(c))

		var reservations []models.Reservation
		if err := dbq.Preload("Customer").Preload("Manager").
			Order("reservations.reservation_date DESC, reservations.id DESC").
			Find(&reservations).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list reservations")
		}

		results := make([]ReservationResponse, 0, len(reservations))
		for i := range reservations {
			results = append(results, Response(&reservations[i]))
		}
		return c.JSON(results)
	}
}

// POST /api/reservations
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ReservationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		errs := validate(&body)
		resolveRelations(&body, errs)

		userID, userName := currentUser(c)
		if body.ManagerID == nil {
			// New bookings default to the user entering them.
			body.ManagerID = &userID
		} else if *body.ManagerID != userID && !auth.IsAdmin(c) {
			errs["manager_id"] = "only admins may assign reservations to other managers"
		}
		if len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		var m models.Reservation
		if err := apply(&m, &body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create reservation")
		}
		database.DB.Preload("Customer").Preload("Manager").First(&m, m.ID)

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "reservation",
			EntityID:    m.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Created reservation %q (%s)", m.TourName, m.Category),
			After:       m,
		})

		return c.Status(fiber.StatusCreated).JSON(Response(&m))
	}
}

// GET /api/reservations/:id
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var m models.Reservation
		if err := database.DB.Preload("Customer").Preload("Manager").First(&m, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.SendStatus(fiber.StatusNotFound)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load reservation")
		}
		return c.JSON(Response(&m))
	}
}

// PUT /api/reservations/:id
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var m models.Reservation
		if err := database.DB.First(&m, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.SendStatus(fiber.StatusNotFound)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load reservation")
		}
		before := m

		var body ReservationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		errs := validate(&body)
		resolveRelations(&body, errs)

		managerChanged := (body.ManagerID == nil) != (m.ManagerID == nil) ||
			(body.ManagerID != nil && m.ManagerID != nil && *body.ManagerID != *m.ManagerID)
		if managerChanged && !auth.IsAdmin(c) {
			errs["manager_id"] = "only admins may reassign reservations"
		}
		if len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		if err := apply(&m, &body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := database.DB.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update reservation")
		}
		database.DB.Preload("Customer").Preload("Manager").First(&m, m.ID)

		userID, userName := currentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "reservation",
			EntityID:    m.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Updated reservation %q", m.TourName),
			Before:      before,
			After:       m,
		})

		return c.JSON(Response(&m))
	}
}

// DELETE /api/reservations/:id
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var m models.Reservation
		if err := database.DB.First(&m, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.SendStatus(fiber.StatusNotFound)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load reservation")
		}

		if err := database.DB.Delete(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete reservation")
		}

		userID, userName := currentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "reservation",
			EntityID:    m.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Deleted reservation %q", m.TourName),
			Before:      m,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/reservations/bulk-delete  {"ids": [1,2,3]}
// Admin only. Missing ids are skipped, not an error.
func BulkDeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			IDs []uint `json:"ids"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if len(body.IDs) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ids must not be empty")
		}

		res := database.DB.Delete(&models.Reservation{}, body.IDs)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete reservations")
		}

		userID, userName := currentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "reservation",
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Bulk-deleted %d reservations", res.RowsAffected),
		})

		return c.JSON(fiber.Map{"deleted": res.RowsAffected})
	}
}
