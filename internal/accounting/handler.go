package accounting

import (
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

type TransactionRequest struct {
	TransactionDate  string                  `json:"transaction_date"`
	TransactionType  models.TransactionType  `json:"transaction_type"`
	Amount           float64                 `json:"amount"`
	Description      string                  `json:"description"`
	ExpenseItem      *models.ExpenseItem     `json:"expense_item"`
	PaymentMethod    *models.PaymentMethod   `json:"payment_method"`
	ProcessingStatus models.ProcessingStatus `json:"processing_status"`
	ReservationID    *uint                   `json:"reservation_id"`
	PartnerID        *uint                   `json:"partner_id"`
	ManagerID        *uint                   `json:"manager_id"`
	Notes            string                  `json:"notes"`
}

type TransactionResponse struct {
	ID               uint                    `json:"id"`
	TransactionDate  string                  `json:"transaction_date"`
	TransactionType  models.TransactionType  `json:"transaction_type"`
	Amount           float64                 `json:"amount"`
	Description      string                  `json:"description"`
	ExpenseItem      *models.ExpenseItem     `json:"expense_item"`
	PaymentMethod    *models.PaymentMethod   `json:"payment_method"`
	ProcessingStatus models.ProcessingStatus `json:"processing_status"`
	ReservationID    *uint                   `json:"reservation_id"`
	PartnerID        *uint                   `json:"partner_id"`
	PartnerName      string                  `json:"partner_name,omitempty"`
	ManagerID        *uint                   `json:"manager_id"`
	Manager          string                  `json:"manager,omitempty"`
	Notes            string                  `json:"notes"`
	CreatedAt        string                  `json:"created_at"`
}

func Response(m *models.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:               m.ID,
		TransactionDate:  m.TransactionDate.Format(dateLayout),
		TransactionType:  m.TransactionType,
		Amount:           m.Amount,
		Description:      m.Description,
		ExpenseItem:      m.ExpenseItem,
		PaymentMethod:    m.PaymentMethod,
		ProcessingStatus: m.ProcessingStatus,
		ReservationID:    m.ReservationID,
		PartnerID:        m.PartnerID,
		ManagerID:        m.ManagerID,
		Notes:            m.Notes,
		CreatedAt:        m.CreatedAt.Format(time.RFC3339),
	}
	if m.Partner != nil {
		resp.PartnerName = m.Partner.Name
	}
	if m.Manager != nil {
		resp.Manager = m.Manager.Username
	}
	return resp
}

func validate(body *TransactionRequest) map[string]string {
	errs := map[string]string{}
	if !body.TransactionType.Valid() {
		errs["transaction_type"] = "transaction_type must be INCOME or EXPENSE"
	}
	if strings.TrimSpace(body.TransactionDate) == "" {
		errs["transaction_date"] = "transaction_date is required"
	} else if _, err := time.Parse(dateLayout, body.TransactionDate); err != nil {
		errs["transaction_date"] = "transaction_date must be YYYY-MM-DD"
	}
	if body.Amount <= 0 {
		errs["amount"] = "amount must be positive"
	}
	body.Description = strings.TrimSpace(body.Description)
	if body.Description == "" {
		errs["description"] = "description is required"
	}
	if body.ExpenseItem != nil && !body.ExpenseItem.Valid() {
		errs["expense_item"] = "invalid expense_item"
	}
	if body.TransactionType == models.TransactionIncome && body.ExpenseItem != nil {
		errs["expense_item"] = "expense_item only applies to EXPENSE transactions"
	}
	if body.PaymentMethod != nil && !body.PaymentMethod.Valid() {
		errs["payment_method"] = "payment_method must be CARD, CASH or TRANSFER"
	}
	if body.ProcessingStatus == "" {
		body.ProcessingStatus = models.ProcessingPending
	} else if !body.ProcessingStatus.Valid() {
		errs["processing_status"] = "processing_status must be PENDING, COMPLETED or HOLD"
	}
	return errs
}

// resolveRelations rejects references to rows that do not exist so the
// client sees a field error instead of a bare FK failure.
func resolveRelations(body *TransactionRequest, errs map[string]string) {
	check := func(model any, id *uint, field, noun string) {
		if id == nil {
			return
		}
		var n int64
		database.DB.Model(model).Where("id = ?", *id).Count(&n)
		if n == 0 {
			errs[field] = fmt.Sprintf("%s %d does not exist", noun, *id)
		}
	}
	check(&models.Reservation{}, body.ReservationID, "reservation_id", "reservation")
	check(&models.Partner{}, body.PartnerID, "partner_id", "partner")
	check(&models.User{}, body.ManagerID, "manager_id", "user")
}

func apply(m *models.Transaction, body *TransactionRequest) {
	date, _ := time.Parse(dateLayout, body.TransactionDate)
	m.TransactionDate = date
	m.TransactionType = body.TransactionType
	m.Amount = body.Amount
	m.Description = body.Description
	m.ExpenseItem = body.ExpenseItem
	m.PaymentMethod = body.PaymentMethod
	m.ProcessingStatus = body.ProcessingStatus
	m.ReservationID = body.ReservationID
	m.PartnerID = body.PartnerID
	m.ManagerID = body.ManagerID
	m.Notes = body.Notes
}

func currentUser(c *fiber.Ctx) (uint, string) {
	id, _ := auth.CurrentUserID(c)
	name, _ := c.Locals(auth.CtxUsernameKey).(string)
	return id, name
}

func filteredQuery(c *fiber.Ctx) *gorm.DB {
	dbq := database.DB.Model(&models.Transaction{})
	if t := c.Query("type"); t != "" {
		dbq = dbq.Where("transaction_type = ?", t)
	}
	if status := c.Query("processing_status"); status != "" {
		dbq = dbq.Where("processing_status = ?", status)
	}
	if rid := c.QueryInt("reservation_id"); rid > 0 {
		dbq = dbq.Where("reservation_id = ?", rid)
	}
	if pid := c.QueryInt("partner_id"); pid > 0 {
		dbq = dbq.Where("partner_id = ?", pid)
	}
	if from := c.Query("from"); from != "" {
		dbq = dbq.Where("transaction_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		dbq = dbq.Where("transaction_date <= ?", to)
	}
	year, month := c.QueryInt("year"), c.QueryInt("month")
	if year > 0 {
		first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		next := first.AddDate(1, 0, 0)
		if month >= 1 && month <= 12 {
			first = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			next = first.AddDate(0, 1, 0)
		}
		dbq = dbq.Where("transaction_date >= ? AND transaction_date < ?",
			first.Format(dateLayout), next.Format(dateLayout))
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		dbq = dbq.Where("description ILIKE ?", "%"+search+"%")
	}
	return dbq
}

// GET /api/transactions
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := pagination.Parse(c)
		dbq := filteredQuery(c)

		var count int64
		if err := dbq.Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count transactions")
		}

		var transactions []models.Transaction
		if err := dbq.Preload("Partner").Preload("Manager").
			Order("transaction_date DESC, id DESC").
			Offset(params.Offset()).Limit(params.PageSize).
			Find(&transactions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list transactions")
		}

		results := make([]TransactionResponse, 0, len(transactions))
		for i := range transactions {
			results = append(results, Response(&transactions[i]))
		}
		return c.JSON(pagination.NewPage(params, count, results))
	}
}

// POST /api/transactions
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body TransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		errs := validate(&body)
		resolveRelations(&body, errs)
		if len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		userID, userName := currentUser(c)
		if body.ManagerID == nil {
			body.ManagerID = &userID
		}

		var m models.Transaction
		apply(&m, &body)
		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create transaction")
		}
		database.DB.Preload("Partner").Preload("Manager").First(&m, m.ID)

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "transaction",
			EntityID:    m.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Created %s transaction %q", m.TransactionType, m.Description),
			After:       m,
		})

		return c.Status(fiber.StatusCreated).JSON(Response(&m))
	}
}

// GET /api/transactions/:id
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var m models.Transaction
		if err := database.DB.Preload("Partner").Preload("Manager").First(&m, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.SendStatus(fiber.StatusNotFound)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load transaction")
		}
		return c.JSON(Response(&m))
	}
}

// PUT /api/transactions/:id  (admin only, applied in the route table)
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var m models.Transaction
		if err := database.DB.First(&m, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.SendStatus(fiber.StatusNotFound)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load transaction")
		}
		before := m

		var body TransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		errs := validate(&body)
		resolveRelations(&body, errs)
		if len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		apply(&m, &body)
		if err := database.DB.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update transaction")
		}
		database.DB.Preload("Partner").Preload("Manager").First(&m, m.ID)

		userID, userName := currentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "transaction",
			EntityID:    m.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Updated transaction %q", m.Description),
			Before:      before,
			After:       m,
		})

		return c.JSON(Response(&m))
	}
}

// DELETE /api/transactions/:id  (admin only, applied in the route table)
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var m models.Transaction
		if err := database.DB.First(&m, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.SendStatus(fiber.StatusNotFound)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load transaction")
		}

		if err := database.DB.Delete(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete transaction")
		}

		userID, userName := currentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "transaction",
			EntityID:    m.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Deleted transaction %q", m.Description),
			Before:      m,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
