package customer

import (
	"strings"

	"github.com/teaseong5-stack/azit-erp-backend/internal/database"
	"github.com/teaseong5-stack/azit-erp-backend/internal/models"
	"github.com/teaseong5-stack/azit-erp-backend/internal/pagination"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CustomerRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

type CustomerResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

func Response(m *models.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          m.ID,
		Name:        m.Name,
		PhoneNumber: m.PhoneNumber,
		Email:       m.Email,
	}
}

func validate(body *CustomerRequest) map[string]string {
	errs := map[string]string{}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		errs["name"] = "name is required"
	}
	if body.Email != "" && !strings.Contains(body.Email, "@") {
		errs["email"] = "email is not valid"
	}
	return errs
}

// GET /api/customers?page=1&page_size=50&search=...
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := pagination.Parse(c)

		dbq := database.DB.Model(&models.Customer{})
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			like := "%" + search + "%"
			dbq = dbq.Where("name ILIKE ? OR phone_number ILIKE ? OR email ILIKE ?", like, like, like)
		}

		var count int64
		if err := dbq.Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count customers")
		}

		var customers []models.Customer
		if err := dbq.Order("id desc").Limit(params.PageSize).Offset(params.Offset()).Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list customers")
		}

		results := make([]CustomerResponse, 0, len(customers))
		for i := range customers {
			results = append(results, Response(&customers[i]))
		}
		return c.JSON(pagination.NewPage(params, count, results))
	}
}

// POST /api/customers
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if errs := validate(&body); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		customer := models.Customer{
			Name:        body.Name,
			PhoneNumber: body.PhoneNumber,
			Email:       body.Email,
		}
		if err := database.DB.Create(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create customer")
		}
		return c.Status(fiber.StatusCreated).JSON(Response(&customer))
	}
}

// GET /api/customers/:id
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var customer models.Customer
		if err := database.DB.First(&customer, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.SendStatus(fiber.StatusNotFound)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load customer")
		}
		return c.JSON(Response(&customer))
	}
}

// PUT /api/customers/:id
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var customer models.Customer
		if err := database.DB.First(&customer, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.SendStatus(fiber.StatusNotFound)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load customer")
		}

		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if errs := validate(&body); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		customer.Name = body.Name
		customer.PhoneNumber = body.PhoneNumber
		customer.Email = body.Email
		if err := database.DB.Save(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update customer")
		}
		return c.JSON(Response(&customer))
	}
}

// DELETE /api/customers/:id
// Reservations referencing the customer keep their row; the FK nulls out.
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var customer models.Customer
		if err := database.DB.First(&customer, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.SendStatus(fiber.StatusNotFound)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load customer")
		}

		if err := database.DB.Delete(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete customer")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
