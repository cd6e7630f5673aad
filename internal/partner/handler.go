package partner

import (
	"strings"

	"github.com/teaseong5-stack/azit-erp-backend/internal/database"
	"github.com/teaseong5-stack/azit-erp-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PartnerRequest struct {
	Name          string                 `json:"name"`
	Category      models.PartnerCategory `json:"category"`
	ContactPerson string                 `json:"contact_person"`
	PhoneNumber   string                 `json:"phone_number"`
	Email         string                 `json:"email"`
	Address       string                 `json:"address"`
	Notes         string                 `json:"notes"`
}

type PartnerResponse struct {
	ID            uint                   `json:"id"`
	Name          string                 `json:"name"`
	Category      models.PartnerCategory `json:"category"`
	ContactPerson string                 `json:"contact_person"`
	PhoneNumber   string                 `json:"phone_number"`
	Email         string                 `json:"email"`
	Address       string                 `json:"address"`
	Notes         string                 `json:"notes"`
}

func Response(m *models.Partner) PartnerResponse {
	return PartnerResponse{
		ID:            m.ID,
		Name:          m.Name,
		Category:      m.Category,
		ContactPerson: m.ContactPerson,
		PhoneNumber:   m.PhoneNumber,
		Email:         m.Email,
		Address:       m.Address,
		Notes:         m.Notes,
	}
}

func validate(body *PartnerRequest) map[string]string {
	errs := map[string]string{}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		errs["name"] = "name is required"
	}
	if !body.Category.Valid() {
		errs["category"] = "category must be one of HOTEL|AIRLINE|RENTAL|RESTAURANT|AGENCY|OTHER"
	}
	return errs
}

// GET /api/partners
// The partner list is small; it is served unpaginated for dropdowns.
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var partners []models.Partner
		if err := database.DB.Order("name asc").Find(&partners).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list partners")
		}

		resp := make([]PartnerResponse, 0, len(partners))
		for i := range partners {
			resp = append(resp, Response(&partners[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/partners
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PartnerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if errs := validate(&body); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		partner := models.Partner{
			Name:          body.Name,
			Category:      body.Category,
			ContactPerson: body.ContactPerson,
			PhoneNumber:   body.PhoneNumber,
			Email:         body.Email,
			Address:       body.Address,
			Notes:         body.Notes,
		}
		if err := database.DB.Create(&partner).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create partner")
		}
		return c.Status(fiber.StatusCreated).JSON(Response(&partner))
	}
}

// GET /api/partners/:id
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var partner models.Partner
		if err := database.DB.First(&partner, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.SendStatus(fiber.StatusNotFound)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load partner")
		}
		return c.JSON(Response(&partner))
	}
}

// PUT /api/partners/:id
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var partner models.Partner
		if err := database.DB.First(&partner, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.SendStatus(fiber.StatusNotFound)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load partner")
		}

		var body PartnerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if errs := validate(&body); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		partner.Name = body.Name
		partner.Category = body.Category
		partner.ContactPerson = body.ContactPerson
		partner.PhoneNumber = body.PhoneNumber
		partner.Email = body.Email
		partner.Address = body.Address
		partner.Notes = body.Notes
		if err := database.DB.Save(&partner).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update partner")
		}
		return c.JSON(Response(&partner))
	}
}

// DELETE /api/partners/:id
// Transactions referencing the partner keep their row; the FK nulls out.
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var partner models.Partner
		if err := database.DB.First(&partner, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.SendStatus(fiber.StatusNotFound)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load partner")
		}

		if err := database.DB.Delete(&partner).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete partner")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
