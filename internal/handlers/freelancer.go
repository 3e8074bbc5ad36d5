package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Adhisheshu1210/sb-works-backend/internal/models"
)

type FreelancerHandler struct {
	DB *gorm.DB
}

// Fetch looks a profile up by its owning user id, not the profile id.
func (h *FreelancerHandler) Fetch(c *fiber.Ctx) error {
	var profile models.Freelancer
	if err := h.DB.First(&profile, "user_id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(nil)
		}
		return serverError(c, err)
	}
	return c.JSON(profile)
}

type UpdateFreelancerReq struct {
	FreelancerID string `json:"freelancerId"`
	UpdateSkills string `json:"updateSkills"`
	Description  string `json:"description"`
}

func (h *FreelancerHandler) Update(c *fiber.Ctx) error {
	var req UpdateFreelancerReq
	if err := c.BodyParser(&req); err != nil {
		return serverError(c, err)
	}

	var profile models.Freelancer
	if err := h.DB.First(&profile, "id = ?", req.FreelancerID).Error; err != nil {
		return serverError(c, err)
	}

	profile.Skills = splitCSV(req.UpdateSkills)
	profile.Description = req.Description
	if err := h.DB.Save(&profile).Error; err != nil {
		return serverError(c, err)
	}

	return c.JSON(profile)
}
