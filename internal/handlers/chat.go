package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Adhisheshu1210/sb-works-backend/internal/models"
)

type ChatHandler struct {
	DB *gorm.DB
}

// Fetch returns the chat for a project, or null when no one has chatted yet.
func (h *ChatHandler) Fetch(c *fiber.Ctx) error {
	var chat models.Chat
	if err := h.DB.First(&chat, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(nil)
		}
		return serverError(c, err)
	}
	return c.JSON(chat)
}
