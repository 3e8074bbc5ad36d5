package handlers

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Adhisheshu1210/sb-works-backend/internal/lifecycle"
	"github.com/Adhisheshu1210/sb-works-backend/internal/models"
)

type ApplicationHandler struct {
	DB     *gorm.DB
	Engine *lifecycle.Engine
	RDB    *redis.Client
}

type MakeBidReq struct {
	ClientID      string   `json:"clientId"`
	FreelancerID  string   `json:"freelancerId"`
	ProjectID     string   `json:"projectId"`
	Proposal      string   `json:"proposal"`
	BidAmount     IntValue `json:"bidAmount"`
	EstimatedTime IntValue `json:"estimatedTime"`
}

func (h *ApplicationHandler) MakeBid(c *fiber.Ctx) error {
	var req MakeBidReq
	if err := c.BodyParser(&req); err != nil {
		return serverError(c, err)
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return serverError(c, err)
	}
	freelancerID, err := uuid.Parse(req.FreelancerID)
	if err != nil {
		return serverError(c, err)
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return serverError(c, err)
	}

	if _, err := h.Engine.PlaceBid(lifecycle.BidInput{
		ProjectID:     projectID,
		FreelancerID:  freelancerID,
		ClientID:      clientID,
		Proposal:      req.Proposal,
		BidAmount:     int(req.BidAmount),
		EstimatedTime: int(req.EstimatedTime),
	}); err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Bidding successful"})
}

func (h *ApplicationHandler) FetchAll(c *fiber.Ctx) error {
	var applications []models.Application
	if err := h.DB.Find(&applications).Error; err != nil {
		return serverError(c, err)
	}
	return c.JSON(applications)
}

func (h *ApplicationHandler) Approve(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return serverError(c, err)
	}

	if err := h.Engine.ApproveApplication(applicationID); err != nil {
		return serverError(c, err)
	}

	h.notifyApproved(applicationID)

	return c.JSON(fiber.Map{"message": "Application approved"})
}

func (h *ApplicationHandler) Reject(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return serverError(c, err)
	}
	if err := h.Engine.RejectApplication(applicationID); err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Application rejected"})
}

// notifyApproved tells the winning freelancer over pub/sub; best effort.
func (h *ApplicationHandler) notifyApproved(applicationID uuid.UUID) {
	if h.RDB == nil {
		return
	}

	var app models.Application
	if err := h.DB.First(&app, "id = ?", applicationID).Error; err != nil {
		log.Println("Error loading application for notification:", err)
		return
	}

	payload, _ := json.Marshal(map[string]string{
		"type":          "application_approved",
		"applicationId": app.ID.String(),
		"projectId":     app.ProjectID.String(),
	})
	channel := "notifications:" + app.FreelancerID.String()
	if err := h.RDB.Publish(context.Background(), channel, payload).Err(); err != nil {
		log.Println("Error publishing approval notification:", err)
	}
}
