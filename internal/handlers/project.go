package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Adhisheshu1210/sb-works-backend/internal/lifecycle"
	"github.com/Adhisheshu1210/sb-works-backend/internal/models"
)

type ProjectHandler struct {
	DB     *gorm.DB
	Engine *lifecycle.Engine
}

func (h *ProjectHandler) Fetch(c *fiber.Ctx) error {
	var project models.Project
	if err := h.DB.First(&project, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(nil)
		}
		return serverError(c, err)
	}
	return c.JSON(project)
}

func (h *ProjectHandler) FetchAll(c *fiber.Ctx) error {
	var projects []models.Project
	if err := h.DB.Find(&projects).Error; err != nil {
		return serverError(c, err)
	}
	return c.JSON(projects)
}

type NewProjectReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Budget      IntValue `json:"budget"`
	Skills      string   `json:"skills"`
	ClientID    string   `json:"clientId"`
	ClientName  string   `json:"clientName"`
	ClientEmail string   `json:"clientEmail"`
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req NewProjectReq
	if err := c.BodyParser(&req); err != nil {
		return serverError(c, err)
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return serverError(c, err)
	}

	project := models.Project{
		Title:       req.Title,
		Description: req.Description,
		Budget:      int(req.Budget),
		Skills:      splitCSV(req.Skills),
		ClientID:    clientID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Bids:        datatypes.JSONSlice[string]{},
		BidAmounts:  datatypes.JSONSlice[int]{},
		PostedDate:  time.Now().Format(time.RFC3339),
		Status:      models.ProjectAvailable,
	}
	if err := h.DB.Create(&project).Error; err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Project added"})
}

type SubmitProjectReq struct {
	ProjectID             string `json:"projectId"`
	ProjectLink           string `json:"projectLink"`
	ManualLink            string `json:"manualLink"`
	SubmissionDescription string `json:"submissionDescription"`
}

func (h *ProjectHandler) Submit(c *fiber.Ctx) error {
	var req SubmitProjectReq
	if err := c.BodyParser(&req); err != nil {
		return serverError(c, err)
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return serverError(c, err)
	}

	if err := h.Engine.SubmitWork(projectID, lifecycle.Submission{
		ProjectLink: req.ProjectLink,
		ManualLink:  req.ManualLink,
		Description: req.SubmissionDescription,
	}); err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Project submitted"})
}

func (h *ProjectHandler) ApproveSubmission(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return serverError(c, err)
	}
	if err := h.Engine.ApproveSubmission(projectID); err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Submission approved"})
}

func (h *ProjectHandler) RejectSubmission(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return serverError(c, err)
	}
	if err := h.Engine.RejectSubmission(projectID); err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Submission rejected"})
}
