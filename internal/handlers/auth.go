package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Adhisheshu1210/sb-works-backend/internal/models"
	"github.com/Adhisheshu1210/sb-works-backend/internal/utils"
)

type AuthHandler struct {
	DB *gorm.DB
}

type RegisterReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Usertype string `json:"usertype"`
}

// Register creates the user and, for freelancers, an empty work profile in
// the same transaction.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return authError(c, "invalid body")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return serverError(c, err)
	}

	user := models.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hash,
		Usertype: models.Usertype(req.Usertype),
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if user.Usertype == models.UsertypeFreelancer {
			profile := models.Freelancer{
				UserID:            user.ID,
				Skills:            datatypes.JSONSlice[string]{},
				CurrentProjects:   datatypes.JSONSlice[string]{},
				CompletedProjects: datatypes.JSONSlice[string]{},
				Applications:      datatypes.JSONSlice[string]{},
			}
			return tx.Create(&profile).Error
		}
		return nil
	})
	if err != nil {
		return serverError(c, err)
	}

	return c.JSON(user)
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return authError(c, "invalid body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.DB.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return authError(c, "User does not exist")
		}
		return serverError(c, err)
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		return authError(c, "Invalid credentials")
	}

	return c.JSON(user)
}

func (h *AuthHandler) FetchUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := h.DB.Find(&users).Error; err != nil {
		return serverError(c, err)
	}
	return c.JSON(users)
}
