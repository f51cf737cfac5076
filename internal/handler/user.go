package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"roomshare/internal/service"
	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
)

type UserHandler struct {
	userService service.UserService
	log         logger.Logger
}

func NewUserHandler(userService service.UserService, log logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

func (h *UserHandler) Me(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	user, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	Email              string  `json:"email" binding:"required,email"`
	DisplayName        string  `json:"display_name" binding:"required"`
	PhotoURL           *string `json:"photo_url"`
	Gender             string  `json:"gender"`
	Age                *int    `json:"age"`
	Occupation         *string `json:"occupation"`
	EmailNotifications bool    `json:"email_notifications"`
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	user, err := h.userService.UpdateMe(c.Request.Context(), userID, service.UpdateProfileInput{
		Email:              req.Email,
		DisplayName:        req.DisplayName,
		PhotoURL:           req.PhotoURL,
		Gender:             req.Gender,
		Age:                req.Age,
		Occupation:         req.Occupation,
		EmailNotifications: req.EmailNotifications,
	})
	if err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}
