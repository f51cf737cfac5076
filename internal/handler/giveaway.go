package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"roomshare/internal/service"
	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
)

type GiveawayHandler struct {
	giveawayService service.GiveawayService
	log             logger.Logger
}

func NewGiveawayHandler(giveawayService service.GiveawayService, log logger.Logger) *GiveawayHandler {
	return &GiveawayHandler{
		giveawayService: giveawayService,
		log:             log,
	}
}

type createGiveawayRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	ImageURLs   []string `json:"image_urls"`
	Prefecture  string   `json:"prefecture"`
	City        string   `json:"city"`
}

func (h *GiveawayHandler) Create(c *gin.Context) {
	var req createGiveawayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	giveaway, err := h.giveawayService.Create(c.Request.Context(), userID, service.CreateGiveawayInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURLs:   req.ImageURLs,
		Prefecture:  req.Prefecture,
		City:        req.City,
	})
	if err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, giveaway)
}

func (h *GiveawayHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid giveaway ID"})
		return
	}

	giveaway, err := h.giveawayService.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, giveaway)
}

func (h *GiveawayHandler) List(c *gin.Context) {
	limit := parseQueryInt(c, "limit", 20)
	offset := parseQueryInt(c, "offset", 0)

	giveaways, err := h.giveawayService.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, giveaways)
}

func (h *GiveawayHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid giveaway ID"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	if err := h.giveawayService.Close(c.Request.Context(), id, userID); err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *GiveawayHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid giveaway ID"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	if err := h.giveawayService.Delete(c.Request.Context(), id, userID); err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
