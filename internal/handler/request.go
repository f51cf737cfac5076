package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"roomshare/internal/service"
	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
)

type RequestHandler struct {
	requestService service.RequestService
	log            logger.Logger
}

func NewRequestHandler(requestService service.RequestService, log logger.Logger) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		log:            log,
	}
}

type createRequestRequest struct {
	Title       string  `json:"title" binding:"required"`
	Body        string  `json:"body" binding:"required"`
	Prefecture  string  `json:"prefecture"`
	City        string  `json:"city"`
	BudgetYen   *int    `json:"budget_yen"`
	MoveInMonth *string `json:"move_in_month"`
}

func (h *RequestHandler) Create(c *gin.Context) {
	var req createRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	request, err := h.requestService.Create(c.Request.Context(), userID, service.CreateRequestInput{
		Title:       req.Title,
		Body:        req.Body,
		Prefecture:  req.Prefecture,
		City:        req.City,
		BudgetYen:   req.BudgetYen,
		MoveInMonth: req.MoveInMonth,
	})
	if err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, request)
}

func (h *RequestHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}

	request, err := h.requestService.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *RequestHandler) List(c *gin.Context) {
	limit := parseQueryInt(c, "limit", 20)
	offset := parseQueryInt(c, "offset", 0)

	requests, err := h.requestService.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	if err := h.requestService.Delete(c.Request.Context(), id, userID); err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func parseQueryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
