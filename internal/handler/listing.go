package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"roomshare/internal/search"
	"roomshare/internal/service"
	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
)

type ListingHandler struct {
	listingService service.ListingService
	log            logger.Logger
}

func NewListingHandler(listingService service.ListingService, log logger.Logger) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		log:            log,
	}
}

func (h *ListingHandler) Search(c *gin.Context) {
	facets, parseErrs := search.ParseFacets(c.Request.URL.Query())
	for _, err := range parseErrs {
		// Bad facet values are dropped, not fatal.
		h.log.Warn("Ignoring malformed search facet", "error", err)
	}

	result := h.listingService.Search(c.Request.Context(), facets)
	c.JSON(http.StatusOK, result)
}

func (h *ListingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing ID"})
		return
	}

	listing, err := h.listingService.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listing)
}

type listingRequest struct {
	Title             string   `json:"title" binding:"required"`
	Description       string   `json:"description"`
	Price             int      `json:"price"`
	Prefecture        string   `json:"prefecture" binding:"required"`
	City              string   `json:"city"`
	Address           string   `json:"address"`
	StationLine       string   `json:"station_line"`
	StationName       string   `json:"station_name"`
	WalkMinutes       *int     `json:"walk_minutes"`
	RoomType          string   `json:"room_type" binding:"required"`
	GenderRestriction string   `json:"gender_restriction"`
	Amenities         []string `json:"amenities"`
	ImageURLs         []string `json:"image_urls"`
}

func (r listingRequest) toInput() service.CreateListingInput {
	return service.CreateListingInput{
		Title:             r.Title,
		Description:       r.Description,
		Price:             r.Price,
		Prefecture:        r.Prefecture,
		City:              r.City,
		Address:           r.Address,
		StationLine:       r.StationLine,
		StationName:       r.StationName,
		WalkMinutes:       r.WalkMinutes,
		RoomType:          r.RoomType,
		GenderRestriction: r.GenderRestriction,
		Amenities:         r.Amenities,
		ImageURLs:         r.ImageURLs,
	}
}

func (h *ListingHandler) Create(c *gin.Context) {
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	listing, err := h.listingService.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, listing)
}

func (h *ListingHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing ID"})
		return
	}

	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	listing, err := h.listingService.Update(c.Request.Context(), id, userID, req.toInput())
	if err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listing)
}

type visibilityRequest struct {
	Public *bool `json:"public" binding:"required"`
}

func (h *ListingHandler) SetVisibility(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing ID"})
		return
	}

	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	if err := h.listingService.SetVisibility(c.Request.Context(), id, userID, *req.Public); err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"public": *req.Public})
}

func (h *ListingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing ID"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	if err := h.listingService.Delete(c.Request.Context(), id, userID); err != nil {
		c.JSON(apperr.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted"})
}
