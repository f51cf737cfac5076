package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roomshare/internal/domain"
	"roomshare/internal/repository"
	"roomshare/internal/search"
	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
	"roomshare/pkg/slugify"
)

type SearchResult struct {
	Listings   []*domain.Listing `json:"listings"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
}

type CreateListingInput struct {
	Title             string
	Description       string
	Price             int
	Prefecture        string
	City              string
	Address           string
	StationLine       string
	StationName       string
	WalkMinutes       *int
	RoomType          string
	GenderRestriction string
	Amenities         []string
	ImageURLs         []string
}

type ListingService interface {
	// Search never fails upward: an unreachable store degrades to an
	// empty page so the surrounding page can still render.
	Search(ctx context.Context, facets search.Facets) *SearchResult
	Get(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	Create(ctx context.Context, ownerID uuid.UUID, input CreateListingInput) (*domain.Listing, error)
	Update(ctx context.Context, id, callerID uuid.UUID, input CreateListingInput) (*domain.Listing, error)
	SetVisibility(ctx context.Context, id, callerID uuid.UUID, public bool) error
	Delete(ctx context.Context, id, callerID uuid.UUID) error
}

type listingService struct {
	listingRepo repository.ListingRepository
	moderation  ModerationService
	log         logger.Logger
}

func NewListingService(listingRepo repository.ListingRepository, moderation ModerationService, log logger.Logger) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		moderation:  moderation,
		log:         log,
	}
}

func (s *listingService) Search(ctx context.Context, facets search.Facets) *SearchResult {
	page := facets.Page
	if page < 1 {
		page = 1
	}

	result := &SearchResult{
		Listings: []*domain.Listing{},
		Page:     page,
		PageSize: search.PageSize,
	}

	compiled := search.Compile(facets)

	listings, err := s.listingRepo.Search(ctx, compiled, search.PageSize, search.Offset(page))
	if err != nil {
		s.log.Error("Listing search degraded to empty result", "error", err)
		return result
	}

	total, err := s.listingRepo.Count(ctx, compiled)
	if err != nil {
		s.log.Error("Listing count failed", "error", err)
		total = 0
	}

	for _, listing := range listings {
		s.ensureSlug(ctx, listing)
	}

	result.Listings = listings
	result.TotalCount = total
	return result
}

// ensureSlug lazily derives a slug for listings that never got one. A
// failed transliteration leaves the slug empty and must never fail the
// surrounding search.
func (s *listingService) ensureSlug(ctx context.Context, listing *domain.Listing) {
	if listing.Slug != "" {
		return
	}

	slug := slugify.Place(listing.Prefecture, listing.City)
	if slug == "" {
		s.log.Warn("Slug transliteration produced no output",
			"listing_id", listing.ID, "prefecture", listing.Prefecture, "city", listing.City)
		return
	}

	listing.Slug = slug
	if err := s.listingRepo.SetSlug(ctx, listing.ID, slug); err != nil {
		s.log.Warn("Failed to persist derived slug", "listing_id", listing.ID, "error", err)
	}
}

func (s *listingService) Get(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.ensureSlug(ctx, listing)
	return listing, nil
}

func (s *listingService) Create(ctx context.Context, ownerID uuid.UUID, input CreateListingInput) (*domain.Listing, error) {
	if err := validateListingInput(input); err != nil {
		return nil, err
	}

	if flagged, categories := s.moderation.Check(ctx, input.Title+"\n"+input.Description); flagged {
		s.log.Warn("Listing content flagged by moderation", "owner_id", ownerID, "categories", categories)
	}

	now := time.Now()
	listing := &domain.Listing{
		ID:                uuid.New(),
		OwnerID:           ownerID,
		Title:             input.Title,
		Description:       input.Description,
		Price:             input.Price,
		Prefecture:        input.Prefecture,
		City:              input.City,
		Address:           input.Address,
		StationLine:       input.StationLine,
		StationName:       input.StationName,
		WalkMinutes:       input.WalkMinutes,
		RoomType:          input.RoomType,
		GenderRestriction: input.GenderRestriction,
		Amenities:         input.Amenities,
		ImageURLs:         input.ImageURLs,
		IsPublic:          true,
		Slug:              slugify.Place(input.Prefecture, input.City),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if listing.GenderRestriction == "" {
		listing.GenderRestriction = domain.GenderAny
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (s *listingService) Update(ctx context.Context, id, callerID uuid.UUID, input CreateListingInput) (*domain.Listing, error) {
	if err := validateListingInput(input); err != nil {
		return nil, err
	}

	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != callerID {
		return nil, apperr.ErrForbidden
	}

	if flagged, categories := s.moderation.Check(ctx, input.Title+"\n"+input.Description); flagged {
		s.log.Warn("Listing content flagged by moderation", "listing_id", id, "categories", categories)
	}

	listing.Title = input.Title
	listing.Description = input.Description
	listing.Price = input.Price
	listing.Prefecture = input.Prefecture
	listing.City = input.City
	listing.Address = input.Address
	listing.StationLine = input.StationLine
	listing.StationName = input.StationName
	listing.WalkMinutes = input.WalkMinutes
	listing.RoomType = input.RoomType
	listing.Amenities = input.Amenities
	listing.ImageURLs = input.ImageURLs
	listing.Slug = slugify.Place(input.Prefecture, input.City)
	if input.GenderRestriction != "" {
		listing.GenderRestriction = input.GenderRestriction
	}

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (s *listingService) SetVisibility(ctx context.Context, id, callerID uuid.UUID, public bool) error {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if listing.OwnerID != callerID {
		return apperr.ErrForbidden
	}

	return s.listingRepo.SetVisibility(ctx, id, public)
}

func (s *listingService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if listing.OwnerID != callerID {
		return apperr.ErrForbidden
	}

	return s.listingRepo.Delete(ctx, id)
}

func validateListingInput(input CreateListingInput) error {
	if input.Title == "" {
		return fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}
	if input.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", apperr.ErrValidation)
	}
	if input.WalkMinutes != nil && *input.WalkMinutes < 0 {
		return fmt.Errorf("%w: walk minutes must not be negative", apperr.ErrValidation)
	}
	switch input.RoomType {
	case domain.RoomTypePrivate, domain.RoomTypeSemiPrivate, domain.RoomTypeShared:
	default:
		return fmt.Errorf("%w: unknown room type %q", apperr.ErrValidation, input.RoomType)
	}
	switch input.GenderRestriction {
	case "", domain.GenderAny, domain.GenderMale, domain.GenderFemale:
	default:
		return fmt.Errorf("%w: unknown gender restriction %q", apperr.ErrValidation, input.GenderRestriction)
	}
	return nil
}
