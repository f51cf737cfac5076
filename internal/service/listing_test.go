package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roomshare/internal/domain"
	"roomshare/internal/repository"
	"roomshare/internal/search"
	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
)

func newListingService(listingRepo *repository.MockListingRepository) ListingService {
	return NewListingService(listingRepo, quietModeration(), logger.New("error"))
}

func TestSearch(t *testing.T) {
	t.Run("returns page and total", func(t *testing.T) {
		listings := []*domain.Listing{
			{ID: uuid.New(), Title: "渋谷の個室", Slug: "tokyo-shibuya"},
		}

		listingRepo := &repository.MockListingRepository{}
		listingRepo.On("Search", mock.Anything, mock.Anything, search.PageSize, 0).Return(listings, nil)
		listingRepo.On("Count", mock.Anything, mock.Anything).Return(57, nil)

		svc := newListingService(listingRepo)

		result := svc.Search(context.Background(), search.Facets{Mode: search.ModeArea, Page: 1})

		assert.Len(t, result.Listings, 1)
		assert.Equal(t, 57, result.TotalCount)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, search.PageSize, result.PageSize)
	})

	t.Run("passes page offset", func(t *testing.T) {
		listingRepo := &repository.MockListingRepository{}
		listingRepo.On("Search", mock.Anything, mock.Anything, search.PageSize, 2*search.PageSize).
			Return([]*domain.Listing{}, nil)
		listingRepo.On("Count", mock.Anything, mock.Anything).Return(0, nil)

		svc := newListingService(listingRepo)

		result := svc.Search(context.Background(), search.Facets{Mode: search.ModeArea, Page: 3})

		assert.Equal(t, 3, result.Page)
		listingRepo.AssertExpectations(t)
	})

	t.Run("store failure degrades to empty result", func(t *testing.T) {
		listingRepo := &repository.MockListingRepository{}
		listingRepo.On("Search", mock.Anything, mock.Anything, search.PageSize, 0).
			Return(nil, errors.New("connection refused"))

		svc := newListingService(listingRepo)

		result := svc.Search(context.Background(), search.Facets{Mode: search.ModeArea, Page: 1})

		require.NotNil(t, result, "search must not fail upward")
		assert.Empty(t, result.Listings)
		assert.Zero(t, result.TotalCount)
	})

	t.Run("count failure degrades to zero total", func(t *testing.T) {
		listings := []*domain.Listing{{ID: uuid.New(), Title: "大阪の相部屋", Slug: "osaka"}}

		listingRepo := &repository.MockListingRepository{}
		listingRepo.On("Search", mock.Anything, mock.Anything, search.PageSize, 0).Return(listings, nil)
		listingRepo.On("Count", mock.Anything, mock.Anything).Return(0, errors.New("timeout"))

		svc := newListingService(listingRepo)

		result := svc.Search(context.Background(), search.Facets{Mode: search.ModeArea, Page: 1})

		assert.Len(t, result.Listings, 1, "the page itself still renders")
		assert.Zero(t, result.TotalCount)
	})

	t.Run("derives missing slugs lazily", func(t *testing.T) {
		id := uuid.New()
		listings := []*domain.Listing{{ID: id, Title: "room", Prefecture: "Tokyo", City: "Shibuya"}}

		listingRepo := &repository.MockListingRepository{}
		listingRepo.On("Search", mock.Anything, mock.Anything, search.PageSize, 0).Return(listings, nil)
		listingRepo.On("Count", mock.Anything, mock.Anything).Return(1, nil)
		listingRepo.On("SetSlug", mock.Anything, id, "tokyo-shibuya").Return(nil)

		svc := newListingService(listingRepo)

		result := svc.Search(context.Background(), search.Facets{Mode: search.ModeArea, Page: 1})

		require.Len(t, result.Listings, 1)
		assert.Equal(t, "tokyo-shibuya", result.Listings[0].Slug)
		listingRepo.AssertCalled(t, "SetSlug", mock.Anything, id, "tokyo-shibuya")
	})
}

func TestCreateListing(t *testing.T) {
	ownerID := uuid.New()
	valid := CreateListingInput{
		Title:    "渋谷徒歩5分の個室",
		Price:    65000,
		RoomType: domain.RoomTypePrivate,
	}

	t.Run("valid input", func(t *testing.T) {
		listingRepo := &repository.MockListingRepository{}
		listingRepo.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
			return l.OwnerID == ownerID && l.IsPublic && l.GenderRestriction == domain.GenderAny
		})).Return(nil)

		svc := newListingService(listingRepo)

		listing, err := svc.Create(context.Background(), ownerID, valid)

		require.NoError(t, err)
		assert.True(t, listing.IsPublic, "new listings default to public")
		listingRepo.AssertExpectations(t)
	})

	t.Run("invalid input", func(t *testing.T) {
		svc := newListingService(&repository.MockListingRepository{})

		cases := []struct {
			name  string
			input CreateListingInput
		}{
			{"missing title", CreateListingInput{Price: 1000, RoomType: domain.RoomTypePrivate}},
			{"negative price", CreateListingInput{Title: "x", Price: -1, RoomType: domain.RoomTypePrivate}},
			{"unknown room type", CreateListingInput{Title: "x", Price: 1000, RoomType: "penthouse"}},
			{"unknown gender", CreateListingInput{Title: "x", Price: 1000, RoomType: domain.RoomTypeShared, GenderRestriction: "other"}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Create(context.Background(), ownerID, tc.input)
				assert.ErrorIs(t, err, apperr.ErrValidation)
			})
		}
	})
}

func TestListingOwnerGating(t *testing.T) {
	ownerID := uuid.New()
	strangerID := uuid.New()
	listingID := uuid.New()
	stored := &domain.Listing{ID: listingID, OwnerID: ownerID, Title: "t", RoomType: domain.RoomTypePrivate}

	input := CreateListingInput{Title: "t", Price: 1000, RoomType: domain.RoomTypePrivate}

	t.Run("update by stranger is forbidden", func(t *testing.T) {
		listingRepo := &repository.MockListingRepository{}
		listingRepo.On("GetByID", mock.Anything, listingID).Return(stored, nil)

		svc := newListingService(listingRepo)

		_, err := svc.Update(context.Background(), listingID, strangerID, input)

		assert.ErrorIs(t, err, apperr.ErrForbidden)
		listingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("visibility by stranger is forbidden", func(t *testing.T) {
		listingRepo := &repository.MockListingRepository{}
		listingRepo.On("GetByID", mock.Anything, listingID).Return(stored, nil)

		svc := newListingService(listingRepo)

		err := svc.SetVisibility(context.Background(), listingID, strangerID, false)

		assert.ErrorIs(t, err, apperr.ErrForbidden)
		listingRepo.AssertNotCalled(t, "SetVisibility", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("owner can hide", func(t *testing.T) {
		listingRepo := &repository.MockListingRepository{}
		listingRepo.On("GetByID", mock.Anything, listingID).Return(stored, nil)
		listingRepo.On("SetVisibility", mock.Anything, listingID, false).Return(nil)

		svc := newListingService(listingRepo)

		err := svc.SetVisibility(context.Background(), listingID, ownerID, false)

		require.NoError(t, err)
		listingRepo.AssertExpectations(t)
	})

	t.Run("delete by stranger is forbidden", func(t *testing.T) {
		listingRepo := &repository.MockListingRepository{}
		listingRepo.On("GetByID", mock.Anything, listingID).Return(stored, nil)

		svc := newListingService(listingRepo)

		err := svc.Delete(context.Background(), listingID, strangerID)

		assert.ErrorIs(t, err, apperr.ErrForbidden)
		listingRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
