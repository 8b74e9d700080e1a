package service

import (
	"context"
	"testing"

	"github.com/amontenegro/gadgethub-backend/internal/app/model"
	"github.com/amontenegro/gadgethub-backend/internal/app/repository"
	"github.com/amontenegro/gadgethub-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewServiceTest(t *testing.T) (ReviewService, *fakeStorage, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	store := &fakeStorage{}
	reviewRepo := repository.NewReviewRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	return NewReviewService(reviewRepo, productRepo, store), store, testDB
}

func TestReviewService_Create(t *testing.T) {
	reviewService, _, _ := setupReviewServiceTest(t)

	review, err := reviewService.Create(CreateReviewInput{
		CustomerName: "Maria Soto",
		ProductName:  "iPhone 14",
		Rating:       5,
		Description:  "Great phone, arrived the same day.",
	})
	require.NoError(t, err)
	assert.NotZero(t, review.ID)
	assert.False(t, review.IsFeatured)
}

func TestReviewService_Create_InvalidRating(t *testing.T) {
	reviewService, _, _ := setupReviewServiceTest(t)

	_, err := reviewService.Create(CreateReviewInput{
		CustomerName: "Maria Soto",
		ProductName:  "iPhone 14",
		Rating:       6,
		Description:  "Too good",
	})
	assert.ErrorIs(t, err, ErrInvalidReviewInput)

	_, err = reviewService.Create(CreateReviewInput{
		CustomerName: "Maria Soto",
		ProductName:  "iPhone 14",
		Rating:       0,
		Description:  "Too bad",
	})
	assert.ErrorIs(t, err, ErrInvalidReviewInput)
}

func TestReviewService_ListFeatured(t *testing.T) {
	reviewService, _, _ := setupReviewServiceTest(t)

	for i := 0; i < 3; i++ {
		_, err := reviewService.Create(CreateReviewInput{
			CustomerName: "Maria Soto",
			ProductName:  "iPhone 14",
			Rating:       5,
			Description:  "Great phone",
			IsFeatured:   i < 2,
		})
		require.NoError(t, err)
	}

	featured, err := reviewService.ListFeatured()
	require.NoError(t, err)
	assert.Len(t, featured, 2)

	all, err := reviewService.List()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestReviewService_Update_ToggleFeatured(t *testing.T) {
	reviewService, _, _ := setupReviewServiceTest(t)

	review, err := reviewService.Create(CreateReviewInput{
		CustomerName: "Maria Soto",
		ProductName:  "iPhone 14",
		Rating:       4,
		Description:  "Great phone",
	})
	require.NoError(t, err)

	featured := true
	updated, err := reviewService.Update(review.ID, UpdateReviewInput{IsFeatured: &featured})
	require.NoError(t, err)
	assert.True(t, updated.IsFeatured)

	bad := 9
	_, err = reviewService.Update(review.ID, UpdateReviewInput{Rating: &bad})
	assert.ErrorIs(t, err, ErrInvalidReviewInput)
}

func TestReviewService_UploadImages_BatchSaved(t *testing.T) {
	reviewService, store, _ := setupReviewServiceTest(t)

	review, err := reviewService.Create(CreateReviewInput{
		CustomerName: "Maria Soto",
		ProductName:  "iPhone 14",
		Rating:       5,
		Description:  "Great phone",
	})
	require.NoError(t, err)

	files := makeImageHeaders(t, "unboxing.png", "screen.png")
	images, err := reviewService.UploadImages(context.Background(), review.ID, files)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, 0, images[0].DisplayOrder)
	assert.Equal(t, 1, images[1].DisplayOrder)
	assert.Equal(t, 2, store.uploads)
}

func TestReviewService_UploadImages_CapEnforced(t *testing.T) {
	reviewService, _, testDB := setupReviewServiceTest(t)

	review, err := reviewService.Create(CreateReviewInput{
		CustomerName: "Maria Soto",
		ProductName:  "iPhone 14",
		Rating:       5,
		Description:  "Great phone",
	})
	require.NoError(t, err)

	for i := 0; i < model.MaxReviewImages-1; i++ {
		testDB.Create(&model.ReviewImage{
			ReviewID:     review.ID,
			ImageURL:     "https://cdn.example.com/x.png",
			StoragePath:  "reviews/x.png",
			DisplayOrder: i,
		})
	}

	// 4 existing + 2 incoming exceeds the cap of 5
	files := makeImageHeaders(t, "a.png", "b.png")
	_, err = reviewService.UploadImages(context.Background(), review.ID, files)
	assert.ErrorIs(t, err, ErrReviewImageLimit)

	// 4 existing + 1 incoming fits
	files = makeImageHeaders(t, "a.png")
	images, err := reviewService.UploadImages(context.Background(), review.ID, files)
	require.NoError(t, err)
	assert.Len(t, images, 1)
}

func TestReviewService_UploadImages_AbortsOnFailure(t *testing.T) {
	reviewService, store, testDB := setupReviewServiceTest(t)

	review, err := reviewService.Create(CreateReviewInput{
		CustomerName: "Maria Soto",
		ProductName:  "iPhone 14",
		Rating:       5,
		Description:  "Great phone",
	})
	require.NoError(t, err)

	store.failUpload = true
	files := makeImageHeaders(t, "a.png", "b.png")
	_, err = reviewService.UploadImages(context.Background(), review.ID, files)
	require.Error(t, err)

	// Nothing was persisted
	var count int64
	testDB.Model(&model.ReviewImage{}).Count(&count)
	assert.Zero(t, count)
}

func TestReviewService_Delete_RemovesStorageObjects(t *testing.T) {
	reviewService, store, testDB := setupReviewServiceTest(t)

	review, err := reviewService.Create(CreateReviewInput{
		CustomerName: "Maria Soto",
		ProductName:  "iPhone 14",
		Rating:       5,
		Description:  "Great phone",
	})
	require.NoError(t, err)

	files := makeImageHeaders(t, "a.png", "b.png")
	_, err = reviewService.UploadImages(context.Background(), review.ID, files)
	require.NoError(t, err)

	require.NoError(t, reviewService.Delete(context.Background(), review.ID))
	assert.Len(t, store.deleted, 2)

	var count int64
	testDB.Model(&model.Review{}).Count(&count)
	assert.Zero(t, count)

	_, err = reviewService.GetByID(review.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}
