package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/amontenegro/gadgethub-backend/internal/app/model"
	"github.com/amontenegro/gadgethub-backend/internal/app/repository"
	"github.com/amontenegro/gadgethub-backend/internal/storage"
	"github.com/amontenegro/gadgethub-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrInvalidReviewInput  = errors.New("invalid review input")
	ErrReviewImageNotFound = errors.New("review image not found")
	ErrReviewImageLimit    = errors.New("review image limit exceeded")
)

const reviewImageFolder = "reviews"

type CreateReviewInput struct {
	ProductID    *uint
	SaleID       *uint
	CustomerName string
	ProductName  string
	Rating       int
	Description  string
	IsFeatured   bool
}

type UpdateReviewInput struct {
	CustomerName *string
	ProductName  *string
	Rating       *int
	Description  *string
	IsFeatured   *bool
}

type ReviewService interface {
	List() ([]model.Review, error)
	ListFeatured() ([]model.Review, error)
	GetByID(id uint) (*model.Review, error)
	Create(input CreateReviewInput) (*model.Review, error)
	Update(id uint, input UpdateReviewInput) (*model.Review, error)
	Delete(ctx context.Context, id uint) error
	UploadImages(ctx context.Context, reviewID uint, files []*multipart.FileHeader) ([]model.ReviewImage, error)
	DeleteImage(ctx context.Context, imageID uint) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	storage     storage.Storage
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	store storage.Storage,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		storage:     store,
	}
}

func (s *reviewService) List() ([]model.Review, error) {
	return s.reviewRepo.FindAll()
}

func (s *reviewService) ListFeatured() ([]model.Review, error) {
	return s.reviewRepo.FindFeatured(5)
}

func (s *reviewService) GetByID(id uint) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Create(input CreateReviewInput) (*model.Review, error) {
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.ProductName = strings.TrimSpace(input.ProductName)
	input.Description = strings.TrimSpace(input.Description)

	logger.Info("Creating review", map[string]interface{}{
		"customer_name": input.CustomerName,
		"product_id":    input.ProductID,
		"rating":        input.Rating,
	})

	if input.CustomerName == "" || input.ProductName == "" || input.Description == "" {
		return nil, ErrInvalidReviewInput
	}
	if input.Rating < 1 || input.Rating > 5 {
		logger.Warn("Review rejected: rating out of range", map[string]interface{}{
			"rating": input.Rating,
		})
		return nil, ErrInvalidReviewInput
	}

	if input.ProductID != nil {
		if _, err := s.productRepo.FindByID(*input.ProductID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
	}

	review := &model.Review{
		ProductID:    input.ProductID,
		SaleID:       input.SaleID,
		CustomerName: input.CustomerName,
		ProductName:  input.ProductName,
		Rating:       input.Rating,
		Description:  input.Description,
		IsFeatured:   input.IsFeatured,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id": review.ID,
	})
	return review, nil
}

func (s *reviewService) Update(id uint, input UpdateReviewInput) (*model.Review, error) {
	logger.Info("Updating review", map[string]interface{}{
		"review_id": id,
	})

	review, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.CustomerName != nil {
		name := strings.TrimSpace(*input.CustomerName)
		if name == "" {
			return nil, ErrInvalidReviewInput
		}
		review.CustomerName = name
	}
	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			return nil, ErrInvalidReviewInput
		}
		review.Rating = *input.Rating
	}
	if input.ProductName != nil {
		name := strings.TrimSpace(*input.ProductName)
		if name == "" {
			return nil, ErrInvalidReviewInput
		}
		review.ProductName = name
	}
	if input.Description != nil {
		text := strings.TrimSpace(*input.Description)
		if text == "" {
			return nil, ErrInvalidReviewInput
		}
		review.Description = text
	}
	if input.IsFeatured != nil {
		review.IsFeatured = *input.IsFeatured
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes the review's storage objects first, then the row; image rows
// go with it via the cascade.
func (s *reviewService) Delete(ctx context.Context, id uint) error {
	logger.Info("Deleting review", map[string]interface{}{
		"review_id": id,
	})

	if _, err := s.GetByID(id); err != nil {
		return err
	}

	images, err := s.reviewRepo.ListImagesByReviewID(id)
	if err != nil {
		return err
	}
	for _, image := range images {
		if image.StoragePath == "" {
			continue
		}
		if err := s.storage.Delete(ctx, image.StoragePath); err != nil {
			logger.Error("Failed to delete review image from storage", err, map[string]interface{}{
				"review_id": id,
				"key":       image.StoragePath,
			})
		}
	}

	return s.reviewRepo.Delete(id)
}

// UploadImages stores a multipart batch for a review. Unlike product batches
// the whole batch aborts on the first failure, and a review never holds more
// than model.MaxReviewImages images.
func (s *reviewService) UploadImages(ctx context.Context, reviewID uint, files []*multipart.FileHeader) ([]model.ReviewImage, error) {
	if len(files) == 0 {
		return nil, ErrNoFilesUploaded
	}

	if _, err := s.GetByID(reviewID); err != nil {
		return nil, err
	}

	existing, err := s.reviewRepo.CountImages(reviewID)
	if err != nil {
		return nil, err
	}
	if existing+int64(len(files)) > model.MaxReviewImages {
		logger.Warn("Review image batch rejected: limit exceeded", map[string]interface{}{
			"review_id": reviewID,
			"existing":  existing,
			"incoming":  len(files),
		})
		return nil, ErrReviewImageLimit
	}

	logger.Info("Uploading review images", map[string]interface{}{
		"review_id":  reviewID,
		"file_count": len(files),
	})

	var saved []model.ReviewImage
	for i, header := range files {
		url, key, err := uploadImageFile(ctx, s.storage, reviewImageFolder, header)
		if err != nil {
			logger.Error("Review image batch aborted: upload failed", err, map[string]interface{}{
				"review_id": reviewID,
				"filename":  header.Filename,
			})
			return nil, err
		}

		image := &model.ReviewImage{
			ReviewID:     reviewID,
			ImageURL:     url,
			StoragePath:  key,
			DisplayOrder: int(existing) + i,
		}
		if err := s.reviewRepo.AddImage(image); err != nil {
			if delErr := s.storage.Delete(ctx, key); delErr != nil {
				logger.Error("Failed to remove orphaned upload", delErr, map[string]interface{}{
					"key": key,
				})
			}
			return nil, err
		}
		saved = append(saved, *image)
	}

	return saved, nil
}

func (s *reviewService) DeleteImage(ctx context.Context, imageID uint) error {
	image, err := s.reviewRepo.FindImageByID(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewImageNotFound
		}
		return err
	}

	logger.Info("Deleting review image", map[string]interface{}{
		"image_id":  imageID,
		"review_id": image.ReviewID,
	})

	if image.StoragePath != "" {
		if err := s.storage.Delete(ctx, image.StoragePath); err != nil {
			logger.Error("Failed to delete review image from storage", err, map[string]interface{}{
				"image_id": imageID,
				"key":      image.StoragePath,
			})
		}
	}

	return s.reviewRepo.DeleteImage(imageID)
}
