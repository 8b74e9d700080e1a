package repository

import (
	"github.com/amontenegro/gadgethub-backend/internal/app/model"
	"github.com/amontenegro/gadgethub-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.Review) error
	FindAll() ([]model.Review, error)
	FindFeatured(limit int) ([]model.Review, error)
	FindByID(id uint) (*model.Review, error)
	Update(review *model.Review) error
	Delete(id uint) error
	CountImages(reviewID uint) (int64, error)
	AddImage(image *model.ReviewImage) error
	FindImageByID(id uint) (*model.ReviewImage, error)
	DeleteImage(id uint) error
	ListImagesByReviewID(reviewID uint) ([]model.ReviewImage, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) preload() *gorm.DB {
	return r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order ASC")
	})
}

func (r *reviewRepository) Create(review *model.Review) error {
	logger.Debug("Creating review in database", map[string]interface{}{
		"customer_name": review.CustomerName,
		"product_id":    review.ProductID,
		"rating":        review.Rating,
	})

	if err := r.db.Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"customer_name": review.CustomerName,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) FindAll() ([]model.Review, error) {
	var reviews []model.Review
	if err := r.preload().Order("created_at DESC").Find(&reviews).Error; err != nil {
		logger.Error("Failed to find reviews in database", err, nil)
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindFeatured(limit int) ([]model.Review, error) {
	var reviews []model.Review
	err := r.preload().
		Where("is_featured = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to find featured reviews", err, nil)
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.preload().First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Update(review *model.Review) error {
	logger.Debug("Updating review in database", map[string]interface{}{
		"review_id": review.ID,
	})

	if err := r.db.Save(review).Error; err != nil {
		logger.Error("Failed to update review in database", err, map[string]interface{}{
			"review_id": review.ID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) Delete(id uint) error {
	logger.Debug("Deleting review from database", map[string]interface{}{
		"review_id": id,
	})

	if err := r.db.Delete(&model.Review{}, id).Error; err != nil {
		logger.Error("Failed to delete review from database", err, map[string]interface{}{
			"review_id": id,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) CountImages(reviewID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ReviewImage{}).
		Where("review_id = ?", reviewID).
		Count(&count).Error
	return count, err
}

func (r *reviewRepository) AddImage(image *model.ReviewImage) error {
	if err := r.db.Create(image).Error; err != nil {
		logger.Error("Failed to create review image in database", err, map[string]interface{}{
			"review_id": image.ReviewID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) FindImageByID(id uint) (*model.ReviewImage, error) {
	var image model.ReviewImage
	if err := r.db.First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *reviewRepository) DeleteImage(id uint) error {
	return r.db.Delete(&model.ReviewImage{}, id).Error
}

func (r *reviewRepository) ListImagesByReviewID(reviewID uint) ([]model.ReviewImage, error) {
	var images []model.ReviewImage
	err := r.db.Where("review_id = ?", reviewID).
		Order("display_order ASC").
		Find(&images).Error
	return images, err
}
