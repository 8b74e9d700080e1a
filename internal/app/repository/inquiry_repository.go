package repository

import (
	"github.com/amontenegro/gadgethub-backend/internal/app/model"
	"github.com/amontenegro/gadgethub-backend/pkg/logger"
	"gorm.io/gorm"
)

// InquiryFilter narrows admin inquiry listings
type InquiryFilter struct {
	Status *model.InquiryStatus
	Limit  int
	Offset int
}

// InquiryCounts are the inquiry scalars shown on the dashboard
type InquiryCounts struct {
	Total   int64
	Pending int64
}

type InquiryRepository interface {
	Create(inquiry *model.Inquiry) error
	FindWithFilter(filter InquiryFilter) ([]model.Inquiry, error)
	FindByID(id uint) (*model.Inquiry, error)
	UpdateStatus(id uint, status model.InquiryStatus) error
	Delete(id uint) error
	Counts() (InquiryCounts, error)
	FindRecent(limit int) ([]model.Inquiry, error)
	ListProductRefs() ([]uint, error)
}

type inquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) preload() *gorm.DB {
	return r.db.Preload("Product", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "category", "price")
	})
}

func (r *inquiryRepository) Create(inquiry *model.Inquiry) error {
	logger.Debug("Creating inquiry in database", map[string]interface{}{
		"customer_email": inquiry.CustomerEmail,
		"product_id":     inquiry.ProductID,
	})

	if err := r.db.Create(inquiry).Error; err != nil {
		logger.Error("Failed to create inquiry in database", err, map[string]interface{}{
			"customer_email": inquiry.CustomerEmail,
		})
		return err
	}

	logger.Debug("Inquiry created in database", map[string]interface{}{
		"inquiry_id": inquiry.ID,
	})
	return nil
}

func (r *inquiryRepository) FindWithFilter(filter InquiryFilter) ([]model.Inquiry, error) {
	logger.Debug("Finding inquiries with filter", map[string]interface{}{
		"status": filter.Status,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})

	query := r.preload().Order("created_at DESC")

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var inquiries []model.Inquiry
	if err := query.Find(&inquiries).Error; err != nil {
		logger.Error("Failed to find inquiries with filter", err, map[string]interface{}{
			"status": filter.Status,
		})
		return nil, err
	}

	logger.Debug("Inquiries found with filter", map[string]interface{}{
		"count": len(inquiries),
	})
	return inquiries, nil
}

func (r *inquiryRepository) FindByID(id uint) (*model.Inquiry, error) {
	var inquiry model.Inquiry
	if err := r.preload().First(&inquiry, id).Error; err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) UpdateStatus(id uint, status model.InquiryStatus) error {
	logger.Debug("Updating inquiry status in database", map[string]interface{}{
		"inquiry_id": id,
		"status":     status,
	})

	if err := r.db.Model(&model.Inquiry{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		logger.Error("Failed to update inquiry status in database", err, map[string]interface{}{
			"inquiry_id": id,
			"status":     status,
		})
		return err
	}
	return nil
}

func (r *inquiryRepository) Delete(id uint) error {
	logger.Debug("Deleting inquiry from database", map[string]interface{}{
		"inquiry_id": id,
	})

	if err := r.db.Delete(&model.Inquiry{}, id).Error; err != nil {
		logger.Error("Failed to delete inquiry from database", err, map[string]interface{}{
			"inquiry_id": id,
		})
		return err
	}
	return nil
}

func (r *inquiryRepository) Counts() (InquiryCounts, error) {
	var counts InquiryCounts

	if err := r.db.Model(&model.Inquiry{}).Count(&counts.Total).Error; err != nil {
		return counts, err
	}
	if err := r.db.Model(&model.Inquiry{}).
		Where("status = ?", model.InquiryStatusPending).
		Count(&counts.Pending).Error; err != nil {
		return counts, err
	}

	return counts, nil
}

func (r *inquiryRepository) FindRecent(limit int) ([]model.Inquiry, error) {
	var inquiries []model.Inquiry
	err := r.preload().
		Order("created_at DESC").
		Limit(limit).
		Find(&inquiries).Error
	if err != nil {
		logger.Error("Failed to find recent inquiries", err, nil)
		return nil, err
	}
	return inquiries, nil
}

// ListProductRefs returns the product_id of every inquiry that references a
// product, in creation order. The dashboard reducers group and rank these.
func (r *inquiryRepository) ListProductRefs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Inquiry{}).
		Where("product_id IS NOT NULL").
		Order("created_at ASC").
		Pluck("product_id", &ids).Error
	if err != nil {
		logger.Error("Failed to list inquiry product refs", err, nil)
		return nil, err
	}
	return ids, nil
}
