package repository

import (
	"github.com/amontenegro/gadgethub-backend/internal/app/model"
	"github.com/amontenegro/gadgethub-backend/pkg/logger"
	"gorm.io/gorm"
)

// CompletedSaleRef is the slim row shape the dashboard reducers consume.
// Quantity 0 means the column was never set and defaults to 1 during
// aggregation.
type CompletedSaleRef struct {
	ProductID  *uint
	Quantity   int
	SaleAmount float64
}

type SaleRepository interface {
	Create(sale *model.Sale) error
	FindAll() ([]model.Sale, error)
	FindByID(id uint) (*model.Sale, error)
	Update(sale *model.Sale) error
	Delete(id uint) error
	ExistsByInquiryID(inquiryID uint) (bool, error)
	CountCompleted() (int64, error)
	FindRecent(limit int) ([]model.Sale, error)
	ListCompletedRefs() ([]CompletedSaleRef, error)
}

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) preload() *gorm.DB {
	return r.db.Preload("Product", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "category", "price")
	})
}

func (r *saleRepository) Create(sale *model.Sale) error {
	logger.Debug("Creating sale in database", map[string]interface{}{
		"inquiry_id":  sale.InquiryID,
		"product_id":  sale.ProductID,
		"sale_amount": sale.SaleAmount,
		"quantity":    sale.Quantity,
	})

	if err := r.db.Create(sale).Error; err != nil {
		logger.Error("Failed to create sale in database", err, map[string]interface{}{
			"inquiry_id": sale.InquiryID,
			"product_id": sale.ProductID,
		})
		return err
	}

	logger.Debug("Sale created in database", map[string]interface{}{
		"sale_id": sale.ID,
	})
	return nil
}

func (r *saleRepository) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	if err := r.preload().Order("sold_at DESC").Find(&sales).Error; err != nil {
		logger.Error("Failed to find sales in database", err, nil)
		return nil, err
	}

	logger.Debug("Sales found in database", map[string]interface{}{
		"count": len(sales),
	})
	return sales, nil
}

func (r *saleRepository) FindByID(id uint) (*model.Sale, error) {
	var sale model.Sale
	if err := r.preload().First(&sale, id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) Update(sale *model.Sale) error {
	logger.Debug("Updating sale in database", map[string]interface{}{
		"sale_id": sale.ID,
	})

	if err := r.db.Save(sale).Error; err != nil {
		logger.Error("Failed to update sale in database", err, map[string]interface{}{
			"sale_id": sale.ID,
		})
		return err
	}
	return nil
}

func (r *saleRepository) Delete(id uint) error {
	logger.Debug("Deleting sale from database", map[string]interface{}{
		"sale_id": id,
	})

	if err := r.db.Delete(&model.Sale{}, id).Error; err != nil {
		logger.Error("Failed to delete sale from database", err, map[string]interface{}{
			"sale_id": id,
		})
		return err
	}
	return nil
}

// ExistsByInquiryID reports whether any sale references the inquiry. This is
// the derived "converted" flag; the unique index on sales.inquiry_id backs it
// authoritatively.
func (r *saleRepository) ExistsByInquiryID(inquiryID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Sale{}).
		Where("inquiry_id = ?", inquiryID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check sale existence for inquiry", err, map[string]interface{}{
			"inquiry_id": inquiryID,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *saleRepository) CountCompleted() (int64, error) {
	var count int64
	err := r.db.Model(&model.Sale{}).
		Where("status = ?", model.SaleStatusCompleted).
		Count(&count).Error
	return count, err
}

func (r *saleRepository) FindRecent(limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.preload().
		Order("sold_at DESC").
		Limit(limit).
		Find(&sales).Error
	if err != nil {
		logger.Error("Failed to find recent sales", err, nil)
		return nil, err
	}
	return sales, nil
}

// ListCompletedRefs returns product, quantity, and amount for every completed
// sale in sale order, feeding the top-selling and revenue reducers.
func (r *saleRepository) ListCompletedRefs() ([]CompletedSaleRef, error) {
	var refs []CompletedSaleRef
	err := r.db.Model(&model.Sale{}).
		Select("product_id", "quantity", "sale_amount").
		Where("status = ?", model.SaleStatusCompleted).
		Order("sold_at ASC").
		Scan(&refs).Error
	if err != nil {
		logger.Error("Failed to list completed sale refs", err, nil)
		return nil, err
	}
	return refs, nil
}
