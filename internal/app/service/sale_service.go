package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amontenegro/gadgethub-backend/internal/app/model"
	"github.com/amontenegro/gadgethub-backend/internal/app/repository"
	apperrors "github.com/amontenegro/gadgethub-backend/internal/errors"
	"github.com/amontenegro/gadgethub-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSaleNotFound       = errors.New("sale not found")
	ErrInvalidSaleInput   = errors.New("invalid sale input")
	ErrInvalidSaleStatus  = errors.New("invalid sale status")
	ErrInquiryAlreadySold = errors.New("inquiry already has a recorded sale")
)

type RecordSaleInput struct {
	InquiryID     *uint
	ProductID     *uint
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	SaleAmount    float64
	Quantity      int
	PaymentMethod string
	Notes         string
}

type UpdateSaleInput struct {
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string
	SaleAmount    *float64
	PaymentMethod *string
	Notes         *string
	Status        *string
}

type SaleService interface {
	Record(input RecordSaleInput) (*model.Sale, error)
	List() ([]model.Sale, error)
	GetByID(id uint) (*model.Sale, error)
	Update(id uint, input UpdateSaleInput) (*model.Sale, error)
	Delete(id uint) error
}

type saleService struct {
	saleRepo    repository.SaleRepository
	inquiryRepo repository.InquiryRepository
	db          *gorm.DB
}

func NewSaleService(
	saleRepo repository.SaleRepository,
	inquiryRepo repository.InquiryRepository,
	db *gorm.DB,
) SaleService {
	return &saleService{
		saleRepo:    saleRepo,
		inquiryRepo: inquiryRepo,
		db:          db,
	}
}

// Record inserts the sale and decrements product stock in one transaction.
// The product row is locked for the duration; stock never goes below zero.
// The unique index on sales.inquiry_id is the authority for one-sale-per-
// inquiry, with an in-transaction existence check as a fast path.
func (s *saleService) Record(input RecordSaleInput) (*model.Sale, error) {
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.CustomerEmail = strings.TrimSpace(input.CustomerEmail)

	logger.Info("Recording sale", map[string]interface{}{
		"inquiry_id":  input.InquiryID,
		"product_id":  input.ProductID,
		"sale_amount": input.SaleAmount,
		"quantity":    input.Quantity,
	})

	if input.CustomerName == "" || input.SaleAmount < 0 {
		logger.Warn("Sale rejected: missing customer name or negative amount", map[string]interface{}{
			"customer_name": input.CustomerName,
			"sale_amount":   input.SaleAmount,
		})
		return nil, ErrInvalidSaleInput
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic while recording sale, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"inquiry_id": input.InquiryID,
			})
		}
	}()

	if input.InquiryID != nil {
		var inquiry model.Inquiry
		if err := tx.First(&inquiry, *input.InquiryID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Sale rejected: inquiry not found", map[string]interface{}{
					"inquiry_id": *input.InquiryID,
				})
				return nil, ErrInquiryNotFound
			}
			logger.Error("Failed to fetch inquiry while recording sale", err, map[string]interface{}{
				"inquiry_id": *input.InquiryID,
			})
			return nil, err
		}

		var existing int64
		if err := tx.Model(&model.Sale{}).
			Where("inquiry_id = ?", *input.InquiryID).
			Count(&existing).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if existing > 0 {
			tx.Rollback()
			logger.Warn("Sale rejected: inquiry already converted", map[string]interface{}{
				"inquiry_id": *input.InquiryID,
			})
			return nil, ErrInquiryAlreadySold
		}
	}

	sale := &model.Sale{
		InquiryID:     input.InquiryID,
		ProductID:     input.ProductID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		SaleAmount:    input.SaleAmount,
		Quantity:      input.Quantity,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
		Status:        model.SaleStatusCompleted,
	}

	if err := tx.Create(sale).Error; err != nil {
		tx.Rollback()
		// The only unique index this insert can hit is sales.inquiry_id.
		if apperrors.IsDuplicateKey(err) {
			logger.Warn("Sale rejected: concurrent conversion of inquiry", map[string]interface{}{
				"inquiry_id": input.InquiryID,
			})
			return nil, ErrInquiryAlreadySold
		}
		logger.Error("Failed to insert sale", err, map[string]interface{}{
			"inquiry_id": input.InquiryID,
		})
		return nil, err
	}

	if input.ProductID != nil {
		var product model.Product
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, *input.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Sale rejected: product not found", map[string]interface{}{
					"product_id": *input.ProductID,
				})
				return nil, ErrProductNotFound
			}
			logger.Error("Failed to lock product while recording sale", err, map[string]interface{}{
				"product_id": *input.ProductID,
			})
			return nil, err
		}

		newStock := product.StockCount - input.Quantity
		if newStock < 0 {
			newStock = 0
		}
		if err := tx.Model(&model.Product{}).
			Where("id = ?", product.ID).
			Update("stock_count", newStock).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to decrement product stock", err, map[string]interface{}{
				"product_id": product.ID,
			})
			return nil, err
		}

		logger.Debug("Product stock decremented", map[string]interface{}{
			"product_id": product.ID,
			"old_stock":  product.StockCount,
			"new_stock":  newStock,
		})
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit sale transaction", err, map[string]interface{}{
			"inquiry_id": input.InquiryID,
		})
		return nil, err
	}

	logger.Info("Sale recorded", map[string]interface{}{
		"sale_id":     sale.ID,
		"inquiry_id":  sale.InquiryID,
		"sale_amount": sale.SaleAmount,
	})
	return sale, nil
}

func (s *saleService) List() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *saleService) GetByID(id uint) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return sale, nil
}

func (s *saleService) Update(id uint, input UpdateSaleInput) (*model.Sale, error) {
	logger.Info("Updating sale", map[string]interface{}{
		"sale_id": id,
	})

	sale, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.CustomerName != nil {
		sale.CustomerName = strings.TrimSpace(*input.CustomerName)
	}
	if input.CustomerEmail != nil {
		sale.CustomerEmail = strings.TrimSpace(*input.CustomerEmail)
	}
	if input.CustomerPhone != nil {
		sale.CustomerPhone = input.CustomerPhone
	}
	if input.SaleAmount != nil {
		if *input.SaleAmount < 0 {
			return nil, ErrInvalidSaleInput
		}
		sale.SaleAmount = *input.SaleAmount
	}
	if input.PaymentMethod != nil {
		sale.PaymentMethod = *input.PaymentMethod
	}
	if input.Notes != nil {
		sale.Notes = *input.Notes
	}
	if input.Status != nil {
		switch model.SaleStatus(*input.Status) {
		case model.SaleStatusCompleted, model.SaleStatusRefunded, model.SaleStatusCancelled:
			sale.Status = model.SaleStatus(*input.Status)
		default:
			logger.Warn("Sale update rejected: unknown status", map[string]interface{}{
				"sale_id": id,
				"status":  *input.Status,
			})
			return nil, ErrInvalidSaleStatus
		}
	}

	if err := s.saleRepo.Update(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// Delete removes the sale row only. Stock is not restored and the originating
// inquiry becomes deletable again once no sale references it.
func (s *saleService) Delete(id uint) error {
	logger.Info("Deleting sale", map[string]interface{}{
		"sale_id": id,
	})

	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.saleRepo.Delete(id)
}
