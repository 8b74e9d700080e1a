package service

import (
	"errors"
	"strings"

	"github.com/amontenegro/gadgethub-backend/internal/app/model"
	"github.com/amontenegro/gadgethub-backend/internal/app/repository"
	"github.com/amontenegro/gadgethub-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInquiryNotFound      = errors.New("inquiry not found")
	ErrInvalidInquiryInput  = errors.New("invalid inquiry input")
	ErrInvalidInquiryStatus = errors.New("invalid inquiry status")
	ErrInquiryConverted     = errors.New("inquiry already converted to a sale")
)

type SubmitInquiryInput struct {
	ProductID     *uint
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Message       string
}

type InquiryService interface {
	Submit(input SubmitInquiryInput) (*model.Inquiry, error)
	List(filter repository.InquiryFilter) ([]model.Inquiry, error)
	GetByID(id uint) (*model.Inquiry, error)
	UpdateStatus(id uint, status string) (*model.Inquiry, error)
	Delete(id uint) error
}

type inquiryService struct {
	inquiryRepo repository.InquiryRepository
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

func NewInquiryService(
	inquiryRepo repository.InquiryRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) InquiryService {
	return &inquiryService{
		inquiryRepo: inquiryRepo,
		productRepo: productRepo,
		saleRepo:    saleRepo,
	}
}

func (s *inquiryService) Submit(input SubmitInquiryInput) (*model.Inquiry, error) {
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.CustomerEmail = strings.TrimSpace(input.CustomerEmail)
	input.Message = strings.TrimSpace(input.Message)

	logger.Info("Submitting inquiry", map[string]interface{}{
		"customer_email": input.CustomerEmail,
		"product_id":     input.ProductID,
	})

	if input.CustomerName == "" || input.CustomerEmail == "" || input.Message == "" {
		logger.Warn("Inquiry submission rejected: missing required fields", map[string]interface{}{
			"customer_email": input.CustomerEmail,
		})
		return nil, ErrInvalidInquiryInput
	}

	if input.ProductID != nil {
		if _, err := s.productRepo.FindByID(*input.ProductID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Inquiry submission rejected: product not found", map[string]interface{}{
					"product_id": *input.ProductID,
				})
				return nil, ErrProductNotFound
			}
			logger.Error("Failed to verify product for inquiry", err, map[string]interface{}{
				"product_id": *input.ProductID,
			})
			return nil, err
		}
	}

	inquiry := &model.Inquiry{
		ProductID:     input.ProductID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Message:       input.Message,
		Status:        model.InquiryStatusPending,
	}

	if err := s.inquiryRepo.Create(inquiry); err != nil {
		return nil, err
	}

	logger.Info("Inquiry submitted", map[string]interface{}{
		"inquiry_id": inquiry.ID,
	})
	return inquiry, nil
}

func (s *inquiryService) List(filter repository.InquiryFilter) ([]model.Inquiry, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.inquiryRepo.FindWithFilter(filter)
}

func (s *inquiryService) GetByID(id uint) (*model.Inquiry, error) {
	inquiry, err := s.inquiryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}
	return inquiry, nil
}

// UpdateStatus moves an inquiry to any stage of the enum. Converted inquiries
// are frozen: once a sale references them the negotiation record is historical.
func (s *inquiryService) UpdateStatus(id uint, status string) (*model.Inquiry, error) {
	logger.Info("Updating inquiry status", map[string]interface{}{
		"inquiry_id": id,
		"status":     status,
	})

	if !model.ValidInquiryStatus(status) {
		logger.Warn("Inquiry status update rejected: unknown status", map[string]interface{}{
			"inquiry_id": id,
			"status":     status,
		})
		return nil, ErrInvalidInquiryStatus
	}

	inquiry, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	converted, err := s.saleRepo.ExistsByInquiryID(id)
	if err != nil {
		return nil, err
	}
	if converted {
		logger.Warn("Inquiry status update rejected: already converted", map[string]interface{}{
			"inquiry_id": id,
		})
		return nil, ErrInquiryConverted
	}

	if err := s.inquiryRepo.UpdateStatus(id, model.InquiryStatus(status)); err != nil {
		return nil, err
	}

	inquiry.Status = model.InquiryStatus(status)
	return inquiry, nil
}

func (s *inquiryService) Delete(id uint) error {
	logger.Info("Deleting inquiry", map[string]interface{}{
		"inquiry_id": id,
	})

	if _, err := s.GetByID(id); err != nil {
		return err
	}

	converted, err := s.saleRepo.ExistsByInquiryID(id)
	if err != nil {
		return err
	}
	if converted {
		logger.Warn("Inquiry deletion rejected: already converted", map[string]interface{}{
			"inquiry_id": id,
		})
		return ErrInquiryConverted
	}

	return s.inquiryRepo.Delete(id)
}
