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
	ErrProductNotFound      = errors.New("product not found")
	ErrInvalidProductInput  = errors.New("invalid product input")
	ErrInvalidCategory      = errors.New("invalid product category")
	ErrProductImageNotFound = errors.New("product image not found")
	ErrNoFilesUploaded      = errors.New("no files uploaded")
)

const (
	productImageFolder = "products"
	maxUploadSize      = 10 << 20
)

var allowedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

type CreateProductInput struct {
	Name           string
	Category       string
	Price          float64
	Description    string
	Specifications model.SpecMap
	Availability   *bool
	Featured       bool
	StockCount     int
}

type UpdateProductInput struct {
	Name           *string
	Category       *string
	Price          *float64
	Description    *string
	Specifications model.SpecMap
	Availability   *bool
	Featured       *bool
	StockCount     *int
}

type ImageOrderEntry struct {
	ImageID      uint `json:"image_id" binding:"required"`
	DisplayOrder int  `json:"display_order"`
}

type ProductService interface {
	List(filter repository.ProductFilter) ([]model.Product, error)
	GetByID(id uint) (*model.Product, error)
	Create(input CreateProductInput) (*model.Product, error)
	Update(id uint, input UpdateProductInput) (*model.Product, error)
	Delete(id uint) error
	UploadImages(ctx context.Context, productID uint, files []*multipart.FileHeader) ([]model.ProductImage, error)
	AddImage(ctx context.Context, productID uint, file *multipart.FileHeader, isPrimary bool) (*model.ProductImage, error)
	DeleteImage(ctx context.Context, imageID uint) error
	ReorderImages(entries []ImageOrderEntry) error
}

type productService struct {
	productRepo repository.ProductRepository
	storage     storage.Storage
}

func NewProductService(productRepo repository.ProductRepository, store storage.Storage) ProductService {
	return &productService{
		productRepo: productRepo,
		storage:     store,
	}
}

func (s *productService) List(filter repository.ProductFilter) ([]model.Product, error) {
	return s.productRepo.FindWithFilter(filter)
}

func (s *productService) GetByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) Create(input CreateProductInput) (*model.Product, error) {
	input.Name = strings.TrimSpace(input.Name)

	logger.Info("Creating product", map[string]interface{}{
		"name":     input.Name,
		"category": input.Category,
		"price":    input.Price,
	})

	if input.Name == "" || input.Price < 0 || input.StockCount < 0 {
		return nil, ErrInvalidProductInput
	}
	if !model.ValidCategory(input.Category) {
		logger.Warn("Product creation rejected: unknown category", map[string]interface{}{
			"category": input.Category,
		})
		return nil, ErrInvalidCategory
	}

	availability := true
	if input.Availability != nil {
		availability = *input.Availability
	}

	product := &model.Product{
		Name:           input.Name,
		Category:       model.ProductCategory(input.Category),
		Price:          input.Price,
		Description:    input.Description,
		Specifications: input.Specifications,
		Availability:   availability,
		Featured:       input.Featured,
		StockCount:     input.StockCount,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
	})
	return product, nil
}

func (s *productService) Update(id uint, input UpdateProductInput) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidProductInput
		}
		product.Name = name
	}
	if input.Category != nil {
		if !model.ValidCategory(*input.Category) {
			return nil, ErrInvalidCategory
		}
		product.Category = model.ProductCategory(*input.Category)
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, ErrInvalidProductInput
		}
		product.Price = *input.Price
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Specifications != nil {
		product.Specifications = input.Specifications
	}
	if input.Availability != nil {
		product.Availability = *input.Availability
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}
	if input.StockCount != nil {
		if *input.StockCount < 0 {
			return nil, ErrInvalidProductInput
		}
		product.StockCount = *input.StockCount
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}

// UploadImages stores a multipart batch for a product. Files are processed
// sequentially; a failed file is logged and skipped so one bad upload does not
// sink the batch. The first image of a previously image-less product becomes
// primary.
func (s *productService) UploadImages(ctx context.Context, productID uint, files []*multipart.FileHeader) ([]model.ProductImage, error) {
	if len(files) == 0 {
		return nil, ErrNoFilesUploaded
	}

	product, err := s.GetByID(productID)
	if err != nil {
		return nil, err
	}

	logger.Info("Uploading product images", map[string]interface{}{
		"product_id": productID,
		"file_count": len(files),
	})

	hasImages := len(product.Images) > 0
	nextOrder, err := s.productRepo.NextDisplayOrder(productID)
	if err != nil {
		return nil, err
	}

	var saved []model.ProductImage
	for _, header := range files {
		url, key, err := s.uploadFile(ctx, productImageFolder, header)
		if err != nil {
			logger.Error("Skipping product image: upload failed", err, map[string]interface{}{
				"product_id": productID,
				"filename":   header.Filename,
			})
			continue
		}

		image := &model.ProductImage{
			ProductID:    productID,
			ImageURL:     url,
			StoragePath:  key,
			DisplayOrder: nextOrder,
			IsPrimary:    !hasImages && len(saved) == 0,
		}
		if err := s.productRepo.AddImage(image); err != nil {
			logger.Error("Skipping product image: database insert failed", err, map[string]interface{}{
				"product_id": productID,
				"filename":   header.Filename,
			})
			if delErr := s.storage.Delete(ctx, key); delErr != nil {
				logger.Error("Failed to remove orphaned upload", delErr, map[string]interface{}{
					"key": key,
				})
			}
			continue
		}

		nextOrder++
		saved = append(saved, *image)
	}

	logger.Info("Product image batch finished", map[string]interface{}{
		"product_id": productID,
		"saved":      len(saved),
		"skipped":    len(files) - len(saved),
	})
	return saved, nil
}

// AddImage stores a single image. When marked primary it unsets the flag on
// every other image of the product first.
func (s *productService) AddImage(ctx context.Context, productID uint, file *multipart.FileHeader, isPrimary bool) (*model.ProductImage, error) {
	product, err := s.GetByID(productID)
	if err != nil {
		return nil, err
	}

	url, key, err := s.uploadFile(ctx, productImageFolder, file)
	if err != nil {
		logger.Error("Failed to upload product image", err, map[string]interface{}{
			"product_id": productID,
			"filename":   file.Filename,
		})
		return nil, err
	}

	if isPrimary {
		if err := s.productRepo.ClearPrimary(productID); err != nil {
			return nil, err
		}
	}

	nextOrder, err := s.productRepo.NextDisplayOrder(productID)
	if err != nil {
		return nil, err
	}

	image := &model.ProductImage{
		ProductID:    productID,
		ImageURL:     url,
		StoragePath:  key,
		DisplayOrder: nextOrder,
		IsPrimary:    isPrimary || len(product.Images) == 0,
	}
	if err := s.productRepo.AddImage(image); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			logger.Error("Failed to remove orphaned upload", delErr, map[string]interface{}{
				"key": key,
			})
		}
		return nil, err
	}

	return image, nil
}

// DeleteImage removes the storage object first, then the row. A missing
// storage object is logged but does not block the row delete.
func (s *productService) DeleteImage(ctx context.Context, imageID uint) error {
	image, err := s.productRepo.FindImageByID(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductImageNotFound
		}
		return err
	}

	logger.Info("Deleting product image", map[string]interface{}{
		"image_id":   imageID,
		"product_id": image.ProductID,
	})

	if image.StoragePath != "" {
		if err := s.storage.Delete(ctx, image.StoragePath); err != nil {
			logger.Error("Failed to delete product image from storage", err, map[string]interface{}{
				"image_id": imageID,
				"key":      image.StoragePath,
			})
		}
	}

	return s.productRepo.DeleteImage(imageID)
}

func (s *productService) ReorderImages(entries []ImageOrderEntry) error {
	logger.Info("Reordering product images", map[string]interface{}{
		"entry_count": len(entries),
	})

	for _, entry := range entries {
		if _, err := s.productRepo.FindImageByID(entry.ImageID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductImageNotFound
			}
			return err
		}
		if err := s.productRepo.UpdateImageOrder(entry.ImageID, entry.DisplayOrder); err != nil {
			return err
		}
	}
	return nil
}

func (s *productService) uploadFile(ctx context.Context, folder string, header *multipart.FileHeader) (string, string, error) {
	return uploadImageFile(ctx, s.storage, folder, header)
}
