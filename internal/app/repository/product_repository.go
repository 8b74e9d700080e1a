package repository

import (
	"fmt"

	"github.com/amontenegro/gadgethub-backend/internal/app/model"
	"github.com/amontenegro/gadgethub-backend/pkg/logger"
	"gorm.io/gorm"
)

// ProductFilter narrows catalog listings
type ProductFilter struct {
	Category     *model.ProductCategory
	Availability *bool
	FeaturedOnly bool
	Search       string
	Limit        int
	Offset       int
}

// ProductCounts are the catalog scalars shown on the dashboard
type ProductCounts struct {
	Total     int64
	Available int64
	Featured  int64
}

type ProductRepository interface {
	Create(product *model.Product) error
	BulkCreate(products []model.Product, batchSize int) error
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindByIDs(ids []uint) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
	Counts() (ProductCounts, error)
	FindLowStock(threshold, limit int) ([]model.Product, error)

	AddImage(image *model.ProductImage) error
	FindImageByID(id uint) (*model.ProductImage, error)
	DeleteImage(id uint) error
	NextDisplayOrder(productID uint) (int, error)
	ClearPrimary(productID uint) error
	UpdateImageOrder(imageID uint, displayOrder int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.Product{}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		})
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name":     product.Name,
			"category": product.Category,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (r *productRepository) BulkCreate(products []model.Product, batchSize int) error {
	logger.Info("Bulk creating products in database", map[string]interface{}{
		"count":      len(products),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(products, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create products in database", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}
	return nil
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"category":      filter.Category,
		"availability":  filter.Availability,
		"featured_only": filter.FeaturedOnly,
		"search":        filter.Search,
		"limit":         filter.Limit,
		"offset":        filter.Offset,
	})

	query := r.baseQuery()

	if filter.Category != nil {
		query = query.Where("products.category = ?", *filter.Category)
	}
	if filter.Availability != nil {
		query = query.Where("products.availability = ?", *filter.Availability)
	}
	if filter.FeaturedOnly {
		query = query.Where("products.featured = ?", true)
	}
	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("products.name LIKE ?", like)
	}

	query = query.Order("products.created_at DESC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.baseQuery().First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByIDs(ids []uint) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	var products []model.Product
	if err := r.baseQuery().Where("products.id IN ?", ids).Find(&products).Error; err != nil {
		logger.Error("Failed to find products by IDs", err, map[string]interface{}{
			"count": len(ids),
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

func (r *productRepository) Counts() (ProductCounts, error) {
	var counts ProductCounts

	if err := r.db.Model(&model.Product{}).Count(&counts.Total).Error; err != nil {
		return counts, err
	}
	if err := r.db.Model(&model.Product{}).
		Where("availability = ?", true).
		Count(&counts.Available).Error; err != nil {
		return counts, err
	}
	if err := r.db.Model(&model.Product{}).
		Where("featured = ?", true).
		Count(&counts.Featured).Error; err != nil {
		return counts, err
	}

	return counts, nil
}

// FindLowStock lists available products under the stock threshold, lowest
// first. A limit of 0 or less means no limit.
func (r *productRepository) FindLowStock(threshold, limit int) ([]model.Product, error) {
	query := r.db.Model(&model.Product{}).
		Where("stock_count < ? AND availability = ?", threshold, true).
		Order("stock_count ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var products []model.Product
	err := query.Find(&products).Error
	if err != nil {
		logger.Error("Failed to find low stock products", err, map[string]interface{}{
			"threshold": threshold,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) AddImage(image *model.ProductImage) error {
	logger.Debug("Adding product image in database", map[string]interface{}{
		"product_id":    image.ProductID,
		"display_order": image.DisplayOrder,
		"is_primary":    image.IsPrimary,
	})

	if err := r.db.Create(image).Error; err != nil {
		logger.Error("Failed to add product image in database", err, map[string]interface{}{
			"product_id": image.ProductID,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindImageByID(id uint) (*model.ProductImage, error) {
	var image model.ProductImage
	if err := r.db.First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *productRepository) DeleteImage(id uint) error {
	if err := r.db.Delete(&model.ProductImage{}, id).Error; err != nil {
		logger.Error("Failed to delete product image from database", err, map[string]interface{}{
			"image_id": id,
		})
		return err
	}
	return nil
}

// NextDisplayOrder returns one past the highest display_order for a product,
// 0 when the product has no images yet.
func (r *productRepository) NextDisplayOrder(productID uint) (int, error) {
	var image model.ProductImage
	err := r.db.Where("product_id = ?", productID).
		Order("display_order DESC").
		First(&image).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return image.DisplayOrder + 1, nil
}

// ClearPrimary unsets is_primary on every image of a product. Called before
// promoting a new primary so at most one image carries the flag.
func (r *productRepository) ClearPrimary(productID uint) error {
	return r.db.Model(&model.ProductImage{}).
		Where("product_id = ?", productID).
		Update("is_primary", false).Error
}

func (r *productRepository) UpdateImageOrder(imageID uint, displayOrder int) error {
	return r.db.Model(&model.ProductImage{}).
		Where("id = ?", imageID).
		Update("display_order", displayOrder).Error
}
