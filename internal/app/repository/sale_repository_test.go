package repository

import (
	"testing"

	"github.com/amontenegro/gadgethub-backend/internal/app/model"
	"github.com/amontenegro/gadgethub-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSaleRepositoryTest(t *testing.T) (SaleRepository, *gorm.DB, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	product := &model.Product{
		Name:       "iPhone 15",
		Category:   model.CategoryIPhones,
		Price:      4500,
		StockCount: 10,
	}
	require.NoError(t, testDB.Create(product).Error)

	return NewSaleRepository(testDB), testDB, product
}

func TestSaleRepository_UniqueInquiryIndex(t *testing.T) {
	saleRepo, testDB, product := setupSaleRepositoryTest(t)

	inquiry := &model.Inquiry{
		ProductID: &product.ID, CustomerName: "A", CustomerEmail: "a@example.com",
		Message: "q", Status: model.InquiryStatusPending,
	}
	require.NoError(t, testDB.Create(inquiry).Error)

	require.NoError(t, saleRepo.Create(&model.Sale{
		InquiryID: &inquiry.ID, ProductID: &product.ID,
		CustomerName: "A", SaleAmount: 4500, Quantity: 1,
		Status: model.SaleStatusCompleted,
	}))

	// Second sale for the same inquiry violates the unique index
	err := saleRepo.Create(&model.Sale{
		InquiryID: &inquiry.ID, ProductID: &product.ID,
		CustomerName: "A", SaleAmount: 4500, Quantity: 1,
		Status: model.SaleStatusCompleted,
	})
	assert.Error(t, err)

	// Sales without an inquiry are unconstrained
	require.NoError(t, saleRepo.Create(&model.Sale{
		ProductID: &product.ID, CustomerName: "B", SaleAmount: 100, Quantity: 1,
		Status: model.SaleStatusCompleted,
	}))
	require.NoError(t, saleRepo.Create(&model.Sale{
		ProductID: &product.ID, CustomerName: "C", SaleAmount: 100, Quantity: 1,
		Status: model.SaleStatusCompleted,
	}))
}

func TestSaleRepository_ExistsByInquiryID(t *testing.T) {
	saleRepo, testDB, product := setupSaleRepositoryTest(t)

	inquiry := &model.Inquiry{
		ProductID: &product.ID, CustomerName: "A", CustomerEmail: "a@example.com",
		Message: "q", Status: model.InquiryStatusPending,
	}
	require.NoError(t, testDB.Create(inquiry).Error)

	exists, err := saleRepo.ExistsByInquiryID(inquiry.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, saleRepo.Create(&model.Sale{
		InquiryID: &inquiry.ID, CustomerName: "A", SaleAmount: 4500, Quantity: 1,
		Status: model.SaleStatusCompleted,
	}))

	exists, err = saleRepo.ExistsByInquiryID(inquiry.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSaleRepository_ListCompletedRefs(t *testing.T) {
	saleRepo, _, product := setupSaleRepositoryTest(t)

	require.NoError(t, saleRepo.Create(&model.Sale{
		ProductID: &product.ID, CustomerName: "A", SaleAmount: 9000, Quantity: 2,
		Status: model.SaleStatusCompleted,
	}))
	require.NoError(t, saleRepo.Create(&model.Sale{
		ProductID: &product.ID, CustomerName: "B", SaleAmount: 4500, Quantity: 1,
		Status: model.SaleStatusRefunded,
	}))
	require.NoError(t, saleRepo.Create(&model.Sale{
		CustomerName: "C", SaleAmount: 200, Quantity: 1,
		Status: model.SaleStatusCompleted,
	}))

	refs, err := saleRepo.ListCompletedRefs()
	require.NoError(t, err)

	// Refunded sales are excluded; product-less sales are included
	require.Len(t, refs, 2)
	assert.Equal(t, 9000.0, refs[0].SaleAmount)
	assert.Nil(t, refs[1].ProductID)
}

func TestSaleRepository_CountCompleted(t *testing.T) {
	saleRepo, _, product := setupSaleRepositoryTest(t)

	require.NoError(t, saleRepo.Create(&model.Sale{
		ProductID: &product.ID, CustomerName: "A", SaleAmount: 9000, Quantity: 2,
		Status: model.SaleStatusCompleted,
	}))
	require.NoError(t, saleRepo.Create(&model.Sale{
		ProductID: &product.ID, CustomerName: "B", SaleAmount: 4500, Quantity: 1,
		Status: model.SaleStatusCancelled,
	}))

	count, err := saleRepo.CountCompleted()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSaleRepository_FindAll_PreloadsProduct(t *testing.T) {
	saleRepo, _, product := setupSaleRepositoryTest(t)

	require.NoError(t, saleRepo.Create(&model.Sale{
		ProductID: &product.ID, CustomerName: "A", SaleAmount: 4500, Quantity: 1,
		Status: model.SaleStatusCompleted,
	}))

	sales, err := saleRepo.FindAll()
	require.NoError(t, err)
	require.Len(t, sales, 1)
	require.NotNil(t, sales[0].Product)
	assert.Equal(t, "iPhone 15", sales[0].Product.Name)
}
