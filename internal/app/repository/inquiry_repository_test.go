package repository

import (
	"testing"

	"github.com/amontenegro/gadgethub-backend/internal/app/model"
	"github.com/amontenegro/gadgethub-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupInquiryRepositoryTest(t *testing.T) (InquiryRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewInquiryRepository(testDB), testDB
}

func createTestInquiry(t *testing.T, repo InquiryRepository, productID *uint, status model.InquiryStatus) *model.Inquiry {
	t.Helper()
	inquiry := &model.Inquiry{
		ProductID:     productID,
		CustomerName:  "Test Customer",
		CustomerEmail: "customer@example.com",
		Message:       "Is this in stock?",
		Status:        status,
	}
	require.NoError(t, repo.Create(inquiry))
	return inquiry
}

func TestInquiryRepository_FindWithFilter_Status(t *testing.T) {
	repo, _ := setupInquiryRepositoryTest(t)

	createTestInquiry(t, repo, nil, model.InquiryStatusPending)
	createTestInquiry(t, repo, nil, model.InquiryStatusResponded)
	createTestInquiry(t, repo, nil, model.InquiryStatusPending)

	status := model.InquiryStatusPending
	inquiries, err := repo.FindWithFilter(InquiryFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, inquiries, 2)
	for _, inquiry := range inquiries {
		assert.Equal(t, model.InquiryStatusPending, inquiry.Status)
	}

	all, err := repo.FindWithFilter(InquiryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestInquiryRepository_FindWithFilter_Pagination(t *testing.T) {
	repo, _ := setupInquiryRepositoryTest(t)

	for i := 0; i < 5; i++ {
		createTestInquiry(t, repo, nil, model.InquiryStatusPending)
	}

	page, err := repo.FindWithFilter(InquiryFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestInquiryRepository_Counts(t *testing.T) {
	repo, _ := setupInquiryRepositoryTest(t)

	createTestInquiry(t, repo, nil, model.InquiryStatusPending)
	createTestInquiry(t, repo, nil, model.InquiryStatusPending)
	createTestInquiry(t, repo, nil, model.InquiryStatusCompleted)

	counts, err := repo.Counts()
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Total)
	assert.Equal(t, int64(2), counts.Pending)
}

func TestInquiryRepository_ListProductRefs(t *testing.T) {
	repo, testDB := setupInquiryRepositoryTest(t)

	productA := &model.Product{Name: "A", Category: model.CategoryIPhones, Price: 100, StockCount: 1}
	productB := &model.Product{Name: "B", Category: model.CategoryLaptops, Price: 200, StockCount: 1}
	require.NoError(t, testDB.Create(productA).Error)
	require.NoError(t, testDB.Create(productB).Error)

	createTestInquiry(t, repo, &productA.ID, model.InquiryStatusPending)
	createTestInquiry(t, repo, nil, model.InquiryStatusPending)
	createTestInquiry(t, repo, &productB.ID, model.InquiryStatusPending)
	createTestInquiry(t, repo, &productA.ID, model.InquiryStatusPending)

	refs, err := repo.ListProductRefs()
	require.NoError(t, err)

	// General questions carry no product and are excluded
	require.Len(t, refs, 3)
	assert.Equal(t, []uint{productA.ID, productB.ID, productA.ID}, refs)
}

func TestInquiryRepository_UpdateStatus(t *testing.T) {
	repo, _ := setupInquiryRepositoryTest(t)

	inquiry := createTestInquiry(t, repo, nil, model.InquiryStatusPending)

	require.NoError(t, repo.UpdateStatus(inquiry.ID, model.InquiryStatusContacted))

	found, err := repo.FindByID(inquiry.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InquiryStatusContacted, found.Status)
}

func TestInquiryRepository_Delete(t *testing.T) {
	repo, _ := setupInquiryRepositoryTest(t)

	inquiry := createTestInquiry(t, repo, nil, model.InquiryStatusPending)

	require.NoError(t, repo.Delete(inquiry.ID))

	_, err := repo.FindByID(inquiry.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
