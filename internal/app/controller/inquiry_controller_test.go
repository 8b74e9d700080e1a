package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/amontenegro/gadgethub-backend/internal/app/model"
	"github.com/amontenegro/gadgethub-backend/internal/app/repository"
	"github.com/amontenegro/gadgethub-backend/internal/app/service"
	"github.com/amontenegro/gadgethub-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupInquiryControllerTest(t *testing.T) (*InquiryController, *gin.Engine, *gorm.DB, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	inquiryRepo := repository.NewInquiryRepository(testDB)
	saleRepo := repository.NewSaleRepository(testDB)
	inquiryService := service.NewInquiryService(inquiryRepo, productRepo, saleRepo)
	inquiryController := NewInquiryController(inquiryService)

	product := &model.Product{
		Name:       "iPhone 15",
		Category:   model.CategoryIPhones,
		Price:      4500,
		StockCount: 10,
	}
	require.NoError(t, testDB.Create(product).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return inquiryController, router, testDB, product
}

func TestInquiryController_SubmitInquiry_Success(t *testing.T) {
	controller, router, _, product := setupInquiryControllerTest(t)
	router.POST("/inquiries", controller.SubmitInquiry)

	body, _ := json.Marshal(map[string]interface{}{
		"product_id":     product.ID,
		"customer_name":  "Ana Torres",
		"customer_email": "ana@example.com",
		"message":        "Is this still available?",
	})
	req := httptest.NewRequest(http.MethodPost, "/inquiries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Inquiry model.Inquiry `json:"inquiry"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotZero(t, resp.Inquiry.ID)
	assert.Equal(t, model.InquiryStatusPending, resp.Inquiry.Status)
}

func TestInquiryController_SubmitInquiry_MissingFields(t *testing.T) {
	controller, router, _, _ := setupInquiryControllerTest(t)
	router.POST("/inquiries", controller.SubmitInquiry)

	body, _ := json.Marshal(map[string]interface{}{
		"customer_name": "Ana Torres",
	})
	req := httptest.NewRequest(http.MethodPost, "/inquiries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInquiryController_SubmitInquiry_UnknownProduct(t *testing.T) {
	controller, router, _, _ := setupInquiryControllerTest(t)
	router.POST("/inquiries", controller.SubmitInquiry)

	body, _ := json.Marshal(map[string]interface{}{
		"product_id":     9999,
		"customer_name":  "Ana Torres",
		"customer_email": "ana@example.com",
		"message":        "Is this still available?",
	})
	req := httptest.NewRequest(http.MethodPost, "/inquiries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInquiryController_GetInquiries_StatusFilter(t *testing.T) {
	controller, router, testDB, product := setupInquiryControllerTest(t)
	router.GET("/admin/inquiries", controller.GetInquiries)

	testDB.Create(&model.Inquiry{
		ProductID: &product.ID, CustomerName: "A", CustomerEmail: "a@example.com",
		Message: "q", Status: model.InquiryStatusPending,
	})
	testDB.Create(&model.Inquiry{
		ProductID: &product.ID, CustomerName: "B", CustomerEmail: "b@example.com",
		Message: "q", Status: model.InquiryStatusContacted,
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/inquiries?status=contacted", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Inquiries []model.Inquiry `json:"inquiries"`
		Count     int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)

	// Unknown status filter is rejected
	req = httptest.NewRequest(http.MethodGet, "/admin/inquiries?status=sold", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInquiryController_UpdateStatus_ConvertedConflict(t *testing.T) {
	controller, router, testDB, product := setupInquiryControllerTest(t)
	router.PUT("/admin/inquiries/:id/status", controller.UpdateInquiryStatus)

	inquiry := &model.Inquiry{
		ProductID: &product.ID, CustomerName: "A", CustomerEmail: "a@example.com",
		Message: "q", Status: model.InquiryStatusResponded,
	}
	require.NoError(t, testDB.Create(inquiry).Error)
	require.NoError(t, testDB.Create(&model.Sale{
		InquiryID: &inquiry.ID, ProductID: &product.ID,
		CustomerName: "A", SaleAmount: 4500, Quantity: 1,
		Status: model.SaleStatusCompleted,
	}).Error)

	body, _ := json.Marshal(map[string]string{"status": "completed"})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/admin/inquiries/%d/status", inquiry.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "INQUIRY_CONVERTED")
}

func TestInquiryController_DeleteInquiry(t *testing.T) {
	controller, router, testDB, product := setupInquiryControllerTest(t)
	router.DELETE("/admin/inquiries/:id", controller.DeleteInquiry)

	inquiry := &model.Inquiry{
		ProductID: &product.ID, CustomerName: "A", CustomerEmail: "a@example.com",
		Message: "q", Status: model.InquiryStatusPending,
	}
	require.NoError(t, testDB.Create(inquiry).Error)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/inquiries/%d", inquiry.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/inquiries/%d", inquiry.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
