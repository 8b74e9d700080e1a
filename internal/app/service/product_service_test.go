package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/amontenegro/gadgethub-backend/internal/app/model"
	"github.com/amontenegro/gadgethub-backend/internal/app/repository"
	"github.com/amontenegro/gadgethub-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// makeImageHeaders builds real multipart file headers so header.Open works.
func makeImageHeaders(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range names {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="images"; filename="`+name+`"`)
		h.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["images"]
}

func setupProductServiceTest(t *testing.T) (ProductService, *fakeStorage, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	store := &fakeStorage{}
	productRepo := repository.NewProductRepository(testDB)
	return NewProductService(productRepo, store), store, testDB
}

func TestProductService_Create(t *testing.T) {
	productService, _, _ := setupProductServiceTest(t)

	product, err := productService.Create(CreateProductInput{
		Name:     "iPhone 15 Pro",
		Category: string(model.CategoryIPhones),
		Price:    4500,
		Specifications: model.SpecMap{
			"storage": "256GB",
			"color":   "Natural Titanium",
		},
		StockCount: 10,
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.True(t, product.Availability)

	fetched, err := productService.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "256GB", fetched.Specifications["storage"])
}

func TestProductService_Create_Unavailable(t *testing.T) {
	productService, _, _ := setupProductServiceTest(t)

	unavailable := false
	product, err := productService.Create(CreateProductInput{
		Name:         "Preorder iPhone",
		Category:     string(model.CategoryIPhones),
		Price:        5600,
		Availability: &unavailable,
	})
	require.NoError(t, err)

	// availability=false must survive the insert, not be replaced by a default
	fetched, err := productService.GetByID(product.ID)
	require.NoError(t, err)
	assert.False(t, fetched.Availability)
}

func TestProductService_Create_InvalidCategory(t *testing.T) {
	productService, _, _ := setupProductServiceTest(t)

	_, err := productService.Create(CreateProductInput{
		Name:     "Mystery Gadget",
		Category: "Drones",
		Price:    100,
	})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestProductService_Create_InvalidInput(t *testing.T) {
	productService, _, _ := setupProductServiceTest(t)

	_, err := productService.Create(CreateProductInput{
		Name:     "  ",
		Category: string(model.CategoryAndroid),
		Price:    100,
	})
	assert.ErrorIs(t, err, ErrInvalidProductInput)

	_, err = productService.Create(CreateProductInput{
		Name:     "Galaxy S24",
		Category: string(model.CategoryAndroid),
		Price:    -5,
	})
	assert.ErrorIs(t, err, ErrInvalidProductInput)
}

func TestProductService_List_Filters(t *testing.T) {
	productService, _, _ := setupProductServiceTest(t)

	_, err := productService.Create(CreateProductInput{
		Name: "iPhone 15", Category: string(model.CategoryIPhones), Price: 4500, Featured: true, StockCount: 3,
	})
	require.NoError(t, err)
	_, err = productService.Create(CreateProductInput{
		Name: "Dell XPS 13", Category: string(model.CategoryLaptops), Price: 5400, StockCount: 2,
	})
	require.NoError(t, err)

	laptops := model.CategoryLaptops
	products, err := productService.List(repository.ProductFilter{Category: &laptops})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Dell XPS 13", products[0].Name)

	featured, err := productService.List(repository.ProductFilter{FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "iPhone 15", featured[0].Name)

	search, err := productService.List(repository.ProductFilter{Search: "xps"})
	require.NoError(t, err)
	assert.Len(t, search, 1)
}

func TestProductService_Update(t *testing.T) {
	productService, _, _ := setupProductServiceTest(t)

	product, err := productService.Create(CreateProductInput{
		Name: "iPhone 15", Category: string(model.CategoryIPhones), Price: 4500, StockCount: 3,
	})
	require.NoError(t, err)

	newPrice := 4200.0
	newStock := 8
	updated, err := productService.Update(product.ID, UpdateProductInput{
		Price:      &newPrice,
		StockCount: &newStock,
	})
	require.NoError(t, err)
	assert.Equal(t, 4200.0, updated.Price)
	assert.Equal(t, 8, updated.StockCount)

	bad := "Tablets"
	_, err = productService.Update(product.ID, UpdateProductInput{Category: &bad})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestProductService_Delete(t *testing.T) {
	productService, _, testDB := setupProductServiceTest(t)

	product, err := productService.Create(CreateProductInput{
		Name: "iPhone 15", Category: string(model.CategoryIPhones), Price: 4500,
	})
	require.NoError(t, err)

	require.NoError(t, productService.Delete(product.ID))

	_, err = productService.GetByID(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	// Soft delete keeps the row
	var count int64
	testDB.Unscoped().Model(&model.Product{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestProductService_UploadImages(t *testing.T) {
	productService, store, _ := setupProductServiceTest(t)

	product, err := productService.Create(CreateProductInput{
		Name: "iPhone 15", Category: string(model.CategoryIPhones), Price: 4500,
	})
	require.NoError(t, err)

	files := makeImageHeaders(t, "front.png", "back.png")
	images, err := productService.UploadImages(context.Background(), product.ID, files)
	require.NoError(t, err)
	require.Len(t, images, 2)

	// First image of an empty set becomes primary; order follows the batch
	assert.True(t, images[0].IsPrimary)
	assert.False(t, images[1].IsPrimary)
	assert.Equal(t, 0, images[0].DisplayOrder)
	assert.Equal(t, 1, images[1].DisplayOrder)
	assert.Equal(t, 2, store.uploads)
}

func TestProductService_UploadImages_SkipsFailedFiles(t *testing.T) {
	productService, store, _ := setupProductServiceTest(t)

	product, err := productService.Create(CreateProductInput{
		Name: "iPhone 15", Category: string(model.CategoryIPhones), Price: 4500,
	})
	require.NoError(t, err)

	store.failUpload = true
	files := makeImageHeaders(t, "front.png")
	images, err := productService.UploadImages(context.Background(), product.ID, files)

	// A failed file is skipped, not a batch error
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestProductService_UploadImages_NoFiles(t *testing.T) {
	productService, _, _ := setupProductServiceTest(t)

	_, err := productService.UploadImages(context.Background(), 1, nil)
	assert.ErrorIs(t, err, ErrNoFilesUploaded)
}

func TestProductService_DeleteImage(t *testing.T) {
	productService, store, _ := setupProductServiceTest(t)

	product, err := productService.Create(CreateProductInput{
		Name: "iPhone 15", Category: string(model.CategoryIPhones), Price: 4500,
	})
	require.NoError(t, err)

	files := makeImageHeaders(t, "front.png")
	images, err := productService.UploadImages(context.Background(), product.ID, files)
	require.NoError(t, err)
	require.Len(t, images, 1)

	require.NoError(t, productService.DeleteImage(context.Background(), images[0].ID))
	assert.Len(t, store.deleted, 1)

	err = productService.DeleteImage(context.Background(), images[0].ID)
	assert.ErrorIs(t, err, ErrProductImageNotFound)
}

func TestProductService_ReorderImages(t *testing.T) {
	productService, _, _ := setupProductServiceTest(t)

	product, err := productService.Create(CreateProductInput{
		Name: "iPhone 15", Category: string(model.CategoryIPhones), Price: 4500,
	})
	require.NoError(t, err)

	files := makeImageHeaders(t, "a.png", "b.png")
	images, err := productService.UploadImages(context.Background(), product.ID, files)
	require.NoError(t, err)
	require.Len(t, images, 2)

	err = productService.ReorderImages([]ImageOrderEntry{
		{ImageID: images[0].ID, DisplayOrder: 1},
		{ImageID: images[1].ID, DisplayOrder: 0},
	})
	require.NoError(t, err)

	fetched, err := productService.GetByID(product.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Images, 2)
	assert.Equal(t, images[1].ID, fetched.Images[0].ID)
}
