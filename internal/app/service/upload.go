package service

import (
	"context"
	"mime/multipart"

	"github.com/amontenegro/gadgethub-backend/internal/storage"
)

// uploadImageFile validates and stores one multipart image, returning the
// public URL and storage key.
func uploadImageFile(ctx context.Context, store storage.Storage, folder string, header *multipart.FileHeader) (string, string, error) {
	if err := storage.ValidateFileSize(header.Size, maxUploadSize); err != nil {
		return "", "", err
	}
	contentType := header.Header.Get("Content-Type")
	if err := storage.ValidateContentType(contentType, allowedImageTypes); err != nil {
		return "", "", err
	}

	file, err := header.Open()
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	return store.Upload(ctx, folder, header.Filename, contentType, file)
}
