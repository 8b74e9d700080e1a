package service

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/amontenegro/gadgethub-backend/internal/app/model"
	"github.com/amontenegro/gadgethub-backend/internal/app/repository"
	"github.com/amontenegro/gadgethub-backend/internal/storage"
	"github.com/amontenegro/gadgethub-backend/pkg/logger"
)

const sellerImageFolder = "seller"

type UpdateSellerInput struct {
	Name         *string
	BusinessName *string
	Email        *string
	Phone        *string
	Address      *string
	Bio          *string
}

type SellerService interface {
	Get() (*model.SellerProfile, error)
	Update(input UpdateSellerInput) (*model.SellerProfile, error)
	UploadPicture(ctx context.Context, file *multipart.FileHeader) (*model.SellerProfile, error)
	RemovePicture(ctx context.Context) (*model.SellerProfile, error)
}

type sellerService struct {
	sellerRepo repository.SellerRepository
	storage    storage.Storage
}

func NewSellerService(sellerRepo repository.SellerRepository, store storage.Storage) SellerService {
	return &sellerService{
		sellerRepo: sellerRepo,
		storage:    store,
	}
}

func (s *sellerService) Get() (*model.SellerProfile, error) {
	return s.sellerRepo.Get()
}

func (s *sellerService) Update(input UpdateSellerInput) (*model.SellerProfile, error) {
	logger.Info("Updating seller profile", nil)

	profile, err := s.sellerRepo.Get()
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		profile.Name = strings.TrimSpace(*input.Name)
	}
	if input.BusinessName != nil {
		profile.BusinessName = strings.TrimSpace(*input.BusinessName)
	}
	if input.Email != nil {
		profile.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		profile.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Address != nil {
		profile.Address = *input.Address
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}

	if err := s.sellerRepo.Save(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UploadPicture stores the new picture before touching the old one, so a
// failed upload leaves the profile intact. The previous object is deleted
// only after the profile row points at the replacement.
func (s *sellerService) UploadPicture(ctx context.Context, file *multipart.FileHeader) (*model.SellerProfile, error) {
	profile, err := s.sellerRepo.Get()
	if err != nil {
		return nil, err
	}

	logger.Info("Uploading seller profile picture", map[string]interface{}{
		"filename": file.Filename,
	})

	url, key, err := uploadImageFile(ctx, s.storage, sellerImageFolder, file)
	if err != nil {
		logger.Error("Failed to upload seller profile picture", err, map[string]interface{}{
			"filename": file.Filename,
		})
		return nil, err
	}

	oldKey := profile.ProfilePicturePath
	profile.ProfilePictureURL = url
	profile.ProfilePicturePath = key

	if err := s.sellerRepo.Save(profile); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			logger.Error("Failed to remove orphaned upload", delErr, map[string]interface{}{
				"key": key,
			})
		}
		return nil, err
	}

	if oldKey != "" {
		if err := s.storage.Delete(ctx, oldKey); err != nil {
			logger.Error("Failed to delete replaced profile picture from storage", err, map[string]interface{}{
				"key": oldKey,
			})
		}
	}

	return profile, nil
}

func (s *sellerService) RemovePicture(ctx context.Context) (*model.SellerProfile, error) {
	profile, err := s.sellerRepo.Get()
	if err != nil {
		return nil, err
	}

	logger.Info("Removing seller profile picture", nil)

	if profile.ProfilePicturePath != "" {
		if err := s.storage.Delete(ctx, profile.ProfilePicturePath); err != nil {
			logger.Error("Failed to delete profile picture from storage", err, map[string]interface{}{
				"key": profile.ProfilePicturePath,
			})
		}
	}

	profile.ProfilePictureURL = ""
	profile.ProfilePicturePath = ""

	if err := s.sellerRepo.Save(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
