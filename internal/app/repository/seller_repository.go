package repository

import (
	"github.com/amontenegro/gadgethub-backend/internal/app/model"
	"github.com/amontenegro/gadgethub-backend/pkg/logger"
	"gorm.io/gorm"
)

type SellerRepository interface {
	Get() (*model.SellerProfile, error)
	Save(profile *model.SellerProfile) error
}

type sellerRepository struct {
	db *gorm.DB
}

func NewSellerRepository(db *gorm.DB) SellerRepository {
	return &sellerRepository{db: db}
}

// Get returns the singleton profile row. Migration seeds it, so a missing row
// surfaces as gorm.ErrRecordNotFound only on an unmigrated database.
func (r *sellerRepository) Get() (*model.SellerProfile, error) {
	var profile model.SellerProfile
	if err := r.db.First(&profile).Error; err != nil {
		logger.Error("Failed to load seller profile from database", err, nil)
		return nil, err
	}
	return &profile, nil
}

func (r *sellerRepository) Save(profile *model.SellerProfile) error {
	logger.Debug("Saving seller profile in database", map[string]interface{}{
		"profile_id": profile.ID,
	})

	if err := r.db.Save(profile).Error; err != nil {
		logger.Error("Failed to save seller profile in database", err, map[string]interface{}{
			"profile_id": profile.ID,
		})
		return err
	}
	return nil
}
