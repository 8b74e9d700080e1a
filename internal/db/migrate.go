package db

import (
	"github.com/amontenegro/gadgethub-backend/internal/app/model"
	"github.com/amontenegro/gadgethub-backend/pkg/logger"
)

// Migrate runs database migrations and seeds required data
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Product{},
		&model.ProductImage{},
		&model.Inquiry{},
		&model.Sale{},
		&model.Review{},
		&model.ReviewImage{},
		&model.SellerProfile{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedSellerProfile(); err != nil {
		logger.Error("Failed to seed seller profile during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// seedSellerProfile guarantees the seller_profile singleton row exists.
// The profile is a single-row table; updates always target this row.
func seedSellerProfile() error {
	var count int64
	if err := DB.Model(&model.SellerProfile{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Debug("Seller profile already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding initial seller profile...")

	profile := &model.SellerProfile{
		Name:         "Ann Montenegro",
		BusinessName: "Smart GadgetHub",
		Email:        "owner@gadgethub.shop",
	}
	if err := DB.Create(profile).Error; err != nil {
		return err
	}

	logger.Info("Seller profile seeded successfully", map[string]interface{}{
		"profile_id": profile.ID,
	})
	return nil
}
