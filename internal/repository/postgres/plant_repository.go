package postgres

import (
	"context"
	"errors"
	"fmt"
	"plantnet/domain"

	"gorm.io/gorm"
)

type PlantRepository struct {
	DB *gorm.DB
}

func NewPlantRepository(db *gorm.DB) *PlantRepository {
	return &PlantRepository{
		DB: db,
	}
}

func (r *PlantRepository) Create(ctx context.Context, plant *domain.Plant) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(plant).Error; err != nil {
		return fmt.Errorf("failed to create plant: %w", err)
	}

	return nil
}

func (r *PlantRepository) FindByID(ctx context.Context, id uint) (domain.Plant, error) {
	var plant domain.Plant

	err := r.DB.WithContext(ctx).First(&plant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Plant{}, fmt.Errorf("plant %d: %w", id, domain.ErrNotFound)
		}
		return domain.Plant{}, fmt.Errorf("failed to find plant: %w", err)
	}

	return plant, nil
}

func (r *PlantRepository) FindAll(ctx context.Context) ([]domain.Plant, error) {
	var plants []domain.Plant

	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&plants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find plants: %w", err)
	}

	return plants, nil
}

func (r *PlantRepository) FindBySeller(ctx context.Context, email string) ([]domain.Plant, error) {
	var plants []domain.Plant

	err := r.DB.WithContext(ctx).Where("seller_email = ?", email).Order("created_at DESC").Find(&plants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find plants for seller: %w", err)
	}

	return plants, nil
}

// AdjustQuantity applies a signed delta as a single atomic increment. The
// guard keeps the stored quantity from going below zero; a zero-row update is
// disambiguated into a missing plant vs insufficient stock.
func (r *PlantRepository) AdjustQuantity(ctx context.Context, id uint, delta int) (domain.Plant, error) {
	result := r.DB.WithContext(ctx).Model(&domain.Plant{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return domain.Plant{}, fmt.Errorf("failed to adjust quantity: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var plant domain.Plant
		if err := r.DB.WithContext(ctx).First(&plant, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.Plant{}, fmt.Errorf("plant %d: %w", id, domain.ErrNotFound)
			}
			return domain.Plant{}, fmt.Errorf("failed to find plant: %w", err)
		}
		return domain.Plant{}, fmt.Errorf("insufficient stock for plant %d: %w", id, domain.ErrConflict)
	}

	return r.FindByID(ctx, id)
}

func (r *PlantRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Plant{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete plant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("plant %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
