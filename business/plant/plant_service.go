package plant

import (
	"context"
	"errors"
	"fmt"
	"plantnet/domain"
	"plantnet/pkg/logger"
)

// PlantRepository contract interface
type PlantRepository interface {
	Create(ctx context.Context, plant *domain.Plant) error
	FindByID(ctx context.Context, id uint) (domain.Plant, error)
	FindAll(ctx context.Context) ([]domain.Plant, error)
	FindBySeller(ctx context.Context, email string) ([]domain.Plant, error)
	AdjustQuantity(ctx context.Context, id uint, delta int) (domain.Plant, error)
	Delete(ctx context.Context, id uint) error
}

// AccessPolicy contract interface
type AccessPolicy interface {
	ResolveRole(ctx context.Context, email string) (string, error)
	Require(ctx context.Context, email string, roles ...string) error
}

type plantService struct {
	plantRepo PlantRepository
	policy    AccessPolicy
}

func NewPlantService(plantRepo PlantRepository, policy AccessPolicy) *plantService {
	return &plantService{
		plantRepo: plantRepo,
		policy:    policy,
	}
}

func (s *plantService) CreatePlant(ctx context.Context, sellerEmail string, plant *domain.Plant) (*domain.Plant, error) {
	if err := s.policy.Require(ctx, sellerEmail, domain.RoleSeller); err != nil {
		return nil, err
	}

	// Validation
	if plant.Name == "" {
		logger.Error("Invalid plant data: name is required")
		return nil, errors.New("plant name is required")
	}

	if plant.Category == "" {
		logger.Error("Invalid plant data: category is required")
		return nil, errors.New("plant category is required")
	}

	if plant.Price <= 0 {
		logger.Error("Invalid plant data: price must be greater than 0")
		return nil, errors.New("price must be greater than 0")
	}

	if plant.Quantity < 0 {
		logger.Error("Invalid plant data: quantity cannot be negative")
		return nil, errors.New("quantity cannot be negative")
	}

	plant.SellerEmail = sellerEmail

	if err := s.plantRepo.Create(ctx, plant); err != nil {
		logger.Error("failed to create plant", err)
		return nil, err
	}

	logger.Info("plant created", "name", plant.Name, "seller", sellerEmail)

	return plant, nil
}

func (s *plantService) GetAllPlants(ctx context.Context) ([]domain.Plant, error) {
	plants, err := s.plantRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all plants", err)
		return nil, err
	}

	return plants, nil
}

func (s *plantService) GetPlantByID(ctx context.Context, id uint) (*domain.Plant, error) {
	if id == 0 {
		logger.Error("invalid plant id")
		return nil, errors.New("invalid plant id")
	}

	plant, err := s.plantRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find plant by id", err)
		return nil, err
	}

	return &plant, nil
}

// GetPlantsBySeller lists the calling seller's own inventory.
func (s *plantService) GetPlantsBySeller(ctx context.Context, sellerEmail string) ([]domain.Plant, error) {
	if err := s.policy.Require(ctx, sellerEmail, domain.RoleSeller); err != nil {
		return nil, err
	}

	plants, err := s.plantRepo.FindBySeller(ctx, sellerEmail)
	if err != nil {
		logger.Error("Failed to find seller plants", err)
		return nil, err
	}

	return plants, nil
}

// AdjustQuantity applies a signed delta to a plant's stock. Decrement at
// checkout and increment at cancellation/restock are the same primitive with
// opposite sign; the repository performs it as one atomic increment.
func (s *plantService) AdjustQuantity(ctx context.Context, id uint, delta int) (*domain.Plant, error) {
	if delta == 0 {
		return nil, errors.New("delta must not be zero")
	}

	plant, err := s.plantRepo.AdjustQuantity(ctx, id, delta)
	if err != nil {
		logger.Error("failed to adjust plant quantity", err)
		return nil, err
	}

	return &plant, nil
}

// DeletePlant removes a listing. Only the owning seller (or an admin) may do
// this; orders already referencing the plant simply disappear from enriched
// views.
func (s *plantService) DeletePlant(ctx context.Context, actorEmail string, id uint) error {
	if err := s.policy.Require(ctx, actorEmail, domain.RoleSeller, domain.RoleAdmin); err != nil {
		return err
	}

	plant, err := s.plantRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("plant not found for deletion", err)
		return err
	}

	if plant.SellerEmail != actorEmail {
		role, err := s.policy.ResolveRole(ctx, actorEmail)
		if err != nil {
			return err
		}
		if role != domain.RoleAdmin {
			return fmt.Errorf("plant %d belongs to another seller: %w", id, domain.ErrForbidden)
		}
	}

	if err := s.plantRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete plant", err)
		return err
	}

	logger.Info("plant deleted", "id", id, "actor", actorEmail)

	return nil
}
