package order

import (
	"context"
	"errors"
	"fmt"
	"plantnet/business/plant"
	"plantnet/domain"
	"plantnet/pkg/logger"
	"time"

	"github.com/google/uuid"
)

// OrderRepository contract interface
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	FindEnrichedByCustomer(ctx context.Context, email string) ([]domain.EnrichedOrder, error)
	FindEnrichedBySeller(ctx context.Context, email string) ([]domain.EnrichedOrder, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

// AccessPolicy contract interface
type AccessPolicy interface {
	Require(ctx context.Context, email string, roles ...string) error
}

type CheckoutInput struct {
	PlantID  uint
	Quantity int
	Address  string
}

type orderService struct {
	orderRepo OrderRepository
	plantRepo plant.PlantRepository
	policy    AccessPolicy
}

func NewOrderService(orderRepo OrderRepository, plantRepo plant.PlantRepository, policy AccessPolicy) *orderService {
	return &orderService{
		orderRepo: orderRepo,
		plantRepo: plantRepo,
		policy:    policy,
	}
}

// PlaceOrder runs checkout: the stock decrement is the concurrency gate, then
// the order row is inserted. The two writes are not transactional; a failed
// insert triggers a compensating increment, a crash between them leaves the
// stock understated until reconciled.
func (s *orderService) PlaceOrder(ctx context.Context, customerEmail string, in CheckoutInput) (domain.Order, error) {
	if in.Quantity <= 0 {
		return domain.Order{}, errors.New("quantity must be greater than 0")
	}

	p, err := s.plantRepo.FindByID(ctx, in.PlantID)
	if err != nil {
		logger.Error("plant not found for checkout", err)
		return domain.Order{}, err
	}

	if _, err := s.plantRepo.AdjustQuantity(ctx, in.PlantID, -in.Quantity); err != nil {
		logger.Error("failed to decrement stock at checkout", err)
		return domain.Order{}, err
	}

	order := domain.Order{
		OrderNumber:   uuid.NewString(),
		PlantID:       p.ID,
		CustomerEmail: customerEmail,
		SellerEmail:   p.SellerEmail,
		Quantity:      in.Quantity,
		Price:         p.Price * float64(in.Quantity),
		Address:       in.Address,
		Status:        domain.OrderStatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.orderRepo.Create(ctx, &order); err != nil {
		logger.Error("failed to create order", err)
		if _, restockErr := s.plantRepo.AdjustQuantity(ctx, in.PlantID, in.Quantity); restockErr != nil {
			logger.Warn("failed to restore stock after aborted checkout", restockErr)
		}
		return domain.Order{}, err
	}

	logger.Info("order placed", "order_number", order.OrderNumber, "plant_id", order.PlantID, "quantity", order.Quantity)

	return order, nil
}

// OrdersForCustomer returns the caller's orders enriched with plant fields.
func (s *orderService) OrdersForCustomer(ctx context.Context, email string) ([]domain.EnrichedOrder, error) {
	orders, err := s.orderRepo.FindEnrichedByCustomer(ctx, email)
	if err != nil {
		logger.Error("failed to load customer orders", err)
		return nil, err
	}

	return orders, nil
}

// OrdersForSeller returns incoming orders for the seller dashboard.
func (s *orderService) OrdersForSeller(ctx context.Context, email string) ([]domain.EnrichedOrder, error) {
	if err := s.policy.Require(ctx, email, domain.RoleSeller); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindEnrichedBySeller(ctx, email)
	if err != nil {
		logger.Error("failed to load seller orders", err)
		return nil, err
	}

	return orders, nil
}

// SetOrderStatus advances fulfillment. Only the seller the order was placed
// against may do so, and only along Pending -> Processing -> Delivered.
func (s *orderService) SetOrderStatus(ctx context.Context, actorEmail string, orderID uint, status string) (domain.Order, error) {
	if err := s.policy.Require(ctx, actorEmail, domain.RoleSeller); err != nil {
		return domain.Order{}, err
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		logger.Error("order not found for status change", err)
		return domain.Order{}, err
	}

	if order.SellerEmail != actorEmail {
		return domain.Order{}, fmt.Errorf("order %d belongs to another seller: %w", orderID, domain.ErrForbidden)
	}

	if !domain.NextOrderStatus(order.Status, status) {
		return domain.Order{}, fmt.Errorf("cannot move order from %s to %s: %w", order.Status, status, domain.ErrConflict)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		logger.Error("failed to update order status", err)
		return domain.Order{}, err
	}

	order.Status = status
	return order, nil
}

// CancelOrder deletes a not-yet-delivered order and restores the stock it
// held. Delivered is terminal: the cancel is rejected with no mutation.
func (s *orderService) CancelOrder(ctx context.Context, actorEmail string, orderID uint) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		logger.Error("order not found for cancellation", err)
		return err
	}

	if order.CustomerEmail != actorEmail {
		return fmt.Errorf("order %d belongs to another customer: %w", orderID, domain.ErrForbidden)
	}

	if order.Status == domain.OrderStatusDelivered {
		return fmt.Errorf("cannot cancel once delivered: %w", domain.ErrConflict)
	}

	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		logger.Error("failed to delete order", err)
		return err
	}

	// Restock is best effort: if the plant was deleted in the meantime the
	// cancellation still stands.
	if _, err := s.plantRepo.AdjustQuantity(ctx, order.PlantID, order.Quantity); err != nil {
		logger.Warn("failed to restock after cancellation", err)
	}

	logger.Info("order cancelled", "order_number", order.OrderNumber, "plant_id", order.PlantID)

	return nil
}
