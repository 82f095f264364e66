package postgres

import (
	"context"
	"errors"
	"fmt"
	"plantnet/domain"
	"time"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{
		DB: db,
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := r.DB.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	var order domain.Order

	err := r.DB.WithContext(ctx).First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}

const enrichedColumns = "orders.id, orders.order_number, orders.plant_id, " +
	"orders.customer_email, orders.seller_email, orders.quantity, orders.price, " +
	"orders.address, orders.status, orders.created_at, " +
	"plants.name AS plant_name, plants.category AS plant_category, plants.image AS plant_image"

// FindEnrichedByCustomer joins each order against its plant and flattens the
// plant name/category/image into the row. The INNER JOIN silently drops
// orders whose plant has been deleted; enriched views never surface dangling
// references as errors.
func (r *OrderRepository) FindEnrichedByCustomer(ctx context.Context, email string) ([]domain.EnrichedOrder, error) {
	var rows []domain.EnrichedOrder

	err := r.DB.WithContext(ctx).
		Table("orders").
		Select(enrichedColumns).
		Joins("INNER JOIN plants ON plants.id = orders.plant_id").
		Where("orders.customer_email = ?", email).
		Order("orders.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find customer orders: %w", err)
	}

	return rows, nil
}

func (r *OrderRepository) FindEnrichedBySeller(ctx context.Context, email string) ([]domain.EnrichedOrder, error) {
	var rows []domain.EnrichedOrder

	err := r.DB.WithContext(ctx).
		Table("orders").
		Select(enrichedColumns).
		Joins("INNER JOIN plants ON plants.id = orders.plant_id").
		Where("orders.seller_email = ?", email).
		Order("orders.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find seller orders: %w", err)
	}

	return rows, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.DB.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Order{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
