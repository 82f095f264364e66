package domain

import "time"

const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusDelivered  = "Delivered"
)

// NextOrderStatus reports whether to is the allowed forward transition from from.
// Delivered is terminal.
func NextOrderStatus(from, to string) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusProcessing
	case OrderStatusProcessing:
		return to == OrderStatusDelivered
	}
	return false
}

type Order struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderNumber   string    `gorm:"column:order_number;unique" json:"order_number"`
	PlantID       uint      `gorm:"column:plant_id;index" json:"plant_id"`
	CustomerEmail string    `gorm:"column:customer_email;index" json:"customer_email"`
	SellerEmail   string    `gorm:"column:seller_email;index" json:"seller_email"`
	Quantity      int       `gorm:"column:quantity" json:"quantity"`
	Price         float64   `gorm:"column:price;type:numeric" json:"price"`
	Address       string    `gorm:"column:address;type:text" json:"address,omitempty"`
	Status        string    `gorm:"column:status" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// EnrichedOrder is an order flattened with selected fields from its referenced
// plant. Orders whose plant no longer exists never appear in enriched views.
type EnrichedOrder struct {
	ID            uint      `json:"id"`
	OrderNumber   string    `json:"order_number"`
	PlantID       uint      `json:"plant_id"`
	CustomerEmail string    `json:"customer_email"`
	SellerEmail   string    `json:"seller_email"`
	Quantity      int       `json:"quantity"`
	Price         float64   `json:"price"`
	Address       string    `json:"address,omitempty"`
	Status        string    `json:"status"`
	PlantName     string    `gorm:"column:plant_name" json:"name"`
	PlantCategory string    `gorm:"column:plant_category" json:"category"`
	PlantImage    string    `gorm:"column:plant_image" json:"image"`
	CreatedAt     time.Time `json:"created_at"`
}
