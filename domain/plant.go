package domain

import (
	"time"
)

// CREATE TABLE public.plants (
//     id            BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name          TEXT,
//     category      TEXT,
//     description   TEXT,
//     image         TEXT,
//     price         NUMERIC,
//     quantity      INTEGER,
//     seller_email  TEXT,
//     created_at    TIMESTAMPTZ DEFAULT NOW()
// );

type Plant struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:text;not null" json:"name"`
	Category    string    `gorm:"column:category;type:text" json:"category"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Image       string    `gorm:"column:image;type:text" json:"image"`
	Price       float64   `gorm:"column:price;type:numeric" json:"price"`
	Quantity    int       `gorm:"column:quantity" json:"quantity"`
	SellerEmail string    `gorm:"column:seller_email;index" json:"seller_email"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Plant) TableName() string {
	return "plants"
}
