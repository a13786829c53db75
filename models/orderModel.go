package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Order statuses
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// orderStatusTransitions holds the allowed next states for each status.
// Delivered and Cancelled are terminal.
var orderStatusTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is written once at checkout. Only Status, PaymentStatus and
// UpdatedAt ever change afterwards.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"index" json:"user_id"`
	OrderNumber     string          `gorm:"size:64;uniqueIndex" json:"order_number"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_price"`
	ShippingAddress datatypes.JSON  `json:"shipping_address"`
	PaymentStatus   string          `gorm:"size:20" json:"payment_status"`
	Status          string          `gorm:"size:20" json:"status"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CanTransitionTo reports whether the order may move to the given status.
func (o *Order) CanTransitionTo(status string) bool {
	for _, next := range orderStatusTransitions[o.Status] {
		if next == status {
			return true
		}
	}
	return false
}

// OrderItem snapshots the product at order time. The fields are deliberately
// plain values, not foreign keys, so later catalog edits or deletions never
// alter historical orders.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey" json:"-"`
	OrderID      uint            `gorm:"index" json:"-"`
	ProductID    uint            `json:"product_id"`
	ProductName  string          `gorm:"size:255" json:"product_name"`
	SubName      string          `gorm:"size:255" json:"sub_name"`
	MainImageUrl string          `gorm:"size:500" json:"main_image_url"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"`
	Quantity     int             `json:"quantity"`
	Size         string          `gorm:"size:64" json:"size"`
	Color        string          `gorm:"size:64" json:"color"`
}
