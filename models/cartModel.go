package models

import "time"

// Cart is created for a user at registration and lazily on first access
// otherwise. The unique index on UserID enforces one cart per user.
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex" json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is one line in a cart. The composite unique index means re-adding
// the same (product, size, color) increments quantity instead of inserting a
// second row.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"index;uniqueIndex:idx_cart_line" json:"cart_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_line" json:"product_id"`
	SizeID    uint      `gorm:"uniqueIndex:idx_cart_line" json:"size_id"`
	ColorID   uint      `gorm:"uniqueIndex:idx_cart_line" json:"color_id"`
	Product   *Product  `json:"product,omitempty"`
	Size      *Size     `json:"size,omitempty"`
	Color     *Color    `json:"color,omitempty"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`
}
