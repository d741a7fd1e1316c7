package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money columns are decimal(18,2): two fractional digits, absolute value below MaxMoney.
const MoneyScale = 2

var MaxMoney = decimal.New(1, 16)

type User struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"      json:"id"`
	Username        string          `gorm:"uniqueIndex;not null"          json:"username"`
	Email           string          `gorm:"uniqueIndex;not null"          json:"email"`
	PasswordHash    string          `gorm:"not null"                      json:"-"`
	Token           string          `gorm:"uniqueIndex;not null"          json:"-"`
	AvatarURL       *string         `                                     json:"avatarUrl"`
	ShippingAddress *string         `                                     json:"shippingAddress"`
	PaymentMethod   *string         `                                     json:"paymentMethod"`
	Balance         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"balance"`
}

type Product struct {
	ID       uint            `gorm:"primaryKey;autoIncrement"        json:"id"`
	Name     string          `gorm:"not null"                        json:"name"`
	Price    decimal.Decimal `gorm:"type:decimal(18,2);not null"     json:"price"`
	ImageURL *string         `                                       json:"imageUrl"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement"                    json:"id"`
	UserID    uint `gorm:"uniqueIndex:idx_cart_user_product;not null"  json:"user_id"`
	ProductID uint `gorm:"uniqueIndex:idx_cart_user_product;not null"  json:"product_id"`
	Quantity  int  `gorm:"not null;default:1;check:quantity > 0"       json:"quantity"`
}

type WishlistItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement"                        json:"id"`
	UserID    uint `gorm:"uniqueIndex:idx_wishlist_user_product;not null"  json:"user_id"`
	ProductID uint `gorm:"uniqueIndex:idx_wishlist_user_product;not null"  json:"product_id"`
}

type Order struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	UserID     uint            `gorm:"index;not null"               json:"user_id"`
	CreatedAt  time.Time       `gorm:"not null"                     json:"created_at"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"  json:"total_price"`
	Comment    *string         `                                    json:"comment"`
}

// OrderItem keeps the price the product had when the order was placed.
type OrderItem struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	OrderID         uint            `gorm:"index;not null"               json:"order_id"`
	ProductID       uint            `gorm:"not null"                     json:"product_id"`
	Quantity        int             `gorm:"not null"                     json:"quantity"`
	PriceAtPurchase decimal.Decimal `gorm:"type:decimal(18,2);not null"  json:"price_at_purchase"`
}

type RequestHistory struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	UserID    uint      `gorm:"index;not null"            json:"user_id"`
	Endpoint  string    `gorm:"not null"                  json:"endpoint"`
	Timestamp time.Time `gorm:"index;not null"            json:"timestamp"`
}

// All lists every table handled by AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Product{},
		&CartItem{},
		&WishlistItem{},
		&Order{},
		&OrderItem{},
		&RequestHistory{},
	}
}
