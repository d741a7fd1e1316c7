package transport

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/nutshop/internal/models"
	"github.com/Skotchmaster/nutshop/internal/repo"
)

// Money renders a decimal as a bare JSON number.
type Money struct {
	decimal.Decimal
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

func M(d decimal.Decimal) Money { return Money{Decimal: d} }

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type NewTokenResponse struct {
	Message  string `json:"message"`
	NewToken string `json:"new_token"`
}

type PersonalResponse struct {
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	AvatarURL       *string `json:"avatarUrl"`
	ShippingAddress *string `json:"shippingAddress"`
	PaymentMethod   *string `json:"paymentMethod"`
	Balance         Money   `json:"balance"`
}

type ProductResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    Money   `json:"price"`
	ImageURL *string `json:"imageUrl"`
}

type ProductAddedResponse struct {
	Message string          `json:"message"`
	Product ProductResponse `json:"product"`
}

type CartLineResponse struct {
	ProductID uint   `json:"productId"`
	Name      string `json:"name"`
	Price     Money  `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  Money  `json:"subtotal"`
}

type WishlistItemResponse struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Price     Money   `json:"price"`
	ImageURL  *string `json:"imageUrl"`
}

type OrderPlacedResponse struct {
	Message      string  `json:"message"`
	OrderID      uint    `json:"orderId"`
	TotalPrice   Money   `json:"totalPrice"`
	OrderComment *string `json:"orderComment"`
}

type OrderItemResponse struct {
	ProductID       uint  `json:"productId"`
	Quantity        int   `json:"quantity"`
	PriceAtPurchase Money `json:"priceAtPurchase"`
}

type OrderResponse struct {
	OrderID    uint                `json:"orderId"`
	CreatedAt  time.Time           `json:"createdAt"`
	TotalPrice Money               `json:"totalPrice"`
	Comment    *string             `json:"comment"`
	Items      []OrderItemResponse `json:"items"`
}

type RequestHistoryResponse struct {
	ID        uint      `json:"id"`
	Endpoint  string    `json:"endpoint"`
	Timestamp time.Time `json:"timestamp"`
}

type BalanceResponse struct {
	Message string `json:"message"`
	Balance Money  `json:"balance"`
}

func Personal(u *models.User) PersonalResponse {
	return PersonalResponse{
		Username:        u.Username,
		Email:           u.Email,
		AvatarURL:       u.AvatarURL,
		ShippingAddress: u.ShippingAddress,
		PaymentMethod:   u.PaymentMethod,
		Balance:         M(u.Balance),
	}
}

func Product(p models.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, Price: M(p.Price), ImageURL: p.ImageURL}
}

func Products(ps []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, Product(p))
	}
	return out
}

func Cart(lines []repo.CartLine) []CartLineResponse {
	out := make([]CartLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, CartLineResponse{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Price:     M(l.Product.Price),
			Quantity:  l.Item.Quantity,
			Subtotal:  M(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Item.Quantity)))),
		})
	}
	return out
}

func Wishlist(ps []models.Product) []WishlistItemResponse {
	out := make([]WishlistItemResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, WishlistItemResponse{ProductID: p.ID, Name: p.Name, Price: M(p.Price), ImageURL: p.ImageURL})
	}
	return out
}

func Orders(orders []repo.OrderWithItems) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		items := make([]OrderItemResponse, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, OrderItemResponse{
				ProductID:       it.ProductID,
				Quantity:        it.Quantity,
				PriceAtPurchase: M(it.PriceAtPurchase),
			})
		}
		out = append(out, OrderResponse{
			OrderID:    o.Order.ID,
			CreatedAt:  o.Order.CreatedAt,
			TotalPrice: M(o.Order.TotalPrice),
			Comment:    o.Order.Comment,
			Items:      items,
		})
	}
	return out
}

func RequestHistory(entries []models.RequestHistory) []RequestHistoryResponse {
	out := make([]RequestHistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, RequestHistoryResponse{ID: e.ID, Endpoint: e.Endpoint, Timestamp: e.Timestamp})
	}
	return out
}
