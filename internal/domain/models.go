package domain

import "time"

type Role string

const (
	RoleCustomer        Role = "customer"
	RoleRestaurantOwner Role = "restaurant_owner"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleRestaurantOwner
}

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type User struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

type Owner struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type Restaurant struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	PhoneNumber string     `json:"phone_number"`
	Image       string     `json:"image"`
	MenuItems   []MenuItem `json:"menu_items"`
	Owner       Owner      `json:"owner"`
	CreatedAt   time.Time  `json:"created_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at,omitempty"`
}

type MenuItem struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Restaurant  int     `json:"restaurant"`
	IsAvailable bool    `json:"is_available"`
}

type OrderItem struct {
	ID       int     `json:"id,omitempty"`
	MenuItem int     `json:"menu_item"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Order struct {
	ID              int         `json:"id"`
	User            int         `json:"user,omitempty"`
	Restaurant      int         `json:"restaurant"`
	Items           []OrderItem `json:"items"`
	TotalPrice      float64     `json:"total_price"`
	Status          OrderStatus `json:"status"`
	DeliveryAddress string      `json:"delivery_address"`
	CreatedAt       time.Time   `json:"created_at,omitempty"`
	UpdatedAt       time.Time   `json:"updated_at,omitempty"`
}

// DraftItem carries the price observed at staging time so the confirmation
// view can show a subtotal; the backend reprices on creation.
type DraftItem struct {
	MenuItem int     `json:"menu_item"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type OrderDraft struct {
	Restaurant int         `json:"restaurant"`
	Items      []DraftItem `json:"items"`
	TotalPrice float64     `json:"total_price"`
}

// Session is the stored credential pair for one browser session.
type Session struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
