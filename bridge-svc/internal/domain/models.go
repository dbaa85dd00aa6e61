package domain

import "time"

// Local mirror keys.
const (
	KeyCategories    = "categories"
	KeyMenuItems     = "menuItems"
	KeyOrders        = "orders"
	KeyReservations  = "reservations"
	KeyRatings       = "ratings"
	KeyNotifications = "notifications"
)

var MirrorKeys = []string{
	KeyCategories,
	KeyMenuItems,
	KeyOrders,
	KeyReservations,
	KeyRatings,
	KeyNotifications,
}

type RatingSummary struct {
	Avg   float64 `json:"avg"`
	Count float64 `json:"count"`
}

type MenuItem struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Desc      string        `json:"desc"`
	Price     float64       `json:"price"`
	Img       string        `json:"img"`
	CatID     int64         `json:"catId"`
	Fresh     bool          `json:"fresh"`
	Rating    RatingSummary `json:"rating"`
	Available bool          `json:"available"`
}

// OrderLine is captured at order time; ID is nil once the menu item is gone.
type OrderLine struct {
	ID    *int64  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   float64 `json:"qty"`
}

type OrderSummary struct {
	ID        int64       `json:"id"`
	Items     []OrderLine `json:"items,omitempty"`
	ItemCount float64     `json:"itemCount"`
	Total     float64     `json:"total"`
	CreatedAt string      `json:"createdAt"`
	Table     string      `json:"table"`
	OrderName string      `json:"orderName"`
	Notes     string      `json:"notes"`
}

type Reservation struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Time      string `json:"time"`
	People    int    `json:"people"`
	Kind      string `json:"kind"`
	Table     string `json:"table"`
	Duration  int    `json:"duration"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type Rating struct {
	ID     int64  `json:"id"`
	ItemID int64  `json:"itemId"`
	Stars  int    `json:"stars"`
	Time   string `json:"time"`
}

type Notification struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Time    string `json:"time"`
	Read    bool   `json:"read"`
}

type Session struct {
	AccessToken string    `json:"access_token"`
	UserID      string    `json:"user_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// CartItem is one line submitted by the UI. Price and Qty accept numbers or
// numeric strings.
type CartItem struct {
	ID    *int64 `json:"id"`
	Name  string `json:"name"`
	Price any    `json:"price"`
	Qty   any    `json:"qty"`
}

type OrderInput struct {
	OrderName string     `json:"order_name"`
	Phone     string     `json:"phone"`
	TableNo   string     `json:"table_no"`
	Notes     string     `json:"notes"`
	Items     []CartItem `json:"items"`
}

type ReservationInput struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	ISO             string `json:"iso"`
	People          int    `json:"people"`
	Kind            string `json:"kind"`
	Table           string `json:"table"`
	Notes           string `json:"notes"`
	DurationMinutes int    `json:"duration_minutes"`
}

type RatingInput struct {
	ItemID int64 `json:"item_id"`
	Stars  int   `json:"stars"`
}

type CatalogSnapshot struct {
	Categories []Row      `json:"categories"`
	Items      []MenuItem `json:"items"`
}
