package domain

import "time"

// Client is a vendor (restaurant) account managed through the admin panel.
type Client struct {
	ID           string    `json:"id"`
	BusinessName string    `json:"business_name"`
	ContactName  string    `json:"contact_name,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	LogoURL      string    `json:"logo_url,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// Category groups menu items within one client's catalog.
type Category struct {
	ID        string `json:"id"`
	ClientID  string `json:"client_id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	Active    bool   `json:"active"`
}

// MenuItem is a single dish or product on a client's menu.
type MenuItem struct {
	ID          string  `json:"id"`
	ClientID    string  `json:"client_id"`
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	ImageID     string  `json:"image_id,omitempty"`
	Available   bool    `json:"available"`
}
