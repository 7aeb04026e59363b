package domain

import "time"

// Prize is a catalog entry. Probability is a selection weight kept for
// catalog completeness; nothing in the service draws against it.
type Prize struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Value       float64   `json:"value"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Quantity    int       `json:"quantity"`
	Probability float64   `json:"probability"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Available reports whether the prize is active and still in stock.
func (p Prize) Available() bool {
	return p.IsActive && p.Quantity > 0
}
