package entity

// Menu is the read-only menu listing entry used by the customer page and
// the dashboard availability count.
type Menu struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
	ImageURL  string  `json:"imageUrl,omitempty"`
}
