package domain

import "time"

// Category values match the fixed catalog enumeration.
const (
	CategoryElectronics = "electronics"
	CategoryFashion     = "fashion"
	CategoryBooks       = "books"
	CategoryToys        = "toys"
	CategoryMobiles     = "mobiles"
	CategoryLaptops     = "laptops"
	CategoryAccessories = "accessories"
	CategoryOther       = "other"
)

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Excerpt     string    `json:"excerpt"`
	Price       int64     `json:"price"`
	Quantity    int       `json:"quantity"`
	SellerID    int64     `json:"seller_id"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CatalogEntry is the training-time view of a product: everything the
// feature builder needs, with tag captions and review texts pre-joined in.
type CatalogEntry struct {
	ID          int64
	Name        string
	Category    string
	Description string
	Tags        []string
	ReviewTexts []string
}
