package products

// Product is an item held in the clinic pharmacy inventory
type Product struct {
	ID       int     `json:"id,omitempty"`
	Name     string  `json:"name" validate:"notblank"`
	SKU      string  `json:"sku,omitempty"`
	Category string  `json:"category,omitempty"`
	Unit     string  `json:"unit,omitempty"` // e.g. tube, bottle, box
	Price    float64 `json:"price" validate:"gte=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
	ImageURL string  `json:"image_url,omitempty"`
}

func (p *Product) InStock(quantity int) bool {
	return quantity > 0 && p.Stock >= quantity
}

// StockAdjustment changes stock by Delta, which may be negative
type StockAdjustment struct {
	Delta  int    `json:"delta" validate:"ne=0"`
	Reason string `json:"reason,omitempty"`
}
