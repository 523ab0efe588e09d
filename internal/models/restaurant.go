// internal/models/restaurant.go
package models

// Restaurant is an immutable-per-session record loaded by the restaurant
// repository. The deck engine never mutates it.
type Restaurant struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	City           string          `json:"city"`
	District       string          `json:"district"`
	Lat            float64         `json:"lat"`
	Lng            float64         `json:"lng"`
	Rating         float64         `json:"rating"`
	ReviewCount    int             `json:"reviewCount"`
	PriceTier      int             `json:"priceTier"` // ordinal 1-5
	CuisineType    string          `json:"cuisineType"`
	DietaryOptions map[string]bool `json:"dietaryOptions"` // vegetarian/vegan/halal/gluten-free
	MichelinStars  int             `json:"michelinStars"`
	BibGourmand    bool            `json:"bibGourmand"`
	Has500Dishes   bool            `json:"has500Dishes"`
}

// Coordinate is a geographic point. Absence of a user location is represented
// by a nil *Coordinate and degrades distance filtering and display.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
