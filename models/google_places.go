package models

// Wire types for the Google Places Nearby Search API. fetch_places_nearby
// passes these through untouched, so the shapes mirror the upstream response.

// PlacesSearchResponse is the envelope returned by the nearbysearch endpoint
type PlacesSearchResponse struct {
	HTMLAttributions []string      `json:"html_attributions"`
	Results          []PlaceResult `json:"results"`
	Status           string        `json:"status"`
	ErrorMessage     string        `json:"error_message,omitempty"`
	NextPageToken    string        `json:"next_page_token,omitempty"`
}

// PlaceResult is a single place as Google returns it. Rating and PriceLevel are
// pointers because absent and zero mean different things downstream (a missing
// price level costs differently than an explicit "free").
type PlaceResult struct {
	BusinessStatus   string        `json:"business_status,omitempty"`
	Geometry         Geometry      `json:"geometry"`
	Icon             string        `json:"icon,omitempty"`
	Name             string        `json:"name"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`
	Photos           []Photo       `json:"photos,omitempty"`
	PlaceID          string        `json:"place_id"`
	PlusCode         *PlusCode     `json:"plus_code,omitempty"`
	PriceLevel       *int          `json:"price_level,omitempty"`
	Rating           *float64      `json:"rating,omitempty"`
	Reference        string        `json:"reference,omitempty"`
	Scope            string        `json:"scope,omitempty"`
	Types            []string      `json:"types,omitempty"`
	UserRatingsTotal int           `json:"user_ratings_total,omitempty"`
	Vicinity         string        `json:"vicinity,omitempty"`
}

// Geometry holds the place coordinates
type Geometry struct {
	Location Location  `json:"location"`
	Viewport *Viewport `json:"viewport,omitempty"`
}

// Location is a geographic coordinate
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Viewport is the recommended map bounding box for the place
type Viewport struct {
	Northeast Location `json:"northeast"`
	Southwest Location `json:"southwest"`
}

// OpeningHours carries the open-now flag
type OpeningHours struct {
	OpenNow bool `json:"open_now"`
}

// Photo is a place photo reference
type Photo struct {
	Height           int      `json:"height"`
	HTMLAttributions []string `json:"html_attributions"`
	PhotoReference   string   `json:"photo_reference"`
	Width            int      `json:"width"`
}

// PlusCode is an Open Location Code
type PlusCode struct {
	CompoundCode string `json:"compound_code,omitempty"`
	GlobalCode   string `json:"global_code,omitempty"`
}
