package source

// Listing represents a single observed offer before identity resolution
type Listing struct {
	Title     string `json:"title"`
	PriceText string `json:"price_text"`
	Link      string `json:"link"`
	Source    string `json:"source"`
}

// Source interface defines the contract for all listing page adapters
type Source interface {
	// FetchListings retrieves candidate listings from a source page
	FetchListings() ([]Listing, error)

	// GetName returns the adapter's name for logging and identification
	GetName() string

	// GetSource returns the source label carried on listings and dedup keys
	GetSource() string
}

// Selectors contains CSS selectors for various elements in the page
type Selectors struct {
	ItemList string
	Title    string
	Price    string
	// Link names the element carrying the href; empty means the Title
	// selection carries it
	Link string
}

// SourceConfig contains configuration for a source adapter
type SourceConfig struct {
	URL       string
	CacheKey  string
	BlockTime int
	BaseURL   string
	Source    string
	Selectors Selectors
}
