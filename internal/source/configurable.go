package source

import (
	"strings"
	"time"

	"gpuhunt/dealworker/services/cache"

	"github.com/PuerkitoBio/goquery"
)

// ConfigurableSource is a source adapter driven by a selector table
type ConfigurableSource struct {
	BaseSource
	Selectors Selectors
}

// NewConfigurableSource creates a new configurable source adapter
func NewConfigurableSource(config SourceConfig, cacheSvc cache.CacheService) *ConfigurableSource {
	return &ConfigurableSource{
		BaseSource: BaseSource{
			URL:       config.URL,
			CacheKey:  config.CacheKey,
			CacheSvc:  cacheSvc,
			BlockTime: time.Duration(config.BlockTime) * time.Second,
			BaseURL:   config.BaseURL,
			Source:    config.Source,
		},
		Selectors: config.Selectors,
	}
}

// GetName returns the adapter name
func (s *ConfigurableSource) GetName() string {
	return s.Source + "Source"
}

// FetchListings fetches listings based on the configuration
func (s *ConfigurableSource) FetchListings() ([]Listing, error) {
	// Fetch the page with rate limiting
	utf8Body, err := s.fetchWithCache()
	if err != nil {
		return nil, err
	}

	// Parse the HTML document
	doc, err := s.createDocument(utf8Body)
	if err != nil {
		return nil, err
	}

	// Find all listing items
	itemSelections := doc.Find(s.Selectors.ItemList)

	return s.processListings(itemSelections, s.processListing), nil
}

// processListing extracts one listing from an item element. Items with a
// missing title or price are extraction gaps and are dropped silently.
func (s *ConfigurableSource) processListing(sel *goquery.Selection) *Listing {
	titleSel := sel.Find(s.Selectors.Title)
	if titleSel.Length() == 0 {
		return nil
	}

	var title string
	if titleAttr, exists := titleSel.Attr("title"); exists && titleAttr != "" {
		title = titleAttr
	} else {
		title = titleSel.Text()
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	priceText := strings.TrimSpace(sel.Find(s.Selectors.Price).Text())
	if priceText == "" {
		return nil
	}

	linkSel := titleSel
	if s.Selectors.Link != "" {
		linkSel = sel.Find(s.Selectors.Link)
	}
	link, _ := linkSel.Attr("href")
	link = s.resolveLink(strings.TrimSpace(link))
	if link == "" {
		return nil
	}

	return &Listing{
		Title:     title,
		PriceText: priceText,
		Link:      link,
		Source:    s.Source,
	}
}
