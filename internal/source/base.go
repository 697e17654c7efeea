package source

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"gpuhunt/dealworker/helpers"
	"gpuhunt/dealworker/services/cache"

	"github.com/PuerkitoBio/goquery"
)

// BaseSource provides common functionality for all source adapters
type BaseSource struct {
	URL       string
	CacheKey  string
	CacheSvc  cache.CacheService
	BlockTime time.Duration
	BaseURL   string
	Source    string
}

// fetchWithCache fetches the source page with rate limiting. A cache hit
// on the block key means a previous fetch was rate limited and the source
// sits out until the block expires.
func (s *BaseSource) fetchWithCache() (io.Reader, error) {
	if s.CacheSvc != nil && s.CacheKey != "" {
		_, err := s.CacheSvc.Get(s.CacheKey)
		if err == nil {
			return nil, fmt.Errorf("%s: blocked for %d more seconds after rate limiting", s.CacheKey, s.BlockTime/time.Second)
		}
	}

	utf8Body, err := helpers.FetchWithRandomHeaders(s.URL)
	if err != nil {
		if s.CacheSvc != nil && s.CacheKey != "" && strings.HasPrefix(err.Error(), "rate limited") {
			s.CacheSvc.Set(s.CacheKey, []byte(fmt.Sprintf("%d", s.BlockTime/time.Second)), s.BlockTime)
		}
		return nil, err
	}

	return utf8Body, nil
}

// createDocument creates a goquery document from a reader
func (s *BaseSource) createDocument(reader io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("HTML parsing error: %v", err)
	}
	return doc, nil
}

// resolveLink resolves a relative href against the source's base URL
func (s *BaseSource) resolveLink(link string) string {
	if link == "" || s.BaseURL == "" {
		return link
	}
	if strings.HasPrefix(link, "/") {
		return s.BaseURL + link
	}
	return link
}

// processListings processes listing elements in parallel using goroutines
func (s *BaseSource) processListings(selections *goquery.Selection, processor func(*goquery.Selection) *Listing) []Listing {
	listingChan := make(chan *Listing, selections.Length())
	var wg sync.WaitGroup

	selections.Each(func(i int, sel *goquery.Selection) {
		wg.Add(1)
		go func(sel *goquery.Selection) {
			defer wg.Done()

			listing := processor(sel)
			if listing != nil {
				listingChan <- listing
			}
		}(sel)
	})

	wg.Wait()
	close(listingChan)

	var listings []Listing
	for listing := range listingChan {
		if listing != nil {
			listings = append(listings, *listing)
		}
	}

	return listings
}

// GetSource returns the source label
func (s *BaseSource) GetSource() string {
	return s.Source
}
