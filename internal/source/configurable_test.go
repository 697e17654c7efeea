package source

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
)

// mockCacheService is a mock implementation of cache.CacheService for testing
type mockCacheService struct {
	data map[string][]byte
}

func newMockCacheService() *mockCacheService {
	return &mockCacheService{
		data: make(map[string][]byte),
	}
}

func (m *mockCacheService) Get(key string) ([]byte, error) {
	if data, ok := m.data[key]; ok {
		return data, nil
	}
	return nil, io.EOF
}

func (m *mockCacheService) Set(key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockCacheService) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func testSource(url string) *ConfigurableSource {
	return NewConfigurableSource(SourceConfig{
		URL:       url,
		CacheKey:  "test_rate_limited",
		BlockTime: 500,
		BaseURL:   "https://shop.example.com",
		Source:    "TestShop",
		Selectors: Selectors{
			ItemList: ".item-cell",
			Title:    ".item-title",
			Price:    ".price-current strong",
		},
	}, newMockCacheService())
}

func TestConfigurableSource_ProcessListing(t *testing.T) {
	src := testSource("https://shop.example.com/search")

	html := `
		<div class="item-cell">
			<a class="item-title" href="/p/rtx-4070">GIGABYTE RTX 4070 WINDFORCE 12GB</a>
			<div class="price-current"><strong>549</strong><sup>.99</sup></div>
		</div>
	`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	assert.NoError(t, err)

	listing := src.processListing(doc.Find(".item-cell"))
	assert.NotNil(t, listing)
	assert.Equal(t, "GIGABYTE RTX 4070 WINDFORCE 12GB", listing.Title)
	assert.Equal(t, "549", listing.PriceText)
	assert.Equal(t, "https://shop.example.com/p/rtx-4070", listing.Link)
	assert.Equal(t, "TestShop", listing.Source)
}

func TestConfigurableSource_DropsIncompleteItems(t *testing.T) {
	src := testSource("https://shop.example.com/search")

	// No price element at all
	html := `
		<div class="item-cell">
			<a class="item-title" href="/p/rtx-4070">GIGABYTE RTX 4070</a>
		</div>
	`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	assert.NoError(t, err)
	assert.Nil(t, src.processListing(doc.Find(".item-cell")))

	// No title element
	html = `
		<div class="item-cell">
			<div class="price-current"><strong>549</strong></div>
		</div>
	`
	doc, err = goquery.NewDocumentFromReader(strings.NewReader(html))
	assert.NoError(t, err)
	assert.Nil(t, src.processListing(doc.Find(".item-cell")))
}

func TestConfigurableSource_FetchListings(t *testing.T) {
	page := `
		<html><body>
		<div class="item-cell">
			<a class="item-title" href="/p/1">ASUS RTX 4070 SUPER</a>
			<div class="price-current"><strong>599</strong></div>
		</div>
		<div class="item-cell">
			<a class="item-title" href="/p/2">MSI RTX 4080 SUPER</a>
			<div class="price-current"><strong>999</strong></div>
		</div>
		<div class="item-cell">
			<span class="ad-placeholder"></span>
		</div>
		</body></html>
	`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, page)
	}))
	defer server.Close()

	src := testSource(server.URL)
	src.BaseURL = server.URL

	listings, err := src.FetchListings()
	assert.NoError(t, err)
	assert.Len(t, listings, 2, "the ad placeholder cell must be dropped")

	titles := []string{listings[0].Title, listings[1].Title}
	assert.Contains(t, titles, "ASUS RTX 4070 SUPER")
	assert.Contains(t, titles, "MSI RTX 4080 SUPER")
}

func TestConfigurableSource_RateLimitBlock(t *testing.T) {
	cacheSvc := newMockCacheService()
	src := NewConfigurableSource(SourceConfig{
		URL:       "https://shop.example.com/search",
		CacheKey:  "blocked_rate_limited",
		BlockTime: 500,
		Source:    "TestShop",
		Selectors: Selectors{ItemList: ".item-cell", Title: ".item-title", Price: ".price"},
	}, cacheSvc)

	// A present block key means the previous fetch was rate limited
	cacheSvc.Set("blocked_rate_limited", []byte("500"), 500*time.Second)

	_, err := src.FetchListings()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
}
