package source

import (
	"gpuhunt/dealworker/config"
	"gpuhunt/dealworker/logger"
	"gpuhunt/dealworker/services/cache"
)

// CreateSources creates all the source adapters based on the configuration
func CreateSources(cfg *config.Config, cacheSvc cache.CacheService) []Source {
	configurations := []SourceConfig{
		{
			// Best Buy search results
			URL:       cfg.BestBuyURL,
			CacheKey:  "bestbuy_rate_limited",
			BlockTime: 500,
			BaseURL:   "https://www.bestbuy.com",
			Source:    "Best Buy",
			Selectors: Selectors{
				ItemList: ".sku-item",
				Title:    ".sku-title",
				Price:    ".priceView-customer-price span",
				Link:     ".sku-title a",
			},
		},
		{
			// Amazon search results
			URL:       cfg.AmazonURL,
			CacheKey:  "amazon_rate_limited",
			BlockTime: 500,
			BaseURL:   "https://www.amazon.com",
			Source:    "Amazon",
			Selectors: Selectors{
				ItemList: ".s-result-item",
				Title:    "h2 span",
				Price:    ".a-price-whole",
				Link:     "h2 a",
			},
		},
		{
			// Newegg search results; item links are absolute
			URL:       cfg.NeweggURL,
			CacheKey:  "newegg_rate_limited",
			BlockTime: 500,
			BaseURL:   "https://www.newegg.com",
			Source:    "Newegg",
			Selectors: Selectors{
				ItemList: ".item-cell",
				Title:    ".item-title",
				Price:    ".price-current strong",
			},
		},
		{
			// Micro Center search results
			URL:       cfg.MicroCenterURL,
			CacheKey:  "microcenter_rate_limited",
			BlockTime: 500,
			BaseURL:   "https://www.microcenter.com",
			Source:    "Micro Center",
			Selectors: Selectors{
				ItemList: ".product_wrapper",
				Title:    ".h2",
				Price:    ".price",
				Link:     ".h2 a",
			},
		},
	}

	var sources []Source
	for _, config := range configurations {
		sources = append(sources, NewConfigurableSource(config, cacheSvc))
	}

	logger.Info("Created %d source adapters", len(sources))

	return sources
}
