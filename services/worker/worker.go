package worker

import (
	"context"
	"sync"
	"time"

	"gpuhunt/dealworker/internal/catalog"
	"gpuhunt/dealworker/internal/source"
	"gpuhunt/dealworker/logger"
	apperr "gpuhunt/dealworker/pkg/errors"
	"gpuhunt/dealworker/services/dedup"
	"gpuhunt/dealworker/services/notifier"
)

// Worker runs the deal-detection pipeline over all sources
type Worker struct {
	ctx        context.Context
	sources    []source.Source
	catalog    *catalog.Catalog
	store      dedup.Store
	notifier   notifier.Notifier
	keyPolicy  dedup.KeyPolicy
	evalPolicy catalog.Policy
	log        *logger.Logger

	crawlInterval time.Duration

	// mu serializes the seen-check / notify / record section so that a
	// key can never be notified twice by concurrent source goroutines.
	// Fetch and extract, the slow network-bound steps, run outside it.
	mu sync.Mutex
}

// SourceResult aggregates the outcome of one source in one pass
type SourceResult struct {
	Source         string
	Listings       int
	Matched        int
	Qualified      int
	AlreadySeen    int
	Notified       int
	NotifyFailures int
	Err            error
}

// PassReport aggregates the outcomes of one complete pass
type PassReport struct {
	Results  []SourceResult
	Duration time.Duration
}

// Notified returns the total notifications sent during the pass
func (r PassReport) Notified() int {
	total := 0
	for _, res := range r.Results {
		total += res.Notified
	}
	return total
}

// Failures returns the number of sources that failed outright
func (r PassReport) Failures() int {
	failed := 0
	for _, res := range r.Results {
		if res.Err != nil {
			failed++
		}
	}
	return failed
}

// NewWorker creates a new worker
func NewWorker(
	ctx context.Context,
	sources []source.Source,
	cat *catalog.Catalog,
	store dedup.Store,
	notif notifier.Notifier,
	keyPolicy dedup.KeyPolicy,
	evalPolicy catalog.Policy,
	crawlInterval time.Duration,
) *Worker {
	return &Worker{
		ctx:           ctx,
		sources:       sources,
		catalog:       cat,
		store:         store,
		notifier:      notif,
		keyPolicy:     keyPolicy,
		evalPolicy:    evalPolicy,
		log:           logger.ForWorker(),
		crawlInterval: crawlInterval,
	}
}

// Start runs passes on the configured interval until the context is
// cancelled
func (w *Worker) Start() error {
	for {
		report := w.RunPass()
		w.log.Info().
			Dur("duration", report.Duration).
			Int("notified", report.Notified()).
			Int("failed_sources", report.Failures()).
			Msg("Pass completed")

		select {
		case <-w.ctx.Done():
			return nil
		case <-time.After(w.crawlInterval):
		}
	}
}

// RunPass runs all sources in parallel exactly once and aggregates the
// per-source outcomes. A single source's failure never aborts the rest.
func (w *Worker) RunPass() PassReport {
	start := time.Now()
	results := make([]SourceResult, len(w.sources))

	var wg sync.WaitGroup
	for i, s := range w.sources {
		wg.Add(1)
		go func(i int, s source.Source) {
			defer wg.Done()
			results[i] = w.processSource(s)
		}(i, s)
	}
	wg.Wait()

	return PassReport{
		Results:  results,
		Duration: time.Since(start),
	}
}

// processSource fetches and evaluates one source's listings
func (w *Worker) processSource(s source.Source) SourceResult {
	res := SourceResult{Source: s.GetSource()}
	log := logger.ForSource(s.GetName())

	listings, err := s.FetchListings()
	if err != nil {
		res.Err = apperr.NewNetwork(s.GetSource(), "fetch failed", err)
		log.Warn().Err(err).Msg("Source skipped for this pass")
		return res
	}
	res.Listings = len(listings)

	for _, listing := range listings {
		w.processListing(listing, &res, log)
	}

	return res
}

// processListing runs one listing through match, price parsing,
// evaluation, dedup and notification. Rejections at any stage move on
// to the next listing.
func (w *Worker) processListing(listing source.Listing, res *SourceResult, log *logger.Logger) {
	model, ok := w.catalog.Match(listing.Title)
	if !ok {
		return
	}
	res.Matched++

	price, ok := catalog.ParsePrice(listing.PriceText)
	if !ok {
		return
	}

	if !catalog.Evaluate(w.evalPolicy, model, price) {
		return
	}
	res.Qualified++

	key := dedup.Key(w.keyPolicy, listing.Source, model.Name, price)

	w.mu.Lock()
	defer w.mu.Unlock()

	seen, err := w.store.Seen(key)
	if err != nil {
		res.Err = apperr.NewStore("seen check failed", err)
		log.Error().Err(err).Str("key", key).Msg("Dedup check failed")
		return
	}
	if seen {
		res.AlreadySeen++
		return
	}

	event := notifier.Event{
		Model:          model.Name,
		Title:          listing.Title,
		Price:          price,
		ReferencePrice: model.ReferencePrice,
		Delta:          model.ReferencePrice - price,
		Source:         listing.Source,
		Link:           listing.Link,
	}

	// Notify before recording: a delivery failure must leave the key
	// unrecorded so the next pass retries it.
	if err := w.notifier.Send(w.ctx, event); err != nil {
		res.NotifyFailures++
		log.Error().Err(err).Str("key", key).Msg("Notification failed, deal left unrecorded")
		return
	}
	res.Notified++

	if err := w.store.Record(key); err != nil {
		res.Err = apperr.NewStore("record failed", err)
		log.Error().Err(err).Str("key", key).Msg("Failed to record notified deal")
		return
	}
	if err := w.store.Flush(); err != nil {
		res.Err = apperr.NewStore("flush failed", err)
		log.Error().Err(err).Str("key", key).Msg("Failed to flush dedup store")
		return
	}

	log.Info().
		Str("model", model.Name).
		Int("price", price).
		Int("reference_price", model.ReferencePrice).
		Str("link", listing.Link).
		Msg("Deal notified")
}
