package notifier

import (
	"context"

	"gpuhunt/dealworker/logger"
)

// LogNotifier implements Notifier by logging events. It is used when no
// webhook is configured, so a dry deployment still shows what it would
// have sent.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a notifier that only logs events
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.ForNotifier()}
}

// Send logs the event and reports success
func (n *LogNotifier) Send(_ context.Context, event Event) error {
	n.log.Info().
		Str("source", event.Source).
		Str("model", event.Model).
		Int("price", event.Price).
		Int("reference_price", event.ReferencePrice).
		Str("link", event.Link).
		Msg("Deal found (no webhook configured)")
	return nil
}
