package connector

import (
	"context"

	"github.com/racelabs/sentinel-connector/internal/sentinelhttp"
)

// runBootstrap runs once at startup: it builds the whole store via REST
// (spec.md §4.2) and posts the result back to the mailbox. A failure here
// is fatal to ever opening the WebSocket, so it's reported via errMsg and
// logged at error level, whereas an empty per-record fetch is only logged
// as a warning and dropped.
func (c *Connector) runBootstrap(ctx context.Context) {
	defer c.wg.Done()

	store, err := sentinelhttp.Bootstrap(ctx, c.httpClient, c.cfg.MaxHistory)
	if err != nil {
		c.log.Error().Err(err).Msg("bootstrap failed")
		c.post(errMsg{err: err})
		return
	}
	c.post(sentinelStoreMsg{store: store})
}
