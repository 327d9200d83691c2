package connector

import (
	"sync/atomic"
	"time"

	"github.com/racelabs/sentinel-connector/internal/sentinel"
)

// liveMetrics holds the connector's scrape-time state as atomics so
// internal/metrics.Collector can read it concurrently with the mailbox and
// record-fetch goroutines that update it, without contending for the
// mailbox itself.
type liveMetrics struct {
	recordsTotal         [16]atomic.Int64
	droppedUnknownDevice atomic.Int64
	droppedNoData        atomic.Int64
	wsConnected          atomic.Bool
	lastRecordUnixMilli  atomic.Int64
	storeSize            atomic.Int64
}

// CapabilityCounts returns the number of records processed per capability
// since startup, keyed by wire tag (e.g. "gps").
func (c *Connector) CapabilityCounts() map[string]int64 {
	counts := make(map[string]int64, len(c.metrics.recordsTotal))
	for i := range c.metrics.recordsTotal {
		if v := c.metrics.recordsTotal[i].Load(); v != 0 {
			counts[sentinel.SensorCapability(i).String()] = v
		}
	}
	return counts
}

// StoreSize reports the number of devices held by the bootstrapped store,
// or 0 before bootstrap completes.
func (c *Connector) StoreSize() int64 { return c.metrics.storeSize.Load() }

// WebSocketConnected reports whether the live stream is currently joined.
func (c *Connector) WebSocketConnected() bool { return c.metrics.wsConnected.Load() }

// DroppedUnknownDevice counts records discarded because they named a
// device absent from the store (spec.md §3 invariant).
func (c *Connector) DroppedUnknownDevice() int64 { return c.metrics.droppedUnknownDevice.Load() }

// DroppedNoData counts record-notification fetches that raced an empty
// upstream result and were swallowed (spec.md §4.5).
func (c *Connector) DroppedNoData() int64 { return c.metrics.droppedNoData.Load() }

// LastRecordAt reports when the most recent record was processed, or the
// zero Time if none have been yet.
func (c *Connector) LastRecordAt() time.Time {
	ms := c.metrics.lastRecordUnixMilli.Load()
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
