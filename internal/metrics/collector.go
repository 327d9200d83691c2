package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ConnectorStats provides the metrics collector access to connector state,
// satisfied by *connector.Connector. A narrow interface rather than an
// import of the connector package keeps this package free of a dependency
// cycle and lets tests substitute a fake.
type ConnectorStats interface {
	StoreSize() int64
	WebSocketConnected() bool
	DroppedUnknownDevice() int64
	DroppedNoData() int64
	CapabilityCounts() map[string]int64
	LastRecordAt() time.Time
}

// Collector implements prometheus.Collector to read live connector gauges
// at scrape time, grounded on the teacher's Collector
// (pool/IngestStats-at-scrape-time pattern), with the database pool
// replaced by ConnectorStats since there is no persistence layer here.
type Collector struct {
	stats ConnectorStats

	storeSize            *prometheus.Desc
	wsConnected          *prometheus.Desc
	droppedUnknownDevice *prometheus.Desc
	droppedNoData        *prometheus.Desc
	recordsTotal         *prometheus.Desc
	secondsSinceLastRecord *prometheus.Desc
}

// NewCollector creates a collector reading live state from stats at scrape
// time. stats may be nil if Start has not been called yet; the gauges then
// report zero values, except seconds_since_last_record, which reports -1.
func NewCollector(stats ConnectorStats) *Collector {
	return &Collector{
		stats: stats,
		storeSize: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "store_devices"),
			"Number of devices held by the bootstrapped store.",
			nil, nil,
		),
		wsConnected: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "websocket_connected"),
			"1 if the live WebSocket stream is currently joined, 0 otherwise.",
			nil, nil,
		),
		droppedUnknownDevice: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "records_dropped_unknown_device_total"),
			"Records discarded because they named a device absent from the store.",
			nil, nil,
		),
		droppedNoData: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "records_dropped_no_data_total"),
			"Record-notification fetches that raced an empty upstream result.",
			nil, nil,
		),
		recordsTotal: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "records_processed_total"),
			"Records processed per capability since startup.",
			[]string{"capability"}, nil,
		),
		secondsSinceLastRecord: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "seconds_since_last_record"),
			"Seconds since the last record was processed, or -1 if none yet.",
			nil, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.storeSize
	ch <- c.wsConnected
	ch <- c.droppedUnknownDevice
	ch <- c.droppedNoData
	ch <- c.recordsTotal
	ch <- c.secondsSinceLastRecord
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if c.stats == nil {
		ch <- prometheus.MustNewConstMetric(c.storeSize, prometheus.GaugeValue, 0)
		ch <- prometheus.MustNewConstMetric(c.wsConnected, prometheus.GaugeValue, 0)
		ch <- prometheus.MustNewConstMetric(c.droppedUnknownDevice, prometheus.GaugeValue, 0)
		ch <- prometheus.MustNewConstMetric(c.droppedNoData, prometheus.GaugeValue, 0)
		ch <- prometheus.MustNewConstMetric(c.secondsSinceLastRecord, prometheus.GaugeValue, -1)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.storeSize, prometheus.GaugeValue, float64(c.stats.StoreSize()))
	connected := 0.0
	if c.stats.WebSocketConnected() {
		connected = 1.0
	}
	ch <- prometheus.MustNewConstMetric(c.wsConnected, prometheus.GaugeValue, connected)
	ch <- prometheus.MustNewConstMetric(c.droppedUnknownDevice, prometheus.GaugeValue, float64(c.stats.DroppedUnknownDevice()))
	ch <- prometheus.MustNewConstMetric(c.droppedNoData, prometheus.GaugeValue, float64(c.stats.DroppedNoData()))

	for capability, count := range c.stats.CapabilityCounts() {
		ch <- prometheus.MustNewConstMetric(c.recordsTotal, prometheus.GaugeValue, float64(count), capability)
	}

	if last := c.stats.LastRecordAt(); !last.IsZero() {
		ch <- prometheus.MustNewConstMetric(c.secondsSinceLastRecord, prometheus.GaugeValue, time.Since(last).Seconds())
	} else {
		ch <- prometheus.MustNewConstMetric(c.secondsSinceLastRecord, prometheus.GaugeValue, -1)
	}
}
