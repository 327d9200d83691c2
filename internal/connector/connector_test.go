package connector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/racelabs/sentinel-connector/internal/sentinel"
)

func testLog() zerolog.Logger { return zerolog.Nop() }

func fireRecord(id, deviceID string, t time.Time, prob float64) sentinel.SensorRecord[sentinel.FireData] {
	return sentinel.SensorRecord[sentinel.FireData]{
		ID:           id,
		TimeRecorded: t,
		SensorNo:     1,
		DeviceID:     sentinel.DeviceId(deviceID),
		Data:         sentinel.FireData{FireProb: prob},
	}
}

func TestConfigValidateRejectsMissingFields(t *testing.T) {
	base := Config{BaseURI: "http://x", WsURI: "ws://x", AccessToken: "tok", MaxHistory: 10}

	cases := []struct {
		name string
		cfg  Config
	}{
		{"missing base uri", func() Config { c := base; c.BaseURI = ""; return c }()},
		{"missing ws uri", func() Config { c := base; c.WsURI = ""; return c }()},
		{"missing access token", func() Config { c := base; c.AccessToken = ""; return c }()},
		{"zero max history", func() Config { c := base; c.MaxHistory = 0; return c }()},
		{"negative ping interval", func() Config { c := base; c.PingInterval = -time.Second; return c }()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

func TestConfigValidateAcceptsZeroPingInterval(t *testing.T) {
	cfg := Config{BaseURI: "http://x", WsURI: "ws://x", AccessToken: "tok", MaxHistory: 10, PingInterval: 0}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func newTestConnector(baseURI, wsURI string) *Connector {
	cfg := Config{BaseURI: baseURI, WsURI: wsURI, AccessToken: "test-token", MaxHistory: 2}
	return New(cfg, testLog())
}

// TestHandleRecordDropsUnknownDevice covers spec.md §3's invariant that a
// record for a device absent from the store is dropped without mutating
// anything.
func TestHandleRecordDropsUnknownDevice(t *testing.T) {
	c := newTestConnector("http://unused", "ws://unused")

	fired := false
	c.updateCallbacks.Add("sub", func(*sentinel.SentinelUpdate) { fired = true })

	rec := fireRecord("rec-1", "ghost-device", time.Now(), 0.9)
	handleRecord(c, rec, (*sentinel.Sentinel).InsertFire, sentinel.NewSentinelUpdateFire)

	if fired {
		t.Fatal("update callback fired for a record addressed at an unknown device")
	}
	if c.store.Len() != 0 {
		t.Fatalf("store.Len() = %d, want 0", c.store.Len())
	}
}

// TestHandleRecordOrderingUpdateBeforeJSON covers spec.md §5's ordering
// guarantee: for one inserted record, update_callbacks fire strictly
// before json_update_callbacks.
func TestHandleRecordOrderingUpdateBeforeJSON(t *testing.T) {
	c := newTestConnector("http://unused", "ws://unused")
	c.store.Insert("dev-1", sentinel.NewSentinel("dev-1", "unknown"))

	var mu sync.Mutex
	var order []string
	c.updateCallbacks.Add("sub", func(*sentinel.SentinelUpdate) {
		mu.Lock()
		order = append(order, "update")
		mu.Unlock()
	})
	c.jsonUpdateCallbacks.Add("sub", func(string) {
		mu.Lock()
		order = append(order, "json")
		mu.Unlock()
	})

	rec := fireRecord("rec-1", "dev-1", time.Now(), 0.5)
	handleRecord(c, rec, (*sentinel.Sentinel).InsertFire, sentinel.NewSentinelUpdateFire)

	if len(order) != 2 || order[0] != "update" || order[1] != "json" {
		t.Fatalf("callback order = %v, want [update json]", order)
	}

	sen, err := c.store.SentinelOf("dev-1")
	if err != nil {
		t.Fatalf("SentinelOf: %v", err)
	}
	if len(sen.Fire) != 1 || sen.Fire[0].ID != "rec-1" {
		t.Fatalf("sentinel.Fire = %+v, want one record rec-1", sen.Fire)
	}
}

// TestHandleRecordLazyConversionWithNoSubscribers covers spec.md §4.4:
// with no update or json_update subscribers, the insert still happens and
// neither callback list is ever triggered (and so never materializes a
// SentinelUpdate or JSON string).
func TestHandleRecordLazyConversionWithNoSubscribers(t *testing.T) {
	c := newTestConnector("http://unused", "ws://unused")
	c.store.Insert("dev-1", sentinel.NewSentinel("dev-1", "unknown"))

	for i := 0; i < 10_000; i++ {
		rec := fireRecord(fmt.Sprintf("rec-%d", i), "dev-1", time.Now(), 0.1)
		handleRecord(c, rec, (*sentinel.Sentinel).InsertFire, sentinel.NewSentinelUpdateFire)
	}

	sen, err := c.store.SentinelOf("dev-1")
	if err != nil {
		t.Fatalf("SentinelOf: %v", err)
	}
	if len(sen.Fire) != c.cfg.MaxHistory {
		t.Fatalf("len(Fire) = %d, want bounded to %d", len(sen.Fire), c.cfg.MaxHistory)
	}
}

// TestConnectorBootstrapFiresInitCallbackOnce exercises the bootstrap task
// and the resulting SentinelStore message end to end against a fake REST
// server, and confirms AddInitCallback fires exactly once when the store
// arrives (spec.md §8 scenario 6).
func TestConnectorBootstrapFiresInitCallbackOnce(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/devices", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":"dev-1"}],"count":1,"total":1,"page":1,"pageCount":1}`)
	})
	mux.HandleFunc("/devices/dev-1/sensors", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[],"count":0,"total":0,"page":1,"pageCount":1}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestConnector(srv.URL, "ws://127.0.0.1:0")

	fireCount := 0
	c.AddInitCallback("sub", func() { fireCount++ })
	// Drain the registration message synchronously rather than running
	// the full mailbox loop, mirroring what run's select does per
	// message.
	c.handle(context.Background(), <-c.mailbox)

	c.wg.Add(1)
	go c.runBootstrap(context.Background())

	select {
	case msg := <-c.mailbox:
		if _, ok := msg.(sentinelStoreMsg); !ok {
			t.Fatalf("expected sentinelStoreMsg, got %T", msg)
		}
		c.handle(context.Background(), msg)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for bootstrap result")
	}
	c.wg.Wait()

	if fireCount != 1 {
		t.Fatalf("init callback fired %d times, want 1", fireCount)
	}

	// Registering again after the store has already arrived must not
	// retroactively fire — spec.md §4.6 only fires on the SentinelStore
	// message itself, not on every AddInitCallback call.
	lateFireCount := 0
	c.initCallbacks.Add("late", func(struct{}) { lateFireCount++ })
	if lateFireCount != 0 {
		t.Fatalf("late init callback fired %d times, want 0", lateFireCount)
	}
}

func TestConnectorSnapshotReturnsCurrentStore(t *testing.T) {
	c := newTestConnector("http://unused", "ws://unused")
	c.store.Insert("dev-1", sentinel.NewSentinel("dev-1", "unknown"))

	resultCh := make(chan string, 1)
	c.handleSnapshot(triggerJSONSnapshotMsg{action: func(s string) { resultCh <- s }})

	select {
	case doc := <-resultCh:
		if doc == "" {
			t.Fatal("snapshot was empty")
		}
	default:
		t.Fatal("snapshot action never ran")
	}
}

func TestConnectorPostAfterStopDoesNotPanic(t *testing.T) {
	c := newTestConnector("http://unused", "ws://unused")
	close(c.closed)

	// Must not block or panic: post selects on the closed channel.
	c.post(errMsg{err: nil})
}
