package connector

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/racelabs/sentinel-connector/internal/sentinel"
	"github.com/racelabs/sentinel-connector/internal/sentinelhttp"
	"github.com/racelabs/sentinel-connector/internal/sentinelws"
)

// Connector is the mailbox-driven state machine of spec.md §4.6. Every
// piece of mutable state — the store, the callback registries, the
// WebSocket handle and its ping timer — is touched only from the single
// goroutine run by Start, via messages posted through post. Background
// tasks (bootstrap, the WebSocket read loop, per-record HTTP fetch, the
// ping ticker) only ever construct a message and post it back.
type Connector struct {
	cfg        Config
	log        zerolog.Logger
	httpClient *sentinelhttp.Client

	mailbox chan message
	closed  chan struct{}
	cancel  context.CancelFunc
	stopOnce sync.Once
	wg      sync.WaitGroup

	store *sentinel.Store

	wsSession  *sentinelws.Session
	wsCancel   context.CancelFunc
	pingTicker *time.Ticker
	pingDone   chan struct{}

	initCallbacks       *sentinel.CallbackList[struct{}]
	updateCallbacks     *sentinel.CallbackList[*sentinel.SentinelUpdate]
	jsonUpdateCallbacks *sentinel.CallbackList[string]

	metrics liveMetrics
}

// New builds a Connector against an *http.Client transport. Nothing runs
// until Start is called.
func New(cfg Config, log zerolog.Logger) *Connector {
	log = log.With().Str("component", "connector").Logger()
	return &Connector{
		cfg:        cfg,
		log:        log,
		httpClient: sentinelhttp.NewClient(http.DefaultClient, cfg.BaseURI, cfg.AccessToken, cfg.HTTPRatePerSec, cfg.HTTPRateBurst, log),

		mailbox: make(chan message, 256),
		closed:  make(chan struct{}),

		store: sentinel.NewStore(),

		initCallbacks:       sentinel.NewCallbackList[struct{}](log),
		updateCallbacks:     sentinel.NewCallbackList[*sentinel.SentinelUpdate](log),
		jsonUpdateCallbacks: sentinel.NewCallbackList[string](log),
	}
}

// Start launches the mailbox run loop and the bootstrap task. Both are
// tied to a context derived from ctx; Stop cancels it and waits for both
// to return.
func (c *Connector) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(2)
	go c.run(runCtx)
	go c.runBootstrap(runCtx)
}

// Stop cancels all background work and blocks until it has unwound,
// including the WebSocket cleanup the run loop performs on exit.
func (c *Connector) Stop() {
	c.stopOnce.Do(func() {
		close(c.closed)
		if c.cancel != nil {
			c.cancel()
		}
	})
	c.wg.Wait()
}

// post delivers msg to the mailbox, or silently drops it if the connector
// has already been stopped — background tasks racing Stop must never
// panic on a closed channel (spec.md §6 "graceful shutdown").
func (c *Connector) post(msg message) {
	select {
	case c.mailbox <- msg:
	case <-c.closed:
	}
}

func (c *Connector) run(ctx context.Context) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			c.cleanupWebsocket()
			return
		case msg := <-c.mailbox:
			c.handle(ctx, msg)
		}
	}
}

// AddInitCallback registers action under id to fire exactly once, the
// moment the bootstrapped store becomes available. Safe to call at any
// point in the connector's lifetime (spec.md §4.6); if the store is
// already present, registering after the fact does NOT fire it
// retroactively — this matches the mailbox's single SentinelStore
// message semantics, not a "replay on join" design.
func (c *Connector) AddInitCallback(id string, action func()) {
	c.post(addInitCallbackMsg{id: id, action: func(struct{}) { action() }})
}

// AddUpdateCallback registers action under id to fire on every inserted
// record, carried as a *sentinel.SentinelUpdate.
func (c *Connector) AddUpdateCallback(id string, action func(*sentinel.SentinelUpdate)) {
	c.post(addUpdateCallbackMsg{id: id, action: action})
}

// AddJSONUpdateCallback registers action under id to fire on every
// inserted record, carried as its capability-aliased JSON encoding.
func (c *Connector) AddJSONUpdateCallback(id string, action func(string)) {
	c.post(addJSONUpdateCallbackMsg{id: id, action: action})
}

// TriggerJSONSnapshot asks the connector to serialize its current store
// as {"sentinels":[...]} and deliver the result to action from the
// mailbox goroutine.
func (c *Connector) TriggerJSONSnapshot(action func(string)) {
	c.post(triggerJSONSnapshotMsg{action: action})
}

func (c *Connector) handle(ctx context.Context, msg message) {
	switch m := msg.(type) {
	case sentinelStoreMsg:
		c.handleSentinelStore(ctx, m)
	case wsClosedMsg:
		if m.err != nil {
			c.log.Warn().Err(m.err).Msg("websocket stream closed")
		}
		c.cleanupWebsocket()
	case errMsg:
		c.log.Warn().Err(m.err).Msg("background task error")
	case pingTickMsg:
		c.handlePingTick()
	case addInitCallbackMsg:
		c.initCallbacks.Add(m.id, m.action)
	case addUpdateCallbackMsg:
		c.updateCallbacks.Add(m.id, m.action)
	case addJSONUpdateCallbackMsg:
		c.jsonUpdateCallbacks.Add(m.id, m.action)
	case triggerJSONSnapshotMsg:
		c.handleSnapshot(m)

	case recordMsg[sentinel.AccelerometerData]:
		handleRecord(c, m.rec, (*sentinel.Sentinel).InsertAccelerometer, sentinel.NewSentinelUpdateAccelerometer)
	case recordMsg[sentinel.AnemometerData]:
		handleRecord(c, m.rec, (*sentinel.Sentinel).InsertAnemometer, sentinel.NewSentinelUpdateAnemometer)
	case recordMsg[sentinel.CloudcoverData]:
		handleRecord(c, m.rec, (*sentinel.Sentinel).InsertCloudcover, sentinel.NewSentinelUpdateCloudcover)
	case recordMsg[sentinel.FireData]:
		handleRecord(c, m.rec, (*sentinel.Sentinel).InsertFire, sentinel.NewSentinelUpdateFire)
	case recordMsg[sentinel.GasData]:
		handleRecord(c, m.rec, (*sentinel.Sentinel).InsertGas, sentinel.NewSentinelUpdateGas)
	case recordMsg[sentinel.GpsData]:
		handleRecord(c, m.rec, (*sentinel.Sentinel).InsertGPS, sentinel.NewSentinelUpdateGPS)
	case recordMsg[sentinel.GyroscopeData]:
		handleRecord(c, m.rec, (*sentinel.Sentinel).InsertGyroscope, sentinel.NewSentinelUpdateGyroscope)
	case recordMsg[sentinel.ImageData]:
		handleRecord(c, m.rec, (*sentinel.Sentinel).InsertImage, sentinel.NewSentinelUpdateImage)
	case recordMsg[sentinel.MagnetometerData]:
		handleRecord(c, m.rec, (*sentinel.Sentinel).InsertMagnetometer, sentinel.NewSentinelUpdateMagnetometer)
	case recordMsg[sentinel.OrientationData]:
		handleRecord(c, m.rec, (*sentinel.Sentinel).InsertOrientation, sentinel.NewSentinelUpdateOrientation)
	case recordMsg[sentinel.PersonData]:
		handleRecord(c, m.rec, (*sentinel.Sentinel).InsertPerson, sentinel.NewSentinelUpdatePerson)
	case recordMsg[sentinel.PowerData]:
		handleRecord(c, m.rec, (*sentinel.Sentinel).InsertPower, sentinel.NewSentinelUpdatePower)
	case recordMsg[sentinel.SmokeData]:
		handleRecord(c, m.rec, (*sentinel.Sentinel).InsertSmoke, sentinel.NewSentinelUpdateSmoke)
	case recordMsg[sentinel.ThermometerData]:
		handleRecord(c, m.rec, (*sentinel.Sentinel).InsertThermometer, sentinel.NewSentinelUpdateThermometer)
	case recordMsg[sentinel.ValveData]:
		handleRecord(c, m.rec, (*sentinel.Sentinel).InsertValve, sentinel.NewSentinelUpdateValve)
	case recordMsg[sentinel.VocData]:
		handleRecord(c, m.rec, (*sentinel.Sentinel).InsertVOC, sentinel.NewSentinelUpdateVOC)

	default:
		c.log.Warn().Msg("unrecognized mailbox message")
	}
}

func (c *Connector) handleSentinelStore(ctx context.Context, m sentinelStoreMsg) {
	c.store = m.store
	c.metrics.storeSize.Store(int64(m.store.Len()))
	c.initCallbacks.Trigger(struct{}{})
	c.openWebSocket(ctx)
}

func (c *Connector) handleSnapshot(m triggerJSONSnapshotMsg) {
	doc, err := c.store.ToJSON(false)
	if err != nil {
		c.log.Warn().Err(err).Msg("snapshot serialization failed")
		return
	}
	m.action(doc)
}

func (c *Connector) handlePingTick() {
	if c.wsSession == nil {
		return
	}
	messageID := c.wsSession.NextPingMessageID()
	if err := c.wsSession.SendPing(time.Now().UnixMilli(), messageID); err != nil {
		c.log.Warn().Err(err).Msg("failed to send ping")
	}
}

// handleRecord implements the lazy-conversion invariant of spec.md §4.4:
// a SentinelUpdate or JSON string is only materialized when at least one
// subscriber of the matching kind is registered, and the insert into the
// store happens exactly once regardless. update_callbacks fire before
// json_update_callbacks, per spec.md §5's ordering guarantee. Records for
// an unknown device are dropped without mutating the store (spec.md §3
// invariant).
func handleRecord[T sentinel.RecordData](
	c *Connector,
	rec sentinel.SensorRecord[T],
	insert func(*sentinel.Sentinel, sentinel.SensorRecord[T], int),
	newUpdate func(sentinel.SensorRecord[T]) *sentinel.SentinelUpdate,
) {
	sen, err := c.store.SentinelOf(rec.DeviceID)
	if err != nil {
		c.log.Warn().Str("deviceId", string(rec.DeviceID)).Msg("record for unknown device, dropping")
		c.metrics.droppedUnknownDevice.Add(1)
		return
	}

	var zero T
	c.metrics.recordsTotal[zero.Capability()].Add(1)
	c.metrics.lastRecordUnixMilli.Store(time.Now().UnixMilli())

	var update *sentinel.SentinelUpdate
	wantUpdate := !c.updateCallbacks.IsEmpty()
	if wantUpdate {
		update = newUpdate(rec)
	}

	var jsonPayload string
	wantJSON := !c.jsonUpdateCallbacks.IsEmpty()
	if wantJSON {
		b, err := json.Marshal(rec)
		if err != nil {
			c.log.Warn().Err(err).Msg("failed to marshal record for json_update_callbacks")
			wantJSON = false
		} else {
			jsonPayload = string(b)
		}
	}

	insert(sen, rec, c.cfg.MaxHistory)

	if wantUpdate {
		c.updateCallbacks.Trigger(update)
	}
	if wantJSON {
		c.jsonUpdateCallbacks.Trigger(jsonPayload)
	}
}
