package connector

import (
	"context"
	"time"

	"github.com/racelabs/sentinel-connector/internal/sentinel"
	"github.com/racelabs/sentinel-connector/internal/sentinelws"
)

// openWebSocket implements spec.md §4.5: connect, expect-connected, join
// with every known device id, then spawn the read loop and (if configured)
// the ping ticker. Any failure along the handshake is logged and the
// connector stays alive with no live stream — spec.md has no reconnect
// policy, so a retry would be scope creep beyond what §4.5 describes.
func (c *Connector) openWebSocket(ctx context.Context) {
	deviceIDs := c.store.DeviceIDs()
	if len(deviceIDs) == 0 {
		c.log.Warn().Msg("no devices in store, not opening websocket")
		return
	}
	ids := make([]string, len(deviceIDs))
	for i, id := range deviceIDs {
		ids[i] = string(id)
	}

	session, err := sentinelws.Connect(ctx, c.cfg.WsURI, c.cfg.AccessToken, c.log)
	if err != nil {
		c.log.Warn().Err(err).Msg("websocket connect failed")
		return
	}
	if err := session.ExpectConnected(); err != nil {
		c.log.Warn().Err(err).Msg("websocket handshake failed")
		session.Close()
		return
	}
	if err := session.Join(ids); err != nil {
		c.log.Warn().Err(err).Msg("websocket join failed")
		session.Close()
		return
	}

	wsCtx, cancel := context.WithCancel(ctx)
	c.wsSession = session
	c.wsCancel = cancel
	c.metrics.wsConnected.Store(true)

	handlers := sentinelws.Handlers{
		OnRecord: func(deviceID string, sensorNo uint32, capability sentinel.SensorCapability) {
			c.wg.Add(1)
			go func() {
				defer c.wg.Done()
				c.fetchAndPostRecord(wsCtx, sentinel.DeviceId(deviceID), sensorNo, capability)
			}()
		},
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		err := session.ReadLoop(wsCtx, handlers)
		c.post(wsClosedMsg{err: err})
	}()

	if c.cfg.PingInterval > 0 {
		c.pingTicker = time.NewTicker(c.cfg.PingInterval)
		c.pingDone = make(chan struct{})
		ticker := c.pingTicker
		done := c.pingDone

		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			for {
				select {
				case <-ticker.C:
					c.post(pingTickMsg{})
				case <-done:
					return
				}
			}
		}()
	}
}

// cleanupWebsocket tears down whatever live WebSocket resources are held:
// stop the ping timer, cancel the read loop's context, and close the
// session so any in-flight blocking read unblocks immediately. Shared by
// the WsClosed handler and run's terminate path (spec.md §6 "scoped
// resources" — cleanup must be idempotent since both can race to call it).
func (c *Connector) cleanupWebsocket() {
	c.metrics.wsConnected.Store(false)
	if c.pingTicker != nil {
		c.pingTicker.Stop()
		close(c.pingDone)
		c.pingTicker = nil
		c.pingDone = nil
	}
	if c.wsCancel != nil {
		c.wsCancel()
		c.wsCancel = nil
	}
	if c.wsSession != nil {
		c.wsSession.Close()
		c.wsSession = nil
	}
}
