package sentinelws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/racelabs/sentinel-connector/internal/sentinel"
)

// Handlers are the connector's callbacks for inbound frames other than the
// connect/join handshake, invoked from ReadLoop (spec.md §4.5 step 3).
type Handlers struct {
	// OnRecord fires for a record notification; the connector is expected
	// to spawn the matching HTTP fetch and post the result back to its
	// own mailbox — sentinelws stays unaware of mailbox message types.
	OnRecord func(deviceID string, sensorNo uint32, capability sentinel.SensorCapability)
	OnPong   func(requestTime, responseTime int64, messageID string)
	OnError  func(message string)
	OnTriggerAlertAck func(deviceID, messageID, result string)
}

// Session is a connected, joined WebSocket stream to the sentinel server.
// Grounded on nugget-thane-ai-agent/internal/homeassistant/websocket.go's
// connect-then-expect-first-frame pattern.
type Session struct {
	conn   *websocket.Conn
	connMu sync.Mutex
	msgID  atomic.Int64
	log    zerolog.Logger
}

// Connect opens a WebSocket to wsURI with the bearer token in the
// Authorization header (spec.md §4.5 "connect").
func Connect(ctx context.Context, wsURI, accessToken string, log zerolog.Logger) (*Session, error) {
	u, err := url.Parse(wsURI)
	if err != nil {
		return nil, sentinel.New(sentinel.KindURLParse, err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+accessToken)

	dialer := websocket.Dialer{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
	}
	conn, _, err := dialer.DialContext(ctx, u.String(), header)
	if err != nil {
		return nil, sentinel.New(sentinel.KindWS, err)
	}
	return &Session{conn: conn, log: log.With().Str("component", "sentinelws").Logger()}, nil
}

func (s *Session) readFrame() (frame, error) {
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		return frame{}, sentinel.New(sentinel.KindWSClosed, err)
	}
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return frame{}, sentinel.New(sentinel.KindJSON, err)
	}
	return f, nil
}

func (s *Session) writeText(b []byte) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	if err := s.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return sentinel.New(sentinel.KindWS, err)
	}
	return nil
}

// ExpectConnected reads the next frame and requires event=connected
// (spec.md §4.5 step 1).
func (s *Session) ExpectConnected() error {
	f, err := s.readFrame()
	if err != nil {
		return err
	}
	if f.Event != EventConnected {
		return sentinel.Newf(sentinel.KindWSProtocol, "expected 'connected' message, got %q", f.Event)
	}
	return nil
}

// Join sends the join request and requires an echoed join frame in
// response (spec.md §4.5 step 2).
func (s *Session) Join(deviceIDs []string) error {
	messageID := "1"
	payload, err := encodeJoin(deviceIDs, messageID)
	if err != nil {
		return sentinel.New(sentinel.KindJSON, err)
	}
	if err := s.writeText(payload); err != nil {
		return err
	}

	f, err := s.readFrame()
	if err != nil {
		return err
	}
	if f.Event != EventJoin {
		return sentinel.Newf(sentinel.KindWSProtocol, "expected 'join' message, got %q", f.Event)
	}
	return nil
}

// NextPingMessageID returns a monotonically increasing message id for
// outbound ping frames (spec.md §4.5 "Ping").
func (s *Session) NextPingMessageID() string {
	return strconv.FormatInt(s.msgID.Add(1), 10)
}

// SendPing emits a ping frame carrying requestTime (epoch ms) and
// messageID. The connector owns the send half and calls this on its timer
// tick, per spec.md §4.5.
func (s *Session) SendPing(requestTimeMillis int64, messageID string) error {
	payload, err := encodePing(requestTimeMillis, messageID)
	if err != nil {
		return sentinel.New(sentinel.KindJSON, err)
	}
	return s.writeText(payload)
}

// Send writes a raw pre-encoded outbound command frame (e.g. from
// EncodeTriggerAlert/EncodeSwitchLights/EncodeSwitchValve).
func (s *Session) Send(payload []byte) error {
	return s.writeText(payload)
}

// Close closes the underlying connection.
func (s *Session) Close() error {
	return s.conn.Close()
}

// ReadLoop processes inbound frames until the stream closes, dispatching
// to Handlers per spec.md §4.5 step 3. It returns WsClosedError when the
// stream closes (read error or server close), never on a handled frame.
func (s *Session) ReadLoop(ctx context.Context, h Handlers) error {
	for {
		select {
		case <-ctx.Done():
			return sentinel.New(sentinel.KindWSClosed, ctx.Err())
		default:
		}

		f, err := s.readFrame()
		if err != nil {
			if sentinel.Is(err, sentinel.KindJSON) {
				s.log.Warn().Err(err).Msg("malformed websocket frame, skipping")
				continue
			}
			return err
		}

		switch f.Event {
		case EventRecord:
			var data recordData
			if err := json.Unmarshal(f.Data, &data); err != nil {
				s.log.Warn().Err(err).Msg("malformed record notification")
				continue
			}
			capability, err := sentinel.ParseCapability(data.Type)
			if err != nil {
				s.log.Warn().Str("type", data.Type).Msg("unknown capability in record notification")
				continue
			}
			if h.OnRecord != nil {
				h.OnRecord(data.DeviceID, data.SensorNo, capability)
			}
		case EventPong:
			var data pongData
			if err := json.Unmarshal(f.Data, &data); err == nil && h.OnPong != nil {
				h.OnPong(data.RequestTime, data.ResponseTime, data.MessageID)
			}
		case EventError:
			var data errorData
			_ = json.Unmarshal(f.Data, &data)
			s.log.Warn().Str("message", data.Message).Msg("server reported error")
			if h.OnError != nil {
				h.OnError(data.Message)
			}
		case EventTriggerAlert:
			var data triggerAlertData
			if err := json.Unmarshal(f.Data, &data); err == nil {
				s.log.Info().Str("deviceId", data.DeviceID).Str("result", data.Result).Msg("trigger-alert ack")
				if h.OnTriggerAlertAck != nil {
					h.OnTriggerAlertAck(data.DeviceID, data.MessageID, data.Result)
				}
			}
		default:
			// any other event is ignored, per spec.md §4.5
		}
	}
}
