package sentinelws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/racelabs/sentinel-connector/internal/sentinel"
)

var upgrader = websocket.Upgrader{}

func TestSessionConnectJoinAndRecordNotification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("server upgrade: %v", err)
			return
		}
		defer conn.Close()

		connectedPayload, _ := encodeFrame(EventConnected, connectedData{Message: "connected"})
		if err := conn.WriteMessage(websocket.TextMessage, connectedPayload); err != nil {
			t.Errorf("write connected: %v", err)
			return
		}

		_, joinReq, err := conn.ReadMessage()
		if err != nil {
			t.Errorf("read join request: %v", err)
			return
		}
		if !strings.Contains(string(joinReq), `"event":"join"`) {
			t.Errorf("join request malformed: %s", joinReq)
		}
		if err := conn.WriteMessage(websocket.TextMessage, joinReq); err != nil {
			t.Errorf("write join echo: %v", err)
			return
		}

		recordPayload, _ := encodeFrame(EventRecord, recordData{DeviceID: "roo7gd1dldn3", SensorNo: 9, Type: "gps"})
		if err := conn.WriteMessage(websocket.TextMessage, recordPayload); err != nil {
			t.Errorf("write record: %v", err)
			return
		}

		time.Sleep(50 * time.Millisecond)
	}))
	defer srv.Close()

	wsURL := "http" + strings.TrimPrefix(srv.URL, "http")
	sess, err := Connect(context.Background(), wsURL, "test-token", zerolog.Nop())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer sess.Close()

	if err := sess.ExpectConnected(); err != nil {
		t.Fatalf("ExpectConnected: %v", err)
	}
	if err := sess.Join([]string{"roo7gd1dldn3"}); err != nil {
		t.Fatalf("Join: %v", err)
	}

	recordCh := make(chan sentinel.SensorCapability, 1)
	handlers := Handlers{
		OnRecord: func(deviceID string, sensorNo uint32, capability sentinel.SensorCapability) {
			if deviceID != "roo7gd1dldn3" || sensorNo != 9 {
				t.Errorf("unexpected record notification: %s %d", deviceID, sensorNo)
			}
			recordCh <- capability
		},
	}

	errCh := make(chan error, 1)
	go func() { errCh <- sess.ReadLoop(context.Background(), handlers) }()

	select {
	case cap := <-recordCh:
		if cap != sentinel.CapabilityGPS {
			t.Fatalf("capability = %v, want gps", cap)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for record notification")
	}

	select {
	case err := <-errCh:
		if !sentinel.Is(err, sentinel.KindWSClosed) {
			t.Fatalf("ReadLoop ended with %v, want WsClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ReadLoop to observe stream close")
	}
}

func TestExpectConnectedRejectsWrongFrame(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		payload, _ := encodeFrame(EventError, errorData{Message: "nope"})
		conn.WriteMessage(websocket.TextMessage, payload)
		time.Sleep(50 * time.Millisecond)
	}))
	defer srv.Close()

	wsURL := "http" + strings.TrimPrefix(srv.URL, "http")
	sess, err := Connect(context.Background(), wsURL, "test-token", zerolog.Nop())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer sess.Close()

	err = sess.ExpectConnected()
	if !sentinel.Is(err, sentinel.KindWSProtocol) {
		t.Fatalf("expected WsProtocol error, got %v", err)
	}
}
