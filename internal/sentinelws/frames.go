// Package sentinelws implements the WebSocket session protocol of
// spec.md §4.5: connect, expect-connected, join, and the per-frame read
// loop, using github.com/gorilla/websocket.
package sentinelws

import "encoding/json"

// Event is the WebSocket frame discriminator (spec.md §4.1). Hyphenated
// wire events (trigger-alert, switch-lights, switch-valve) are mapped via
// explicit constants since Go struct tags have no alias mechanism at the
// discriminator level.
type Event string

const (
	EventConnected    Event = "connected"
	EventJoin         Event = "join"
	EventRecord       Event = "record"
	EventPing         Event = "ping"
	EventPong         Event = "pong"
	EventTriggerAlert Event = "trigger-alert"
	EventSwitchLights Event = "switch-lights"
	EventSwitchValve  Event = "switch-valve"
	EventError        Event = "error"
)

// frame is the {event, data} envelope every WebSocket message shares.
type frame struct {
	Event Event           `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type connectedData struct {
	Message string `json:"message"`
}

type joinData struct {
	DeviceIDs []string `json:"deviceIds"`
	MessageID string   `json:"messageId"`
}

type recordData struct {
	DeviceID string `json:"deviceId"`
	SensorNo uint32 `json:"sensorNo"`
	Type     string `json:"type"`
}

type pingData struct {
	RequestTime int64  `json:"requestTime"`
	MessageID   string `json:"messageId"`
}

type pongData struct {
	RequestTime  int64  `json:"requestTime"`
	ResponseTime int64  `json:"responseTime"`
	MessageID    string `json:"messageId"`
}

type triggerAlertData struct {
	DeviceIDs []string `json:"deviceIds,omitempty"`
	DeviceID  string   `json:"deviceId,omitempty"`
	MessageID string   `json:"messageId"`
	Result    string   `json:"result,omitempty"`
}

type switchLightsData struct {
	DeviceIDs []string `json:"deviceIds"`
	Type      string   `json:"type"`
	State     string   `json:"state"`
	MessageID string   `json:"messageId"`
}

type switchValveData struct {
	DeviceIDs []string `json:"deviceIds"`
	State     string   `json:"state"`
	MessageID string   `json:"messageId"`
}

type errorData struct {
	Message string `json:"message"`
}

func encodeFrame(event Event, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(frame{Event: event, Data: payload})
}

// encodeJoin builds the outbound {event:"join", data:{deviceIds, messageId}} frame.
func encodeJoin(deviceIDs []string, messageID string) ([]byte, error) {
	return encodeFrame(EventJoin, joinData{DeviceIDs: deviceIDs, MessageID: messageID})
}

// encodePing builds the outbound ping frame; requestTime is epoch ms.
func encodePing(requestTime int64, messageID string) ([]byte, error) {
	return encodeFrame(EventPing, pingData{RequestTime: requestTime, MessageID: messageID})
}

// EncodeTriggerAlert builds the outbound trigger-alert command.
func EncodeTriggerAlert(deviceIDs []string, messageID string) ([]byte, error) {
	return encodeFrame(EventTriggerAlert, triggerAlertData{DeviceIDs: deviceIDs, MessageID: messageID})
}

// EncodeSwitchLights builds the outbound switch-lights command.
func EncodeSwitchLights(deviceIDs []string, lightType, state, messageID string) ([]byte, error) {
	return encodeFrame(EventSwitchLights, switchLightsData{DeviceIDs: deviceIDs, Type: lightType, State: state, MessageID: messageID})
}

// EncodeSwitchValve builds the outbound switch-valve command.
func EncodeSwitchValve(deviceIDs []string, state, messageID string) ([]byte, error) {
	return encodeFrame(EventSwitchValve, switchValveData{DeviceIDs: deviceIDs, State: state, MessageID: messageID})
}
