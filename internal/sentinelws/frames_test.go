package sentinelws

import (
	"encoding/json"
	"testing"
)

func TestEncodeJoinShape(t *testing.T) {
	payload, err := encodeJoin([]string{"roo7gd1dldn3"}, "1")
	if err != nil {
		t.Fatalf("encodeJoin: %v", err)
	}
	var f frame
	if err := json.Unmarshal(payload, &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f.Event != EventJoin {
		t.Fatalf("event = %s, want join", f.Event)
	}
	var data joinData
	if err := json.Unmarshal(f.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if len(data.DeviceIDs) != 1 || data.DeviceIDs[0] != "roo7gd1dldn3" || data.MessageID != "1" {
		t.Fatalf("unexpected join data: %+v", data)
	}
}

func TestEncodePingCarriesEpochMillis(t *testing.T) {
	payload, err := encodePing(1_700_000_000_000, "42")
	if err != nil {
		t.Fatalf("encodePing: %v", err)
	}
	var f frame
	if err := json.Unmarshal(payload, &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f.Event != EventPing {
		t.Fatalf("event = %s, want ping", f.Event)
	}
	var data pingData
	if err := json.Unmarshal(f.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if data.RequestTime != 1_700_000_000_000 || data.MessageID != "42" {
		t.Fatalf("unexpected ping data: %+v", data)
	}
}

func TestHyphenatedEventConstants(t *testing.T) {
	cases := map[Event]string{
		EventTriggerAlert: "trigger-alert",
		EventSwitchLights: "switch-lights",
		EventSwitchValve:  "switch-valve",
	}
	for event, wire := range cases {
		if string(event) != wire {
			t.Fatalf("event constant %v != wire form %q", event, wire)
		}
	}
}
