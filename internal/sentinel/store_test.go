package sentinel

import (
	"encoding/json"
	"testing"
)

func TestStoreInsertPreservesOrderOnReplace(t *testing.T) {
	s := NewStore()
	s.Insert("dev-a", NewSentinel("dev-a", "A"))
	s.Insert("dev-b", NewSentinel("dev-b", "B"))
	s.Insert("dev-a", NewSentinel("dev-a", "A-renamed")) // idempotent replace

	ids := s.DeviceIDs()
	if len(ids) != 2 || ids[0] != "dev-a" || ids[1] != "dev-b" {
		t.Fatalf("DeviceIDs = %v, want [dev-a dev-b] (insertion order preserved on replace)", ids)
	}

	sentinel, err := s.SentinelOf("dev-a")
	if err != nil {
		t.Fatalf("SentinelOf: %v", err)
	}
	if sentinel.DeviceName != "A-renamed" {
		t.Fatalf("DeviceName = %s, want replaced value", sentinel.DeviceName)
	}
}

func TestStoreSentinelOfUnknownDevice(t *testing.T) {
	s := NewStore()
	_, err := s.SentinelOf("ghost")
	if !Is(err, KindNoSuchDevice) {
		t.Fatalf("expected NoSuchDevice error, got %v", err)
	}
}

func TestStoreToJSONShapeAndOrder(t *testing.T) {
	s := NewStore()
	s.Insert("dev-a", NewSentinel("dev-a", "A"))
	s.Insert("dev-b", NewSentinel("dev-b", "B"))

	out, err := s.ToJSON(false)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	var doc struct {
		Sentinels []struct {
			DeviceID string `json:"deviceId"`
		} `json:"sentinels"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if len(doc.Sentinels) != 2 || doc.Sentinels[0].DeviceID != "dev-a" || doc.Sentinels[1].DeviceID != "dev-b" {
		t.Fatalf("snapshot device order = %+v, want [dev-a dev-b]", doc.Sentinels)
	}
}
