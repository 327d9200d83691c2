package sentinel

import "testing"

func TestCapabilityRoundTrip(t *testing.T) {
	for _, name := range capabilityNames {
		t.Run(name, func(t *testing.T) {
			cap, err := ParseCapability(name)
			if err != nil {
				t.Fatalf("ParseCapability(%q): %v", name, err)
			}
			b, err := cap.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON: %v", err)
			}
			if got := string(b); got != `"`+name+`"` {
				t.Fatalf("MarshalJSON(%q) = %s, want %q", name, got, name)
			}

			var decoded SensorCapability
			if err := decoded.UnmarshalJSON(b); err != nil {
				t.Fatalf("UnmarshalJSON: %v", err)
			}
			if decoded != cap {
				t.Fatalf("round trip mismatch: got %v, want %v", decoded, cap)
			}
		})
	}
}

func TestParseCapabilityUnknown(t *testing.T) {
	if _, err := ParseCapability("not-a-capability"); err == nil {
		t.Fatal("expected error for unknown capability tag")
	}
}
