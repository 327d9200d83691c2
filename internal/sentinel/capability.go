// Package sentinel holds the wire types, codec, store and callback registry
// shared by the HTTP bootstrap, the WebSocket session and the connector.
package sentinel

import (
	"encoding/json"
	"fmt"
)

// SensorCapability is the closed set of telemetry kinds a sentinel sensor
// can produce. Wire form is always the lowercase tag name.
type SensorCapability int

const (
	CapabilityAccelerometer SensorCapability = iota
	CapabilityAnemometer
	CapabilityCloudcover
	CapabilityFire
	CapabilityGas
	CapabilityGPS
	CapabilityGyroscope
	CapabilityImage
	CapabilityMagnetometer
	CapabilityOrientation
	CapabilityPerson
	CapabilityPower
	CapabilitySmoke
	CapabilityThermometer
	CapabilityValve
	CapabilityVOC
)

var capabilityNames = [...]string{
	"accelerometer",
	"anemometer",
	"cloudcover",
	"fire",
	"gas",
	"gps",
	"gyroscope",
	"image",
	"magnetometer",
	"orientation",
	"person",
	"power",
	"smoke",
	"thermometer",
	"valve",
	"voc",
}

func (c SensorCapability) String() string {
	if c < 0 || int(c) >= len(capabilityNames) {
		return "unknown"
	}
	return capabilityNames[c]
}

// ParseCapability resolves the lowercase wire tag to a SensorCapability. The
// set is closed: an unrecognized tag is an error, not a catch-all variant.
func ParseCapability(s string) (SensorCapability, error) {
	for i, name := range capabilityNames {
		if name == s {
			return SensorCapability(i), nil
		}
	}
	return 0, Newf(KindJSON, "unknown sensor capability %q", s)
}

func (c SensorCapability) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *SensorCapability) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("sensor capability: %w", err)
	}
	parsed, err := ParseCapability(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
