package sentinel

import "encoding/json"

// Device is one entry in the /devices listing.
type Device struct {
	ID   string  `json:"id"`
	Info *string `json:"info,omitempty"`
}

// SensorData describes one sensor attached to a device: its index, the
// device it belongs to, an optional part number, and the capabilities it
// reports.
type SensorData struct {
	No           uint32             `json:"no"`
	DeviceID     string             `json:"deviceId"`
	PartNo       *string            `json:"partNo,omitempty"`
	Capabilities []SensorCapability `json:"capabilities"`
}

// listEnvelope is the shape every REST list response shares (spec.md
// §4.1): only Data is consumed; Count/Total/Page/PageCount are present on
// the wire but otherwise ignored by the core.
type listEnvelope[T any] struct {
	Data      []T `json:"data"`
	Count     int `json:"count"`
	Total     int `json:"total"`
	Page      int `json:"page"`
	PageCount int `json:"pageCount"`
}

// DeviceList is the decoded response of GET {base}/devices.
type DeviceList struct {
	envelope listEnvelope[Device]
}

func (d *DeviceList) UnmarshalJSON(b []byte) error {
	return unmarshalEnvelope(b, &d.envelope)
}

func (d DeviceList) MarshalJSON() ([]byte, error) {
	return marshalEnvelope(d.envelope)
}

// Devices returns the decoded device entries, wire order preserved.
func (d *DeviceList) Devices() []Device { return d.envelope.Data }

// DeviceIDs returns the device ids in the exact order of data[] on the
// wire, per spec.md §8's round-trip law.
func (d *DeviceList) DeviceIDs() []DeviceId {
	ids := make([]DeviceId, len(d.envelope.Data))
	for i, dev := range d.envelope.Data {
		ids[i] = DeviceId(dev.ID)
	}
	return ids
}

// SensorList is the decoded response of GET {base}/devices/{id}/sensors.
type SensorList struct {
	envelope listEnvelope[SensorData]
}

func (s *SensorList) UnmarshalJSON(b []byte) error {
	return unmarshalEnvelope(b, &s.envelope)
}

func (s SensorList) MarshalJSON() ([]byte, error) {
	return marshalEnvelope(s.envelope)
}

// Sensors returns the decoded sensor entries.
func (s *SensorList) Sensors() []SensorData { return s.envelope.Data }

// RecordList is the decoded response of the per-(sensor,capability) record
// fetch.
type RecordList[T RecordData] struct {
	envelope listEnvelope[SensorRecord[T]]
}

func (r *RecordList[T]) UnmarshalJSON(b []byte) error {
	return unmarshalEnvelope(b, &r.envelope)
}

func (r RecordList[T]) MarshalJSON() ([]byte, error) {
	return marshalEnvelope(r.envelope)
}

// Records returns the decoded records, wire order preserved.
func (r *RecordList[T]) Records() []SensorRecord[T] { return r.envelope.Data }

func unmarshalEnvelope[T any](b []byte, dst *listEnvelope[T]) error {
	type alias listEnvelope[T]
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return New(KindJSON, err)
	}
	*dst = listEnvelope[T](a)
	return nil
}

func marshalEnvelope[T any](e listEnvelope[T]) ([]byte, error) {
	type alias listEnvelope[T]
	return json.Marshal(alias(e))
}
