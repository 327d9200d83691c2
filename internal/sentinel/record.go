package sentinel

import (
	"encoding/json"
	"fmt"
	"time"
)

// DeviceId identifies a field device. Equality is plain string equality.
type DeviceId string

// RecordID is an opaque reference to another record, used by the
// evidences/claims cross-reference lists. The core never interprets it.
type RecordID struct {
	ID string `json:"id"`
}

// SensorRecord is one typed reading from one sensor. Ordering is by
// TimeRecorded; equality is by ID alone — the payload never participates
// in either.
type SensorRecord[T RecordData] struct {
	ID           string
	TimeRecorded time.Time
	SensorNo     uint32
	DeviceID     DeviceId
	Evidences    []RecordID
	Claims       []RecordID
	Data         T
}

// Before reports whether r sorts strictly before other under the
// newest-first ordering used by capability sequences, i.e. r is newer.
func (r SensorRecord[T]) Before(other SensorRecord[T]) bool {
	return r.TimeRecorded.After(other.TimeRecorded)
}

// Equal implements the record-id equality law from spec.md §3: two records
// are equal iff their ID strings match.
func (r SensorRecord[T]) Equal(other SensorRecord[T]) bool {
	return r.ID == other.ID
}

const jsonTimeLayout = "2006-01-02T15:04:05.000Z"

// MarshalJSON emits the record under the capability-named property
// required by spec.md §4.1 (e.g. "gps" for SensorRecord[GpsData]).
func (r SensorRecord[T]) MarshalJSON() ([]byte, error) {
	evidences := r.Evidences
	if evidences == nil {
		evidences = []RecordID{}
	}
	claims := r.Claims
	if claims == nil {
		claims = []RecordID{}
	}
	out := map[string]any{
		"id":           r.ID,
		"timeRecorded": r.TimeRecorded.UTC().Format(jsonTimeLayout),
		"sensorNo":     r.SensorNo,
		"deviceId":     r.DeviceID,
		"evidences":    evidences,
		"claims":       claims,
	}
	out[r.Data.Capability().String()] = r.Data
	return json.Marshal(out)
}

// UnmarshalJSON accepts the payload under "data" or under the
// capability-named property, per spec.md §4.1.
func (r *SensorRecord[T]) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("sensor record: %w", err)
	}

	if v, ok := raw["id"]; ok {
		if err := json.Unmarshal(v, &r.ID); err != nil {
			return fmt.Errorf("sensor record id: %w", err)
		}
	}
	if v, ok := raw["timeRecorded"]; ok {
		if err := json.Unmarshal(v, &r.TimeRecorded); err != nil {
			return fmt.Errorf("sensor record timeRecorded: %w", err)
		}
	}
	if v, ok := raw["sensorNo"]; ok {
		if err := json.Unmarshal(v, &r.SensorNo); err != nil {
			return fmt.Errorf("sensor record sensorNo: %w", err)
		}
	}
	if v, ok := raw["deviceId"]; ok {
		if err := json.Unmarshal(v, &r.DeviceID); err != nil {
			return fmt.Errorf("sensor record deviceId: %w", err)
		}
	}
	if v, ok := raw["evidences"]; ok {
		if err := json.Unmarshal(v, &r.Evidences); err != nil {
			return fmt.Errorf("sensor record evidences: %w", err)
		}
	}
	if v, ok := raw["claims"]; ok {
		if err := json.Unmarshal(v, &r.Claims); err != nil {
			return fmt.Errorf("sensor record claims: %w", err)
		}
	}

	var zero T
	payload, ok := raw["data"]
	if !ok {
		payload, ok = raw[zero.Capability().String()]
	}
	if ok {
		var data T
		if err := json.Unmarshal(payload, &data); err != nil {
			return fmt.Errorf("sensor record payload: %w", err)
		}
		r.Data = data
	}
	return nil
}
