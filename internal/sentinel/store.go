package sentinel

import "encoding/json"

// Store maps DeviceId to an exclusively-owned Sentinel. Created empty,
// replaced wholesale by the bootstrap result, then mutated in place by the
// connector's message handlers. Not internally synchronized: per spec.md
// §5, all mutation happens inside the connector's single-consumer mailbox.
type Store struct {
	sentinels map[DeviceId]*Sentinel
	order     []DeviceId
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sentinels: make(map[DeviceId]*Sentinel)}
}

// Insert is idempotent: it replaces any prior entry for the device id but
// preserves that device's original position in insertion order.
func (s *Store) Insert(id DeviceId, sentinel *Sentinel) {
	if _, exists := s.sentinels[id]; !exists {
		s.order = append(s.order, id)
	}
	s.sentinels[id] = sentinel
}

// SentinelOf returns the sentinel for id, or NoSuchDeviceError if absent.
func (s *Store) SentinelOf(id DeviceId) (*Sentinel, error) {
	sentinel, ok := s.sentinels[id]
	if !ok {
		return nil, NoSuchDevice(id)
	}
	return sentinel, nil
}

// DeviceIDs returns the device ids in insertion order.
func (s *Store) DeviceIDs() []DeviceId {
	out := make([]DeviceId, len(s.order))
	copy(out, s.order)
	return out
}

// Len reports the number of devices held by the store.
func (s *Store) Len() int { return len(s.sentinels) }

type storeDoc struct {
	Sentinels []*Sentinel `json:"sentinels"`
}

// ToJSON serializes the full store as {"sentinels":[...]}, preserving
// device insertion order and each capability sequence's internal order.
func (s *Store) ToJSON(pretty bool) (string, error) {
	doc := storeDoc{Sentinels: make([]*Sentinel, 0, len(s.order))}
	for _, id := range s.order {
		doc.Sentinels = append(doc.Sentinels, s.sentinels[id])
	}

	var (
		b   []byte
		err error
	)
	if pretty {
		b, err = json.MarshalIndent(doc, "", "  ")
	} else {
		b, err = json.Marshal(doc)
	}
	if err != nil {
		return "", New(KindJSON, err)
	}
	return string(b), nil
}
