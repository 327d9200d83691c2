package connector

import "github.com/racelabs/sentinel-connector/internal/sentinel"

// message is the sealed mailbox message type. Background tasks (bootstrap,
// WebSocket read loop, per-record HTTP fetch, ping timer) never touch
// connector state directly — they only construct a message and post it
// through Connector.post.
type message interface {
	isMessage()
}

// sentinelStoreMsg carries the bootstrapped store back from the bootstrap
// task (spec.md §4.2, §4.6 "SentinelStore").
type sentinelStoreMsg struct {
	store *sentinel.Store
}

func (sentinelStoreMsg) isMessage() {}

// recordMsg carries one freshly-fetched record for a single capability
// back from the per-notification fetch task (spec.md §4.5 step 3b). Each
// of the 16 capabilities instantiates this generic type separately; the
// mailbox run loop type-switches over the 16 concrete instantiations,
// mirroring the closed dispatch already used in sentinelhttp.Bootstrap.
type recordMsg[T sentinel.RecordData] struct {
	rec sentinel.SensorRecord[T]
}

func (recordMsg[T]) isMessage() {}

// wsClosedMsg reports that the WebSocket read loop returned (spec.md
// §4.6 "WsClosed"), whatever the cause — the mailbox always reacts by
// running cleanup and leaving the connector alive.
type wsClosedMsg struct {
	err error
}

func (wsClosedMsg) isMessage() {}

// errMsg reports a background task failure that doesn't have a more
// specific message type (spec.md §4.6 "Err") — logged and otherwise
// ignored, since the connector has no restart/backoff policy to drive.
type errMsg struct {
	err error
}

func (errMsg) isMessage() {}

// pingTickMsg is posted by the ping timer goroutine on each tick
// (spec.md §4.5 "Ping").
type pingTickMsg struct{}

func (pingTickMsg) isMessage() {}

type addInitCallbackMsg struct {
	id     string
	action sentinel.Callback[struct{}]
}

func (addInitCallbackMsg) isMessage() {}

type addUpdateCallbackMsg struct {
	id     string
	action sentinel.Callback[*sentinel.SentinelUpdate]
}

func (addUpdateCallbackMsg) isMessage() {}

type addJSONUpdateCallbackMsg struct {
	id     string
	action sentinel.Callback[string]
}

func (addJSONUpdateCallbackMsg) isMessage() {}

// triggerJSONSnapshotMsg asks the mailbox to serialize the current store
// and hand the result to action, synchronously from the mailbox's point
// of view (spec.md §4.6 "TriggerJsonSnapshot").
type triggerJSONSnapshotMsg struct {
	action sentinel.Callback[string]
}

func (triggerJSONSnapshotMsg) isMessage() {}
