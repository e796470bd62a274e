package query

import (
	"time"

	"github.com/x-xyz/suinsapi/base/ctx"
	"github.com/x-xyz/suinsapi/base/metrics"
	"github.com/x-xyz/suinsapi/domain/keys"
)

// Status is the lifecycle of one observed query.
type Status int

const (
	// StatusDisabled means the query is not allowed to run, or has never run.
	StatusDisabled Status = iota
	StatusPending
	StatusSuccess
	StatusError
)

var statusNames = map[Status]string{
	StatusDisabled: "disabled",
	StatusPending:  "pending",
	StatusSuccess:  "success",
	StatusError:    "error",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Key identifies a cacheable call: an operation tag and its input.
type Key struct {
	Tag   string
	Input string
}

func NewKey(tag, input string) Key {
	return Key{Tag: tag, Input: input}
}

func (k Key) String() string {
	return keys.RedisKey(k.Tag, k.Input)
}

// State is a snapshot of a query seen through an observer.
type State struct {
	Status Status
	// Data holds the last successful value, nil if none
	Data interface{}
	// Err is the cause of the last failed fetch when Status is StatusError
	Err error
	// Fetching is true while a call for the key is in flight
	Fetching  bool
	UpdatedAt time.Time
}

// Settled reports whether the state will not change without a refetch.
func (s State) Settled() bool {
	return s.Status == StatusSuccess || s.Status == StatusError
}

// Fetcher performs the underlying call. It runs on the client's own context,
// detached from whoever observed the query first.
type Fetcher func(c ctx.Ctx) (interface{}, error)

// Trigger subscribes to an external change that may flip the enabled
// predicate. notify is called on every change; cancel stops the subscription.
type Trigger func(notify func()) (cancel func())

type Options struct {
	// RefetchOnFocus refetches settled queries on FocusRegained
	RefetchOnFocus bool
	// Retry is the number of extra attempts after a failed fetch
	Retry int
	// RetryDelay is the first backoff delay, doubled on each attempt
	RetryDelay time.Duration
}

type Config struct {
	Key Key
	// Enabled gates the fetch. nil means always enabled.
	Enabled  func() bool
	Fetch    Fetcher
	Options  Options
	Triggers []Trigger
}

// Client caches query results by key and runs at most one fetch per key at a
// time.
type Client interface {
	// Observe attaches an observer to the key, starting a fetch if enabled and
	// nothing is cached or in flight.
	Observe(c ctx.Ctx, cfg Config) Observer
	// Invalidate drops the cached result of key. Enabled observers refetch.
	Invalidate(c ctx.Ctx, key Key)
	// FocusRegained refetches settled keys whose observers opted in.
	FocusRegained(c ctx.Ctx)
	// Peek returns the cached state of key without observing it.
	Peek(key Key) (State, bool)
	// Close cancels in-flight fetches.
	Close()
}

// Observer is one consumer's reactive view of a query.
type Observer interface {
	Key() Key
	// State returns the current state, lazily starting the fetch when the
	// query became enabled since the last look.
	State() State
	// Refresh re-evaluates the enabled predicate and notifies subscribers
	// when the state changed.
	Refresh(c ctx.Ctx) State
	// Wait blocks until the state is not pending or c is done.
	Wait(c ctx.Ctx) (State, error)
	Subscribe(fn func(State)) (unsubscribe func())
	Close()
}

type ClientCfg struct {
	// MaxEntries bounds the unobserved entries kept for reuse
	MaxEntries int
	Metrics    metrics.Service
}
