package query

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"
	"golang.org/x/xerrors"

	"github.com/x-xyz/suinsapi/base/backoff"
	"github.com/x-xyz/suinsapi/base/ctx"
	"github.com/x-xyz/suinsapi/base/log"
	"github.com/x-xyz/suinsapi/base/metrics"
	"github.com/x-xyz/suinsapi/domain/keys"
)

const (
	defaultMaxEntries = 1024
	defaultRetryDelay = time.Second
	maxRetryDelay     = 30 * time.Second
)

type client struct {
	base   ctx.Ctx
	cancel context.CancelFunc
	met    metrics.Service
	group  singleflight.Group

	mu sync.Mutex
	// active holds entries with at least one observer, settled holds the rest
	active  map[string]*entry
	settled *lru.Cache
}

// New creates a query client. Entries nobody observes are kept in an LRU of
// cfg.MaxEntries and dropped when it overflows.
func New(cfg ClientCfg) Client {
	size := cfg.MaxEntries
	if size <= 0 {
		size = defaultMaxEntries
	}
	settled, err := lru.New(size)
	if err != nil {
		panic(err)
	}

	met := cfg.Metrics
	if met == nil {
		met = metrics.New(keys.PfxQuery)
	}

	base, cancel := ctx.WithCancel(ctx.Background())
	return &client{
		base:    base,
		cancel:  cancel,
		met:     met,
		active:  make(map[string]*entry),
		settled: settled,
	}
}

func (cl *client) Observe(c ctx.Ctx, cfg Config) Observer {
	e := cl.acquire(cfg.Key)
	o := &observer{
		cl:   cl,
		e:    e,
		cfg:  cfg,
		subs: make(map[int]func(State)),
	}
	o.last = o.current()
	e.attach(o)

	// triggers fire long after the observing request is gone
	bg := ctx.Detach(c)
	cancels := make([]func(), 0, len(cfg.Triggers))
	for _, trigger := range cfg.Triggers {
		cancels = append(cancels, trigger(func() { o.Refresh(bg) }))
	}
	o.mu.Lock()
	o.cancels = cancels
	o.mu.Unlock()

	o.sync()
	return o
}

func (cl *client) Invalidate(c ctx.Ctx, key Key) {
	e := cl.lookup(key)
	if e == nil {
		return
	}
	c.WithField("key", key.String()).Debug("invalidate query")
	e.invalidate()
}

func (cl *client) FocusRegained(c ctx.Ctx) {
	cl.mu.Lock()
	entries := make([]*entry, 0, len(cl.active))
	for _, e := range cl.active {
		entries = append(entries, e)
	}
	cl.mu.Unlock()

	for _, e := range entries {
		if e.snapshot().Settled() {
			e.kick(true)
		}
	}
}

func (cl *client) Peek(key Key) (State, bool) {
	e := cl.lookup(key)
	if e == nil {
		return State{}, false
	}
	s := e.snapshot()
	if s.Status == StatusDisabled {
		return State{}, false
	}
	return s, true
}

func (cl *client) Close() {
	cl.cancel()
}

func (cl *client) acquire(key Key) *entry {
	k := key.String()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	e, ok := cl.active[k]
	if !ok {
		if v, hit := cl.settled.Get(k); hit {
			e = v.(*entry)
			cl.settled.Remove(k)
		} else {
			e = newEntry(cl, key)
		}
		cl.active[k] = e
	}
	e.refs++
	return e
}

func (cl *client) release(e *entry) {
	k := e.key.String()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	e.refs--
	if e.refs > 0 {
		return
	}
	if cl.active[k] == e {
		delete(cl.active, k)
		cl.settled.Add(k, e)
	}
}

func (cl *client) lookup(key Key) *entry {
	k := key.String()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if e, ok := cl.active[k]; ok {
		return e
	}
	if v, ok := cl.settled.Peek(k); ok {
		return v.(*entry)
	}
	return nil
}

// run coalesces concurrent fetches of the same key into one call.
func (cl *client) run(key Key, fetch Fetcher, opts Options) (interface{}, error) {
	k := key.String()
	ch := cl.group.DoChan(k, func() (val interface{}, err error) {
		defer func() {
			if p := recover(); p != nil {
				cl.base.WithFields(log.Fields{
					"key":   k,
					"err":   p,
					"stack": string(debug.Stack()),
				}).Error("query fetch panicked")
				err = xerrors.Errorf("query %s: fetch panicked: %v", k, p)
			}
		}()
		return cl.fetch(key, fetch, opts)
	})

	res := <-ch
	if res.Shared {
		cl.met.BumpSum("fetch.shared", 1, "tag", key.Tag)
	}
	return res.Val, res.Err
}

func (cl *client) fetch(key Key, fetch Fetcher, opts Options) (interface{}, error) {
	defer cl.met.BumpTime("fetch.time", "tag", key.Tag).End()

	c := ctx.WithValue(cl.base, "queryKey", key.String())

	var bo *backoff.Backoff
	for attempt := 0; ; attempt++ {
		val, err := fetch(c)
		if err == nil {
			return val, nil
		}
		if attempt >= opts.Retry {
			cl.met.BumpSum("fetch.err", 1, "tag", key.Tag)
			return nil, err
		}

		if bo == nil {
			delay := opts.RetryDelay
			if delay <= 0 {
				delay = defaultRetryDelay
			}
			bo = backoff.NewExponential(delay, maxRetryDelay)
		}
		c.WithFields(log.Fields{
			"err":     err,
			"attempt": attempt + 1,
			"wait":    bo.NextDuration,
		}).Warn("query fetch failed, retrying")
		if bErr := bo.Backoff(c); bErr != nil {
			return nil, err
		}
	}
}

type entry struct {
	cl  *client
	key Key
	// refs is guarded by cl.mu
	refs int

	mu        sync.Mutex
	state     State
	done      chan struct{}
	stale     bool
	observers map[*observer]struct{}
}

func newEntry(cl *client, key Key) *entry {
	return &entry{
		cl:        cl,
		key:       key,
		observers: make(map[*observer]struct{}),
	}
}

func (e *entry) snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *entry) attach(o *observer) {
	e.mu.Lock()
	e.observers[o] = struct{}{}
	e.mu.Unlock()
}

func (e *entry) detach(o *observer) {
	e.mu.Lock()
	delete(e.observers, o)
	e.mu.Unlock()
}

func (e *entry) listObservers() []*observer {
	e.mu.Lock()
	defer e.mu.Unlock()
	res := make([]*observer, 0, len(e.observers))
	for o := range e.observers {
		res = append(res, o)
	}
	return res
}

// start runs fetch unless one is in flight. Without force it only starts
// from an entry that has never been fetched.
func (e *entry) start(fetch Fetcher, opts Options, force bool) {
	e.mu.Lock()
	if e.state.Fetching || (!force && e.state.Status != StatusDisabled) {
		e.mu.Unlock()
		return
	}
	if !e.state.Settled() {
		e.state.Status = StatusPending
	}
	e.state.Fetching = true
	done := make(chan struct{})
	e.done = done
	e.mu.Unlock()

	e.broadcast()

	go func() {
		val, err := e.cl.run(e.key, fetch, opts)
		e.finish(val, err, done)
	}()
}

func (e *entry) finish(val interface{}, err error, done chan struct{}) {
	e.mu.Lock()
	if err != nil {
		e.state.Status = StatusError
		e.state.Err = err
	} else {
		e.state.Status = StatusSuccess
		e.state.Data = val
		e.state.Err = nil
	}
	e.state.Fetching = false
	e.state.UpdatedAt = time.Now()

	stale := e.stale
	e.stale = false
	if stale {
		e.state = State{}
	}
	close(done)
	e.mu.Unlock()

	e.broadcast()
	if stale {
		e.kick(false)
	}
}

func (e *entry) invalidate() {
	e.mu.Lock()
	if e.state.Fetching {
		e.stale = true
		e.mu.Unlock()
		return
	}
	e.state = State{}
	e.mu.Unlock()

	e.broadcast()
	e.kick(false)
}

// kick refetches on behalf of the first enabled observer.
func (e *entry) kick(focus bool) {
	for _, o := range e.listObservers() {
		if focus && !o.cfg.Options.RefetchOnFocus {
			continue
		}
		if o.enabled() {
			e.start(o.cfg.Fetch, o.cfg.Options, focus)
			return
		}
	}
}

func (e *entry) broadcast() {
	for _, o := range e.listObservers() {
		o.emit()
	}
}

type observer struct {
	cl  *client
	e   *entry
	cfg Config

	mu      sync.Mutex
	subs    map[int]func(State)
	nextID  int
	last    State
	cancels []func()
	closed  bool
}

func (o *observer) Key() Key {
	return o.cfg.Key
}

func (o *observer) State() State {
	s, _ := o.sync()
	return s
}

func (o *observer) Refresh(c ctx.Ctx) State {
	o.sync()
	o.emit()
	return o.current()
}

func (o *observer) Wait(c ctx.Ctx) (State, error) {
	for {
		s, done := o.sync()
		if done == nil {
			return s, nil
		}
		select {
		case <-done:
		case <-c.Done():
			return o.current(), c.Err()
		}
	}
}

func (o *observer) Subscribe(fn func(State)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return func() {}
	}
	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	return func() {
		o.mu.Lock()
		delete(o.subs, id)
		o.mu.Unlock()
	}
}

func (o *observer) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	cancels := o.cancels
	o.cancels = nil
	o.subs = nil
	o.mu.Unlock()

	for _, cancel := range cancels {
		if cancel != nil {
			cancel()
		}
	}
	o.e.detach(o)
	o.cl.release(o.e)
}

func (o *observer) enabled() bool {
	return o.cfg.Enabled == nil || o.cfg.Enabled()
}

func (o *observer) current() State {
	if !o.enabled() {
		return State{Status: StatusDisabled}
	}
	return o.e.snapshot()
}

// sync starts the first fetch of an enabled query and returns the state with
// the completion channel when it is pending.
func (o *observer) sync() (State, chan struct{}) {
	if !o.enabled() {
		return State{Status: StatusDisabled}, nil
	}

	o.mu.Lock()
	closed := o.closed
	o.mu.Unlock()
	if !closed {
		o.e.start(o.cfg.Fetch, o.cfg.Options, false)
	}

	e := o.e
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Status == StatusPending {
		return e.state, e.done
	}
	return e.state, nil
}

func (o *observer) emit() {
	s := o.current()

	o.mu.Lock()
	if o.closed || sameState(o.last, s) {
		o.mu.Unlock()
		return
	}
	o.last = s
	subs := make([]func(State), 0, len(o.subs))
	for _, fn := range o.subs {
		subs = append(subs, fn)
	}
	o.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

func sameState(a, b State) bool {
	return a.Status == b.Status && a.Fetching == b.Fetching && a.UpdatedAt.Equal(b.UpdatedAt)
}
