package upload

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Status is the orchestrator's lifecycle position.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusInFlight Status = "in_flight"
	StatusFailed   Status = "failed"
)

type event int

const (
	eventRejected event = iota
	eventAccepted
	eventSucceeded
	eventFailed
)

// transitions is total over Status x event. A rejection keeps the current
// status; resolution events only move out of InFlight.
var transitions = map[Status]map[event]Status{
	StatusIdle: {
		eventRejected:  StatusIdle,
		eventAccepted:  StatusInFlight,
		eventSucceeded: StatusIdle,
		eventFailed:    StatusIdle,
	},
	StatusFailed: {
		eventRejected:  StatusFailed,
		eventAccepted:  StatusInFlight,
		eventSucceeded: StatusFailed,
		eventFailed:    StatusFailed,
	},
	StatusInFlight: {
		eventRejected:  StatusInFlight,
		eventAccepted:  StatusInFlight,
		eventSucceeded: StatusIdle,
		eventFailed:    StatusFailed,
	},
}

// State is a consistent snapshot of the orchestrator.
type State struct {
	Status  Status
	Current *Result // last successful result, kept across failures
	Err     error   // reason of the last failure while Status is Failed
}

// Uploading reports whether a request is in flight.
func (s State) Uploading() bool {
	return s.Status == StatusInFlight
}

// Stats counts submissions since start.
type Stats struct {
	Submitted   int64     `json:"submitted"`
	Rejected    int64     `json:"rejected"`
	Succeeded   int64     `json:"succeeded"`
	Failed      int64     `json:"failed"`
	TotalBytes  int64     `json:"total_bytes"`
	LastUpload  time.Time `json:"last_upload"`
	LastLatency string    `json:"last_latency"`
}

// SuccessHook runs after a successful upload with the request and its result.
type SuccessHook func(req Request, res Result)

// Orchestrator drives validation and transport and owns the upload state.
// Callers must not submit while a request is in flight.
type Orchestrator struct {
	sender   Sender
	policy   Policy
	notifier Notifier
	hooks    []SuccessHook

	mu    sync.RWMutex
	state State
	stats Stats
}

// Option customises an Orchestrator.
type Option func(*Orchestrator)

// WithNotifier adds a notifier; several can be registered.
func WithNotifier(n Notifier) Option {
	return func(o *Orchestrator) {
		if n == nil {
			return
		}
		if o.notifier == nil {
			o.notifier = n
			return
		}
		o.notifier = multiNotifier{o.notifier, n}
	}
}

// WithSuccessHook registers a hook run after each successful upload.
func WithSuccessHook(h SuccessHook) Option {
	return func(o *Orchestrator) {
		if h != nil {
			o.hooks = append(o.hooks, h)
		}
	}
}

// NewOrchestrator creates an idle orchestrator.
func NewOrchestrator(sender Sender, policy Policy, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		sender: sender,
		policy: policy,
		state:  State{Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.notifier == nil {
		o.notifier = NotifierFunc(func(Notification) {})
	}
	return o
}

// SubmitFiles validates the candidate files and, when accepted, uploads the
// single file. It blocks until the add call resolves.
func (o *Orchestrator) SubmitFiles(ctx context.Context, files []FileDescriptor) (*Result, error) {
	req, err := Validate(files, o.policy)
	return o.submit(ctx, req, err)
}

// SubmitText validates and uploads raw text. The result's media type is
// always application/json.
func (o *Orchestrator) SubmitText(ctx context.Context, text string) (*Result, error) {
	req, err := ValidateText(text, o.policy)
	return o.submit(ctx, req, err)
}

func (o *Orchestrator) submit(ctx context.Context, req Request, verr error) (*Result, error) {
	if verr != nil {
		o.mu.Lock()
		o.apply(eventRejected)
		o.stats.Rejected++
		o.mu.Unlock()
		o.emit(verr)
		return nil, verr
	}

	o.mu.Lock()
	o.apply(eventAccepted)
	o.state.Err = nil
	o.stats.Submitted++
	o.mu.Unlock()

	start := time.Now()
	res, err := o.sender.Send(ctx, req)
	latency := time.Since(start)

	o.mu.Lock()
	o.stats.LastLatency = latency.String()
	if err != nil {
		o.apply(eventFailed)
		o.state.Err = err
		o.stats.Failed++
	} else {
		o.apply(eventSucceeded)
		current := *res
		o.state.Current = &current
		o.stats.Succeeded++
		o.stats.TotalBytes += payloadSize(req)
		o.stats.LastUpload = time.Now()
	}
	o.mu.Unlock()

	o.emit(err)
	if err != nil {
		return nil, err
	}
	for _, hook := range o.hooks {
		hook(req, *res)
	}
	return res, nil
}

// apply moves the state along the transition table. Callers hold o.mu.
func (o *Orchestrator) apply(ev event) {
	o.state.Status = transitions[o.state.Status][ev]
}

func (o *Orchestrator) emit(err error) {
	for _, n := range Notifications(err) {
		o.notifier.Notify(n)
	}
}

// Notifications returns the user-visible messages for a submission outcome:
// one per validation message, one for a transport failure, or a single
// success message when err is nil.
func Notifications(err error) []Notification {
	if err == nil {
		return []Notification{{Level: LevelSuccess, Message: "File uploaded"}}
	}

	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		notes := make([]Notification, len(verrs))
		for i, msg := range verrs.Messages() {
			notes[i] = Notification{Level: LevelError, Message: msg}
		}
		return notes
	}

	msg := "Upload failed"
	switch {
	case errors.Is(err, ErrMalformedResponse):
		msg = "Upload failed: unexpected response from IPFS"
	case errors.Is(err, ErrRequestFailed):
		msg = "Upload failed: IPFS request did not succeed"
	}
	return []Notification{{Level: LevelError, Message: msg}}
}

// State returns a snapshot of the current state.
func (o *Orchestrator) State() State {
	o.mu.RLock()
	defer o.mu.RUnlock()

	s := o.state
	if s.Current != nil {
		current := *s.Current
		s.Current = &current
	}
	return s
}

// Current returns the displayed result, if any.
func (o *Orchestrator) Current() (Result, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.state.Current == nil {
		return Result{}, false
	}
	return *o.state.Current, true
}

// CopyableHash returns the content hash of the displayed result.
func (o *Orchestrator) CopyableHash() string {
	res, _ := o.Current()
	return res.ContentHash
}

// CopyableURL returns the gateway URL of the displayed result.
func (o *Orchestrator) CopyableURL() string {
	res, _ := o.Current()
	return res.GatewayURL
}

// Policy returns the acceptance policy.
func (o *Orchestrator) Policy() Policy {
	return o.policy
}

// Stats returns a copy of the submission counters.
func (o *Orchestrator) Stats() Stats {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.stats
}
