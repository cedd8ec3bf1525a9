// Package availability coordinates debounced asynchronous availability
// checks, the kind used to confirm a candidate username or email address is
// not already taken.
package availability

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-newsreader/pkg/debounce"
)

// State is the outcome of the most recent completed check.
type State int

const (
	// Unknown means no check has completed for the current value: the input
	// is below the minimum length, no lookup has finished yet, or the last
	// lookup failed.
	Unknown State = iota
	// Available means the validator confirmed the value is free.
	Available
	// Taken means the validator reported the value as already in use.
	Taken
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Available:
		return "available"
	case Taken:
		return "taken"
	default:
		return "unknown"
	}
}

// Result is the observable coordinator state.
type Result struct {
	Validating bool
	State      State
}

// ValidatorFunc performs the actual availability lookup. Implementations are
// expected to be I/O bound. An error is treated as an unknown outcome, never
// as a validation failure.
type ValidatorFunc func(ctx context.Context, value string) (bool, error)

const (
	// DefaultDelay is the settle interval applied to the raw input stream.
	DefaultDelay = 500 * time.Millisecond
	// DefaultMinLength is the shortest input worth checking.
	DefaultMinLength = 3
)

// Options configures a Checker.
type Options struct {
	Delay     time.Duration
	MinLength int
	// OnResult receives every state change. It runs on the goroutine that
	// produced the change and must not block.
	OnResult func(Result)
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// NewOptions applies the option functions over the defaults.
func NewOptions(fns ...OptionFn) Options {
	opts := Options{
		Delay:     DefaultDelay,
		MinLength: DefaultMinLength,
	}
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Delay < 0 {
		opts.Delay = DefaultDelay
	}
	if opts.MinLength < 0 {
		opts.MinLength = DefaultMinLength
	}
	return opts
}

// WithDelay overrides the debounce interval.
func WithDelay(d time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Delay = d
	}
}

// WithMinLength overrides the minimum input length.
func WithMinLength(n int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MinLength = n
	}
}

// WithOnResult registers a push-style subscriber.
func WithOnResult(fn func(Result)) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OnResult = fn
	}
}

// Checker debounces a stream of candidate values and runs the validator
// against each settled value. Only the most recently issued lookup may write
// state; superseded lookups are discarded regardless of completion order.
type Checker struct {
	validator ValidatorFunc
	opts      Options

	mu  sync.Mutex
	res Result
	gen uint64

	debouncer *debounce.Debouncer[string]
	ctx       context.Context
	cancel    context.CancelFunc
}

// New constructs a Checker around the given validator. The validator must not
// be nil.
func New(validator ValidatorFunc, fns ...OptionFn) *Checker {
	if validator == nil {
		panic("availability: validator is required")
	}
	opts := NewOptions(fns...)
	ctx, cancel := context.WithCancel(context.Background())
	c := &Checker{
		validator: validator,
		opts:      opts,
		ctx:       ctx,
		cancel:    cancel,
	}
	c.debouncer = debounce.New("", opts.Delay, c.check)
	return c
}

// Update feeds the latest raw input, typically once per keystroke. Values
// shorter than the minimum length reset the result to Unknown without ever
// reaching the validator, cancel any pending debounce window, and invalidate
// any lookup still in flight. Subscribers are only notified when the result
// actually changes.
func (c *Checker) Update(value string) {
	if len(value) < c.opts.MinLength {
		c.debouncer.Cancel()
		c.mu.Lock()
		c.gen++
		changed := c.res != (Result{})
		c.res = Result{}
		c.mu.Unlock()
		if changed {
			c.notify(Result{})
		}
		return
	}
	c.debouncer.Set(value)
}

func (c *Checker) check(value string) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	res := Result{Validating: true, State: c.res.State}
	c.res = res
	c.mu.Unlock()
	c.notify(res)

	go func() {
		ok, err := c.validator(c.ctx, value)
		state := Unknown
		if err == nil {
			if ok {
				state = Available
			} else {
				state = Taken
			}
		}

		c.mu.Lock()
		if gen != c.gen {
			// A newer value superseded this lookup while it was in flight.
			c.mu.Unlock()
			return
		}
		out := Result{State: state}
		c.res = out
		c.mu.Unlock()
		c.notify(out)
	}()
}

// Result returns the current coordinator state.
func (c *Checker) Result() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.res
}

// Close tears down the checker: the pending debounce timer is cancelled and
// any in-flight lookup result is discarded.
func (c *Checker) Close() {
	c.debouncer.Stop()
	c.cancel()
	c.mu.Lock()
	c.gen++
	c.mu.Unlock()
}

func (c *Checker) notify(r Result) {
	if c.opts.OnResult != nil {
		c.opts.OnResult(r)
	}
}
