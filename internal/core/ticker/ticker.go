package ticker

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

// Dispatcher hands a tick callback to the goroutine that owns the state.
type Dispatcher func(func())

// Options contains runtime options for a Ticker.
type Options struct {
	Name     string
	Interval time.Duration
	Clock    clock.Clock
	Dispatch Dispatcher
	Logger   zerolog.Logger
}

// Ticker is a restartable periodic callback.
//
// Ticks already queued on the dispatcher when Stop is called are discarded,
// so a stopped Ticker never invokes onTick again until it is restarted.
// That holds when Start, Stop and the dispatched callbacks share a goroutine.
type Ticker struct {
	mu         sync.Mutex
	options    Options
	logger     zerolog.Logger
	onTick     func()
	running    bool
	generation uint64
	source     *clock.Ticker
	stopCh     chan struct{}
}

// New creates a stopped Ticker that calls onTick on every interval.
func New(onTick func(), options Options) *Ticker {
	if options.Interval <= 0 {
		options.Interval = time.Second
	}
	if options.Clock == nil {
		options.Clock = clock.New()
	}
	if options.Dispatch == nil {
		options.Dispatch = func(fn func()) { fn() }
	}

	return &Ticker{
		options: options,
		logger:  options.Logger.With().Str("component", "ticker").Str("ticker", options.Name).Logger(),
		onTick:  onTick,
	}
}

// Start launches the ticking loop. It is a no-op while already running.
func (ticker *Ticker) Start() {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	if ticker.running {
		return
	}
	ticker.running = true
	ticker.generation++
	ticker.stopCh = make(chan struct{})

	ticker.source = ticker.options.Clock.Ticker(ticker.options.Interval)
	go ticker.run(ticker.source, ticker.stopCh, ticker.generation)

	ticker.logger.Debug().Uint64("generation", ticker.generation).Msg("ticker started")
}

// Stop terminates the ticking loop. It is a no-op while stopped.
func (ticker *Ticker) Stop() {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	if !ticker.running {
		return
	}
	ticker.source.Stop()
	close(ticker.stopCh)
	ticker.running = false
	ticker.generation++

	ticker.logger.Debug().Msg("ticker stopped")
}

// Running reports whether the ticker is started.
func (ticker *Ticker) Running() bool {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	return ticker.running
}

func (ticker *Ticker) run(source *clock.Ticker, stopCh chan struct{}, generation uint64) {
	for {
		select {
		case <-stopCh:
			return
		case <-source.C:
			ticker.options.Dispatch(func() {
				ticker.fire(generation)
			})
		}
	}
}

func (ticker *Ticker) fire(generation uint64) {
	ticker.mu.Lock()
	current := ticker.running && ticker.generation == generation
	ticker.mu.Unlock()
	if !current {
		return
	}
	ticker.onTick()
}
