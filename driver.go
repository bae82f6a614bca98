package willow2d

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// DefaultFixedStep is the fixed driver's tick period when settings do not
// override it.
const DefaultFixedStep = 10 * time.Millisecond

// FixedDriver ticks a Registry's FixedUpdate at a fixed period on its own
// goroutine, independent of the render loop.
//
// Each message on the tick channel runs one tick. Without an injected channel
// the driver owns a time.Ticker at the configured period. Tests inject a
// channel and a done channel to step the driver deterministically.
type FixedDriver struct {
	registry *Registry
	period   time.Duration
	tickCh   <-chan time.Time
	tickDone chan<- uint64
	log      zerolog.Logger

	ticks    atomic.Uint64
	ticker   *time.Ticker
	stopCh   chan struct{}
	doneCh   chan struct{}
	startOne sync.Once
	stopOne  sync.Once
}

// NewFixedDriver creates a stopped driver. tickCh and tickDone may be nil.
func NewFixedDriver(registry *Registry, period time.Duration, tickCh <-chan time.Time,
	tickDone chan<- uint64, logger zerolog.Logger) *FixedDriver {
	if period <= 0 {
		period = DefaultFixedStep
	}
	return &FixedDriver{
		registry: registry,
		period:   period,
		tickCh:   tickCh,
		tickDone: tickDone,
		log:      logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Period returns the tick period. FixedUpdate receives it in seconds as dt.
func (d *FixedDriver) Period() time.Duration { return d.period }

// Ticks returns the number of completed ticks.
func (d *FixedDriver) Ticks() uint64 { return d.ticks.Load() }

// Start launches the tick goroutine. Calling Start more than once has no
// effect.
func (d *FixedDriver) Start() {
	d.startOne.Do(func() {
		tickCh := d.tickCh
		if tickCh == nil {
			d.ticker = time.NewTicker(d.period)
			tickCh = d.ticker.C
		}
		d.log.Debug().Dur("period", d.period).Msg("fixed driver started")
		go d.loop(tickCh)
	})
}

func (d *FixedDriver) loop(tickCh <-chan time.Time) {
	defer close(d.doneCh)
	dt := d.period.Seconds()
	for {
		select {
		case <-d.stopCh:
			return
		case _, ok := <-tickCh:
			if !ok {
				d.log.Warn().Msg("fixed driver tick channel closed")
				return
			}
			// A stop that raced the tick wins.
			select {
			case <-d.stopCh:
				return
			default:
			}
			if err := d.registry.FixedUpdate(dt); err != nil {
				d.log.Error().Err(err).Msg("fixed update failed")
			}
			n := d.ticks.Add(1)
			if d.tickDone != nil {
				select {
				case d.tickDone <- n:
				case <-d.stopCh:
					return
				}
			}
		}
	}
}

// Stop cancels the driver and waits for an in-flight tick to finish. After
// Stop returns no further FixedUpdate calls are made. Stop is idempotent and
// safe to call on a driver that was never started.
func (d *FixedDriver) Stop() {
	d.stopOne.Do(func() {
		close(d.stopCh)
		started := true
		d.startOne.Do(func() { started = false })
		if !started {
			return
		}
		if d.ticker != nil {
			d.ticker.Stop()
		}
		<-d.doneCh
		d.log.Debug().Uint64("ticks", d.ticks.Load()).Msg("fixed driver stopped")
	})
}
