package session

import (
	"time"

	"github.com/rs/zerolog"
)

// TickSource is a periodic callback that can be started and stopped.
// Stop must take effect before the next tick is delivered.
type TickSource interface {
	Start()
	Stop()
	Running() bool
}

// TickSourceFactory builds a tick source that calls onTick on every tick.
type TickSourceFactory func(onTick func()) TickSource

// Listener receives controller events synchronously.
type Listener func(Event)

// Options contains runtime options for the Controller.
type Options struct {
	Logger zerolog.Logger
	Now    func() time.Time
}

const tickIncrement = time.Second

var (
	// A fresh page allows starting a break without working first.
	initialAffordances = Affordances{StartWork: true, StartBreak: true, StopWork: false}
	stoppedAffordances = Affordances{StartWork: true, StartBreak: false, StopWork: false}
	workingAffordances = Affordances{StartWork: false, StartBreak: true, StopWork: true}
	onBreakAffordances = Affordances{StartWork: true, StartBreak: false, StopWork: true}
)

type listenerEntry struct {
	id       int
	listener Listener
}

// Controller is the work/break session state machine.
//
// It is not safe for concurrent use. All operations and tick callbacks are
// expected to run on the UI goroutine.
type Controller struct {
	options Options
	logger  zerolog.Logger

	phase       Phase
	affordances Affordances

	currentWork  time.Duration
	totalWork    time.Duration
	currentBreak time.Duration
	totalBreak   time.Duration

	workTimer  TickSource
	breakTimer TickSource

	listeners []listenerEntry
	nextID    int
}

// New creates a Controller in the idle phase with both tick sources stopped.
func New(factory TickSourceFactory, options Options) *Controller {
	if options.Now == nil {
		options.Now = time.Now
	}

	controller := &Controller{
		options:     options,
		logger:      options.Logger.With().Str("component", "session").Logger(),
		phase:       PhaseIdle,
		affordances: initialAffordances,
	}
	controller.workTimer = factory(controller.WorkTick)
	controller.breakTimer = factory(controller.BreakTick)
	return controller
}

// Subscribe registers a listener and returns a function that removes it.
// Listeners run synchronously inside the mutating call.
func (controller *Controller) Subscribe(listener Listener) func() {
	controller.nextID++
	id := controller.nextID
	controller.listeners = append(controller.listeners, listenerEntry{id: id, listener: listener})
	return func() {
		for index, entry := range controller.listeners {
			if entry.id == id {
				controller.listeners = append(controller.listeners[:index:index], controller.listeners[index+1:]...)
				return
			}
		}
	}
}

// StartWork begins a new work session.
func (controller *Controller) StartWork() {
	controller.setDuration(FieldCurrentWork, 0)
	controller.breakTimer.Stop()
	controller.workTimer.Start()
	controller.transition(PhaseWorking, workingAffordances)
}

// StartBreak begins a new break session.
func (controller *Controller) StartBreak() {
	controller.setDuration(FieldCurrentBreak, 0)
	controller.workTimer.Stop()
	controller.breakTimer.Start()
	controller.transition(PhaseOnBreak, onBreakAffordances)
}

// Stop halts both timers and returns to idle.
func (controller *Controller) Stop() {
	controller.workTimer.Stop()
	controller.breakTimer.Stop()
	controller.transition(PhaseIdle, stoppedAffordances)
}

// WorkTick adds one second to the current and total work time.
func (controller *Controller) WorkTick() {
	controller.setDuration(FieldCurrentWork, controller.currentWork+tickIncrement)
	controller.setDuration(FieldTotalWork, controller.totalWork+tickIncrement)
}

// BreakTick adds one second to the current and total break time.
func (controller *Controller) BreakTick() {
	controller.setDuration(FieldCurrentBreak, controller.currentBreak+tickIncrement)
	controller.setDuration(FieldTotalBreak, controller.totalBreak+tickIncrement)
}

// Close stops both timers and drops all listeners.
func (controller *Controller) Close() {
	controller.workTimer.Stop()
	controller.breakTimer.Stop()
	controller.listeners = nil
}

// Phase returns the current phase.
func (controller *Controller) Phase() Phase {
	return controller.phase
}

// Affordances returns which actions are currently enabled.
func (controller *Controller) Affordances() Affordances {
	return controller.affordances
}

// WorkTimerActive reports whether the work tick source is running.
func (controller *Controller) WorkTimerActive() bool {
	return controller.workTimer.Running()
}

// BreakTimerActive reports whether the break tick source is running.
func (controller *Controller) BreakTimerActive() bool {
	return controller.breakTimer.Running()
}

// Duration returns the value of a tracked field.
func (controller *Controller) Duration(field Field) time.Duration {
	switch field {
	case FieldCurrentWork:
		return controller.currentWork
	case FieldTotalWork:
		return controller.totalWork
	case FieldCurrentBreak:
		return controller.currentBreak
	case FieldTotalBreak:
		return controller.totalBreak
	}
	return 0
}

// Text returns the hh:mm:ss rendering of a tracked field.
func (controller *Controller) Text(field Field) string {
	return FormatDuration(controller.Duration(field))
}

// Snapshot returns a copy of the full controller state.
func (controller *Controller) Snapshot() Snapshot {
	return Snapshot{
		Phase:        controller.phase,
		Affordances:  controller.affordances,
		CurrentWork:  controller.currentWork,
		TotalWork:    controller.totalWork,
		CurrentBreak: controller.currentBreak,
		TotalBreak:   controller.totalBreak,
	}
}

func (controller *Controller) setDuration(field Field, value time.Duration) {
	switch field {
	case FieldCurrentWork:
		controller.currentWork = value
	case FieldTotalWork:
		controller.totalWork = value
	case FieldCurrentBreak:
		controller.currentBreak = value
	case FieldTotalBreak:
		controller.totalBreak = value
	default:
		return
	}

	controller.emit(Event{
		Type:  EventDurationChange,
		Field: field,
		Value: value,
		Text:  FormatDuration(value),
		Phase: controller.phase,
		At:    controller.options.Now(),
	})
}

func (controller *Controller) transition(phase Phase, affordances Affordances) {
	if controller.phase == phase && controller.affordances == affordances {
		return
	}
	previous := controller.phase
	controller.phase = phase
	controller.affordances = affordances

	controller.logger.Debug().
		Str("from", string(previous)).
		Str("to", string(phase)).
		Dur("current_work", controller.currentWork).
		Dur("current_break", controller.currentBreak).
		Msg("phase change")

	controller.emit(Event{
		Type:        EventPhaseChange,
		Phase:       phase,
		Affordances: affordances,
		At:          controller.options.Now(),
	})
}

func (controller *Controller) emit(event Event) {
	listeners := append([]listenerEntry(nil), controller.listeners...)
	for _, entry := range listeners {
		entry.listener(event)
	}
}
