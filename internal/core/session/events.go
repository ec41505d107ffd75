package session

import "time"

// Phase represents the current controller mode.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseWorking Phase = "working"
	PhaseOnBreak Phase = "on_break"
)

// Field names one of the tracked durations.
type Field string

const (
	FieldCurrentWork  Field = "current_work"
	FieldTotalWork    Field = "total_work"
	FieldCurrentBreak Field = "current_break"
	FieldTotalBreak   Field = "total_break"
)

// Fields lists every tracked duration in display order.
var Fields = []Field{FieldCurrentWork, FieldTotalWork, FieldCurrentBreak, FieldTotalBreak}

// EventType defines the type of controller event.
type EventType string

const (
	EventDurationChange EventType = "duration_change"
	EventPhaseChange    EventType = "phase_change"
)

// Affordances reports which of the three actions the view should enable.
type Affordances struct {
	StartWork  bool
	StartBreak bool
	StopWork   bool
}

// Event represents a controller update for observers.
//
// Duration changes carry Field, Value and the recomputed Text.
// Phase changes carry Phase and Affordances.
type Event struct {
	Type        EventType
	Field       Field
	Value       time.Duration
	Text        string
	Phase       Phase
	Affordances Affordances
	At          time.Time
}

// Snapshot is a copy of the controller state.
type Snapshot struct {
	Phase        Phase
	Affordances  Affordances
	CurrentWork  time.Duration
	TotalWork    time.Duration
	CurrentBreak time.Duration
	TotalBreak   time.Duration
}
