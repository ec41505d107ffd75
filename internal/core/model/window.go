package model

// WindowPreferences holds the timer window geometry kept between launches.
type WindowPreferences struct {
	Width  float32
	Height float32
}

// Minimum window size the timer page still renders in.
const (
	MinWindowWidth  float32 = 280
	MinWindowHeight float32 = 200
)

// DefaultWindowPreferences returns the initial window geometry.
func DefaultWindowPreferences() WindowPreferences {
	return WindowPreferences{
		Width:  360,
		Height: 260,
	}
}
