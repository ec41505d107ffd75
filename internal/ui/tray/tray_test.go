package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productivitytimer/internal/core/session"
)

type fakeHost struct {
	menu *fyne.Menu
	icon fyne.Resource
}

func (host *fakeHost) SetSystemTrayMenu(menu *fyne.Menu) {
	host.menu = menu
}

func (host *fakeHost) SetSystemTrayIcon(icon fyne.Resource) {
	host.icon = icon
}

type stubSource struct {
	running bool
}

func (source *stubSource) Start()        { source.running = true }
func (source *stubSource) Stop()         { source.running = false }
func (source *stubSource) Running() bool { return source.running }

var testIcons = Icons{
	Idle:  fyne.NewStaticResource("idle.svg", []byte("idle")),
	Work:  fyne.NewStaticResource("work.svg", []byte("work")),
	Break: fyne.NewStaticResource("break.svg", []byte("break")),
}

func newController() *session.Controller {
	return session.New(func(func()) session.TickSource {
		return &stubSource{}
	}, session.Options{Logger: zerolog.Nop()})
}

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	require.Failf(t, "menu item not found", "%q", label)
	return nil
}

func TestManager_NewPublishesMenu(t *testing.T) {
	host := &fakeHost{}
	manager := New(host, testIcons, Callbacks{})

	require.NotNil(t, host.menu)
	assert.Same(t, manager.Menu(), host.menu)
	assert.Equal(t, "Idle", manager.Status())
	assert.Equal(t, testIcons.Idle, host.icon)
}

func TestManager_AttachFollowsController(t *testing.T) {
	host := &fakeHost{}
	manager := New(host, testIcons, Callbacks{})
	controller := newController()
	detach := manager.Attach(controller)
	defer detach()

	assert.False(t, findItem(t, host.menu, "Start break").Disabled)
	assert.True(t, findItem(t, host.menu, "Stop").Disabled)

	controller.StartWork()
	controller.WorkTick()
	controller.WorkTick()
	assert.Equal(t, "Working 00:00:02", manager.Status())
	assert.Equal(t, testIcons.Work, host.icon)
	assert.True(t, findItem(t, host.menu, "Start work").Disabled)
	assert.False(t, findItem(t, host.menu, "Stop").Disabled)

	controller.StartBreak()
	assert.Equal(t, "On break 00:00:00", manager.Status())
	controller.BreakTick()
	assert.Equal(t, "On break 00:00:01", manager.Status())
	assert.Equal(t, testIcons.Break, host.icon)
	assert.True(t, findItem(t, host.menu, "Start break").Disabled)

	controller.Stop()
	assert.Equal(t, "Idle", manager.Status())
	assert.Equal(t, testIcons.Idle, host.icon)
	assert.False(t, findItem(t, host.menu, "Start work").Disabled)
	assert.True(t, findItem(t, host.menu, "Start break").Disabled)
	assert.True(t, findItem(t, host.menu, "Stop").Disabled)
}

func TestManager_IgnoresOtherBucketTicks(t *testing.T) {
	manager := New(&fakeHost{}, testIcons, Callbacks{})
	controller := newController()
	defer manager.Attach(controller)()

	controller.StartWork()
	controller.BreakTick()

	assert.Equal(t, "Working 00:00:00", manager.Status())
}

func TestManager_DetachStopsUpdates(t *testing.T) {
	manager := New(&fakeHost{}, testIcons, Callbacks{})
	controller := newController()
	detach := manager.Attach(controller)

	detach()
	controller.StartWork()

	assert.Equal(t, "Idle", manager.Status())
}

func TestManager_MenuCallbacks(t *testing.T) {
	host := &fakeHost{}
	var calls []string
	New(host, testIcons, Callbacks{
		OnShow:       func() { calls = append(calls, "show") },
		OnStartWork:  func() { calls = append(calls, "work") },
		OnStartBreak: func() { calls = append(calls, "break") },
		OnStop:       func() { calls = append(calls, "stop") },
		OnQuit:       func() { calls = append(calls, "quit") },
	})

	for _, label := range []string{"Show timer", "Start work", "Start break", "Stop", "Quit"} {
		findItem(t, host.menu, label).Action()
	}

	assert.Equal(t, []string{"show", "work", "break", "stop", "quit"}, calls)
}

func TestManager_NilCallbacksAreSafe(t *testing.T) {
	host := &fakeHost{}
	New(host, testIcons, Callbacks{})

	assert.NotPanics(t, func() {
		for _, label := range []string{"Show timer", "Start work", "Start break", "Stop", "Quit"} {
			findItem(t, host.menu, label).Action()
		}
	})
}
