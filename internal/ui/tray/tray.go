package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"productivitytimer/internal/core/session"
)

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow       func()
	OnStartWork  func()
	OnStartBreak func()
	OnStop       func()
	OnQuit       func()
}

// Icons holds the tray icon for each phase.
type Icons struct {
	Idle  fyne.Resource
	Work  fyne.Resource
	Break fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	host           Host
	icons          Icons
	callbacks      Callbacks
	statusItem     *fyne.MenuItem
	startWorkItem  *fyne.MenuItem
	startBreakItem *fyne.MenuItem
	stopItem       *fyne.MenuItem
	phase          session.Phase
	elapsed        string
	menu           *fyne.Menu
}

// New creates a tray manager with the provided callbacks.
func New(host Host, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		icons:     icons,
		callbacks: callbacks,
		phase:     session.PhaseIdle,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.startWorkItem = fyne.NewMenuItem("Start work", func() {
		if manager.callbacks.OnStartWork != nil {
			manager.callbacks.OnStartWork()
		}
	})
	manager.startBreakItem = fyne.NewMenuItem("Start break", func() {
		if manager.callbacks.OnStartBreak != nil {
			manager.callbacks.OnStartBreak()
		}
	})
	manager.stopItem = fyne.NewMenuItem("Stop", func() {
		if manager.callbacks.OnStop != nil {
			manager.callbacks.OnStop()
		}
	})

	show := fyne.NewMenuItem("Show timer", func() {
		if manager.callbacks.OnShow != nil {
			manager.callbacks.OnShow()
		}
	})
	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true

	manager.menu = fyne.NewMenu("Productivity Timer",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		show,
		manager.startWorkItem,
		manager.startBreakItem,
		manager.stopItem,
		fyne.NewMenuItemSeparator(),
		quit,
	)

	manager.refreshStatus()
	manager.refreshIcon()
	return manager
}

// Attach mirrors controller state in the tray until the returned func is called.
func (manager *Manager) Attach(controller *session.Controller) func() {
	manager.phase = controller.Phase()
	manager.SetAffordances(controller.Affordances())
	manager.elapsed = manager.elapsedFor(controller)
	manager.refreshStatus()
	manager.refreshIcon()

	return controller.Subscribe(func(event session.Event) {
		switch event.Type {
		case session.EventPhaseChange:
			manager.phase = event.Phase
			manager.elapsed = manager.elapsedFor(controller)
			manager.SetAffordances(event.Affordances)
			manager.refreshStatus()
			manager.refreshIcon()
		case session.EventDurationChange:
			if event.Field == currentField(manager.phase) {
				manager.elapsed = event.Text
				manager.refreshStatus()
			}
		}
	})
}

// SetAffordances enables the menu items matching the view's buttons.
func (manager *Manager) SetAffordances(affordances session.Affordances) {
	manager.startWorkItem.Disabled = !affordances.StartWork
	manager.startBreakItem.Disabled = !affordances.StartBreak
	manager.stopItem.Disabled = !affordances.StopWork
	manager.refreshMenu()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// Menu returns the tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

func (manager *Manager) elapsedFor(controller *session.Controller) string {
	field := currentField(manager.phase)
	if field == "" {
		return ""
	}
	return controller.Text(field)
}

func (manager *Manager) refreshStatus() {
	switch manager.phase {
	case session.PhaseWorking:
		manager.statusItem.Label = fmt.Sprintf("Working %s", manager.elapsed)
	case session.PhaseOnBreak:
		manager.statusItem.Label = fmt.Sprintf("On break %s", manager.elapsed)
	default:
		manager.statusItem.Label = "Idle"
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshIcon() {
	if manager.host == nil {
		return
	}
	icon := manager.icons.Idle
	switch manager.phase {
	case session.PhaseWorking:
		icon = manager.icons.Work
	case session.PhaseOnBreak:
		icon = manager.icons.Break
	}
	if icon != nil {
		manager.host.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.host != nil && manager.menu != nil {
		manager.host.SetSystemTrayMenu(manager.menu)
	}
}

func currentField(phase session.Phase) session.Field {
	switch phase {
	case session.PhaseWorking:
		return session.FieldCurrentWork
	case session.PhaseOnBreak:
		return session.FieldCurrentBreak
	}
	return ""
}
