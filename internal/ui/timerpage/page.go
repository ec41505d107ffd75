package timerpage

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"productivitytimer/internal/core/session"
)

// Page binds a session controller to the timer widgets.
type Page struct {
	controller  *session.Controller
	texts       map[session.Field]binding.String
	startWork   *widget.Button
	startBreak  *widget.Button
	stopWork    *widget.Button
	content     fyne.CanvasObject
	unsubscribe func()
}

// New builds the timer page for controller.
func New(controller *session.Controller) *Page {
	page := &Page{
		controller: controller,
		texts:      make(map[session.Field]binding.String, len(session.Fields)),
	}

	for _, field := range session.Fields {
		text := binding.NewString()
		_ = text.Set(controller.Text(field))
		page.texts[field] = text
	}

	page.startWork = widget.NewButtonWithIcon("Start Work", theme.MediaPlayIcon(), controller.StartWork)
	page.startBreak = widget.NewButtonWithIcon("Start Break", theme.MediaPauseIcon(), controller.StartBreak)
	page.stopWork = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), controller.Stop)
	page.startWork.Importance = widget.HighImportance

	grid := container.NewGridWithColumns(3,
		layout.NewSpacer(),
		widget.NewLabelWithStyle("Work", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Break", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Current"),
		timeLabel(page.texts[session.FieldCurrentWork]),
		timeLabel(page.texts[session.FieldCurrentBreak]),
		widget.NewLabel("Total"),
		timeLabel(page.texts[session.FieldTotalWork]),
		timeLabel(page.texts[session.FieldTotalBreak]),
	)

	buttons := container.NewGridWithColumns(3, page.startWork, page.startBreak, page.stopWork)
	page.content = container.NewBorder(nil, buttons, nil, nil, container.NewCenter(grid))

	page.applyAffordances(controller.Affordances())
	page.unsubscribe = controller.Subscribe(page.handleEvent)

	return page
}

// Content returns the root canvas object of the page.
func (page *Page) Content() fyne.CanvasObject {
	return page.content
}

// Close detaches the page from the controller.
func (page *Page) Close() {
	if page.unsubscribe != nil {
		page.unsubscribe()
		page.unsubscribe = nil
	}
}

func (page *Page) handleEvent(event session.Event) {
	switch event.Type {
	case session.EventDurationChange:
		if text, ok := page.texts[event.Field]; ok {
			_ = text.Set(event.Text)
		}
	case session.EventPhaseChange:
		page.applyAffordances(event.Affordances)
	}
}

func (page *Page) applyAffordances(affordances session.Affordances) {
	setEnabled(page.startWork, affordances.StartWork)
	setEnabled(page.startBreak, affordances.StartBreak)
	setEnabled(page.stopWork, affordances.StopWork)
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
	} else {
		button.Disable()
	}
}

func timeLabel(text binding.String) *widget.Label {
	label := widget.NewLabelWithData(text)
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Monospace: true}
	return label
}
