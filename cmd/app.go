package main

import (
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"productivitytimer/internal/config"
	"productivitytimer/internal/core/model"
	"productivitytimer/internal/core/session"
	"productivitytimer/internal/core/ticker"
	"productivitytimer/internal/logging"
	"productivitytimer/internal/platform"
	"productivitytimer/internal/storage"
	"productivitytimer/internal/ui/timerpage"
	"productivitytimer/internal/ui/tray"
	"productivitytimer/resources"
)

const (
	appName = "ProductivityTimer"
	appID   = "com.productivitytimer.app"
)

func runApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Logging)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Warn().Err(err).Msg("another instance is running")
			return nil
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	prefs, err := storage.LoadWindowPreferences(appName)
	if err != nil {
		logger.Warn().Err(err).Msg("using default window preferences")
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconApp))

	controller := session.New(newTickSourceFactory(logger), session.Options{Logger: logger})
	page := timerpage.New(controller)

	window := fyneApp.NewWindow("Productivity Timer")
	window.SetContent(page.Content())
	window.Resize(fyne.NewSize(prefs.Width, prefs.Height))

	startHidden := cfg.Window.StartHidden
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Icons{
			Idle:  resources.MustIcon(resources.IconIdle),
			Work:  resources.MustIcon(resources.IconWork),
			Break: resources.MustIcon(resources.IconBreak),
		}, tray.Callbacks{
			OnShow: func() {
				window.Show()
				window.RequestFocus()
			},
			OnStartWork:  controller.StartWork,
			OnStartBreak: controller.StartBreak,
			OnStop:       controller.Stop,
			OnQuit:       fyneApp.Quit,
		})
		detachTray := trayManager.Attach(controller)
		defer detachTray()

		window.SetCloseIntercept(func() {
			saveWindowPreferences(window, logger)
			window.Hide()
		})
	} else {
		logger.Info().Msg("system tray unsupported on this platform")
		startHidden = false
		window.SetMaster()
	}

	fyneApp.Lifecycle().SetOnStopped(func() {
		saveWindowPreferences(window, logger)
		page.Close()
		controller.Close()
		logger.Info().
			Dur("total_work", controller.Duration(session.FieldTotalWork)).
			Dur("total_break", controller.Duration(session.FieldTotalBreak)).
			Msg("stopped")
	})

	logger.Info().Str("version", version).Bool("hidden", startHidden).Msg("starting")
	if !startHidden {
		window.Show()
	}
	fyneApp.Run()
	return nil
}

func newTickSourceFactory(logger zerolog.Logger) session.TickSourceFactory {
	names := []string{"work", "break"}
	created := 0
	return func(onTick func()) session.TickSource {
		name := fmt.Sprintf("timer-%d", created)
		if created < len(names) {
			name = names[created]
		}
		created++
		return ticker.New(onTick, ticker.Options{
			Name:     name,
			Interval: time.Second,
			Dispatch: fyne.Do,
			Logger:   logger,
		})
	}
}

func saveWindowPreferences(window fyne.Window, logger zerolog.Logger) {
	size := window.Canvas().Size()
	if size.Width < model.MinWindowWidth || size.Height < model.MinWindowHeight {
		return
	}
	prefs := model.WindowPreferences{Width: size.Width, Height: size.Height}
	if err := storage.SaveWindowPreferences(appName, prefs); err != nil {
		logger.Warn().Err(err).Msg("save window preferences")
	}
}
