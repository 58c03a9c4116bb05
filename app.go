package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"go-legendary-launch/config"
	"go-legendary-launch/constants"
	"go-legendary-launch/images"
	"go-legendary-launch/legendary"
	"go-legendary-launch/library"
	"go-legendary-launch/metadata"
	"go-legendary-launch/types"
)

// App struct
type App struct {
	ctx           context.Context
	configManager *config.ConfigManager
	session       legendary.Session
	library       *library.Service
	fetcher       *images.Fetcher

	fs   afero.Fs
	exec legendary.CommandExecutor

	// emit publishes an event to the UI thread. Wired to the Wails
	// runtime on startup; background loads funnel all results through
	// it so nothing else mutates UI state.
	emit func(event string, data ...interface{})
}

// NewApp creates a new App application struct
func NewApp(cm *config.ConfigManager) *App {
	a := &App{
		configManager: cm,
		fs:            afero.NewOsFs(),
		exec:          &legendary.RealCommandExecutor{},
		fetcher:       images.NewFetcher(log.Logger),
	}
	a.rebuild()
	return a
}

// rebuild recreates the services bound to the configured legendary root.
func (a *App) rebuild() {
	cfg := a.configManager.GetConfig()
	a.session = legendary.NewCLISession(a.fs, a.exec, cfg.LegendaryRoot, cfg.LegendaryBinary, log.Logger)
	reader := metadata.NewReader(a.fs, cfg.LegendaryRoot, log.Logger)
	a.library = library.New(reader, log.Logger)
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.emit = func(event string, data ...interface{}) {
		runtime.EventsEmit(a.ctx, event, data...)
	}
}

// GetConfig returns the current configuration
func (a *App) GetConfig() types.AppConfig {
	return a.configManager.GetConfig()
}

// SaveConfig saves the configuration
func (a *App) SaveConfig(cfg types.AppConfig) string {
	// Preserve existing values if they are empty in the incoming config (simple merge strategy)
	current := a.configManager.GetConfig()
	if cfg.LegendaryRoot == "" {
		cfg.LegendaryRoot = current.LegendaryRoot
	}
	if cfg.LegendaryBinary == "" {
		cfg.LegendaryBinary = current.LegendaryBinary
	}

	err := a.configManager.Save(cfg)
	if err != nil {
		return fmt.Sprintf("Error saving config: %s", err.Error())
	}

	// Rebuild services in case the root or binary changed
	if cfg.LegendaryRoot != current.LegendaryRoot || cfg.LegendaryBinary != current.LegendaryBinary {
		a.rebuild()
	}

	return "Configuration saved successfully!"
}

// IsLoggedIn reports whether a legendary session is active.
func (a *App) IsLoggedIn() bool {
	return a.session.IsLoggedIn()
}

// Login authenticates with the Epic store via the legendary CLI, using
// an authorization code from the browser flow.
func (a *App) Login(code string) error {
	if err := a.session.Login(a.background(), code); err != nil {
		return err
	}
	a.publish(constants.EventLoginStatus, true)
	return nil
}

// Logout removes the active session.
func (a *App) Logout() {
	a.session.Logout()
	a.publish(constants.EventLoginStatus, false)
}

// GetUserName returns the logged-in display name, or an empty string.
func (a *App) GetUserName() string {
	name, _ := a.session.UserName()
	return name
}

// RequestLibrary loads the game list off the UI thread and publishes it
// as a library-loaded event. The listing is best-effort and never
// fails; at worst it is empty.
func (a *App) RequestLibrary() {
	go func() {
		games := a.library.Load()
		a.publish(constants.EventLibraryLoaded, games)
	}()
}

// RefreshLibrary asks the CLI to refresh its list files, then reloads.
// The refresh subprocess is detached, so this pass may still see the
// old files; the UI offers refresh again.
func (a *App) RefreshLibrary() {
	a.session.RefreshList(a.background())
	a.RequestLibrary()
}

// GetCover returns the base64 data URI for a game's cover image.
func (a *App) GetCover(url string) (string, error) {
	return a.fetcher.DataURI(url)
}

// PlayGame launches an installed game through the CLI.
func (a *App) PlayGame(appName string) error {
	return a.session.LaunchGame(a.background(), appName)
}

func (a *App) publish(event string, data ...interface{}) {
	if a.emit != nil {
		a.emit(event, data...)
	}
}

func (a *App) background() context.Context {
	if a.ctx != nil {
		return a.ctx
	}
	return context.Background()
}
