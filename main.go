package main

import (
	"embed"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"gopkg.in/natefinch/lumberjack.v2"

	"go-legendary-launch/config"
	"go-legendary-launch/constants"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	setupLogging()

	cm := config.NewConfigManager()
	if err := cm.Load(); err != nil {
		log.Error().Err(err).Msg("error loading config")
	}

	app := NewApp(cm)

	err := wails.Run(&options.App{
		Title:  "go-legendary-launch",
		Width:  1024,
		Height: 768,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup:        app.startup,
		Bind: []interface{}{
			app,
		},
	})

	if err != nil {
		log.Error().Err(err).Msg("wails run failed")
	}
}

// setupLogging sends zerolog output to a rotated file under the state
// dir, plus the console during development.
func setupLogging() {
	logPath := filepath.Join(xdg.StateHome, constants.AppDir, constants.LogFile)

	writers := []io.Writer{
		&lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    5, // megabytes
			MaxBackups: 2,
		},
		zerolog.ConsoleWriter{Out: os.Stderr},
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
}
