package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/nduc/bgm-player/internal/config"
	"github.com/nduc/bgm-player/internal/engine"
	"github.com/nduc/bgm-player/internal/library"
	"github.com/nduc/bgm-player/internal/platform"
	"github.com/nduc/bgm-player/internal/sequencer"
	"github.com/nduc/bgm-player/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "app.nduc.bgmplayer"
	AppName = "BGM Player"

	WindowWidth  = 520
	WindowHeight = 420
)

func main() {
	fmt.Printf("BGM Player v%s starting...\n", version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewPlayerTheme(fyne.CurrentDevice().IsMobile()))

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	overrides, err := config.LoadOverrides()
	if err != nil {
		log.Printf("Failed to load .env overrides: %v", err)
	}
	settings.ApplyOverrides(overrides)

	dataDir := settings.GetDataDirectory()
	if err := platform.CreateDirectoryIfNotExists(dataDir); err != nil {
		log.Printf("Failed to ensure data dir: %v", err)
	}

	lib := library.NewLibrary(dataDir)
	if err := lib.LoadDisplayNames(); err != nil {
		log.Printf("Failed to load display names: %v", err)
	}

	playback := engine.NewService(engine.Options{
		SampleRate: engine.DefaultSampleRate,
		BufferSize: settings.OutputBuffer(),
		Volume:     settings.GetVolume(),
		Output:     engine.NewSpeakerOutput(),
		Dispatch:   fyne.Do,
	})
	seq := sequencer.NewSequencer(playback, lib)

	ui.NewRootUI(myWindow, myApp, settings, lib, playback, seq)

	myWindow.SetOnClosed(func() {
		seq.Clear()
		playback.Release()
	})

	myWindow.ShowAndRun()
}
