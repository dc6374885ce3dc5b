package main

import (
	"context"
	"embed"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"TorchTimer/clock"
	"TorchTimer/store"
	"TorchTimer/ui"
)

//go:embed assets/*
var content embed.FS

func main() {
	fyneApp := app.New()

	if iconBytes, err := content.ReadFile("assets/icon.png"); err == nil {
		fyneApp.SetIcon(fyne.NewStaticResource("icon.png", iconBytes))
	} else {
		log.Printf("Failed to load icon. %v", err)
	}

	fyneApp.Settings().SetTheme(ui.NewTorchTheme())

	backend, err := store.NewBackend()
	if err != nil {
		log.Printf("Persistence disabled: %v", err)
		backend = nil
	}

	a := NewAppManager(content, clock.System(), backend)

	w, list := ui.CreateMainWindow(a, fyneApp)
	a.mainWindow = w
	a.list = list
	list.Update(a.Snapshots())

	ctx, cancel := context.WithCancel(context.Background())
	w.SetOnClosed(func() {
		cancel()
		a.Shutdown()
	})

	go a.tick(ctx)

	w.ShowAndRun()
}
