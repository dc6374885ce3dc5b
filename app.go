// Package main contains the application wiring and the AppManager which
// coordinates the torch registry, audio and the UI. This file centralizes
// the shared application state and the command loop used to serialize
// registry mutations.
//
// Maintenance notes:
//   - Concurrency model: the command loop goroutine is the registry's only
//     mutator. The tick goroutine does not touch the registry; it enqueues
//     CmdTick like any other command. The UI reads only the snapshot cache
//     published after each loop pass, so the registry itself needs no
//     locks.
//   - `cmdCh` is a buffered channel used to enqueue commands from the UI.
//     Commands are dropped with a log line when the channel stays full,
//     to avoid blocking the UI.
package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"

	"TorchTimer/clock"
	"TorchTimer/control"
	"TorchTimer/i18n"
	"TorchTimer/store"
	"TorchTimer/torch"
	"TorchTimer/ui"
)

// AppManager is the main application struct, holding all state.
type AppManager struct {
	mainWindow fyne.Window
	list       *ui.TorchList

	registry *torch.Registry // owned by the command loop after startup
	clk      clock.Clock
	saver    *store.Saver

	cmdCh     chan control.Command
	cmdCtx    context.Context
	cmdCancel context.CancelFunc
	loopDone  chan struct{}

	// read model published after every command-loop pass; this is the
	// only registry-derived state other goroutines may touch.
	mu           sync.Mutex
	snaps        []torch.Snapshot
	defaultLabel string
	defaultTotal time.Duration

	alertBuffer *beep.Buffer
	speakerLock sync.Mutex
	content     embed.FS
}

// NewAppManager loads the persisted registry (or seeds a fresh one) and
// starts the command loop.
func NewAppManager(content embed.FS, clk clock.Clock, backend store.Backend) *AppManager {
	a := &AppManager{clk: clk, content: content}

	policy := torch.LoadPolicy(content)
	a.registry = loadRegistry(backend, policy)
	a.publish()

	if backend != nil {
		a.saver = store.NewSaver(backend)
	}
	a.loadAlertSound()

	a.cmdCh = make(chan control.Command, 256)
	a.cmdCtx, a.cmdCancel = context.WithCancel(context.Background())
	a.loopDone = make(chan struct{})
	go a.commandLoop()

	return a
}

// loadRegistry restores the saved timer list. A missing save seeds one
// default torch, like a first run; a corrupt save is logged and replaced
// rather than killing the app.
func loadRegistry(backend store.Backend, policy torch.Policy) *torch.Registry {
	fresh := func() *torch.Registry {
		r := torch.NewRegistry(policy)
		if _, err := r.Add(policy.DefaultLabel, policy.DefaultTotal); err != nil {
			log.Printf("Failed to seed default torch: %v", err)
		}
		return r
	}

	if backend == nil {
		return fresh()
	}
	data, err := backend.Load()
	if errors.Is(err, store.ErrNoSave) {
		return fresh()
	}
	if err != nil {
		log.Printf("Failed to load saved timers, starting fresh: %v", err)
		return fresh()
	}
	r, err := torch.Deserialize(data, policy)
	if err != nil {
		log.Printf("Saved timers unreadable, starting fresh: %v", err)
		return fresh()
	}
	log.Printf("Restored %d timers.", r.Len())
	return r
}

// EnqueueCommand posts a command to the internal command loop.
func (a *AppManager) EnqueueCommand(cmd control.Command) {
	// Try to enqueue the command but avoid blocking UI indefinitely. If
	// the channel stays full for the short timeout, drop and log.
	select {
	case a.cmdCh <- cmd:
	case <-time.After(150 * time.Millisecond):
		log.Printf("EnqueueCommand timeout: dropping command")
	}
}

func (a *AppManager) commandLoop() {
	defer close(a.loopDone)
	for {
		select {
		case <-a.cmdCtx.Done():
			return
		case cmd := <-a.cmdCh:
			err := a.apply(cmd)
			a.save()
			a.publish()
			a.playAlerts()
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- err:
				default:
				}
			}
		}
	}
}

// apply executes one command against the registry. Runs on the command
// loop goroutine only.
func (a *AppManager) apply(cmd control.Command) error {
	now := a.clk.Now()
	switch cmd.Type {
	case control.CmdAdd:
		_, err := a.registry.Add(cmd.Label, cmd.Duration)
		return err
	case control.CmdStart:
		return a.registry.Start(cmd.ID, now)
	case control.CmdPause:
		return a.registry.Pause(cmd.ID, now)
	case control.CmdReset:
		return a.registry.Reset(cmd.ID)
	case control.CmdRemove:
		return a.registry.Remove(cmd.ID)
	case control.CmdRename:
		return a.registry.Rename(cmd.ID, cmd.Label)
	case control.CmdSetDuration:
		return a.registry.SetDuration(cmd.ID, cmd.Duration)
	case control.CmdAddTime:
		return a.registry.AddTime(cmd.ID, cmd.Duration, now)
	case control.CmdRemoveTime:
		return a.registry.RemoveTime(cmd.ID, cmd.Duration, now)
	case control.CmdStartAll:
		a.registry.StartAll(now)
		return nil
	case control.CmdPauseAll:
		a.registry.PauseAll(now)
		return nil
	case control.CmdSetDefaults:
		return a.registry.SetDefaults(cmd.Label, cmd.Duration)
	case control.CmdTick:
		a.registry.Tick(now)
		return nil
	}
	return nil
}

// save hands the current serialized registry to the background saver.
func (a *AppManager) save() {
	if a.saver == nil {
		return
	}
	data, err := a.registry.Serialize()
	if err != nil {
		log.Printf("Failed to serialize timers: %v", err)
		return
	}
	a.saver.Save(data)
}

// publish refreshes the snapshot cache and pushes the read model to the
// UI.
func (a *AppManager) publish() {
	snaps := a.registry.Snapshots()
	label, total := a.registry.Defaults()

	a.mu.Lock()
	a.snaps = snaps
	a.defaultLabel = label
	a.defaultTotal = total
	a.mu.Unlock()

	if a.list == nil {
		return
	}
	fyne.Do(func() {
		a.list.Update(snaps)
	})
}

// playAlerts drains the one-shot expiry events and sounds the alert once
// per expired torch.
func (a *AppManager) playAlerts() {
	for range a.registry.DrainExpired() {
		a.playAlertSound()
	}
}

// Snapshots returns the last published read model.
func (a *AppManager) Snapshots() []torch.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snaps
}

// Defaults returns the last published new-torch defaults.
func (a *AppManager) Defaults() (string, time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.defaultLabel, a.defaultTotal
}

func (a *AppManager) loadAlertSound() {
	if err := speaker.Init(44100, 44100/10); err != nil {
		log.Printf("Audio disabled: Failed to initialize speaker: %v", err)
		return
	}

	data, err := a.content.Open("assets/alert.ogg")
	if err != nil {
		log.Printf("Failed to open alert sound: %v", err)
		return
	}
	defer data.Close()

	streamer, format, err := vorbis.Decode(data)
	if err != nil {
		log.Printf("Failed to decode alert sound: %v", err)
		return
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	a.alertBuffer = buffer
}

func (a *AppManager) playAlertSound() {
	if a.alertBuffer == nil {
		return
	}
	a.speakerLock.Lock()
	defer a.speakerLock.Unlock()
	speaker.Play(a.alertBuffer.Streamer(0, a.alertBuffer.Len()))
}

func (a *AppManager) tick(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.EnqueueCommand(control.Command{Type: control.CmdTick})
		}
	}
}

// ShowInfoDialog shows the localized about dialog.
func (a *AppManager) ShowInfoDialog(title string, minSize fyne.Size) {
	bytes, err := a.content.ReadFile("assets/dialogue_about.json")
	if err != nil {
		dialog.ShowError(err, a.mainWindow)
		return
	}

	var dialogues map[string]string
	if err := json.Unmarshal(bytes, &dialogues); err != nil {
		dialog.ShowError(err, a.mainWindow)
		return
	}
	contentText, ok := dialogues[i18n.GetLang()]
	if !ok {
		contentText = dialogues["en"]
	}

	text := widget.NewLabel(contentText)
	text.Wrapping = fyne.TextWrapWord

	scrollableContent := container.NewVScroll(text)
	scrollableContent.SetMinSize(minSize)

	dialog.ShowCustom(title, i18n.T("Close"), scrollableContent, a.mainWindow)
}

// Shutdown stops the command loop and flushes the final save. Waits for
// the loop to finish so no save races the flush.
func (a *AppManager) Shutdown() {
	if a.cmdCancel != nil {
		a.cmdCancel()
		<-a.loopDone
	}
	if a.saver != nil {
		a.saver.Close()
	}
}
