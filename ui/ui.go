package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"TorchTimer/control"
	"TorchTimer/i18n"
	"TorchTimer/torch"
)

const (
	WindowWidth  = 360
	WindowHeight = 480
	TimeTextSize = 22.0

	// adjustStep is the duration added or removed by the per-row ⏮/⏭
	// buttons.
	adjustStep = time.Minute

	replyWait = 200 * time.Millisecond
)

// App is the interface the UI expects from the application manager.
type App interface {
	EnqueueCommand(cmd control.Command)
	Defaults() (string, time.Duration)
	ShowInfoDialog(title string, minSize fyne.Size)
}

// enqueueAndWait posts a command with a reply channel and returns its
// result, giving up after a short wait so a stuck loop cannot freeze the
// UI.
func enqueueAndWait(a App, cmd control.Command) error {
	reply := make(chan error, 1)
	cmd.Reply = reply
	a.EnqueueCommand(cmd)
	select {
	case err := <-reply:
		return err
	case <-time.After(replyWait):
		return nil
	}
}

// TorchList renders one row per torch and reconciles rows against the
// registry read model on every publish.
type TorchList struct {
	app App
	win fyne.Window

	box    *fyne.Container
	rows   map[string]*TorchRow
	notice *widget.Label
}

// NewTorchList builds an empty list; Update populates it.
func NewTorchList(a App, win fyne.Window) *TorchList {
	l := &TorchList{
		app:    a,
		win:    win,
		box:    container.NewVBox(),
		rows:   make(map[string]*TorchRow),
		notice: widget.NewLabel(""),
	}
	l.notice.Hide()
	return l
}

// Container returns the scrollable list body.
func (l *TorchList) Container() fyne.CanvasObject {
	return container.NewVScroll(l.box)
}

// Notice returns the non-blocking error notice line.
func (l *TorchList) Notice() fyne.CanvasObject {
	return l.notice
}

// ShowNotice surfaces an operation failure without blocking. Must run on
// the fyne thread.
func (l *TorchList) ShowNotice(msg string) {
	if msg == "" {
		l.notice.Hide()
		return
	}
	l.notice.SetText(msg)
	l.notice.Show()
}

// Update reconciles the rows against the current snapshots, preserving
// registry order. Must run on the fyne thread.
func (l *TorchList) Update(snaps []torch.Snapshot) {
	seen := make(map[string]bool, len(snaps))
	objects := make([]fyne.CanvasObject, 0, len(snaps))
	changed := len(snaps) != len(l.rows)

	for i, s := range snaps {
		seen[s.ID] = true
		row, ok := l.rows[s.ID]
		if !ok {
			row = newTorchRow(l, s)
			l.rows[s.ID] = row
			changed = true
		}
		row.apply(s)
		if !changed && i < len(l.box.Objects) && l.box.Objects[i] != row.box {
			changed = true
		}
		objects = append(objects, row.box)
	}
	for id := range l.rows {
		if !seen[id] {
			delete(l.rows, id)
			changed = true
		}
	}

	if changed {
		l.box.Objects = objects
		l.box.Refresh()
	}
}

func (l *TorchList) run(cmd control.Command) {
	if err := enqueueAndWait(l.app, cmd); err != nil {
		l.ShowNotice(err.Error())
		return
	}
	l.ShowNotice("")
}

// TorchRow is the widget strip for a single torch.
type TorchRow struct {
	list *TorchList
	id   string

	labelEntry *widget.Entry
	timeText   *canvas.Text
	toggle     *widget.Button
	reset      *widget.Button
	remove     *widget.Button
	extend     *widget.Button
	cut        *widget.Button
	box        *fyne.Container

	running bool
	expired bool
}

func newTorchRow(l *TorchList, s torch.Snapshot) *TorchRow {
	r := &TorchRow{list: l, id: s.ID}

	r.labelEntry = widget.NewEntry()
	r.labelEntry.SetText(s.Label)
	r.labelEntry.OnChanged = func(text string) {
		l.app.EnqueueCommand(control.Command{Type: control.CmdRename, ID: r.id, Label: text})
	}

	r.timeText = canvas.NewText("--:--", ColorNormal)
	r.timeText.TextStyle.Monospace = true
	r.timeText.TextSize = TimeTextSize

	r.toggle = widget.NewButton(i18n.T("Start"), func() {
		if r.running {
			l.run(control.Command{Type: control.CmdPause, ID: r.id})
		} else {
			l.run(control.Command{Type: control.CmdStart, ID: r.id})
		}
	})
	r.reset = widget.NewButtonWithIcon("", theme.MediaReplayIcon(), func() {
		l.run(control.Command{Type: control.CmdReset, ID: r.id})
	})
	r.remove = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		l.run(control.Command{Type: control.CmdRemove, ID: r.id})
	})
	r.extend = widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		l.run(control.Command{Type: control.CmdAddTime, ID: r.id, Duration: adjustStep})
	})
	r.cut = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() {
		l.run(control.Command{Type: control.CmdRemoveTime, ID: r.id, Duration: adjustStep})
	})

	r.box = container.NewVBox(
		container.NewBorder(nil, nil, nil,
			container.New(layout.NewCenterLayout(), r.timeText),
			r.labelEntry,
		),
		container.NewHBox(r.toggle, r.reset, r.extend, r.cut, layout.NewSpacer(), r.remove),
		widget.NewSeparator(),
	)
	return r
}

// apply refreshes the row from a snapshot. The label entry is not
// overwritten: renames only ever flow from the UI into the core.
func (r *TorchRow) apply(s torch.Snapshot) {
	text := torch.FormatRemaining(s.Remaining)
	col := ColorNormal
	switch s.Alert {
	case torch.AlertWarning:
		col = ColorWarning
	case torch.AlertExpired:
		col = ColorExpired
		text = i18n.T("Burned out")
	}
	if s.State == torch.StatePaused && s.Alert == torch.AlertNormal {
		col = ColorPaused
	}
	if text != r.timeText.Text || col != r.timeText.Color {
		r.timeText.Text = text
		r.timeText.Color = col
		r.timeText.Refresh()
	}

	running := s.State == torch.StateRunning
	expired := s.State == torch.StateExpired
	if running != r.running || expired != r.expired {
		r.running = running
		r.expired = expired
		if running {
			r.toggle.SetText(i18n.T("Pause"))
		} else {
			r.toggle.SetText(i18n.T("Start"))
		}
		if expired {
			r.toggle.Disable()
			r.cut.Disable()
		} else {
			r.toggle.Enable()
			r.cut.Enable()
		}
	}
}

// BuildAddRow returns the strip used to create a new torch, prefilled with
// the registry defaults.
func BuildAddRow(l *TorchList) fyne.CanvasObject {
	label, total := l.app.Defaults()

	labelEntry := widget.NewEntry()
	labelEntry.SetText(label)

	durationEntry := widget.NewEntry()
	durationEntry.SetPlaceHolder(i18n.T("mm:ss or minutes"))
	durationEntry.SetText(strconv.Itoa(int(total / time.Minute)))

	add := func() {
		d, err := parseDuration(durationEntry.Text)
		if err != nil {
			l.ShowNotice(err.Error())
			return
		}
		if err := enqueueAndWait(l.app, control.Command{
			Type:     control.CmdAdd,
			Label:    labelEntry.Text,
			Duration: d,
		}); err != nil {
			l.ShowNotice(err.Error())
			return
		}
		l.ShowNotice("")
		// Remember the values for next time; they persist with the
		// timer list.
		l.app.EnqueueCommand(control.Command{
			Type:     control.CmdSetDefaults,
			Label:    labelEntry.Text,
			Duration: d,
		})
	}

	addButton := widget.NewButtonWithIcon(i18n.T("Add"), theme.ContentAddIcon(), add)
	durationEntry.OnSubmitted = func(string) { add() }

	return container.NewBorder(nil, nil, nil, addButton,
		container.NewGridWithColumns(2, labelEntry, durationEntry),
	)
}

// BuildFooter returns the global controls row.
func BuildFooter(l *TorchList) fyne.CanvasObject {
	startAll := widget.NewButtonWithIcon(i18n.T("Start all"), theme.MediaPlayIcon(), func() {
		l.run(control.Command{Type: control.CmdStartAll})
	})
	pauseAll := widget.NewButtonWithIcon(i18n.T("Pause all"), theme.MediaPauseIcon(), func() {
		l.run(control.Command{Type: control.CmdPauseAll})
	})
	about := widget.NewButtonWithIcon("", theme.QuestionIcon(), func() {
		l.app.ShowInfoDialog(i18n.T("About TorchTimer"), fyne.NewSize(400, 300))
	})

	return container.NewHBox(
		layout.NewSpacer(),
		startAll,
		pauseAll,
		layout.NewSpacer(),
		about,
	)
}

// CreateMainWindow assembles the application window.
func CreateMainWindow(a App, fyneApp fyne.App) (fyne.Window, *TorchList) {
	title := fyneApp.Metadata().Name
	if title == "" {
		title = "TorchTimer"
	}
	w := fyneApp.NewWindow(title)

	l := NewTorchList(a, w)

	content := container.NewBorder(
		BuildAddRow(l),
		container.NewVBox(l.Notice(), BuildFooter(l)),
		nil, nil,
		l.Container(),
	)

	w.SetContent(content)
	w.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	return w, l
}

// parseDuration accepts "mm:ss" or a plain number of minutes.
func parseDuration(input string) (time.Duration, error) {
	input = strings.TrimSpace(input)
	if strings.Contains(input, ":") {
		parts := strings.Split(input, ":")
		if len(parts) != 2 {
			return 0, fmt.Errorf("invalid time format")
		}
		min, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid time format")
		}
		sec, err := strconv.Atoi(parts[1])
		if err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("invalid seconds (must be 0-59)")
		}
		d := time.Duration(min)*time.Minute + time.Duration(sec)*time.Second
		if d <= 0 {
			return 0, fmt.Errorf("invalid value")
		}
		return d, nil
	}

	min, err := strconv.Atoi(input)
	if err != nil || min <= 0 {
		return 0, fmt.Errorf("invalid value")
	}
	return time.Duration(min) * time.Minute, nil
}
