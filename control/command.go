// Package control defines lightweight command messages used by the UI to
// request actions from the application command loop. The command loop is
// the registry's only mutator, so routing every change through it keeps
// the core lock-free and behavior deterministic.
package control

import "time"

// CommandType enumerates supported command operations.
type CommandType int

const (
	CmdAdd CommandType = iota
	CmdStart
	CmdPause
	CmdReset
	CmdRemove
	CmdRename
	CmdSetDuration
	CmdAddTime
	CmdRemoveTime
	CmdStartAll
	CmdPauseAll
	CmdSetDefaults

	// CmdTick is enqueued by the tick goroutine so that time advances on
	// the same goroutine as every other mutation.
	CmdTick
)

// Command is the message sent from the UI to the AppManager command loop.
// ID targets a single timer; it is unused for Add, StartAll, PauseAll and
// SetDefaults. Label carries the new label for Add, Rename and
// SetDefaults; Duration carries the duration argument where one applies.
// The optional Reply channel receives the operation's error (nil on
// success) so the UI can surface failures as non-blocking notices.
type Command struct {
	Type     CommandType
	ID       string
	Label    string
	Duration time.Duration
	Reply    chan error
}
