package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownCommand is returned when a command name is not recognized.
var ErrUnknownCommand = errors.New("unknown command")

// Command is a viewer command produced by input.
type Command uint8

const (
	CmdNone Command = iota

	// Navigation
	CmdLineUp
	CmdLineDown
	CmdPageUp
	CmdPageDown
	CmdBigPageUp
	CmdBigPageDown
	CmdHome
	CmdEnd

	// Transliteration. "Up" raises the byte value assumed for 'A'.
	CmdShiftUp
	CmdShiftDown
	CmdShiftReset
	CmdCaseShiftUp
	CmdCaseShiftDown

	CmdToggleTall
	CmdReloadConfig
	CmdQuit
)

var commandNames = map[Command]string{
	CmdLineUp:        "line-up",
	CmdLineDown:      "line-down",
	CmdPageUp:        "page-up",
	CmdPageDown:      "page-down",
	CmdBigPageUp:     "bank-up",
	CmdBigPageDown:   "bank-down",
	CmdHome:          "home",
	CmdEnd:           "end",
	CmdShiftUp:       "shift-up",
	CmdShiftDown:     "shift-down",
	CmdShiftReset:    "shift-reset",
	CmdCaseShiftUp:   "case-shift-up",
	CmdCaseShiftDown: "case-shift-down",
	CmdToggleTall:    "toggle-tall",
	CmdReloadConfig:  "reload-config",
	CmdQuit:          "quit",
}

var commandsByName = func() map[string]Command {
	m := make(map[string]Command, len(commandNames))
	for c, n := range commandNames {
		m[n] = c
	}
	return m
}()

// String returns the command name used in configuration files.
func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	if c == CmdNone {
		return "none"
	}
	return fmt.Sprintf("Command(%d)", c)
}

// IsNavigation reports whether the command moves the view.
func (c Command) IsNavigation() bool {
	return c >= CmdLineUp && c <= CmdEnd
}

// ParseCommand returns the command with the given name.
// Names are case-insensitive; '_' and '-' are interchangeable.
func ParseCommand(name string) (Command, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "_", "-")
	if c, ok := commandsByName[n]; ok {
		return c, nil
	}
	return CmdNone, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// CommandNames returns every command name, sorted.
func CommandNames() []string {
	names := make([]string, 0, len(commandNames))
	for _, n := range commandNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
