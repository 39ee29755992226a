// Package kiosk is the shared clock-in terminal. Its screen state is a plain
// serializable value advanced by State.Apply; the TUI only renders it and
// performs the effects Apply asks for.
package kiosk

import (
	"fmt"
)

const maxPINLength = 6

type View string

const (
	ViewSelect View = "select"
	ViewPIN    View = "pin"
)

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

type Flash struct {
	Kind FlashKind `json:"kind"`
	Text string    `json:"text"`
	// Seq identifies the flash so a late expiry cannot clear a newer one.
	Seq int `json:"seq"`
}

type Employee struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	HasPIN bool   `json:"has_pin"`
}

type State struct {
	View      View       `json:"view"`
	Employees []Employee `json:"employees"`
	Cursor    int        `json:"cursor"`
	Selected  *Employee  `json:"selected,omitempty"`
	PIN       string     `json:"pin"`
	Flash     *Flash     `json:"flash,omitempty"`
	Busy      bool       `json:"busy"`
	FlashSeq  int        `json:"flash_seq"`
}

type ActionKind int

const (
	ActionRosterLoaded ActionKind = iota
	ActionCursorUp
	ActionCursorDown
	ActionSelect
	ActionDigit
	ActionBackspace
	ActionCancel
	ActionSubmit
	ActionClockSucceeded
	ActionClockFailed
	ActionFlashExpired
)

// ClockFailure tells a rejected PIN apart from a failed request.
type ClockFailure int

const (
	FailureInvalidPIN ClockFailure = iota + 1
	FailureConnection
)

type Action struct {
	Kind      ActionKind
	Employees []Employee
	Digit     rune
	Type      string
	Message   string
	Failure   ClockFailure
	FlashSeq  int
}

type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectClock
	EffectExpireFlash
)

// Effect is the I/O the caller should perform after an Apply.
type Effect struct {
	Kind       EffectKind
	EmployeeID string
	PIN        string
	Type       string
	FlashSeq   int
}

func NewState() State {
	return State{View: ViewSelect}
}

// Apply returns the state after action together with the effect to run. It
// never mutates s.
func (s State) Apply(action Action) (State, Effect) {
	next := s
	none := Effect{Kind: EffectNone}

	switch action.Kind {
	case ActionRosterLoaded:
		next.Employees = append([]Employee(nil), action.Employees...)
		if next.Cursor >= len(next.Employees) {
			next.Cursor = max(0, len(next.Employees)-1)
		}
		if next.Selected != nil && !containsEmployee(next.Employees, next.Selected.ID) {
			next.View, next.Selected, next.PIN = ViewSelect, nil, ""
		}
		return next, none

	case ActionCursorUp:
		if next.View == ViewSelect && next.Cursor > 0 {
			next.Cursor--
		}
		return next, none

	case ActionCursorDown:
		if next.View == ViewSelect && next.Cursor < len(next.Employees)-1 {
			next.Cursor++
		}
		return next, none

	case ActionSelect:
		if next.View != ViewSelect || len(next.Employees) == 0 {
			return next, none
		}
		selected := next.Employees[next.Cursor]
		next.Selected = &selected
		next.View = ViewPIN
		next.PIN = ""
		return next, none

	case ActionDigit:
		if next.View == ViewPIN && !next.Busy && isDigit(action.Digit) && len(next.PIN) < maxPINLength {
			next.PIN += string(action.Digit)
		}
		return next, none

	case ActionBackspace:
		if next.View == ViewPIN && !next.Busy && len(next.PIN) > 0 {
			next.PIN = next.PIN[:len(next.PIN)-1]
		}
		return next, none

	case ActionCancel:
		if next.View == ViewPIN && !next.Busy {
			next.View, next.Selected, next.PIN = ViewSelect, nil, ""
		}
		return next, none

	case ActionSubmit:
		if next.View != ViewPIN || next.Busy || next.PIN == "" || next.Selected == nil {
			return next, none
		}
		if action.Type != "IN" && action.Type != "OUT" {
			return next, none
		}
		next.Busy = true
		return next, Effect{
			Kind:       EffectClock,
			EmployeeID: next.Selected.ID,
			PIN:        next.PIN,
			Type:       action.Type,
		}

	case ActionClockSucceeded:
		next.Busy = false
		next.View, next.Selected, next.PIN = ViewSelect, nil, ""
		next = next.withFlash(FlashSuccess, action.Message)
		return next, Effect{Kind: EffectExpireFlash, FlashSeq: next.Flash.Seq}

	case ActionClockFailed:
		next.Busy = false
		if action.Failure == FailureInvalidPIN {
			next.PIN = ""
			return next.withFlash(FlashError, "Incorrect PIN, please try again."), none
		}
		return next.withFlash(FlashError, "Connection error, please try again."), none

	case ActionFlashExpired:
		if next.Flash != nil && next.Flash.Seq == action.FlashSeq {
			next.Flash = nil
		}
		return next, none
	}

	return next, none
}

func (s State) withFlash(kind FlashKind, text string) State {
	s.FlashSeq++
	s.Flash = &Flash{Kind: kind, Text: text, Seq: s.FlashSeq}
	return s
}

// SuccessMessage is shown when the server reply carries no message.
func SuccessMessage(eventType, name string) string {
	if eventType == "IN" {
		return fmt.Sprintf("Clock-in recorded for %s!", name)
	}
	return fmt.Sprintf("Clock-out recorded for %s!", name)
}

// isDigit accepts ASCII digits only, as the server does.
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func containsEmployee(employees []Employee, id string) bool {
	for _, e := range employees {
		if e.ID == id {
			return true
		}
	}
	return false
}
