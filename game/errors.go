package game

import "errors"

// Operation errors surfaced to the command layer. None of these are
// fatal; handlers map them to user-facing guidance messages.
var (
	ErrInvalidAttempts = errors.New("max attempts must be between 1 and 20")
	ErrNoActiveGame    = errors.New("no active game for this guild")
	ErrSongNotFound    = errors.New("no matching song")
	ErrNoHintAvailable = errors.New("no candidate song with hint assets")
	ErrHintsExhausted  = errors.New("all hints for this game have been dispensed")
)
