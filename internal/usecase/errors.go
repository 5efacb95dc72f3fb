package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrLineupIncomplete rejects a submission with unfilled positions
	// before any network call is made.
	ErrLineupIncomplete = errors.New("lineup incomplete: fill every position")

	// ErrHomeLineupRequired blocks an away-side submission while the
	// home lineup is not observable, and is also what the server's
	// HOME_TEAM_LINEUP_CREATION_FAILED code maps to.
	ErrHomeLineupRequired = errors.New("home team lineup required")

	// ErrEditorClosed rejects operations on an editor whose session has
	// ended (saved, failed, or cancelled).
	ErrEditorClosed = errors.New("lineup editor session has ended")
)
