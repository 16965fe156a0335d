// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import "errors"

var (
	ErrValidation        = errors.New("invalid input")
	ErrDuplicateVote     = errors.New("already voted")
	ErrWindowClosed      = errors.New("voting is not open")
	ErrLotteryNotEnabled = errors.New("lottery not enabled")
	ErrAlreadyDrawn      = errors.New("lottery already drawn")
	ErrNoParticipants    = errors.New("no lottery participants")
	ErrNotFound          = errors.New("album not found")
)
