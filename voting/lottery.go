// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"math/rand/v2"

	"github.com/twocans72/photos-voting/models"
)

// Source picks an index in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource draws from the runtime's global generator. It is safe for
// concurrent use, unlike a *rand.Rand.
var DefaultSource Source = globalSource{}

// LotteryState reports where an album is in the draw lifecycle.
func LotteryState(album models.Album) string {
	switch {
	case album.LotteryDrawn:
		return models.LotteryDrawn
	case album.LotteryEnabled:
		return models.LotteryPending
	default:
		return models.LotteryNotDrawable
	}
}

// CheckDrawable returns the error a draw on album must fail with, if any.
// A drawn album stays drawn even if the lottery was disabled afterwards.
func CheckDrawable(album models.Album) error {
	switch LotteryState(album) {
	case models.LotteryDrawn:
		return ErrAlreadyDrawn
	case models.LotteryNotDrawable:
		return ErrLotteryNotEnabled
	}
	return nil
}

// PickWinner selects one of the non-winning participants with equal probability.
func PickWinner(participants []models.LotteryParticipant, src Source) (models.LotteryParticipant, error) {
	eligible := make([]models.LotteryParticipant, 0, len(participants))
	for _, p := range participants {
		if !p.IsWinner {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		return models.LotteryParticipant{}, ErrNoParticipants
	}
	if src == nil {
		src = DefaultSource
	}

	return eligible[src.IntN(len(eligible))], nil
}
