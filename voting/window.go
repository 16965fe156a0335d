// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"time"

	"github.com/twocans72/photos-voting/models"
)

// WindowStatus derives the voting window state at now.
// Both bounds are inclusive: voting opens at start and closes strictly after
// end. A nil bound leaves that side open.
func WindowStatus(enabled bool, start, end *time.Time, now time.Time) models.VotingStatus {
	if !enabled {
		return models.VotingStatus{}
	}

	hasStarted := start == nil || !now.Before(*start)
	hasEnded := end != nil && now.After(*end)

	return models.VotingStatus{
		IsOpen:     hasStarted && !hasEnded,
		HasStarted: hasStarted,
		HasEnded:   hasEnded,
		StartDate:  start,
		EndDate:    end,
	}
}

// AlbumWindow is WindowStatus for an album row.
func AlbumWindow(album models.Album, now time.Time) models.VotingStatus {
	return WindowStatus(album.VotingEnabled, album.VotingStart, album.VotingEnd, now)
}
