// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"sort"

	"github.com/twocans72/photos-voting/models"
)

// Points awarded per rank
const (
	Rank1Points = 3
	Rank2Points = 2
	Rank3Points = 1
)

// Counts accumulates per-asset rank counts.
type Counts map[string]*models.VoteStats

func (c Counts) entry(assetID string) *models.VoteStats {
	s, ok := c[assetID]
	if !ok {
		s = &models.VoteStats{AssetID: assetID}
		c[assetID] = s
	}
	return s
}

// AddRank adds n votes for assetID at the given rank (1, 2 or 3).
func (c Counts) AddRank(assetID string, rank, n int) {
	if assetID == "" || n == 0 {
		return
	}
	s := c.entry(assetID)
	switch rank {
	case 1:
		s.Rank1Count += n
	case 2:
		s.Rank2Count += n
	case 3:
		s.Rank3Count += n
	}
}

// Score returns the weighted score of an asset.
func Score(s models.VoteStats) int {
	return Rank1Points*s.Rank1Count + Rank2Points*s.Rank2Count + Rank3Points*s.Rank3Count
}

// Leaderboard scores every asset and sorts by score, highest first.
// Equal scores are ordered by asset id so the output is deterministic.
func Leaderboard(c Counts) []models.VoteStats {
	stats := make([]models.VoteStats, 0, len(c))
	for _, s := range c {
		entry := *s
		entry.Score = Score(entry)
		stats = append(stats, entry)
	}

	sort.Slice(stats, func(i, j int) bool {
		a, b := stats[i], stats[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.AssetID < b.AssetID
	})

	return stats
}

// Tally aggregates a set of votes into album stats.
func Tally(votes []models.Vote) models.AlbumStats {
	counts := Counts{}
	for _, v := range votes {
		counts.AddRank(v.Rank1AssetID, 1, 1)
		if v.Rank2AssetID != nil {
			counts.AddRank(*v.Rank2AssetID, 2, 1)
		}
		if v.Rank3AssetID != nil {
			counts.AddRank(*v.Rank3AssetID, 3, 1)
		}
	}

	return models.AlbumStats{
		TotalVotes: len(votes),
		Stats:      Leaderboard(counts),
	}
}
