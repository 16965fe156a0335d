package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Lottery states
const (
	LotteryNotDrawable = "not_drawable"
	LotteryPending     = "pending"
	LotteryDrawn       = "drawn"
)

// Error codes returned in ErrorResponse.Code
const (
	CodeValidation        = "validation_error"
	CodeDuplicateVote     = "duplicate_vote"
	CodeWindowClosed      = "window_closed"
	CodeLotteryNotEnabled = "lottery_not_enabled"
	CodeAlreadyDrawn      = "already_drawn"
	CodeNoParticipants    = "no_participants"
	CodeNotFound          = "not_found"
	CodeInternal          = "internal_error"
	CodeUnauthorized      = "unauthorized"
	CodeRateLimited       = "rate_limited"
	CodeUnavailable       = "upstream_unavailable"
)

// Request types

type SubmitVoteRequest struct {
	Rank1 string `json:"rank1"`
	Rank2 string `json:"rank2"`
	Rank3 string `json:"rank3"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AlbumPatch lists the admin-editable album fields. A nil pointer or an unset
// OptionalTime means the field was absent from the request and is left alone.
type AlbumPatch struct {
	IsVisible      *bool        `json:"is_visible"`
	VotingEnabled  *bool        `json:"voting_enabled"`
	VotingStart    OptionalTime `json:"voting_start"`
	VotingEnd      OptionalTime `json:"voting_end"`
	LotteryEnabled *bool        `json:"lottery_enabled"`
}

// IsEmpty reports whether the patch carries no field at all.
func (p AlbumPatch) IsEmpty() bool {
	return p.IsVisible == nil &&
		p.VotingEnabled == nil &&
		!p.VotingStart.Set &&
		!p.VotingEnd.Set &&
		p.LotteryEnabled == nil
}

// OptionalTime is a nullable timestamp that remembers whether it was present
// in the JSON document. null and "" clear the value.
type OptionalTime struct {
	Set  bool
	Time *time.Time
}

// Accepted input layouts, most specific first. The admin form posts
// datetime-local values without a zone; those are read as UTC.
var optionalTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Time = nil

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		return nil
	}

	for _, layout := range optionalTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			o.Time = &t
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

// SubmitVoteParams is the input of the vote ledger.
type SubmitVoteParams struct {
	AlbumID      string
	SessionToken string
	Rank1        string
	Rank2        string
	Rank3        string
	Email        string
	Name         string
	IPHash       string
}

// SyncedAlbum is an album as reported by the photo library.
type SyncedAlbum struct {
	ImmichID     string
	Title        string
	Description  *string
	AssetCount   int
	CoverAssetID *string
}

// Response types

type SubmitVoteResponse struct {
	Success      bool   `json:"success"`
	SessionToken string `json:"session_token"`
}

type MyVoteResponse struct {
	Voted bool  `json:"voted"`
	Vote  *Vote `json:"vote,omitempty"`
}

type AlbumDetailResponse struct {
	Album        PublicAlbum  `json:"album"`
	VotingStatus VotingStatus `json:"voting_status"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type SyncResponse struct {
	Synced int `json:"synced"`
}

type DrawResponse struct {
	Winner LotteryParticipant `json:"winner"`
}

// Domain types

type Album struct {
	ID              string     `json:"id"`
	ImmichID        string     `json:"immich_id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description"`
	AssetCount      int        `json:"asset_count"`
	CoverAssetID    *string    `json:"cover_asset_id"`
	IsVisible       bool       `json:"is_visible"`
	VotingEnabled   bool       `json:"voting_enabled"`
	VotingStart     *time.Time `json:"voting_start"`
	VotingEnd       *time.Time `json:"voting_end"`
	LotteryEnabled  bool       `json:"lottery_enabled"`
	LotteryDrawn    bool       `json:"lottery_drawn"`
	LotteryWinnerID *string    `json:"lottery_winner_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// PublicAlbum is the subset of Album shown to voters. The lottery winner's
// email never leaves the admin API.
type PublicAlbum struct {
	ID             string     `json:"id"`
	ImmichID       string     `json:"immich_id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	AssetCount     int        `json:"asset_count"`
	CoverAssetID   *string    `json:"cover_asset_id"`
	VotingEnabled  bool       `json:"voting_enabled"`
	VotingStart    *time.Time `json:"voting_start"`
	VotingEnd      *time.Time `json:"voting_end"`
	LotteryEnabled bool       `json:"lottery_enabled"`
}

func (a Album) Public() PublicAlbum {
	return PublicAlbum{
		ID:             a.ID,
		ImmichID:       a.ImmichID,
		Title:          a.Title,
		Description:    a.Description,
		AssetCount:     a.AssetCount,
		CoverAssetID:   a.CoverAssetID,
		VotingEnabled:  a.VotingEnabled,
		VotingStart:    a.VotingStart,
		VotingEnd:      a.VotingEnd,
		LotteryEnabled: a.LotteryEnabled,
	}
}

// AlbumSummary is an album with its admin counters.
type AlbumSummary struct {
	Album
	VoteCount    int `json:"vote_count"`
	LotteryCount int `json:"lottery_count"`
}

type VotingStatus struct {
	IsOpen     bool       `json:"is_open"`
	HasStarted bool       `json:"has_started"`
	HasEnded   bool       `json:"has_ended"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
}

type Vote struct {
	ID           string    `json:"id"`
	AlbumID      string    `json:"album_id"`
	SessionToken string    `json:"-"` // Never expose in JSON
	Rank1AssetID string    `json:"rank1_asset_id"`
	Rank2AssetID *string   `json:"rank2_asset_id"`
	Rank3AssetID *string   `json:"rank3_asset_id"`
	Email        *string   `json:"email,omitempty"`
	Name         *string   `json:"name,omitempty"`
	IPHash       *string   `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

// VoteReceipt is the outcome of recording a vote.
type VoteReceipt struct {
	Vote Vote
	// LotteryEntered is true only when this vote added a new lottery participant.
	LotteryEntered bool
}

// AdminVote is a vote row joined with the lottery outcome of its voter.
type AdminVote struct {
	Vote
	IsWinner *bool `json:"is_winner"`
}

type LotteryParticipant struct {
	ID           string    `json:"id"`
	AlbumID      string    `json:"album_id"`
	VoteID       string    `json:"vote_id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name"`
	IsWinner     bool      `json:"is_winner"`
	Notified     bool      `json:"notified"`
	CreatedAt    time.Time `json:"created_at"`
	Rank1AssetID string    `json:"rank1_asset_id,omitempty"`
}

// Tally types

type VoteStats struct {
	AssetID    string `json:"asset_id"`
	Rank1Count int    `json:"rank1_count"`
	Rank2Count int    `json:"rank2_count"`
	Rank3Count int    `json:"rank3_count"`
	Score      int    `json:"score"` // rank1*3 + rank2*2 + rank3
}

type AlbumStats struct {
	TotalVotes int         `json:"total_votes"`
	Stats      []VoteStats `json:"stats"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}
