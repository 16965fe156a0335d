// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/twocans72/photos-voting/cliparse"
	"github.com/twocans72/photos-voting/db"
	"github.com/twocans72/photos-voting/models"
)

// Epoch is the starting time of every fake clock handed out by NewTestStore.
var Epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// SetupTestDB creates a fresh SQLite database with the full schema in a
// temporary directory. It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// NewTestStore returns a store on a fresh database, driven by a fake clock
// set to Epoch.
func NewTestStore(t *testing.T) (*db.Store, *sql.DB, *clockwork.FakeClock) {
	t.Helper()

	conn := SetupTestDB(t)
	clock := clockwork.NewFakeClockAt(Epoch)
	return db.NewStore(conn, clock), conn, clock
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:               3318,
		DatabaseType:       db.TypeSQLite,
		DatabaseURL:        "test.db",
		IPHashSalt:         "test-ip-salt",
		AdminPassword:      "test-admin-password",
		AdminSessionTTL:    time.Hour,
		ImmichURL:          "http://immich.test",
		ImmichAPIKey:       "test-api-key",
		LogLevel:           "info",
		LogFormat:          "text",
		RateLimitPerSecond: 1000,
		RateLimitBurst:     1000,
	}
}

// AlbumOptions describes a test album. The zero value is a visible album
// with voting enabled and an unbounded window.
type AlbumOptions struct {
	Hidden         bool
	VotingDisabled bool
	Start          *time.Time
	End            *time.Time
	LotteryEnabled bool
}

// CreateTestAlbum inserts an album and returns its ID
func CreateTestAlbum(t *testing.T, conn *sql.DB, opts AlbumOptions) string {
	t.Helper()

	albumID := uuid.NewString()
	now := Epoch.UnixMilli()

	_, err := conn.Exec(`
		INSERT INTO albums (id, immich_id, title, asset_count, is_visible, voting_enabled, voting_start, voting_end, lottery_enabled, created_at, updated_at)
		VALUES ($1, $2, 'Test Album', 3, $3, $4, $5, $6, $7, $8, $9)
	`, albumID, uuid.NewString(), !opts.Hidden, !opts.VotingDisabled,
		millisOrNull(opts.Start), millisOrNull(opts.End), opts.LotteryEnabled, now, now)
	if err != nil {
		t.Fatalf("Failed to create test album: %v", err)
	}

	return albumID
}

func millisOrNull(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

// SubmitTestVote casts a vote through the store. email may be empty; ranks
// are rank1, rank2, rank3 in order.
func SubmitTestVote(t *testing.T, store *db.Store, albumID, sessionToken, email string, ranks ...string) models.Vote {
	t.Helper()

	p := models.SubmitVoteParams{
		AlbumID:      albumID,
		SessionToken: sessionToken,
		Email:        email,
	}
	for i, r := range ranks {
		switch i {
		case 0:
			p.Rank1 = r
		case 1:
			p.Rank2 = r
		case 2:
			p.Rank3 = r
		}
	}

	receipt, err := store.SubmitVote(context.Background(), p)
	if err != nil {
		t.Fatalf("Failed to submit test vote: %v", err)
	}

	return receipt.Vote
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// CookieNamed returns the response cookie with the given name, or nil.
func CookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
