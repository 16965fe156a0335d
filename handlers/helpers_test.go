// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/twocans72/photos-voting/cliparse"
	"github.com/twocans72/photos-voting/db"
	"github.com/twocans72/photos-voting/immich"
	"github.com/twocans72/photos-voting/metrics"
	"github.com/twocans72/photos-voting/testutil"
)

// Asset ids served by the fake Immich
const (
	photoA       = "11111111-1111-4111-8111-111111111111"
	photoB       = "22222222-2222-4222-8222-222222222222"
	videoC       = "33333333-3333-4333-8333-333333333333"
	missingAsset = "99999999-9999-4999-8999-999999999999"
)

type testEnv struct {
	store   *db.Store
	conn    *sql.DB
	clock   *clockwork.FakeClock
	cfg     cliparse.Config
	metrics *metrics.Metrics
	immich  *immich.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, conn, clock := testutil.NewTestStore(t)
	srv := newFakeImmich(t)

	return &testEnv{
		store:   store,
		conn:    conn,
		clock:   clock,
		cfg:     testutil.GetTestConfig(),
		metrics: metrics.New(prometheus.NewRegistry()),
		immich:  immich.New(srv.URL, "test-api-key"),
	}
}

// newFakeImmich serves two albums, one of them with a video, plus image
// bodies for every asset except missingAsset.
func newFakeImmich(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	cover := photoA

	mux.HandleFunc("GET /api/albums", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []immich.Album{
			{ID: "immich-summer", AlbumName: "Summer", Description: "Beach", AssetCount: 3, AlbumThumbnailAssetID: &cover},
			{ID: "immich-winter", AlbumName: "Winter", AssetCount: 0},
		})
	})
	mux.HandleFunc("GET /api/albums/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, immich.Album{
			ID:         r.PathValue("id"),
			AlbumName:  "Summer",
			AssetCount: 3,
			Assets: []immich.Asset{
				{ID: photoA, OriginalFileName: "a.jpg", Type: immich.AssetTypeImage},
				{ID: videoC, OriginalFileName: "c.mp4", Type: "VIDEO"},
				{ID: photoB, OriginalFileName: "b.jpg", Type: immich.AssetTypeImage},
			},
		})
	})
	mux.HandleFunc("GET /api/assets/{id}/thumbnail", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == missingAsset {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/webp")
		_, _ = io.WriteString(w, "thumb-"+r.URL.Query().Get("size"))
	})
	mux.HandleFunc("GET /api/assets/{id}/original", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == missingAsset {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = io.WriteString(w, "original-bytes")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// serve runs h on req with the given path values set.
func serve(h http.HandlerFunc, req *http.Request, pathValues ...string) *httptest.ResponseRecorder {
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	w := httptest.NewRecorder()
	h(w, req)
	return w
}
