// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/twocans72/photos-voting/testutil"
)

func TestProxyThumbnail(t *testing.T) {
	env := newTestEnv(t)
	handler := NewProxyHandler(env.immich)

	tests := []struct {
		name           string
		assetID        string
		query          string
		expectedStatus int
		expectedBody   string
	}{
		{"default size", photoA, "", http.StatusOK, "thumb-thumbnail"},
		{"preview", photoA, "?size=preview", http.StatusOK, "thumb-preview"},
		{"bad size", photoA, "?size=fullsize", http.StatusBadRequest, ""},
		{"not a uuid", "../../api/albums", "", http.StatusBadRequest, ""},
		{"missing upstream", missingAsset, "", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/proxy/thumbnail/x"+tt.query, nil)
			w := serve(handler.Thumbnail, req, "assetId", tt.assetID)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			if got := w.Body.String(); got != tt.expectedBody {
				t.Errorf("Expected body %q, got %q", tt.expectedBody, got)
			}
			if ct := w.Header().Get("Content-Type"); ct != "image/webp" {
				t.Errorf("Expected image/webp, got %q", ct)
			}
			if cc := w.Header().Get("Cache-Control"); cc != thumbnailCacheControl {
				t.Errorf("Expected Cache-Control %q, got %q", thumbnailCacheControl, cc)
			}
		})
	}
}

func TestProxyOriginal(t *testing.T) {
	env := newTestEnv(t)
	handler := NewProxyHandler(env.immich)

	w := serve(handler.Original, httptest.NewRequest("GET", "/api/proxy/original/x", nil), "assetId", photoB)
	testutil.AssertStatus(t, w, http.StatusOK)

	if got := w.Body.String(); got != "original-bytes" {
		t.Errorf("Expected original body, got %q", got)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Expected image/jpeg, got %q", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != originalCacheControl {
		t.Errorf("Expected Cache-Control %q, got %q", originalCacheControl, cc)
	}
	if cl := w.Header().Get("Content-Length"); cl != "14" {
		t.Errorf("Expected Content-Length 14, got %q", cl)
	}

	w = serve(handler.Original, httptest.NewRequest("GET", "/api/proxy/original/x", nil), "assetId", "not-a-uuid")
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = serve(handler.Original, httptest.NewRequest("GET", "/api/proxy/original/x", nil), "assetId", missingAsset)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
