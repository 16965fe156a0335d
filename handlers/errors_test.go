// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/twocans72/photos-voting/immich"
	"github.com/twocans72/photos-voting/models"
	"github.com/twocans72/photos-voting/testutil"
	"github.com/twocans72/photos-voting/voting"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"validation", fmt.Errorf("%w: rank1 required", voting.ErrValidation), http.StatusBadRequest, models.CodeValidation},
		{"duplicate vote", voting.ErrDuplicateVote, http.StatusConflict, models.CodeDuplicateVote},
		{"window closed", voting.ErrWindowClosed, http.StatusConflict, models.CodeWindowClosed},
		{"lottery not enabled", voting.ErrLotteryNotEnabled, http.StatusBadRequest, models.CodeLotteryNotEnabled},
		{"already drawn", voting.ErrAlreadyDrawn, http.StatusConflict, models.CodeAlreadyDrawn},
		{"no participants", voting.ErrNoParticipants, http.StatusBadRequest, models.CodeNoParticipants},
		{"not found", voting.ErrNotFound, http.StatusNotFound, models.CodeNotFound},
		{"wrapped twice", fmt.Errorf("outer: %w", fmt.Errorf("%w: detail", voting.ErrNotFound)), http.StatusNotFound, models.CodeNotFound},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, models.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeError(w, tt.err, "test")

			testutil.AssertStatus(t, w, tt.expectedStatus)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Code != tt.expectedCode {
				t.Errorf("Expected code %q, got %q", tt.expectedCode, resp.Code)
			}
		})
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, errors.New("pq: password authentication failed"), "test")

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "Internal server error" {
		t.Errorf("Expected generic message, got %q", resp.Message)
	}
	if resp.Error != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("Expected status text, got %q", resp.Error)
	}
}

func TestWriteImmichError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"breaker open", fmt.Errorf("%w: circuit breaker is open", immich.ErrUnavailable), http.StatusServiceUnavailable},
		{"not found", immich.ErrNotFound, http.StatusNotFound},
		{"upstream status", &immich.StatusError{Code: 500}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeImmichError(w, tt.err, "test")
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}
