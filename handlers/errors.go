// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/twocans72/photos-voting/immich"
	"github.com/twocans72/photos-voting/middleware"
	"github.com/twocans72/photos-voting/models"
	"github.com/twocans72/photos-voting/voting"
)

// domainErrors maps each domain sentinel to its HTTP status and code.
var domainErrors = []struct {
	err    error
	status int
	code   string
}{
	{voting.ErrValidation, http.StatusBadRequest, models.CodeValidation},
	{voting.ErrDuplicateVote, http.StatusConflict, models.CodeDuplicateVote},
	{voting.ErrWindowClosed, http.StatusConflict, models.CodeWindowClosed},
	{voting.ErrLotteryNotEnabled, http.StatusBadRequest, models.CodeLotteryNotEnabled},
	{voting.ErrAlreadyDrawn, http.StatusConflict, models.CodeAlreadyDrawn},
	{voting.ErrNoParticipants, http.StatusBadRequest, models.CodeNoParticipants},
	{voting.ErrNotFound, http.StatusNotFound, models.CodeNotFound},
}

// writeError sends the response for err. Unknown errors are logged and
// reported as 500 without detail; action names what failed for the log.
func writeError(w http.ResponseWriter, err error, action string, attrs ...any) {
	for _, d := range domainErrors {
		if errors.Is(err, d.err) {
			middleware.ErrorCodeResponse(w, d.status, d.code, err.Error())
			return
		}
	}

	slog.Error("failed to "+action, append([]any{"error", err}, attrs...)...)
	middleware.ErrorCodeResponse(w, http.StatusInternalServerError, models.CodeInternal, "Internal server error")
}

// writeImmichError reports a failed call to the photo library.
func writeImmichError(w http.ResponseWriter, err error, action string, attrs ...any) {
	switch {
	case errors.Is(err, immich.ErrUnavailable):
		middleware.ErrorCodeResponse(w, http.StatusServiceUnavailable, models.CodeUnavailable, "Photo library unavailable, try again later")
	case errors.Is(err, immich.ErrNotFound):
		middleware.ErrorCodeResponse(w, http.StatusNotFound, models.CodeNotFound, "Not found in photo library")
	default:
		slog.Error("failed to "+action, append([]any{"error", err}, attrs...)...)
		middleware.ErrorCodeResponse(w, http.StatusBadGateway, models.CodeUnavailable, "Photo library error")
	}
}
