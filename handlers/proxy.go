// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/twocans72/photos-voting/immich"
	"github.com/twocans72/photos-voting/middleware"
	"github.com/twocans72/photos-voting/models"
)

// Browser cache lifetimes for proxied images
const (
	thumbnailCacheControl = "public, max-age=86400"
	originalCacheControl  = "public, max-age=3600"
)

// ProxyHandler streams images from Immich so the API key never reaches the
// browser.
type ProxyHandler struct {
	immich ImmichClient
}

func NewProxyHandler(client ImmichClient) *ProxyHandler {
	return &ProxyHandler{immich: client}
}

func validAssetID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Thumbnail handles GET /api/proxy/thumbnail/{assetId}?size=thumbnail|preview
func (h *ProxyHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	assetID := r.PathValue("assetId")
	if !validAssetID(assetID) {
		middleware.ErrorCodeResponse(w, http.StatusBadRequest, models.CodeValidation, "Invalid asset id")
		return
	}

	size := r.URL.Query().Get("size")
	if size == "" {
		size = immich.SizeThumbnail
	}
	if size != immich.SizeThumbnail && size != immich.SizePreview {
		middleware.ErrorCodeResponse(w, http.StatusBadRequest, models.CodeValidation, "size must be thumbnail or preview")
		return
	}

	img, err := h.immich.Thumbnail(r.Context(), assetID, size)
	if err != nil {
		writeImmichError(w, err, "fetch thumbnail", "asset_id", assetID)
		return
	}

	streamImage(w, img, thumbnailCacheControl)
}

// Original handles GET /api/proxy/original/{assetId}
func (h *ProxyHandler) Original(w http.ResponseWriter, r *http.Request) {
	assetID := r.PathValue("assetId")
	if !validAssetID(assetID) {
		middleware.ErrorCodeResponse(w, http.StatusBadRequest, models.CodeValidation, "Invalid asset id")
		return
	}

	img, err := h.immich.Original(r.Context(), assetID)
	if err != nil {
		writeImmichError(w, err, "fetch original", "asset_id", assetID)
		return
	}

	streamImage(w, img, originalCacheControl)
}

func streamImage(w http.ResponseWriter, img *immich.Image, cacheControl string) {
	defer img.Body.Close()

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Cache-Control", cacheControl)
	if img.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(img.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, img.Body); err != nil {
		// Headers are gone; the client sees a truncated body
		slog.Warn("image stream interrupted", "error", err)
	}
}
