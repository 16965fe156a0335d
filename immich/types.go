package immich

import (
	"time"

	"github.com/twocans72/photos-voting/models"
)

const AssetTypeImage = "IMAGE"

type Album struct {
	ID                    string    `json:"id"`
	AlbumName             string    `json:"albumName"`
	Description           string    `json:"description"`
	AssetCount            int       `json:"assetCount"`
	AlbumThumbnailAssetID *string   `json:"albumThumbnailAssetId"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
	Assets                []Asset   `json:"assets,omitempty"`
}

type Asset struct {
	ID               string    `json:"id"`
	OriginalFileName string    `json:"originalFileName"`
	FileCreatedAt    time.Time `json:"fileCreatedAt"`
	FileModifiedAt   time.Time `json:"fileModifiedAt"`
	Type             string    `json:"type"`
	Thumbhash        *string   `json:"thumbhash"`
	ExifInfo         *ExifInfo `json:"exifInfo,omitempty"`
}

type ExifInfo struct {
	Make         *string  `json:"make,omitempty"`
	Model        *string  `json:"model,omitempty"`
	LensModel    *string  `json:"lensModel,omitempty"`
	FNumber      *float64 `json:"fNumber,omitempty"`
	FocalLength  *float64 `json:"focalLength,omitempty"`
	ISO          *int     `json:"iso,omitempty"`
	ExposureTime *string  `json:"exposureTime,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	City         *string  `json:"city,omitempty"`
	Country      *string  `json:"country,omitempty"`
	Description  *string  `json:"description,omitempty"`
}

// ImageAssets returns the album's photos; videos are never offered for voting.
func (a Album) ImageAssets() []Asset {
	images := make([]Asset, 0, len(a.Assets))
	for _, asset := range a.Assets {
		if asset.Type == AssetTypeImage {
			images = append(images, asset)
		}
	}
	return images
}

// Synced converts the album to the metadata stored locally.
func (a Album) Synced() models.SyncedAlbum {
	s := models.SyncedAlbum{
		ImmichID:   a.ID,
		Title:      a.AlbumName,
		AssetCount: a.AssetCount,
	}
	if a.Description != "" {
		d := a.Description
		s.Description = &d
	}
	if a.AlbumThumbnailAssetID != nil && *a.AlbumThumbnailAssetID != "" {
		id := *a.AlbumThumbnailAssetID
		s.CoverAssetID = &id
	}
	return s
}
