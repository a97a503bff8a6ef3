package models

import (
	"ipfs-uploader/internal/mirror"
	"ipfs-uploader/internal/pool"
	"ipfs-uploader/internal/upload"
)

// APIInfoResponse describes the metadata returned by GET /api.
type APIInfoResponse struct {
	Name      string            `json:"name" example:"IPFS Uploader API"`
	Version   string            `json:"version" example:"1.0.0"`
	Endpoints map[string]string `json:"endpoints"`
}

// ErrorResponse represents a generic error payload used across endpoints.
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request"`
	Details string `json:"details,omitempty" example:"Missing 'data' field"`
}

// TextUploadRequest is the JSON body accepted by POST /api/upload/text.
type TextUploadRequest struct {
	Data string `json:"data" example:"{\"hello\":\"world\"}"`
}

// UploadResponse is returned by the upload endpoints.
type UploadResponse struct {
	Success       bool                  `json:"success" example:"true"`
	Result        *upload.Result        `json:"result,omitempty"`
	Preview       upload.MediaKind      `json:"preview,omitempty" example:"image"`
	Notifications []upload.Notification `json:"notifications"`
	Error         string                `json:"error,omitempty" example:"Upload failed: IPFS request did not succeed"`
}

// StateResponse exposes the uploader state for GET /api/upload/state.
type StateResponse struct {
	Status    upload.Status    `json:"status" example:"idle"`
	Uploading bool             `json:"uploading" example:"false"`
	Current   *upload.Result   `json:"current,omitempty"`
	Preview   upload.MediaKind `json:"preview,omitempty" example:"image"`
	Error     string           `json:"error,omitempty"`
}

// ResultResponse carries the copyable values of the displayed result.
type ResultResponse struct {
	Hash    string           `json:"hash" example:"QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"`
	URL     string           `json:"url" example:"https://ipfs.infura.io/ipfs/QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"`
	Preview upload.MediaKind `json:"preview" example:"image"`
}

// HealthResponse captures the payload returned by GET /health.
type HealthResponse struct {
	Status    string        `json:"status" example:"healthy"`
	Timestamp int64         `json:"timestamp" example:"1700000000"`
	Uploader  upload.Status `json:"uploader" example:"idle"`
	Mirror    bool          `json:"mirror" example:"false"`
}

// StatsResponse captures the counters returned by GET /stats.
type StatsResponse struct {
	Uploads   upload.Stats          `json:"uploads"`
	Mirror    *mirror.Stats         `json:"mirror,omitempty"`
	Workers   *pool.WorkerPoolStats `json:"workers,omitempty"`
	Timestamp int64                 `json:"timestamp" example:"1700000000"`
}

// MirrorHealthResponse reports the archive mirror health.
type MirrorHealthResponse struct {
	Status   string `json:"status" example:"healthy"`
	Provider string `json:"provider" example:"minio"`
	Error    string `json:"error,omitempty"`
}
