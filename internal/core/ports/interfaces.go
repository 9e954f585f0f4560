package ports

import (
	"context"
	"io"

	"adsgen/internal/core/domain"
)

// AdsAPI defines the contract for the remote ad-generation service.
type AdsAPI interface {
	// SubmitJob submits a validated configuration and returns the
	// operation ID used to track the job.
	SubmitJob(ctx context.Context, cfg domain.ProductConfig) (string, error)

	// GetJobStatus fetches the current state of a generation job.
	GetJobStatus(ctx context.Context, operationID string) (*domain.GenerationJob, error)

	// ListCreators returns the AI presenter personas the service offers.
	ListCreators(ctx context.Context) ([]domain.Creator, error)
}

// Downloader defines the contract for fetching the finished video.
type Downloader interface {
	// Download streams the video at the given URL.
	// Returns a ReadCloser that the caller must close.
	Download(ctx context.Context, videoURL string) (io.ReadCloser, error)
}

// VideoStore defines the contract for persisting generated videos.
type VideoStore interface {
	// SaveVideo writes the stream under the given filename and returns
	// the final path. A failed write must not leave a file at the
	// final name.
	SaveVideo(ctx context.Context, filename string, r io.Reader) (string, error)

	// ListVideos returns the .mp4 files in the store, newest first.
	ListVideos() ([]domain.VideoFile, error)

	// Dir returns the directory backing the store.
	Dir() string
}
