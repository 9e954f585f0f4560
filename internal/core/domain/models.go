package domain

import (
	"fmt"
	"strings"
	"time"
)

// Resolution is the output video quality tier.
type Resolution string

const (
	ResolutionFHD Resolution = "fhd"
	ResolutionHD  Resolution = "hd"
	Resolution4K  Resolution = "4k"
)

// Valid reports whether the resolution is one the API accepts.
func (r Resolution) Valid() bool {
	switch r {
	case ResolutionFHD, ResolutionHD, Resolution4K:
		return true
	}
	return false
}

// ProductConfig describes the ad to generate. Field names match the
// vendor's submit payload so the struct marshals directly.
type ProductConfig struct {
	Script      string     `json:"script"`
	CreatorName string     `json:"creatorName"`
	MediaURLs   []string   `json:"mediaUrls"`
	WebhookID   *string    `json:"webhookId,omitempty"`
	Resolution  Resolution `json:"resolution"`
}

// JobStatus is the lifecycle state of a remote generation job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusComplete   JobStatus = "complete"
	StatusFailed     JobStatus = "failed"
)

// ParseJobStatus maps the API's state strings (reported uppercase,
// e.g. "PROCESSING") onto the local enum.
func ParseJobStatus(s string) (JobStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "queued", "pending":
		return StatusQueued, nil
	case "processing":
		return StatusProcessing, nil
	case "complete":
		return StatusComplete, nil
	case "failed":
		return StatusFailed, nil
	}
	return "", fmt.Errorf("unknown job state %q", s)
}

// Terminal reports whether no further status changes can occur.
func (s JobStatus) Terminal() bool {
	return s == StatusComplete || s == StatusFailed
}

// GenerationJob is a snapshot of a remote job. The service owns the job;
// the client only re-fetches this view.
type GenerationJob struct {
	OperationID string
	Status      JobStatus
	ResultURL   string
	Error       string
}

// Creator is an AI presenter persona offered by the service.
type Creator struct {
	Name      string
	Thumbnail string
}

// VideoFile describes a previously generated video on disk.
type VideoFile struct {
	Name       string
	Path       string
	Size       int64
	ModifiedAt time.Time
}

// GenerationResult holds the outcome of a completed generation run.
type GenerationResult struct {
	Config      ProductConfig
	OperationID string
	VideoPath   string
	FileSize    int64
	CompletedAt time.Time
}

// VideoFilename builds the conventional output name
// ai_ad_<creator>_<resolution>_<yyyyMMdd_HHmmss>.mp4.
func VideoFilename(creator string, res Resolution, t time.Time) string {
	name := fmt.Sprintf("ai_ad_%s_%s_%s.mp4", creator, res, t.Format("20060102_150405"))
	return SanitizeFilename(name)
}

// SanitizeFilename strips every character that is not alphanumeric,
// '.', '_' or '-'.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == '.', c == '_', c == '-':
			b.WriteRune(c)
		}
	}
	if b.Len() == 0 {
		return "unnamed_file"
	}
	return b.String()
}

// FormatFileSize renders a byte count as KB/MB/GB for display.
func FormatFileSize(bytes int64) string {
	mb := float64(bytes) / (1024 * 1024)
	switch {
	case mb < 1:
		return fmt.Sprintf("%.1f KB", mb*1024)
	case mb < 1024:
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", mb/1024)
}
