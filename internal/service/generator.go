package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"adsgen/internal/core/domain"
	"adsgen/internal/core/ports"
)

// DefaultPollInterval is the wait between job status checks.
const DefaultPollInterval = 5 * time.Second

// Options tune a single generation run.
type Options struct {
	// Filename overrides the conventional output name when set.
	Filename string
	// PollInterval is the wait between status checks. Defaults to
	// DefaultPollInterval when zero.
	PollInterval time.Duration
	// MaxWait bounds the whole run. Zero means no deadline, the run is
	// stopped only by cancelling the context.
	MaxWait time.Duration
}

// Generator sequences validation, submission, polling and download for
// one ad-generation job.
type Generator struct {
	api        ports.AdsAPI
	downloader ports.Downloader
	store      ports.VideoStore
	logger     zerolog.Logger
	now        func() time.Time
}

// NewGenerator creates a Generator.
func NewGenerator(api ports.AdsAPI, dl ports.Downloader, store ports.VideoStore, logger zerolog.Logger) *Generator {
	return &Generator{
		api:        api,
		downloader: dl,
		store:      store,
		logger:     logger,
		now:        time.Now,
	}
}

// Generate runs the full workflow: validate, submit, poll until the job
// reaches a terminal status, then download the result into the store.
// Validation failures return before any network call. Rate-limit errors
// surface to the caller, nothing is retried.
func (g *Generator) Generate(ctx context.Context, cfg domain.ProductConfig, opts Options) (*domain.GenerationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if opts.MaxWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.MaxWait)
		defer cancel()
	}

	g.logger.Info().
		Str("creator", cfg.CreatorName).
		Str("resolution", string(cfg.Resolution)).
		Int("media_urls", len(cfg.MediaURLs)).
		Msg("starting ad generation")

	operationID, err := g.api.SubmitJob(ctx, cfg)
	if err != nil {
		return nil, err
	}

	job, err := g.waitForCompletion(ctx, operationID, interval)
	if err != nil {
		return nil, err
	}

	filename := opts.Filename
	if filename == "" {
		filename = domain.VideoFilename(cfg.CreatorName, cfg.Resolution, g.now())
	}

	g.logger.Info().Str("url", job.ResultURL).Str("filename", filename).Msg("downloading video")
	body, err := g.downloader.Download(ctx, job.ResultURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	path, err := g.store.SaveVideo(ctx, filename, body)
	if err != nil {
		return nil, &domain.DownloadError{URL: job.ResultURL, Err: err}
	}

	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}

	g.logger.Info().Str("path", path).Int64("size", size).Msg("video generation complete")
	return &domain.GenerationResult{
		Config:      cfg,
		OperationID: operationID,
		VideoPath:   path,
		FileSize:    size,
		CompletedAt: g.now().UTC(),
	}, nil
}

// waitForCompletion polls the job on the given interval and returns at
// the first terminal status. No status calls are issued after that.
func (g *Generator) waitForCompletion(ctx context.Context, operationID string, interval time.Duration) (*domain.GenerationJob, error) {
	for {
		job, err := g.api.GetJobStatus(ctx, operationID)
		if err != nil {
			return nil, err
		}

		g.logger.Info().
			Str("operation_id", operationID).
			Str("status", string(job.Status)).
			Msg("job status")

		switch job.Status {
		case domain.StatusComplete:
			if job.ResultURL == "" {
				return nil, &domain.APIError{Message: "job completed but no video URL was returned"}
			}
			return job, nil
		case domain.StatusFailed:
			reason := job.Error
			if reason == "" {
				reason = "unknown error"
			}
			return nil, &domain.GenerationFailedError{OperationID: operationID, Reason: reason}
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for job %s: %w", operationID, ctx.Err())
		case <-time.After(interval):
		}
	}
}
