package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"adsgen/internal/core/domain"
)

type MockAdsAPI struct {
	mock.Mock
}

func (m *MockAdsAPI) SubmitJob(ctx context.Context, cfg domain.ProductConfig) (string, error) {
	args := m.Called(ctx, cfg)
	return args.String(0), args.Error(1)
}

func (m *MockAdsAPI) GetJobStatus(ctx context.Context, operationID string) (*domain.GenerationJob, error) {
	args := m.Called(ctx, operationID)
	if job := args.Get(0); job != nil {
		return job.(*domain.GenerationJob), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdsAPI) ListCreators(ctx context.Context) ([]domain.Creator, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Creator), args.Error(1)
}

type MockDownloader struct {
	mock.Mock
}

func (m *MockDownloader) Download(ctx context.Context, videoURL string) (io.ReadCloser, error) {
	args := m.Called(ctx, videoURL)
	if rc := args.Get(0); rc != nil {
		return rc.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockVideoStore struct {
	mock.Mock
}

func (m *MockVideoStore) SaveVideo(ctx context.Context, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, filename, r)
	return args.String(0), args.Error(1)
}

func (m *MockVideoStore) ListVideos() ([]domain.VideoFile, error) {
	args := m.Called()
	return args.Get(0).([]domain.VideoFile), args.Error(1)
}

func (m *MockVideoStore) Dir() string {
	args := m.Called()
	return args.String(0)
}
