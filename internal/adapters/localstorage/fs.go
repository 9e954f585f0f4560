package localstorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"adsgen/internal/core/domain"
)

// LocalStorage implements ports.VideoStore on the local filesystem.
type LocalStorage struct {
	baseDir string
}

// New creates a LocalStorage rooted at baseDir.
func New(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

// Dir returns the output directory.
func (s *LocalStorage) Dir() string {
	return s.baseDir
}

// SaveVideo streams the reader into the output directory. The data is
// written to a temporary path and renamed only on success, so a failed
// download never leaves a partial file at the final name.
func (s *LocalStorage) SaveVideo(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", s.baseDir, err)
	}

	final := filepath.Join(s.baseDir, filename)
	tmp := final + "." + uuid.NewString() + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file %s: %w", tmp, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write video file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to close video file: %w", err)
	}

	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to move video into place: %w", err)
	}
	return final, nil
}

// ListVideos returns the .mp4 files in the output directory, most
// recently modified first.
func (s *LocalStorage) ListVideos() ([]domain.VideoFile, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory %s: %w", s.baseDir, err)
	}

	var videos []domain.VideoFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".mp4") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		videos = append(videos, domain.VideoFile{
			Name:       entry.Name(),
			Path:       filepath.Join(s.baseDir, entry.Name()),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}

	sort.Slice(videos, func(i, j int) bool {
		return videos[i].ModifiedAt.After(videos[j].ModifiedAt)
	})
	return videos, nil
}
