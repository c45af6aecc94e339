package source

import (
	"context"
	"fmt"

	"github.com/ekisa-team/denobench/internal/config"
	"github.com/ekisa-team/denobench/internal/xfs"
)

// Downloader fetches pretrained weights into a target directory.
type Downloader interface {
	// Download fetches the weights and returns the local path and whether
	// the download was skipped because a cached copy was up to date.
	Download(ctx context.Context, weights *config.WeightsConfig, targetDir string) (string, bool, error)
}

// GetDownloader returns the downloader for the given source type.
func GetDownloader(sourceType config.SourceType) (Downloader, error) {
	switch sourceType {
	case config.SourceTypeHuggingFace:
		return &HuggingFaceDownloader{}, nil
	default:
		return nil, fmt.Errorf("unsupported weights source type: %s", sourceType)
	}
}

// EnsureWeightsDirectory creates the weights directory if it does not exist.
func EnsureWeightsDirectory(path string) error {
	if err := xfs.EnsureDir(path); err != nil {
		return fmt.Errorf("failed to create weights directory %s: %w", path, err)
	}
	return nil
}
