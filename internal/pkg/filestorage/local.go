// Package filestorage saves uploaded course media to the local
// filesystem and hands back the URL they are served under.
package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Mohamed-Kaizen/teached/internal/pkg/logger"
)

// LocalStorage stores files under a base directory on the server.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a LocalStorage rooted at basePath. baseURL,
// when set, is prepended to returned paths so they resolve through the
// static file route.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// Save writes an uploaded file into subPath under the storage root,
// using a random filename to prevent collisions, and returns the URL
// path of the stored file.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	dirPath := ls.basePath
	if subPath != "" {
		dirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
			return "", fmt.Errorf("failed to create storage subdirectory: %w", err)
		}
	}

	filename := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	dstPath := filepath.Join(dirPath, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to write uploaded file: %w", err)
	}

	logger.Debug().Str("path", dstPath).Msg("Stored uploaded file")

	urlPath := filename
	if subPath != "" {
		urlPath = subPath + "/" + filename
	}
	if ls.baseURL != "" {
		return strings.TrimRight(ls.baseURL, "/") + "/" + urlPath, nil
	}
	return urlPath, nil
}
