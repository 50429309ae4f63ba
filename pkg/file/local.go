package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage implements Storage for the local filesystem.
// All operations are confined to baseDir.
type LocalStorage struct {
	baseDir      string // Absolute path - all files stored within this directory
	baseURL      string
	writeTimeout time.Duration
	dirPerm      os.FileMode
	filePerm     os.FileMode
}

// LocalOption defines a function that configures LocalStorage.
type LocalOption func(*LocalStorage)

// WithLocalWriteTimeout bounds each Write call.
// If not set, relies on context deadline from caller.
func WithLocalWriteTimeout(timeout time.Duration) LocalOption {
	return func(s *LocalStorage) {
		s.writeTimeout = timeout
	}
}

// WithLocalBaseURL sets the prefix returned by URL, e.g. "https://cdn.example.com/qr/".
func WithLocalBaseURL(baseURL string) LocalOption {
	return func(s *LocalStorage) {
		if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		s.baseURL = baseURL
	}
}

// NewLocalStorage creates a storage rooted at baseDir, creating it if needed.
func NewLocalStorage(baseDir string, opts ...LocalOption) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}

	s := &LocalStorage{
		baseDir:  absBaseDir,
		dirPerm:  0o755,
		filePerm: 0o644,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(absBaseDir, s.dirPerm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	return s, nil
}

// MkdirAll creates dir below the base directory.
func (s *LocalStorage) MkdirAll(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	absPath, err := s.resolvePath(dir)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(absPath, s.dirPerm); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}
	return nil
}

// Write copies r into path. Data goes to a temporary file in the target
// directory that is renamed into place once complete, so an interrupted
// write never leaves a truncated file under the final name.
func (s *LocalStorage) Write(ctx context.Context, path string, r io.Reader, contentType string) (*File, error) {
	if s.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.writeTimeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNilReader
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(absPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, s.dirPerm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(absPath)+".*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}

	written := int64(0)
	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			cleanup()
			return nil, err
		}

		n, readErr := r.Read(buf)
		if n > 0 {
			nw, writeErr := tmp.Write(buf[:n])
			if writeErr != nil {
				cleanup()
				return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, writeErr)
			}
			written += int64(nw)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			cleanup()
			return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, readErr)
		}
	}

	if err := tmp.Chmod(s.filePerm); err != nil {
		cleanup()
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := os.Rename(tmp.Name(), absPath); err != nil {
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	relPath, err := filepath.Rel(s.baseDir, absPath)
	if err != nil {
		relPath = path
	}
	if contentType == "" {
		contentType = ContentType(absPath)
	}

	return &File{
		Filename:     filepath.Base(absPath),
		Size:         written,
		ContentType:  contentType,
		AbsolutePath: absPath,
		RelativePath: filepath.ToSlash(relPath),
	}, nil
}

// Exists checks if a file or directory exists.
// Returns false for invalid paths or on context cancellation.
func (s *LocalStorage) Exists(ctx context.Context, path string) bool {
	if ctx.Err() != nil {
		return false
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return false
	}

	_, err = os.Stat(absPath)
	return err == nil
}

// URL returns baseURL+path when a base URL is configured and the absolute
// filesystem path otherwise.
func (s *LocalStorage) URL(path string) string {
	path = filepath.ToSlash(filepath.Clean(path))
	if s.baseURL != "" {
		return s.baseURL + strings.TrimPrefix(path, "/")
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(path))
}

// resolvePath validates and resolves a path within the base directory.
func (s *LocalStorage) resolvePath(path string) (string, error) {
	path = filepath.Clean(path)
	absPath := filepath.Join(s.baseDir, path)

	absPath, err := filepath.Abs(absPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) && absPath != s.baseDir {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	return absPath, nil
}
