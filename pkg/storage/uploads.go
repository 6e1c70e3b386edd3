package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mirror pushes stored files to a secondary host. Implementations must be
// safe for concurrent use.
type Mirror interface {
	Push(relPath string, data []byte) error
}

// UploadStorage persists uploaded files on disk under a base directory and
// optionally mirrors them to an FTP host. Stored filenames are randomized so
// caller-supplied names never reach the filesystem.
type UploadStorage struct {
	baseDir     string
	maxFileSize int64
	mirror      Mirror
}

// NewUploadStorage ensures the base directory exists and returns a handle.
func NewUploadStorage(baseDir string, maxFileSize int64, mirror Mirror) (*UploadStorage, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &UploadStorage{baseDir: baseDir, maxFileSize: maxFileSize, mirror: mirror}, nil
}

// SaveUpload stores a multipart file under targetDir with a randomized
// filename, preserving only the original extension. Returns the relative path.
func (s *UploadStorage) SaveUpload(file *multipart.FileHeader, targetDir string) (string, error) {
	if file == nil {
		return "", fmt.Errorf("no file provided")
	}
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return "", fmt.Errorf("file exceeds maximum size of %d bytes", s.maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close() //nolint:errcheck

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	relPath := filepath.Join(sanitizeDir(targetDir), randomFilename(file.Filename))
	if err := s.write(relPath, data); err != nil {
		return "", err
	}

	if s.mirror != nil {
		if err := s.mirror.Push(relPath, data); err != nil {
			return "", fmt.Errorf("mirror upload: %w", err)
		}
	}

	return relPath, nil
}

// SaveUploads stores multiple files under targetDir and returns their paths.
func (s *UploadStorage) SaveUploads(files []*multipart.FileHeader, targetDir string) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		path, err := s.SaveUpload(file, targetDir)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Open returns a read-only handle for the stored file.
func (s *UploadStorage) Open(relPath string) (*os.File, error) {
	path, err := s.resolve(relPath)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stored file: %w", err)
	}
	return file, nil
}

// Delete removes a stored file if present.
func (s *UploadStorage) Delete(relPath string) error {
	path, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete stored file: %w", err)
	}
	return nil
}

// CleanupOlderThan removes files older than the provided TTL and returns
// the deleted relative paths.
func (s *UploadStorage) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-ttl)
	deleted := make([]string, 0)
	err := filepath.WalkDir(s.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			rel = path
		}
		deleted = append(deleted, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cleanup uploads: %w", err)
	}
	return deleted, nil
}

// Path exposes the underlying absolute path for a stored file.
func (s *UploadStorage) Path(relPath string) (string, error) {
	return s.resolve(relPath)
}

func (s *UploadStorage) write(relPath string, data []byte) error {
	path, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare upload directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write upload file: %w", err)
	}
	return nil
}

// resolve maps a stored relative path onto the base directory. Absolute
// paths and paths that climb out of the base directory are rejected; the
// download handler passes caller-controlled paths here.
func (s *UploadStorage) resolve(relPath string) (string, error) {
	if relPath == "" || filepath.IsAbs(relPath) {
		return "", fmt.Errorf("invalid stored path %q", relPath)
	}
	base, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", fmt.Errorf("resolve uploads directory: %w", err)
	}
	full := filepath.Join(base, relPath)
	if full != base && !strings.HasPrefix(full, base+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid stored path %q", relPath)
	}
	return full, nil
}

func randomFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.NewString() + ext
}

func sanitizeDir(dir string) string {
	cleaned := filepath.Clean("/" + dir)
	return strings.TrimPrefix(cleaned, "/")
}
