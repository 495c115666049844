// SourceReader provides read access to crate source files backed by
// memory-mapped files.
//
// Mapped regions stay open for the lifetime of the reader; Close unmaps
// every file read so far. Callers must Close() the reader once they no
// longer use the returned slices.
//
// Zero-length files are returned as an empty slice without mapping. If mmap
// fails for a file (exotic filesystems), the reader falls back to
// os.ReadFile for that file.
package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// SourceReader reads files via mmap and keeps them mapped until Close.
type SourceReader struct {
	mutex  sync.Mutex
	maps   []mmap.MMap
	logger *slog.Logger

	stats struct {
		filesMapped int
		fallbacks   int
	}
}

// NewSourceReader creates a reader. A nil logger falls back to slog.Default().
func NewSourceReader(logger *slog.Logger) *SourceReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &SourceReader{logger: logger}
}

// ReadFile returns the contents of the file at path.
//
// The returned slice aliases the mapped region and stays valid until Close.
// Callers must not modify it.
func (r *SourceReader) ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		// mmap of an empty file fails on several platforms.
		return []byte{}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		r.logger.Debug("mmap failed, falling back to ReadFile",
			"path", path,
			"error", err)
		r.mutex.Lock()
		r.stats.fallbacks++
		r.mutex.Unlock()
		return os.ReadFile(path)
	}

	r.mutex.Lock()
	r.maps = append(r.maps, m)
	r.stats.filesMapped++
	r.mutex.Unlock()

	return m, nil
}

// Close unmaps every file read so far. The reader cannot be used afterwards.
func (r *SourceReader) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var firstErr error
	for _, m := range r.maps {
		if err := m.Unmap(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("unmapping source file: %w", err)
		}
	}
	r.maps = nil

	r.logger.Debug("closed source reader",
		"files_mapped", r.stats.filesMapped,
		"fallbacks", r.stats.fallbacks)
	return firstErr
}
