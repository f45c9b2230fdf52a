package model

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// StagedFile is one file chosen by the user but not uploaded yet.
// Files read from disk keep only their path; in-memory files keep their bytes.
type StagedFile struct {
	ID       uuid.UUID
	Name     string
	Path     string // empty for in-memory files
	Size     int64
	MIMEType string

	data []byte
}

// NewStagedFile builds an in-memory file. An empty mimeType is detected from data.
func NewStagedFile(name string, data []byte, mimeType string) StagedFile {
	if mimeType == "" {
		mimeType = mimetype.Detect(data).String()
	}
	return StagedFile{
		ID:       uuid.New(),
		Name:     name,
		Size:     int64(len(data)),
		MIMEType: mimeType,
		data:     data,
	}
}

// StageFromPath stats a regular file and sniffs its MIME type from content.
func StageFromPath(path string) (StagedFile, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return StagedFile{}, fmt.Errorf("stage %s: %w", path, err)
	}
	if fi.IsDir() {
		return StagedFile{}, fmt.Errorf("stage %s: is a directory", path)
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return StagedFile{}, fmt.Errorf("stage %s: detect type: %w", path, err)
	}
	return StagedFile{
		ID:       uuid.New(),
		Name:     filepath.Base(path),
		Path:     path,
		Size:     fi.Size(),
		MIMEType: mt.String(),
	}, nil
}

// Open returns a reader over the file content.
func (f StagedFile) Open() (io.ReadCloser, error) {
	if f.Path == "" {
		return io.NopCloser(bytes.NewReader(f.data)), nil
	}
	r, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	return r, nil
}

// HumanSize renders Size for display, e.g. "5 B" or "1.2 MB".
func (f StagedFile) HumanSize() string {
	if f.Size < 0 {
		return "?"
	}
	return humanize.Bytes(uint64(f.Size))
}

// Names lists file names in order.
func Names(files []StagedFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}
