package profile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/loanqa/internal/model"
)

// Backend renders a profile into a concrete document format.
//
// Design decision: Backends only format. They never recompute statistics,
// so a profile rendered twice in different formats shows identical numbers.
type Backend interface {
	// Render writes the profile document to w.
	Render(w io.Writer, p *Profile) error

	// Extension returns the file extension the backend produces, with the dot.
	Extension() string
}

// Backends returns every available backend.
func Backends() []Backend {
	return []Backend{
		NewHTMLBackend(),
		NewXLSXBackend(),
		NewMarkdownBackend(),
	}
}

// ForPath returns the backend matching the extension of path.
// Extensions are compared case-insensitively.
func ForPath(path string) (Backend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, b := range Backends() {
		if b.Extension() == ext {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// SupportedExtensions returns the extensions WriteFile accepts.
func SupportedExtensions() []string {
	backends := Backends()
	exts := make([]string, len(backends))
	for i, b := range backends {
		exts[i] = b.Extension()
	}
	return exts
}

// WriteFile builds the profile of t and writes it to path in the format
// chosen by the path extension. Parent directories are created as needed.
func WriteFile(path string, t *model.Table, title string) error {
	backend, err := ForPath(path)
	if err != nil {
		return err
	}
	p, err := Build(t, title)
	if err != nil {
		return fmt.Errorf("failed to build profile: %w", err)
	}
	return Save(path, backend, p)
}

// Save renders p with backend into the file at path.
func Save(path string, backend Backend, p *Profile) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close profile file: %w", cerr)
		}
	}()

	if err := backend.Render(f, p); err != nil {
		return fmt.Errorf("failed to render profile: %w", err)
	}
	return nil
}
