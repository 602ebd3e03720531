package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPublicPrefix is the URL prefix generated files are served under.
const DefaultPublicPrefix = "/generated"

var ErrInvalidPath = errors.New("invalid generated file path")

// Local is a flat directory of generated artifacts (PDFs and ZIP archives)
// exposed publicly under a URL prefix.
type Local struct {
	root   string
	prefix string
}

func NewLocal(root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create generated directory: %w", err)
	}
	return &Local{root: root, prefix: DefaultPublicPrefix}, nil
}

func (l *Local) Root() string {
	return l.root
}

func (l *Local) Path(name string) string {
	return filepath.Join(l.root, name)
}

func (l *Local) PublicPath(name string) string {
	return l.prefix + "/" + name
}

// Resolve maps a public path such as "/generated/certificate_x.pdf" back to
// its file on disk. Only direct children of the root are resolvable.
func (l *Local) Resolve(publicPath string) (string, error) {
	name := strings.TrimPrefix(publicPath, l.prefix+"/")
	name = strings.TrimLeft(name, "/")
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return "", ErrInvalidPath
	}
	return l.Path(name), nil
}

func (l *Local) Exists(publicPath string) bool {
	path, err := l.Resolve(publicPath)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Remove deletes the file behind publicPath. A missing file is not an error.
func (l *Local) Remove(publicPath string) error {
	path, err := l.Resolve(publicPath)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// CreateUnique creates a new file named by name(seq), bumping seq until an
// unused name is found. Names are claimed with O_EXCL so concurrent callers
// never share a file.
func (l *Local) CreateUnique(name func(seq int64) string, seq int64) (*os.File, string, error) {
	const maxAttempts = 1000
	for range maxAttempts {
		candidate := name(seq)
		file, err := os.OpenFile(l.Path(candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return file, candidate, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("failed to create %s: %w", candidate, err)
		}
		seq++
	}
	return nil, "", fmt.Errorf("no free file name after %d attempts", maxAttempts)
}
