package renderer

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// background is a template image ready to be placed on a PDF page.
type background struct {
	data      []byte
	imageType string
	width     int
	height    int
}

type backgroundKey struct {
	path    string
	modTime time.Time
}

// backgroundCache keeps decoded template images keyed by file and mtime,
// so a replaced image is picked up on the next render.
type backgroundCache struct {
	mu      sync.Mutex
	entries map[backgroundKey]*background
}

func newBackgroundCache() *backgroundCache {
	return &backgroundCache{entries: make(map[backgroundKey]*background)}
}

func (c *backgroundCache) load(path string) (*background, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("template image not available: %w", err)
	}
	key := backgroundKey{path: path, modTime: info.ModTime()}

	c.mu.Lock()
	defer c.mu.Unlock()
	if bg, ok := c.entries[key]; ok {
		return bg, nil
	}

	bg, err := decodeBackground(path)
	if err != nil {
		return nil, err
	}
	for k := range c.entries {
		if k.path == path {
			delete(c.entries, k)
		}
	}
	c.entries[key] = bg
	return bg, nil
}

// decodeBackground passes PNG and JPEG through untouched and converts any
// other decodable format (WebP, BMP, TIFF, GIF) to PNG.
func decodeBackground(path string) (*background, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template image: %w", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("unsupported template image %s: %w", filepath.Base(path), err)
	}

	switch format {
	case "png":
		return &background{data: raw, imageType: "PNG", width: cfg.Width, height: cfg.Height}, nil
	case "jpeg":
		return &background{data: raw, imageType: "JPG", width: cfg.Width, height: cfg.Height}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode template image: %w", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to convert template image: %w", err)
	}

	bounds := img.Bounds()
	return &background{data: buf.Bytes(), imageType: "PNG", width: bounds.Dx(), height: bounds.Dy()}, nil
}

// resolveAsset maps a stored template image path to a file under assetDir.
// Absolute paths that exist are used as-is.
func resolveAsset(assetDir, imagePath string) string {
	if filepath.IsAbs(imagePath) {
		if _, err := os.Stat(imagePath); err == nil {
			return imagePath
		}
	}
	rel := filepath.FromSlash(strings.TrimLeft(imagePath, "/"))
	return filepath.Join(assetDir, filepath.Clean(string(filepath.Separator)+rel))
}
