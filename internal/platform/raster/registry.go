// Package raster renders resolved screens to images. It backs the preview
// command and any headless session that still wants pictures.
package raster

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/mj1618/gergui/internal/platform"
)

type asset struct {
	path  string
	font  bool
	image image.Image // decoded lazily; nil when the file is missing or not an image
	tried bool
}

// Registry hands out one handle per distinct asset path. Files are not read
// until a texture is drawn, so a layout can be previewed without its assets.
type Registry struct {
	mu     sync.Mutex
	root   string
	strict bool
	byPath map[string]platform.Handle
	assets []asset // index = handle-1
}

// NewRegistry resolves relative paths against root. A strict registry fails
// LoadTexture and LoadFont for files that do not exist.
func NewRegistry(root string, strict bool) *Registry {
	return &Registry{
		root:   root,
		strict: strict,
		byPath: make(map[string]platform.Handle),
	}
}

func (r *Registry) LoadTexture(path string) (platform.Handle, error) {
	return r.register(path, false)
}

func (r *Registry) LoadFont(path string) (platform.Handle, error) {
	return r.register(path, true)
}

func (r *Registry) register(path string, font bool) (platform.Handle, error) {
	if path == "" {
		return platform.NoHandle, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.byPath[path]; ok {
		return h, nil
	}
	if r.strict {
		if _, err := os.Stat(r.resolve(path)); err != nil {
			return platform.NoHandle, fmt.Errorf("asset %s: %w", path, err)
		}
	}
	r.assets = append(r.assets, asset{path: path, font: font})
	h := platform.Handle(len(r.assets))
	r.byPath[path] = h
	return h, nil
}

// Path returns the path registered for h.
func (r *Registry) Path(h platform.Handle) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := r.get(h)
	if a == nil {
		return "", false
	}
	return a.path, true
}

// Len returns the number of registered assets.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.assets)
}

// Image returns the decoded texture for h, or nil if it cannot be read.
func (r *Registry) Image(h platform.Handle) image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := r.get(h)
	if a == nil || a.font {
		return nil
	}
	if !a.tried {
		a.tried = true
		a.image = decodeFile(r.resolve(a.path))
	}
	return a.image
}

func (r *Registry) get(h platform.Handle) *asset {
	if h == platform.NoHandle || int(h) > len(r.assets) {
		return nil
	}
	return &r.assets[h-1]
}

func (r *Registry) resolve(path string) string {
	if filepath.IsAbs(path) || r.root == "" {
		return path
	}
	return filepath.Join(r.root, path)
}

func decodeFile(path string) image.Image {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil
	}
	return img
}
