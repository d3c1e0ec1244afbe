package gitleaf

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

//go:embed all:templates
var embeddedFS embed.FS

// overlayFS implements fs.FS with disk overrides for individual files.
// Directory listings always come from the embedded FS; individual file
// opens check the disk first.
type overlayFS struct {
	base     fs.FS
	override fs.FS
}

func (o *overlayFS) Open(name string) (fs.File, error) {
	if f, err := o.override.Open(name); err == nil {
		if info, err := f.Stat(); err == nil && !info.IsDir() {
			return f, nil // Disk file wins
		}
		f.Close()
	}
	return o.base.Open(name) // Embedded fallback
}

// NewContentFS returns the filesystem used for template access. It layers
// files found under baseDir over the embedded defaults, so a single template
// can be replaced without a rebuild.
func NewContentFS(baseDir string) fs.FS {
	return &overlayFS{base: embeddedFS, override: os.DirFS(baseDir)}
}

// ContentFileEntry describes a single file in the content filesystem.
type ContentFileEntry struct {
	Path   string // e.g. "templates/page.html"
	Source string // "embedded" or "disk"
}

// ListContentFiles walks the embedded filesystem and checks each file for a
// disk override below baseDir. The returned list is sorted by path.
func ListContentFiles(baseDir string) ([]ContentFileEntry, error) {
	var entries []ContentFileEntry
	err := fs.WalkDir(embeddedFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		source := "embedded"
		if info, statErr := os.Stat(filepath.Join(baseDir, filepath.FromSlash(path))); statErr == nil && !info.IsDir() {
			source = "disk"
		}
		entries = append(entries, ContentFileEntry{Path: path, Source: source})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

// ContentOverrides returns only the files that have disk overrides.
func ContentOverrides(entries []ContentFileEntry) []ContentFileEntry {
	var overrides []ContentFileEntry
	for _, e := range entries {
		if e.Source == "disk" {
			overrides = append(overrides, e)
		}
	}
	return overrides
}
