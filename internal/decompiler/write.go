package decompiler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/asperge/internal/loader"
	"github.com/papapumpkin/asperge/internal/telemetry"
)

// ManifestName is the run manifest written at the output root.
const ManifestName = "asperge.toml"

// ErrForeignOutput indicates an overwrite was asked for a non-empty
// directory that holds no manifest of an earlier run.
var ErrForeignOutput = errors.New("output directory was not written by asperge")

// Manifest records which project a run decompiled and what it produced.
type Manifest struct {
	Package     string         `toml:"package"`
	App         string         `toml:"app"`
	VersionCode int            `toml:"version_code"`
	VersionName string         `toml:"version_name"`
	Files       []ManifestFile `toml:"files"`
}

// ManifestFile is one generated file entry.
type ManifestFile struct {
	Path   string   `toml:"path"`
	Screen string   `toml:"screen"`
	Kind   FileKind `toml:"kind"`
}

// WriteOptions controls how a result is written to disk.
type WriteOptions struct {
	Overwrite bool // replace an existing output directory
	Emitter   *telemetry.Emitter
}

// NewManifest describes r.
func NewManifest(r *Result) Manifest {
	m := Manifest{
		Package:     r.Meta.PackageName,
		App:         r.Meta.AppName,
		VersionCode: r.Meta.VersionCode,
		VersionName: r.Meta.VersionName,
	}
	for _, f := range r.Files {
		m.Files = append(m.Files, ManifestFile{Path: f.Path, Screen: f.Screen, Kind: f.Kind})
	}
	return m
}

// Write stores every file of r and the manifest under outDir.
//
// Files go to a sibling temp directory first which is renamed into place
// once complete, so outDir never holds a partial run. An existing outDir
// is refused unless opts.Overwrite is set, and even then only an empty
// directory or the output of an earlier run is replaced.
func Write(r *Result, outDir string, opts WriteOptions) error {
	if _, err := os.Stat(outDir); err == nil {
		if !opts.Overwrite {
			return fmt.Errorf("%w: %s", loader.ErrOutputExists, outDir)
		}
		if err := Replaceable(outDir); err != nil {
			return err
		}
	}

	tmpDir := outDir + ".tmp"
	if err := os.RemoveAll(tmpDir); err != nil {
		return fmt.Errorf("cleaning temp directory: %w", err)
	}
	success := false
	defer func() {
		if !success {
			os.RemoveAll(tmpDir)
		}
	}()

	for _, f := range r.Files {
		dst := filepath.Join(tmpDir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(f.Path), err)
		}
		if err := os.WriteFile(dst, []byte(f.Content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", f.Path, err)
		}
	}

	data, err := toml.Marshal(NewManifest(r))
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ManifestName), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", ManifestName, err)
	}

	if opts.Overwrite {
		if err := os.RemoveAll(outDir); err != nil {
			return fmt.Errorf("removing existing directory: %w", err)
		}
	}
	if err := os.Rename(tmpDir, outDir); err != nil {
		return fmt.Errorf("renaming temp to output directory: %w", err)
	}
	success = true

	for _, f := range r.Files {
		_ = opts.Emitter.Record(telemetry.KindFileWritten, "", f.Screen, map[string]string{"path": filepath.Join(outDir, filepath.FromSlash(f.Path))})
	}
	return nil
}

// ReadManifest loads the manifest of a previous run from dir.
func ReadManifest(dir string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return m, fmt.Errorf("reading manifest: %w", err)
	}
	if err := toml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing %s: %w", ManifestName, err)
	}
	return m, nil
}

// Replaceable reports whether dir may be overwritten: it must be missing,
// empty, or carry the manifest of an earlier run.
func Replaceable(dir string) error {
	entries, err := os.ReadDir(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("%w: %s", ErrForeignOutput, dir)
	case len(entries) == 0:
		return nil
	}
	if _, err := ReadManifest(dir); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrForeignOutput, dir, err)
	}
	return nil
}
