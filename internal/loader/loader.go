// Package loader normalises the accepted inputs (a packed backup file or a
// folder of six section files) into decrypted section text.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/papapumpkin/asperge/internal/backup"
	"github.com/papapumpkin/asperge/internal/crypt"
	"github.com/papapumpkin/asperge/internal/decodeerr"
	"github.com/papapumpkin/asperge/internal/section"
)

// Origin describes where a loaded project came from.
type Origin string

// Possible origins reported by Load.
const (
	OriginBackup          Origin = "backup"
	OriginPlainFolder     Origin = "plain-folder"
	OriginEncryptedFolder Origin = "encrypted-folder"
	OriginMixedFolder     Origin = "mixed-folder"
)

// ErrOutputExists indicates WriteFolder was asked to write into an existing path.
var ErrOutputExists = errors.New("output path already exists")

// Load reads path as a backup file or a section folder and returns the
// decrypted sections. Folder files are probed one by one, so a folder may
// mix plaintext and ciphertext sections.
func Load(path string) (section.Decrypted, Origin, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("accessing %s: %w", path, err)
	}
	if !info.IsDir() {
		raw, err := backup.Unpack(path)
		if err != nil {
			return nil, "", err
		}
		dec, err := crypt.DecryptProject(raw)
		if err != nil {
			return nil, "", err
		}
		return dec, OriginBackup, nil
	}

	raw, err := ReadFolder(path)
	if err != nil {
		return nil, "", err
	}
	encrypted := 0
	for _, buf := range raw {
		if crypt.LooksEncrypted(buf) {
			encrypted++
		}
	}
	dec, err := crypt.DecryptProject(raw)
	if err != nil {
		return nil, "", err
	}
	switch encrypted {
	case 0:
		return dec, OriginPlainFolder, nil
	case len(section.Names):
		return dec, OriginEncryptedFolder, nil
	default:
		return dec, OriginMixedFolder, nil
	}
}

// ReadFolder reads the six section files of dir without decoding them.
func ReadFolder(dir string) (section.Raw, error) {
	raw := make(section.Raw, len(section.Names))
	for _, name := range section.Names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &decodeerr.Error{
					Kind:    decodeerr.KindMalformedContainer,
					Section: name,
					Err:     fmt.Errorf("file %s not found in %s", name, dir),
				}
			}
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		raw[name] = data
	}
	return raw, nil
}

// WriteFolder writes each section to a file named after it inside dir. The
// directory must not exist yet.
func WriteFolder(raw section.Raw, dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("%w: %s", ErrOutputExists, dir)
	}
	if err := raw.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	for _, name := range section.Names {
		if err := os.WriteFile(filepath.Join(dir, name), raw[name], 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}
