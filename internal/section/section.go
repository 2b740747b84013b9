// Package section names the six logical sections of a project and holds
// their raw (possibly encrypted) and decrypted forms.
package section

import (
	"fmt"

	"github.com/papapumpkin/asperge/internal/decodeerr"
)

// Section names as they appear in a backup container and an extracted folder.
const (
	Logic    = "logic"
	View     = "view"
	File     = "file"
	Library  = "library"
	Resource = "resource"
	Project  = "project"
)

// Names lists every required section in canonical order.
var Names = []string{Logic, View, File, Library, Resource, Project}

// IsKnown reports whether name is one of the six section names.
func IsKnown(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// Raw maps a section name to its undecoded bytes.
type Raw map[string][]byte

// Validate returns a MalformedContainer error naming the first missing section.
func (r Raw) Validate() error {
	for _, n := range Names {
		if _, ok := r[n]; !ok {
			return &decodeerr.Error{
				Kind:    decodeerr.KindMalformedContainer,
				Section: n,
				Err:     fmt.Errorf("section missing"),
			}
		}
	}
	return nil
}

// Decrypted maps a section name to its UTF-8 text.
type Decrypted map[string]string

// Validate returns a MalformedContainer error naming the first missing section.
func (d Decrypted) Validate() error {
	for _, n := range Names {
		if _, ok := d[n]; !ok {
			return &decodeerr.Error{
				Kind:    decodeerr.KindMalformedContainer,
				Section: n,
				Err:     fmt.Errorf("section missing"),
			}
		}
	}
	return nil
}

// Bytes returns the decrypted sections re-encoded as raw buffers, used when
// writing an extracted folder.
func (d Decrypted) Bytes() Raw {
	raw := make(Raw, len(d))
	for k, v := range d {
		raw[k] = []byte(v)
	}
	return raw
}
