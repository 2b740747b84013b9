// Package decodeerr defines the error taxonomy shared by every decoding and
// generation stage. Each stage fails fast with a typed *Error that carries
// enough context (section, screen, handler, tag, line) to diagnose the input
// without re-running it.
package decodeerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the class of a decoding failure.
type Kind string

const (
	// KindMalformedContainer indicates a truncated or incomplete backup container.
	KindMalformedContainer Kind = "malformed_container"
	// KindDecryptionFailed indicates ciphertext that does not decode to valid text.
	KindDecryptionFailed Kind = "decryption_failed"
	// KindMalformedSection indicates a record with the wrong shape in a section.
	KindMalformedSection Kind = "malformed_section"
	// KindMalformedLogicTree indicates block nesting that cannot be rebuilt.
	KindMalformedLogicTree Kind = "malformed_logic_tree"
	// KindMalformedViewTree indicates view records that do not form one tree.
	KindMalformedViewTree Kind = "malformed_view_tree"
	// KindUnsupportedComponent indicates a component tag with no mapping entry.
	KindUnsupportedComponent Kind = "unsupported_component"
	// KindUnsupportedBlock indicates a block opcode with no template entry.
	KindUnsupportedBlock Kind = "unsupported_block"
	// KindUnsupportedEvent indicates an event name with no listener mapping.
	KindUnsupportedEvent Kind = "unsupported_event"
	// KindUnsupportedAttribute indicates a view attribute with no mapping entry.
	KindUnsupportedAttribute Kind = "unsupported_attribute"
	// KindUnresolvedReference indicates an identifier or resource that resolves nowhere.
	KindUnresolvedReference Kind = "unresolved_reference"
)

// Sentinels usable with errors.Is against any *Error of the matching kind.
var (
	ErrMalformedContainer   = errors.New(string(KindMalformedContainer))
	ErrDecryptionFailed     = errors.New(string(KindDecryptionFailed))
	ErrMalformedSection     = errors.New(string(KindMalformedSection))
	ErrMalformedLogicTree   = errors.New(string(KindMalformedLogicTree))
	ErrMalformedViewTree    = errors.New(string(KindMalformedViewTree))
	ErrUnsupportedComponent = errors.New(string(KindUnsupportedComponent))
	ErrUnsupportedBlock     = errors.New(string(KindUnsupportedBlock))
	ErrUnsupportedEvent     = errors.New(string(KindUnsupportedEvent))
	ErrUnsupportedAttribute = errors.New(string(KindUnsupportedAttribute))
	ErrUnresolvedReference  = errors.New(string(KindUnresolvedReference))
)

var sentinels = map[Kind]error{
	KindMalformedContainer:   ErrMalformedContainer,
	KindDecryptionFailed:     ErrDecryptionFailed,
	KindMalformedSection:     ErrMalformedSection,
	KindMalformedLogicTree:   ErrMalformedLogicTree,
	KindMalformedViewTree:    ErrMalformedViewTree,
	KindUnsupportedComponent: ErrUnsupportedComponent,
	KindUnsupportedBlock:     ErrUnsupportedBlock,
	KindUnsupportedEvent:     ErrUnsupportedEvent,
	KindUnsupportedAttribute: ErrUnsupportedAttribute,
	KindUnresolvedReference:  ErrUnresolvedReference,
}

// Error is a decoding failure with source context. Zero-valued context
// fields are omitted from the message.
type Error struct {
	Kind    Kind
	Section string // section name (logic, view, ...)
	Screen  string // activity or layout name
	Handler string // event handler key
	Tag     string // opcode, component tag, attribute or identifier
	Line    int    // 1-based line in the section text, 0 if unknown
	Err     error
}

// Error returns the kind followed by every known context field and the cause.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(string(e.Kind))
	ctx := []struct{ key, val string }{
		{"section", e.Section},
		{"screen", e.Screen},
		{"handler", e.Handler},
		{"tag", e.Tag},
	}
	for _, c := range ctx {
		if c.val != "" {
			fmt.Fprintf(&b, " %s=%q", c.key, c.val)
		}
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " line=%d", e.Line)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
