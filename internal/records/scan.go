package records

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/asperge/internal/decodeerr"
)

// line is one non-blank line of section text with its 1-based number.
type line struct {
	num  int
	text string
}

func (l line) isHeader() bool {
	return strings.HasPrefix(l.text, "@")
}

// lines splits section text into non-blank lines, tolerating CRLF endings.
func lines(text string) []line {
	var out []line
	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimRight(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		out = append(out, line{num: i + 1, text: raw})
	}
	return out
}

// fields splits l on sep and requires exactly want fields.
func fields(sectionName string, l line, sep string, want int) ([]string, error) {
	parts := strings.Split(l.text, sep)
	if len(parts) != want {
		return nil, malformed(sectionName, l.num, "expected %d fields, got %d", want, len(parts))
	}
	return parts, nil
}

func malformed(sectionName string, lineNum int, format string, args ...any) error {
	return &decodeerr.Error{
		Kind:    decodeerr.KindMalformedSection,
		Section: sectionName,
		Line:    lineNum,
		Err:     fmt.Errorf(format, args...),
	}
}

// isIdent reports whether s is a non-empty identifier.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return s[0] < '0' || s[0] > '9'
}
