package records

import (
	"strconv"

	"github.com/papapumpkin/asperge/internal/section"
)

// ActivityFile describes one activity entry of the file section.
type ActivityFile struct {
	Name        string
	Theme       string
	Orientation string
	Keyboard    string
}

// Files is the parsed file section.
type Files struct {
	Activities  []ActivityFile
	CustomViews []string
}

// HasActivity reports whether layout is declared as an activity.
func (f Files) HasActivity(layout string) bool {
	for _, a := range f.Activities {
		if a.Name == layout {
			return true
		}
	}
	return false
}

// HasCustomView reports whether layout is declared as a custom view.
func (f Files) HasCustomView(layout string) bool {
	for _, c := range f.CustomViews {
		if c == layout {
			return true
		}
	}
	return false
}

// Library is one row of the library section.
type Library struct {
	Name    string
	Enabled bool
	Data    string
}

// ResourceEntry names a bundled resource file.
type ResourceEntry struct {
	Name string
	File string
}

// Resources is the parsed resource section.
type Resources struct {
	Images []ResourceEntry
	Sounds []ResourceEntry
	Fonts  []ResourceEntry
}

// HasImage reports whether name is a bundled image.
func (r Resources) HasImage(name string) bool {
	for _, e := range r.Images {
		if e.Name == name {
			return true
		}
	}
	return false
}

// Metadata is the parsed project section, shared read-only by generators.
type Metadata struct {
	PackageName      string
	AppName          string
	Workspace        string
	VersionCode      int
	VersionName      string
	ColorPrimary     string
	ColorPrimaryDark string
	ColorAccent      string
}

// ParseFile parses the file section.
func ParseFile(text string) (Files, error) {
	var out Files
	header := ""
	for _, l := range lines(text) {
		if l.isHeader() {
			header = l.text[1:]
			if header != "activity" && header != "customview" {
				return Files{}, malformed(section.File, l.num, "unknown header %q", l.text)
			}
			continue
		}
		switch header {
		case "activity":
			f, err := fields(section.File, l, "\t", 4)
			if err != nil {
				return Files{}, err
			}
			if !isIdent(f[0]) {
				return Files{}, malformed(section.File, l.num, "invalid activity name %q", f[0])
			}
			out.Activities = append(out.Activities, ActivityFile{Name: f[0], Theme: f[1], Orientation: f[2], Keyboard: f[3]})
		case "customview":
			f, err := fields(section.File, l, "\t", 1)
			if err != nil {
				return Files{}, err
			}
			if !isIdent(f[0]) {
				return Files{}, malformed(section.File, l.num, "invalid custom view name %q", f[0])
			}
			out.CustomViews = append(out.CustomViews, f[0])
		default:
			return Files{}, malformed(section.File, l.num, "record before first header")
		}
	}
	return out, nil
}

// ParseLibrary parses the library section.
func ParseLibrary(text string) ([]Library, error) {
	var out []Library
	for _, l := range lines(text) {
		f, err := fields(section.Library, l, "\t", 3)
		if err != nil {
			return nil, err
		}
		if f[1] != "Y" && f[1] != "N" {
			return nil, malformed(section.Library, l.num, "enabled flag must be Y or N, got %q", f[1])
		}
		out = append(out, Library{Name: f[0], Enabled: f[1] == "Y", Data: f[2]})
	}
	return out, nil
}

// ParseResource parses the resource section.
func ParseResource(text string) (Resources, error) {
	var out Resources
	var cur *[]ResourceEntry
	for _, l := range lines(text) {
		if l.isHeader() {
			switch l.text[1:] {
			case "images":
				cur = &out.Images
			case "sounds":
				cur = &out.Sounds
			case "fonts":
				cur = &out.Fonts
			default:
				return Resources{}, malformed(section.Resource, l.num, "unknown header %q", l.text)
			}
			continue
		}
		if cur == nil {
			return Resources{}, malformed(section.Resource, l.num, "record before first header")
		}
		f, err := fields(section.Resource, l, "\t", 2)
		if err != nil {
			return Resources{}, err
		}
		if !isIdent(f[0]) || f[1] == "" {
			return Resources{}, malformed(section.Resource, l.num, "invalid resource %q", l.text)
		}
		*cur = append(*cur, ResourceEntry{Name: f[0], File: f[1]})
	}
	return out, nil
}

// ParseProject parses the project section. The package and name keys are
// required; unknown keys are ignored.
func ParseProject(text string) (Metadata, error) {
	var m Metadata
	for _, l := range lines(text) {
		f, err := fields(section.Project, l, "\t", 2)
		if err != nil {
			return Metadata{}, err
		}
		key, val := f[0], f[1]
		switch key {
		case "package":
			m.PackageName = val
		case "name":
			m.AppName = val
		case "workspace":
			m.Workspace = val
		case "versionCode":
			n, err := strconv.Atoi(val)
			if err != nil {
				return Metadata{}, malformed(section.Project, l.num, "invalid versionCode %q", val)
			}
			m.VersionCode = n
		case "versionName":
			m.VersionName = val
		case "colorPrimary":
			m.ColorPrimary = val
		case "colorPrimaryDark":
			m.ColorPrimaryDark = val
		case "colorAccent":
			m.ColorAccent = val
		}
	}
	if m.PackageName == "" {
		return Metadata{}, malformed(section.Project, 0, "missing package key")
	}
	if m.AppName == "" {
		return Metadata{}, malformed(section.Project, 0, "missing name key")
	}
	return m, nil
}
