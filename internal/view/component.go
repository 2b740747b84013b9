package view

import (
	"strconv"

	"github.com/papapumpkin/asperge/internal/decodeerr"
	"github.com/papapumpkin/asperge/internal/section"
)

// ContainerKind describes how a component lays out its children.
type ContainerKind int

const (
	// Leaf components cannot hold children.
	Leaf ContainerKind = iota
	// Linear stacks children and honours layout weights.
	Linear
	// Relative positions children absolutely.
	Relative
	// Scroll holds a single implicit LinearLayout wrapping its children.
	Scroll
)

// Component maps a numeric component tag to its widget.
type Component struct {
	Tag       int
	Widget    string // XML element and Java class name
	Package   string // Java package of Widget
	Container ContainerKind
	// Horizontal is set for scroll containers whose implicit child runs
	// left to right.
	Horizontal bool
}

// Import returns the fully qualified Java class name.
func (c Component) Import() string {
	return c.Package + "." + c.Widget
}

const widgetPkg = "android.widget"

var components = map[int]Component{
	0:  {Tag: 0, Widget: "LinearLayout", Package: widgetPkg, Container: Linear},
	1:  {Tag: 1, Widget: "RelativeLayout", Package: widgetPkg, Container: Relative},
	2:  {Tag: 2, Widget: "HorizontalScrollView", Package: widgetPkg, Container: Scroll, Horizontal: true},
	3:  {Tag: 3, Widget: "Button", Package: widgetPkg},
	4:  {Tag: 4, Widget: "TextView", Package: widgetPkg},
	5:  {Tag: 5, Widget: "EditText", Package: widgetPkg},
	6:  {Tag: 6, Widget: "ImageView", Package: widgetPkg},
	7:  {Tag: 7, Widget: "WebView", Package: "android.webkit"},
	8:  {Tag: 8, Widget: "ProgressBar", Package: widgetPkg},
	9:  {Tag: 9, Widget: "ListView", Package: widgetPkg},
	10: {Tag: 10, Widget: "Spinner", Package: widgetPkg},
	11: {Tag: 11, Widget: "CheckBox", Package: widgetPkg},
	12: {Tag: 12, Widget: "ScrollView", Package: widgetPkg, Container: Scroll},
	13: {Tag: 13, Widget: "Switch", Package: widgetPkg},
	14: {Tag: 14, Widget: "SeekBar", Package: widgetPkg},
	15: {Tag: 15, Widget: "CalendarView", Package: widgetPkg},
}

// LookupComponent returns the component for tag. An unmapped tag is an
// UnsupportedComponent error naming the tag and layout.
func LookupComponent(tag int, layout string) (Component, error) {
	c, ok := components[tag]
	if !ok {
		return Component{}, &decodeerr.Error{
			Kind:    decodeerr.KindUnsupportedComponent,
			Section: section.View,
			Screen:  layout,
			Tag:     strconv.Itoa(tag),
			Err:     errUnmapped,
		}
	}
	return c, nil
}
