// Package naming derives generated Java identifiers and paths from project
// names.
package naming

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ActivitySuffix is appended to the title-cased layout name.
const ActivitySuffix = "Activity"

// ActivityName returns the activity class bound to layout: "main" becomes
// "MainActivity" and "second_page" becomes "SecondPageActivity".
func ActivityName(layout string) string {
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, part := range strings.Split(layout, "_") {
		b.WriteString(title.String(part))
	}
	b.WriteString(ActivitySuffix)
	return b.String()
}

// PackagePath turns a Java package name into a slash separated directory.
func PackagePath(pkg string) string {
	return path.Join(strings.Split(pkg, ".")...)
}

// HandlerMethod returns the generated method name for a handler body:
// "_button1_onClick" for a view event and "_reset" for a more-block.
func HandlerMethod(target, event string) string {
	if event == "" {
		return "_" + target
	}
	return "_" + target + "_" + event
}

// Param returns the generated name of a more-block parameter.
func Param(name string) string {
	return "_" + name
}
