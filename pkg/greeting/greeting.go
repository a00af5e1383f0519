// Package greeting provides the demo greeting utility.
package greeting

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCase = cases.Title(language.English)

// Greet formats a greeting for the given name. The name is trimmed and
// title-cased; an empty name falls back to a generic greeting.
func Greet(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Hello, World!"
	}
	return "Hello, " + titleCase.String(name) + "!"
}
