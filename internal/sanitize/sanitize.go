// Package sanitize strips unsafe markup from free-text fields before they
// reach internal/store, grounded on the original service's
// src/utils/sanitize.rs.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy is a strict text-only policy: every tag is stripped, only the text
// content survives. Room names and display names have no legitimate use
// for markup.
var policy = bluemonday.StrictPolicy()

// Text strips all markup from s and trims surrounding whitespace, suitable
// for display names, room names, and any other short free-text field a
// user controls.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
