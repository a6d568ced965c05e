package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextStripsScriptTags(t *testing.T) {
	got := Text(`<script>alert('x')</script>hello`)
	assert.NotContains(t, got, "<script")
	assert.NotContains(t, got, "alert")
	assert.Contains(t, got, "hello")
}

func TestTextStripsInlineMarkupKeepingContent(t *testing.T) {
	assert.Equal(t, "hello world", Text("<b>hello</b> world"))
}

func TestTextTrimsWhitespace(t *testing.T) {
	assert.Equal(t, "room one", Text("  room one  "))
}
