// Package markdown converts markdown source into sanitized HTML.
//
// The pipeline is parse -> HTML tree -> syntax highlighting -> sanitize ->
// stringify. Sanitization is the security gate: the output is injected into
// pages as raw HTML, so everything not on the allow-list is dropped here.
package markdown

import (
	"bytes"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md is the configured goldmark instance, reused across calls. Goldmark is
// permissive by construction: malformed markdown renders as literal text
// rather than failing. WithUnsafe lets raw HTML through to the sanitizer,
// which owns the decision of what survives.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			// Class-based output so highlight tokens are <span class="...">
			// elements the sanitizer can vet, not inline styles.
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		),
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
)

// policy is the sanitization allow-list, built once at startup: the default
// user-generated-content set, plus class attributes globally and on
// code/span specifically so highlighting classes survive.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).Globally()
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span")
	return p
}

// Render converts markdown source to sanitized HTML. Output is deterministic
// for a given input. Any stage failure propagates as a single error; there
// is no partial-render fallback.
func Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return policy.Sanitize(buf.String()), nil
}
