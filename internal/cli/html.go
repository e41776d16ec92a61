package cli

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// gm converts rendered markup to a standalone HTML fragment. WithUnsafe keeps
// the raw span/del/ins tags most styles emit; the GFM extension covers the
// ghfm style's ~~strikethrough~~ runs.
var gm = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

func markdownToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := gm.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
