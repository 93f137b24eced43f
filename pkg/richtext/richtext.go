package richtext

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Format records how a node was authored.
type Format uint8

const (
	FormatText Format = iota
	FormatHTML
	FormatMarkdown
)

var formatNames = [...]string{
	FormatText:     "text",
	FormatHTML:     "html",
	FormatMarkdown: "markdown",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", f)
}

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	md           goldmark.Markdown
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// Formatting a translator may reasonably use inside a message.
		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br", "span",
			"strong", "b", "em", "i", "del", "s",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
			"h1", "h2", "h3", "h4",
		)
		safePolicy.AllowAttrs("href", "title").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)

		md = goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		)
	})
}

// Node is a piece of sanitized markup. It is never merged key by key: a
// localized node replaces the default one whole.
type Node struct {
	source string
	html   string
	format Format
}

var _ templ.Component = (*Node)(nil)

// Markdown renders src to sanitized HTML.
func Markdown(src string) (*Node, error) {
	initPolicies()

	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	return &Node{
		source: src,
		html:   strings.TrimSpace(safePolicy.Sanitize(buf.String())),
		format: FormatMarkdown,
	}, nil
}

// MustMarkdown is like Markdown but panics on error.
func MustMarkdown(src string) *Node {
	n, err := Markdown(src)
	if err != nil {
		panic(err)
	}
	return n
}

// HTML sanitizes raw markup. Scripts, event handlers and javascript: URLs
// are removed.
func HTML(raw string) *Node {
	initPolicies()
	return &Node{source: raw, html: safePolicy.Sanitize(raw), format: FormatHTML}
}

// Text strips all markup from s.
func Text(s string) *Node {
	initPolicies()
	return &Node{source: s, html: strictPolicy.Sanitize(s), format: FormatText}
}

// Source returns the text the node was built from.
func (n *Node) Source() string { return n.source }

// HTML returns the sanitized markup.
func (n *Node) HTML() string { return n.html }

// Format reports how the node was authored.
func (n *Node) Format() Format { return n.format }

// PlainText returns the node's text content without markup.
func (n *Node) PlainText() string {
	initPolicies()
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(n.html)))
}

// String returns the sanitized markup.
func (n *Node) String() string { return n.html }

// Render writes the sanitized markup, so a node can be used directly in templ
// templates.
func (n *Node) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, n.html)
	return err
}

// MarshalJSON encodes the sanitized markup as a string.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.html)
}

// MarshalYAML encodes the sanitized markup as a string.
func (n *Node) MarshalYAML() (any, error) {
	return n.html, nil
}
