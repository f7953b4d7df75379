// Package markdown provides the body-rendering collaborator.
//
// The engine consumes rendering as an opaque func(string) string; this
// package supplies that function, backed by goldmark with extensions
// toggled from configuration.
package markdown

import (
	"bytes"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/first-storm/henkaiki/internal/config"
)

// Converter renders markdown bodies to HTML.
type Converter struct {
	md goldmark.Markdown
}

// NewConverter builds a converter from the markdown configuration.
func NewConverter(cfg config.MarkdownConfig) *Converter {
	var exts []goldmark.Extender
	if cfg.Extensions.Strikethrough {
		exts = append(exts, extension.Strikethrough)
	}
	if cfg.Extensions.Table {
		exts = append(exts, extension.Table)
	}
	if cfg.Extensions.Autolink {
		exts = append(exts, extension.Linkify)
	}
	if cfg.Extensions.Tasklist {
		exts = append(exts, extension.TaskList)
	}
	if cfg.Extensions.Footnotes {
		exts = append(exts, extension.Footnote)
	}
	if cfg.Extensions.DefinitionLists {
		exts = append(exts, extension.DefinitionList)
	}

	var opts []goldmark.Option
	opts = append(opts, goldmark.WithExtensions(exts...))
	if cfg.Unsafe {
		opts = append(opts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	return &Converter{md: goldmark.New(opts...)}
}

// Render converts a markdown body to HTML.
// A conversion failure falls back to the raw body so a single bad
// article never becomes unreadable.
func (c *Converter) Render(body string) string {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(body), &buf); err != nil {
		slog.Warn("markdown conversion failed, serving raw body", slog.String("error", err.Error()))
		return body
	}
	return buf.String()
}

// Passthrough returns the body unchanged. Used when rendering is
// disabled in configuration.
func Passthrough(body string) string {
	return body
}

// RendererFor returns the render function matching the configuration:
// a goldmark converter when enabled, identity otherwise.
func RendererFor(cfg config.MarkdownConfig) func(string) string {
	if !cfg.Enabled {
		return Passthrough
	}
	return NewConverter(cfg).Render
}
