// Package ingest reads regulatory text from disk and normalizes it
// into the form the rest of the pipeline consumes. HTML sources are
// reduced to visible text before normalization; markup never reaches
// the segmenter.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/reggap/reggap/internal/model"
)

// Loader converts one source format into raw text.
type Loader interface {
	Load(path string) (string, error)
}

// ForPath picks a loader by file extension. Anything that is not HTML
// is treated as plain text.
func ForPath(path string) Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return HTMLLoader{}
	default:
		return TextLoader{}
	}
}

// LoadDocument reads, extracts and normalizes one source file into a
// document ready for segmentation.
func LoadDocument(id, jurisdiction, path string) (*model.NormalizedDocument, error) {
	raw, err := ForPath(path).Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	doc, err := Normalize(id, jurisdiction, raw)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

type TextLoader struct{}

func (TextLoader) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type HTMLLoader struct{}

func (HTMLLoader) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	return visibleText(doc), nil
}

// visibleText collects text nodes, skipping non-content elements.
// Block-level elements emit a newline so section headings stay on
// their own lines for marker detection.
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "div", "li", "br", "h1", "h2", "h3", "h4", "h5", "h6", "tr", "section", "article":
				buf.WriteString("\n")
			}
		}
	}
	walk(n)

	return buf.String()
}
