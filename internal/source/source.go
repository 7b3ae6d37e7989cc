// Package source turns files on disk into documents.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"textbrief/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

type Kind int

const (
	KindText Kind = iota
	KindHTML
	KindFeed
)

func (k Kind) String() string {
	switch k {
	case KindHTML:
		return "html"
	case KindFeed:
		return "feed"
	default:
		return "text"
	}
}

var extensions = map[string]Kind{
	".txt":  KindText,
	".text": KindText,
	".md":   KindText,
	".html": KindHTML,
	".htm":  KindHTML,
	".rss":  KindFeed,
	".atom": KindFeed,
	".xml":  KindFeed,
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// KindOf reports the input kind for a file name and whether the extension
// is one that directory scans pick up.
func KindOf(name string) (Kind, bool) {
	kind, ok := extensions[strings.ToLower(filepath.Ext(name))]

	return kind, ok
}

type Reader struct {
	feedParser *gofeed.Parser
	log        *slog.Logger
}

func NewReader(log *slog.Logger) *Reader {
	return &Reader{
		feedParser: gofeed.NewParser(),
		log:        log,
	}
}

// Read loads the documents stored in path. Files with an unknown extension
// are read as plain text. A feed without any usable item is a failure, so
// every file read yields at least one document or an error. Every failure
// wraps domain.ErrUnreadableFile.
func (r *Reader) Read(ctx context.Context, path string) ([]domain.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, unreadable(path, err)
	}

	label := filepath.Base(path)
	kind, _ := KindOf(path)

	switch kind {
	case KindHTML:
		text, htmlErr := HTMLText(bytes.NewReader(raw))
		if htmlErr != nil {
			return nil, unreadable(path, htmlErr)
		}

		return []domain.Document{{Label: label, Text: text}}, nil
	case KindFeed:
		docs, feedErr := r.readFeed(ctx, label, raw)
		if feedErr != nil {
			return nil, unreadable(path, feedErr)
		}

		return docs, nil
	default:
		text, textErr := decodeText(raw)
		if textErr != nil {
			return nil, unreadable(path, textErr)
		}

		return []domain.Document{{Label: label, Text: text}}, nil
	}
}

func (r *Reader) readFeed(ctx context.Context, label string, raw []byte) ([]domain.Document, error) {
	parsed, err := r.feedParser.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	docs := make([]domain.Document, 0, len(parsed.Items))

	for i, item := range parsed.Items {
		title := strings.TrimSpace(item.Title)

		itemLabel := label + "#" + strconv.Itoa(i+1)
		if title != "" {
			itemLabel += " " + title
		}

		body := item.Content
		if strings.TrimSpace(body) == "" {
			body = item.Description
		}

		text, htmlErr := HTMLText(strings.NewReader(body))
		if htmlErr != nil {
			return nil, fmt.Errorf("extract item %d text: %w", i+1, htmlErr)
		}
		if text == "" {
			text = title
		}

		if text == "" {
			r.log.WarnContext(ctx, "Skipping feed item with empty content",
				"label", itemLabel,
				"link", item.Link)

			continue
		}

		docs = append(docs, domain.Document{Label: itemLabel, Text: text})
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("feed has no items with content (items = %d)", len(parsed.Items))
	}

	return docs, nil
}

// HTMLText returns the visible text of an HTML document or fragment.
// Block boundaries become line breaks and runs of blanks collapse.
func HTMLText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("create document from reader: %w", err)
	}

	doc.Find("script, style, noscript, template").Remove()

	doc.Find("br").Each(func(_ int, br *goquery.Selection) {
		br.ReplaceWithHtml("\n")
	})
	doc.Find("p, div, li, tr, h1, h2, h3, h4, h5, h6, blockquote, pre, section, article").
		Each(func(_ int, block *goquery.Selection) {
			block.AfterHtml("\n")
		})

	return normalizeLines(doc.Find("body").Text()), nil
}

func decodeText(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		return "", errors.New("decode text: invalid UTF-8")
	}

	return string(raw), nil
}

func normalizeLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]

	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}

		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

func unreadable(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrUnreadableFile, path, err)
}
