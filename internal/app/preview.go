package app

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"blogctl/internal/blog"
)

var strictPolicy = bluemonday.StrictPolicy()

// PlainText strips every tag from post HTML and collapses whitespace, for
// printing content on a terminal.
func PlainText(content string) string {
	// Block-level closers become spaces so adjacent paragraphs do not merge.
	for _, tag := range []string{"</p>", "<br>", "<br/>", "<br />", "</li>", "</h1>", "</h2>", "</h3>"} {
		content = strings.ReplaceAll(content, tag, tag+" ")
	}
	text := html.UnescapeString(strictPolicy.Sanitize(content))
	return strings.Join(strings.Fields(text), " ")
}

// Excerpt returns the post's excerpt, or the first max runes of its plain
// text content when no excerpt was written.
func Excerpt(p *blog.Post, max int) string {
	if e := strings.TrimSpace(p.Excerpt); e != "" {
		return e
	}
	return truncate(PlainText(p.Content), max)
}

func truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max])) + "..."
}
