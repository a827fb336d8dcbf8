// Package sanitizer turns HTML error pages into short plain-text summaries.
package sanitizer

import (
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// DefaultDetailLength bounds Summarize output, in runes.
const DefaultDetailLength = 200

var strict = bluemonday.StrictPolicy()

// LooksLikeHTML reports whether body appears to be markup rather than text.
func LooksLikeHTML(body string) bool {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "<") {
		return false
	}
	lower := strings.ToLower(trimmed[:min(len(trimmed), 512)])
	for _, marker := range []string{"<!doctype html", "<html", "<head", "<body", "<title", "<p", "<div", "<h1", "<pre"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Title returns the text of the first <title> element, or "".
func Title(body string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(body))
	inTitle := false
	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			inTitle = string(name) == "title"
		case html.EndTagToken:
			inTitle = false
		case html.TextToken:
			if inTitle {
				if text := collapseSpace(string(tokenizer.Text())); text != "" {
					return text
				}
			}
		}
	}
}

// StripTags removes every tag, drops script and style content, decodes
// entities and collapses whitespace.
//
// Not an XSS defence: the output is plain text for logs and error messages.
func StripTags(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	return collapseSpace(html.UnescapeString(strict.Sanitize(input)))
}

// Summarize returns a one-line description of an error body: the page title
// for HTML documents, otherwise the stripped text, cut to maxRunes.
func Summarize(body string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = DefaultDetailLength
	}
	var text string
	if LooksLikeHTML(body) {
		text = Title(body)
		if text == "" {
			text = StripTags(body)
		}
	} else {
		text = collapseSpace(body)
	}
	return truncate(text, maxRunes)
}

func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes-1]) + "…"
}
