// Package textprep prepares raw ticket text for classification: tickets
// arrive pasted from email clients and web forms, full of smart quotes,
// HTML markup, and rambling detail the matchers should not have to cope
// with.
package textprep

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// charReplacements folds typographic characters to their ASCII forms so
// that patterns like `can'?t` still hit tickets written with curly
// apostrophes.
var charReplacements = map[string]string{
	"\u2018": "'", "\u2019": "'", "\u201C": `"`, "\u201D": `"`,
	"\u2013": "-", "\u2014": "--", "\u2026": "...", "\u00a0": " ",
	"\u0091": "'", "\u0092": "'", "\u0093": `"`, "\u0094": `"`,
}

// Normalize replaces typographic punctuation, repairs invalid UTF-8, and
// trims surrounding whitespace.
func Normalize(s string) string {
	if !utf8.ValidString(s) {
		log.Warn("ticket text contains invalid UTF-8, replacing invalid bytes")
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	for bad, good := range charReplacements {
		s = strings.ReplaceAll(s, bad, good)
	}
	return strings.TrimSpace(s)
}

// Tags whose content carries no ticket text.
var ignoreTags = map[string]bool{
	"script": true, "style": true, "head": true, "nav": true,
	"footer": true, "aside": true, "form": true, "noscript": true,
}

// FlattenHTML reduces HTML-formatted ticket bodies (forwarded email, rich
// text forms) to plain text. Input without markup passes through unchanged,
// as does input the parser cannot make sense of.
func FlattenHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		log.Warnf("failed to parse ticket as HTML, keeping raw text: %v", err)
		return s
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.ElementNode && ignoreTags[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	if len(parts) == 0 {
		return s
	}
	return strings.Join(parts, " ")
}

var (
	tokenizerOnce sync.Once
	tokenizer     *sentences.DefaultSentenceTokenizer
)

// Excerpt cuts long ticket text down to its first maxSentences sentences,
// keeping prompt sizes bounded on the LLM path. Non-positive limits and
// short tickets pass through unchanged.
func Excerpt(s string, maxSentences int) string {
	if maxSentences <= 0 {
		return s
	}

	tokenizerOnce.Do(func() {
		tokenizer = sentences.NewSentenceTokenizer(nil)
	})
	if tokenizer == nil {
		log.Warn("sentence tokenizer unavailable, keeping full ticket text")
		return s
	}

	sents := tokenizer.Tokenize(s)
	if len(sents) <= maxSentences {
		return s
	}

	kept := make([]string, 0, maxSentences)
	for _, sent := range sents[:maxSentences] {
		if text := strings.TrimSpace(sent.Text); text != "" {
			kept = append(kept, text)
		}
	}
	return strings.Join(kept, " ")
}
