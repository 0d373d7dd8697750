// Package langdetect identifies the language of a code snippet.
//
// Review rules are keyed by canonical tags such as "javascript", "typescript" and
// "python". Normalize maps the many spellings an article author might put on a
// code fence onto those tags; Detect and FromFilename guess the tag when none
// is given, using go-enry.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Canonical language tags.
const (
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
	LangPython     = "python"
	LangGo         = "go"
	LangJSON       = "json"
	LangYAML       = "yaml"
	LangHTML       = "html"
	LangSQL        = "sql"
	LangBash       = "bash"
	LangMarkdown   = "markdown"
	LangText       = "text"
)

// classifierCandidates limits the go-enry classifier to languages CodeSource articles use.
//
//nolint:gochecknoglobals // read-only lookup table
var classifierCandidates = []string{
	"JavaScript", "TypeScript", "Python", "Go", "Shell",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS",
}

// Detect guesses the language of an untagged snippet.
// It returns "text" when the content is empty or no strategy is confident.
func Detect(content string) string {
	if strings.TrimSpace(content) == "" {
		return LangText
	}

	if lang, safe := enry.GetLanguageByShebang([]byte(content)); safe {
		return Normalize(lang)
	}

	for _, p := range patterns {
		if p.match(content) {
			return p.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier([]byte(content), classifierCandidates); safe && lang != "" {
		return Normalize(lang)
	}

	return LangText
}

// pattern is a cheap, highly indicative signature for one language.
type pattern struct {
	lang  string
	match func(content string) bool
}

// patterns are checked in order; more specific signatures come first.
//
//nolint:gochecknoglobals // read-only lookup table
var patterns = []pattern{
	{LangGo, func(s string) bool {
		return strings.HasPrefix(strings.TrimSpace(s), "package ")
	}},
	{LangPython, looksLikePython},
	{LangHTML, func(s string) bool {
		lower := strings.ToLower(s)
		return containsAny(lower, "<!doctype html", "<html", "<head>", "<body>")
	}},
	{LangJSON, func(s string) bool {
		trimmed := strings.TrimSpace(s)
		return (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) &&
			strings.Contains(trimmed, `"`) && !strings.Contains(trimmed, ";")
	}},
	{LangSQL, func(s string) bool {
		upper := strings.ToUpper(strings.TrimSpace(s))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{LangTypeScript, func(s string) bool {
		return containsAny(s, "interface ", ": string", ": number", ": boolean", "implements ", "as const")
	}},
	{LangJavaScript, func(s string) bool {
		return containsAny(s, "=>", "const ", "let ", "var ", "console.log", "function ", "require(", "useEffect")
	}},
	{LangYAML, looksLikeYAML},
}

func looksLikePython(s string) bool {
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return true
	}
	if strings.Contains(s, "__name__") || strings.Contains(s, "__main__") {
		return true
	}
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "from ") && strings.Contains(s, " import ") {
		return true
	}
	if strings.HasPrefix(trimmed, "import ") && !containsAny(s, "import (", "import {", "from '", `from "`) {
		return true
	}
	return strings.Contains(s, "except:") || strings.Contains(s, "elif ")
}

// looksLikeYAML requires at least two "key: value" or list-item lines.
func looksLikeYAML(s string) bool {
	keys := 0
	for line := range strings.SplitSeq(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "- ") {
			keys++
			continue
		}
		if strings.Contains(line, ": ") && !containsAny(line, "(", "{", ";") && !strings.HasPrefix(line, `"`) {
			keys++
		}
	}
	return keys >= 2
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
