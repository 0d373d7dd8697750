package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// aliases maps fence info strings and go-enry names onto canonical tags.
//
//nolint:gochecknoglobals // read-only lookup table
var aliases = map[string]string{
	"js":         LangJavaScript,
	"jsx":        LangJavaScript,
	"mjs":        LangJavaScript,
	"cjs":        LangJavaScript,
	"node":       LangJavaScript,
	"ecmascript": LangJavaScript,
	"ts":         LangTypeScript,
	"tsx":        LangTypeScript,
	"mts":        LangTypeScript,
	"py":         LangPython,
	"py3":        LangPython,
	"python3":    LangPython,
	"golang":     LangGo,
	"sh":         LangBash,
	"shell":      LangBash,
	"zsh":        LangBash,
	"yml":        LangYAML,
	"md":         LangMarkdown,
}

// Normalize canonicalizes a language tag. Known aliases map to their canonical
// tag; anything else is lowercased and trimmed. The empty tag stays empty.
func Normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if canonical, ok := aliases[tag]; ok {
		return canonical
	}
	return tag
}

// extensions pins the file types snipreview discovers by default, some of
// which go-enry considers ambiguous (.ts is also Qt Linguist XML).
//
//nolint:gochecknoglobals // read-only lookup table
var extensions = map[string]string{
	".js":  LangJavaScript,
	".jsx": LangJavaScript,
	".mjs": LangJavaScript,
	".cjs": LangJavaScript,
	".ts":  LangTypeScript,
	".tsx": LangTypeScript,
	".mts": LangTypeScript,
	".py":  LangPython,
	".md":  LangMarkdown,
}

// FromFilename determines the language of a whole source file from its name,
// falling back to content detection when the name is not conclusive.
func FromFilename(path, content string) string {
	name := filepath.Base(path)

	if lang, ok := extensions[strings.ToLower(filepath.Ext(name))]; ok {
		return lang
	}

	if lang, safe := enry.GetLanguageByExtension(name); safe && lang != "" {
		return Normalize(lang)
	}
	if lang, safe := enry.GetLanguageByFilename(name); safe && lang != "" {
		return Normalize(lang)
	}

	return Detect(content)
}

// HasRules reports whether language-specific review rules exist for tag.
// Typescript shares the javascript rule set.
func HasRules(tag string) bool {
	switch Normalize(tag) {
	case LangJavaScript, LangTypeScript, LangPython:
		return true
	default:
		return false
	}
}
