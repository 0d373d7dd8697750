package rules

import "github.com/yaklabco/snipreview/pkg/langdetect"

//nolint:gochecknoglobals // read-only language sets
var (
	scriptLanguages = []string{langdetect.LangJavaScript, langdetect.LangTypeScript}
	pythonLanguages = []string{langdetect.LangPython}
	allLanguages    []string
)
