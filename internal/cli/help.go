package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/yaklabco/snipreview/internal/configloader"
	"github.com/yaklabco/snipreview/internal/ui/pretty"
)

// Command annotations read by the help templates.
const (
	// annotationExitCodes holds a command's exit code table.
	annotationExitCodes = "exit_codes"

	// annotationEnvironment marks commands that honor SNIPREVIEW_* variables.
	annotationEnvironment = "environment"
)

// HelpFormatter renders Cobra help with the report palette from internal/ui/pretty.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{
		styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer)),
	}
}

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"styleCommand":    h.styles.SummaryTitle.Render,
		"styleHeading":    h.styles.TableHeader.Render,
		"styleSubcommand": h.styles.ScoreGood.Render,
		"styleExample":    h.styles.Example.Render,
		"styleDim":        h.styles.Dim.Render,
		"styleFlagsUsage": h.styleFlagsUsage,
		"rpad":            rpad,
		"join":            strings.Join,
		"exitCodes":       exitCodes,
		"environment":     environment,
		"trimTrailingWhitespaces": func(s string) string {
			lines := strings.Split(s, "\n")
			for i, line := range lines {
				lines[i] = strings.TrimRight(line, " \t")
			}
			return strings.Join(lines, "\n")
		},
	}
}

const usageTemplate = `{{ styleHeading "Usage:" }}
  {{if .Runnable}}{{ styleCommand .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ styleCommand .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ styleHeading "Aliases:" }}
  {{ styleDim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleExample .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlagsUsage .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlagsUsage .InheritedFlags }}
{{- end}}

{{- with environment .}}

{{ styleHeading "Environment:" }}
{{ . }}
{{- end}}

{{- with exitCodes .}}

{{ styleHeading "Exit Codes:" }}
{{ . }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ styleCommand .CommandPath }}{{if .Version}} {{ styleDim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + usageTemplate

// exitCodes returns the indented exit code table annotated on cmd, if any.
func exitCodes(cmd *cobra.Command) string {
	table := cmd.Annotations[annotationExitCodes]
	if table == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(table), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}

// environment lists the SNIPREVIEW_* variables for annotated commands.
func environment(cmd *cobra.Command) string {
	if cmd.Annotations[annotationEnvironment] == "" {
		return ""
	}

	vars := configloader.ListEnvVars()
	names := make([]string, 0, len(vars))
	width := 0
	for name := range vars {
		names = append(names, name)
		width = max(width, len(name))
	}
	slices.Sort(names)

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = "  " + rpad(name, width+2) + vars[name]
	}
	return strings.Join(lines, "\n")
}

// styleFlagsUsage colors flag names and dims their value types.
func (h *HelpFormatter) styleFlagsUsage(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine styles one "  -f, --flag type   description" line.
func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return line
	}
	indent := line[:len(line)-len(trimmed)]

	flagPart, desc, ok := strings.Cut(trimmed, "   ")
	if !ok {
		return line
	}

	tokens := strings.Fields(flagPart)
	for i, token := range tokens {
		if strings.HasPrefix(token, "-") {
			name, comma := strings.CutSuffix(token, ",")
			tokens[i] = h.styles.Category.Render(name)
			if comma {
				tokens[i] += ","
			}
			continue
		}
		tokens[i] = h.styles.Dim.Render(token)
	}

	return indent + strings.Join(tokens, " ") + "   " + strings.TrimLeft(desc, " ")
}

// ApplyToCommand installs the styled help and usage functions on cmd and its subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()

	render := func(name, text string, command *cobra.Command) error {
		tmpl, err := template.New(name).Funcs(funcs).Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s template: %w", name, err)
		}
		return tmpl.Execute(command.OutOrStdout(), command)
	}

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return render("usage", usageTemplate, command)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render("help", helpTemplate, command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}
