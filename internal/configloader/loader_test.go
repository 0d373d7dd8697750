package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yaklabco/snipreview/pkg/config"
	_ "github.com/yaklabco/snipreview/pkg/review/rules" // Register rules
)

// isolatedOptions ignores every config source outside tmpDir.
func isolatedOptions(tmpDir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.MinSeverity != config.SeverityLow {
		t.Errorf("expected min severity %q, got %q", config.SeverityLow, result.Config.MinSeverity)
	}
	if result.Config.Format != config.FormatText {
		t.Errorf("expected format %q, got %q", config.FormatText, result.Config.Format)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".snipreview.yml"), `
min_severity: medium
security_scan: true
latency: 250ms
seed: 42
rules:
  JS001:
    enabled: false
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.MinSeverity != config.SeverityMedium {
		t.Errorf("expected min severity medium, got %q", cfg.MinSeverity)
	}
	if !cfg.SecurityScan {
		t.Error("expected security scan enabled")
	}
	if cfg.Latency != 250*time.Millisecond {
		t.Errorf("expected latency 250ms, got %v", cfg.Latency)
	}
	if cfg.Seed == nil || *cfg.Seed != 42 {
		t.Errorf("expected seed 42, got %v", cfg.Seed)
	}

	js001, ok := cfg.Rules["JS001"]
	if !ok {
		t.Fatal("JS001 rule not found in config")
	}
	if js001.Enabled == nil || *js001.Enabled {
		t.Error("expected JS001 to be disabled")
	}

	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ProjectConfigFoundFromSubdirectory(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(tmpDir, "snipreview.yaml"), "min_severity: high\n")

	subDir := filepath.Join(tmpDir, "posts", "2024")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolatedOptions(subDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.MinSeverity != config.SeverityHigh {
		t.Errorf("expected min severity high, got %q", result.Config.MinSeverity)
	}
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".snipreview.yml"), "min_severity: medium\nignore: [\"drafts/**\"]\n")

	customPath := filepath.Join(tmpDir, "custom.yml")
	writeFile(t, customPath, "min_severity: critical\n")

	opts := isolatedOptions(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.MinSeverity != config.SeverityCritical {
		t.Errorf("expected min severity critical, got %q", result.Config.MinSeverity)
	}
	if len(result.Config.Ignore) != 1 || result.Config.Ignore[0] != "drafts/**" {
		t.Errorf("expected project ignore list to survive, got %v", result.Config.Ignore)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != customPath {
		t.Errorf("expected explicit config loaded last, got %v", result.LoadedFrom)
	}
	if result.Paths.Explicit != customPath {
		t.Errorf("expected explicit path %q, got %q", customPath, result.Paths.Explicit)
	}
}

func TestLoad_CLIOverridesFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".snipreview.yml"), "min_severity: medium\nseed: 1\n")

	seed := uint64(99)
	opts := isolatedOptions(tmpDir)
	opts.CLIConfig = &config.Config{
		MinSeverity: config.SeverityHigh,
		Seed:        &seed,
		Format:      config.FormatJSON,
		Jobs:        3,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.MinSeverity != config.SeverityHigh {
		t.Errorf("expected min severity high, got %q", cfg.MinSeverity)
	}
	if cfg.Seed == nil || *cfg.Seed != 99 {
		t.Errorf("expected seed 99, got %v", cfg.Seed)
	}
	if cfg.Format != config.FormatJSON {
		t.Errorf("expected format json, got %q", cfg.Format)
	}
	if cfg.Jobs != 3 {
		t.Errorf("expected jobs 3, got %d", cfg.Jobs)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".snipreview.yml"), "rules: [unclosed\n")

	_, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if !strings.Contains(err.Error(), ".snipreview.yml") {
		t.Errorf("expected error to name the file, got %v", err)
	}
}

func TestLoad_InvalidSeverity(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".snipreview.yml"), "min_severity: urgent\n")

	_, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err == nil {
		t.Fatal("expected error for invalid severity")
	}
	if !strings.Contains(err.Error(), "min_severity") {
		t.Errorf("expected error to name the field, got %v", err)
	}
}

func TestLoad_NormalizesRuleNames(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".snipreview.yml"), `
rules:
  no-eval:
    severity: high
  eqeqeq:
    enabled: false
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rules := result.Config.Rules
	if _, ok := rules["no-eval"]; ok {
		t.Error("expected rule name to be rewritten to its ID")
	}
	js005, ok := rules["JS005"]
	if !ok || js005.Severity == nil || *js005.Severity != "high" {
		t.Errorf("expected JS005 severity high, got %+v", js005)
	}
	js004, ok := rules["JS004"]
	if !ok || js004.Enabled == nil || *js004.Enabled {
		t.Errorf("expected JS004 disabled via alias, got %+v", js004)
	}
}

func TestLoad_CanonicalIDWinsOverName(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".snipreview.yml"), `
rules:
  JS005:
    severity: low
  no-eval:
    severity: high
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	js005 := result.Config.Rules["JS005"]
	if js005.Severity == nil || *js005.Severity != "low" {
		t.Errorf("expected ID-keyed entry to win, got %+v", js005)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected duplicate rule warning")
	}
}

func TestLoad_UnknownRuleWarns(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".snipreview.yml"), "rules:\n  XX999:\n    enabled: false\n")

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "XX999") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected warning about XX999, got %v", result.Warnings)
	}
}

func TestLoad_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolatedOptions(t.TempDir())); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SNIPREVIEW_MIN_SEVERITY", "HIGH")
	t.Setenv("SNIPREVIEW_SECURITY_SCAN", "true")
	t.Setenv("SNIPREVIEW_LATENCY", "1500ms")
	t.Setenv("SNIPREVIEW_SEED", "7")
	t.Setenv("SNIPREVIEW_JOBS", "4")
	t.Setenv("SNIPREVIEW_IGNORE", "drafts/**, vendor/**")

	cfg := config.NewConfig()
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.MinSeverity != config.SeverityHigh {
		t.Errorf("expected min severity high, got %q", cfg.MinSeverity)
	}
	if !cfg.SecurityScan {
		t.Error("expected security scan enabled")
	}
	if cfg.Latency != 1500*time.Millisecond {
		t.Errorf("expected latency 1.5s, got %v", cfg.Latency)
	}
	if cfg.Seed == nil || *cfg.Seed != 7 {
		t.Errorf("expected seed 7, got %v", cfg.Seed)
	}
	if cfg.Jobs != 4 {
		t.Errorf("expected jobs 4, got %d", cfg.Jobs)
	}
	if len(cfg.Ignore) != 2 || cfg.Ignore[1] != "vendor/**" {
		t.Errorf("expected two trimmed ignore patterns, got %v", cfg.Ignore)
	}
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"SNIPREVIEW_SECURITY_SCAN": "maybe",
		"SNIPREVIEW_LATENCY":       "soon",
		"SNIPREVIEW_SEED":          "-1",
		"SNIPREVIEW_JOBS":          "many",
	}

	for envVar, value := range tests {
		t.Run(envVar, func(t *testing.T) {
			t.Setenv(envVar, value)
			if err := LoadFromEnv(config.NewConfig()); err == nil {
				t.Errorf("expected error for %s=%q", envVar, value)
			}
		})
	}
}

func TestLoad_EnvBeatsFileButNotCLI(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".snipreview.yml"), "min_severity: low\n")
	t.Setenv("SNIPREVIEW_MIN_SEVERITY", "medium")
	t.Setenv("SNIPREVIEW_FORMAT", "sarif")

	opts := isolatedOptions(tmpDir)
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{Format: config.FormatJSON}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.MinSeverity != config.SeverityMedium {
		t.Errorf("expected env min severity medium, got %q", result.Config.MinSeverity)
	}
	if result.Config.Format != config.FormatJSON {
		t.Errorf("expected CLI format json, got %q", result.Config.Format)
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	for _, name := range []string{"SNIPREVIEW_MIN_SEVERITY", "SNIPREVIEW_SEED", "SNIPREVIEW_LATENCY"} {
		if vars[name] == "" {
			t.Errorf("expected description for %s", name)
		}
	}
	if got := GetEnvVarName("security_scan"); got != "SNIPREVIEW_SECURITY_SCAN" {
		t.Errorf("GetEnvVarName(security_scan) = %q", got)
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	enabled := false
	high := "high"
	seed := uint64(3)

	base := &config.Config{
		MinSeverity: config.SeverityLow,
		Rules: map[string]config.RuleConfig{
			"JS003": {Options: map[string]any{"endpoints": []any{"api.example.com"}}},
		},
	}
	middle := &config.Config{
		SecurityScan: true,
		Rules: map[string]config.RuleConfig{
			"JS003": {Enabled: &enabled},
		},
	}
	top := &config.Config{
		Seed: &seed,
		Rules: map[string]config.RuleConfig{
			"JS003": {Severity: &high},
		},
	}

	got := MergeAll(base, middle, top)

	if got.MinSeverity != config.SeverityLow || !got.SecurityScan {
		t.Errorf("scalar merge failed: %+v", got)
	}
	if got.Seed == nil || *got.Seed != 3 {
		t.Errorf("expected seed 3, got %v", got.Seed)
	}

	js003 := got.Rules["JS003"]
	if js003.Enabled == nil || *js003.Enabled {
		t.Error("expected JS003 disabled")
	}
	if js003.Severity == nil || *js003.Severity != "high" {
		t.Error("expected JS003 severity high")
	}
	if _, ok := js003.Options["endpoints"]; !ok {
		t.Error("expected JS003 options kept from base")
	}

	if MergeAll() != nil {
		t.Error("expected nil for no configs")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	bad := "severe"
	cfg := &config.Config{
		Format:     "xml",
		RuleFormat: "short",
		Jobs:       -1,
		Latency:    -time.Second,
		Ignore:     []string{"[unclosed"},
		Language:   "cobol",
		Rules: map[string]config.RuleConfig{
			"JS001": {Severity: &bad},
		},
	}

	result := Validate(cfg)
	if result.Valid() {
		t.Fatal("expected validation errors")
	}

	fields := make(map[string]bool)
	for _, e := range result.Errors {
		fields[e.Field] = true
	}
	for _, want := range []string{"format", "rule_format", "jobs", "latency", "ignore[0]", "rules.JS001.severity"} {
		if !fields[want] {
			t.Errorf("expected error for %s, got %v", want, result.AllMessages())
		}
	}

	if !result.HasWarnings() {
		t.Error("expected warning for a language without rules")
	}
}

func TestValidateWithFile(t *testing.T) {
	t.Parallel()

	result := ValidateWithFile(&config.Config{MinSeverity: "urgent"}, "/tmp/.snipreview.yml")
	if len(result.Errors) != 1 {
		t.Fatalf("expected one error, got %v", result.AllMessages())
	}
	if got := result.Errors[0].Error(); !strings.HasPrefix(got, "/tmp/.snipreview.yml: min_severity: ") {
		t.Errorf("unexpected error text %q", got)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".snipreview.yml"), "min_severity: high\n")

	repo := filepath.Join(outer, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	path, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("expected search to stop at the repository root, found %q", path)
	}
}
