package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/snipreview/pkg/config"
)

// envVarPrefix is the prefix for all snipreview environment variables.
const envVarPrefix = "SNIPREVIEW_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeUint
	envTypeDuration
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"MIN_SEVERITY":  {field: "min_severity", typ: envTypeString, description: "Minimum severity: low, medium, high, or critical"},
	"SECURITY_SCAN": {field: "security_scan", typ: envTypeBool, description: "Add the probabilistic security finding: true or false"},
	"LATENCY":       {field: "latency", typ: envTypeDuration, description: "Modeled analysis delay per snippet (e.g. 2s)"},
	"SEED":          {field: "seed", typ: envTypeUint, description: "Random seed for reproducible scores"},
	"LANGUAGE":      {field: "language", typ: envTypeString, description: "Force the language of every snippet"},
	"JOBS":          {field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	"FORMAT":        {field: "format", typ: envTypeString, description: "Output format: text, json, sarif, or summary"},
	"IGNORE":        {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SNIPREVIEW_ (e.g., SNIPREVIEW_SEED).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, envSuffix := range sortedEnvSuffixes() {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[envSuffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func sortedEnvSuffixes() []string {
	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeUint:
		u, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unsigned integer for %s: %q", envVar, value)
		}
		return setUintField(cfg, mapping.field, u)
	case envTypeDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %q", envVar, value)
		}
		return setDurationField(cfg, mapping.field, d)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "min_severity":
		cfg.MinSeverity = config.Severity(strings.ToLower(value))
	case "language":
		cfg.Language = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "security_scan":
		cfg.SecurityScan = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setUintField(cfg *config.Config, field string, value uint64) error {
	switch field {
	case "seed":
		cfg.Seed = &value
	default:
		return fmt.Errorf("unknown unsigned field: %s", field)
	}
	return nil
}

func setDurationField(cfg *config.Config, field string, value time.Duration) error {
	switch field {
	case "latency":
		cfg.Latency = value
	default:
		return fmt.Errorf("unknown duration field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
