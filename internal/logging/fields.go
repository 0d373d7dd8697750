package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldChanged    = "changed"

	// Review fields.
	FieldSnippet  = "snippet"
	FieldLanguage = "language"
	FieldRule     = "rule"
	FieldSeverity = "severity"
	FieldIssues   = "issues"
	FieldKept     = "kept"
	FieldDelay    = "delay"
	FieldSeed     = "seed"
	FieldJobs     = "jobs"
	FieldCached   = "cached"

	// Rule listing fields.
	FieldName        = "name"
	FieldLanguages   = "languages"
	FieldEnabled     = "enabled"
	FieldDescription = "description"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldSnippetsReviewed = "snippets_reviewed"
	FieldIssuesTotal      = "issues_total"
	FieldDuration         = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
