package rules

import "github.com/yaklabco/snipreview/pkg/review"

// RegisterAll registers all built-in rules and advisors with the given registry.
// Registration order is report order.
func RegisterAll(registry *review.Registry) {
	// JavaScript / TypeScript rules
	registry.Register(NewConsoleStatementsRule()) // JS001
	registry.Register(NewEffectCleanupRule())     // JS002
	registry.Register(NewHardcodedEndpointRule()) // JS003
	registry.Register(NewLooseEqualityRule())     // JS004
	registry.Register(NewNoEvalRule())            // JS005

	// Python rules
	registry.Register(NewPrintStatementsRule()) // PY001
	registry.Register(NewBareExceptRule())      // PY002
	registry.Register(NewNoneComparisonRule())  // PY003

	// Language independent
	registry.Register(NewMissingCommentsRule()) // GEN001

	registry.RegisterAdvisor(NewModernJavaScriptAdvisor())
	registry.RegisterAdvisor(NewArrowFunctionsAdvisor())
	registry.RegisterAdvisor(NewArrayMethodsAdvisor())
	registry.RegisterAdvisor(NewListComprehensionAdvisor())
	registry.RegisterAdvisor(NewContextManagerAdvisor())
	registry.RegisterAdvisor(NewResourceUsageAdvisor())
}

// RegisterAliases registers the names other linters use for the same checks.
//
// Aliases:
//   - "no-console" -> JS001 (ESLint)
//   - "eqeqeq" -> JS004 (ESLint)
//   - "singleton-comparison" -> PY003 (Pylint)
func RegisterAliases(registry *review.Registry) {
	registry.RegisterAlias("no-console", "JS001")
	registry.RegisterAlias("eqeqeq", "JS004")
	registry.RegisterAlias("singleton-comparison", "PY003")
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(review.DefaultRegistry)
	RegisterAliases(review.DefaultRegistry)
}
