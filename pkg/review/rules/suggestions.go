package rules

import (
	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/review"
)

// Advisor IDs.
const (
	AdvisorModernJS      = "SUG-JS-MODERN"
	AdvisorArrowFuncs    = "SUG-JS-ARROW"
	AdvisorArrayMethods  = "SUG-JS-ARRAY"
	AdvisorComprehension = "SUG-PY-COMPREHENSION"
	AdvisorContextMgr    = "SUG-PY-CONTEXT"
	AdvisorResourceUsage = "SUG-PERF-MEMO"
)

// staticAdvisor emits a fixed suggestion, optionally only when the snippet contains trigger.
type staticAdvisor struct {
	review.BaseAdvisor
	trigger    string
	suggestion review.Suggestion
}

func newStaticAdvisor(id string, languages []string, trigger string, suggestion review.Suggestion) *staticAdvisor {
	return &staticAdvisor{
		BaseAdvisor: review.NewBaseAdvisor(id, languages),
		trigger:     trigger,
		suggestion:  suggestion,
	}
}

// Advise returns the suggestion when there is no trigger or the trigger is present.
func (a *staticAdvisor) Advise(ctx *review.RuleContext) (review.Suggestion, bool) {
	if a.trigger != "" && !ctx.Contains(a.trigger) {
		return review.Suggestion{}, false
	}
	return a.suggestion, true
}

// NewModernJavaScriptAdvisor always recommends optional chaining and nullish coalescing.
func NewModernJavaScriptAdvisor() review.Advisor {
	return newStaticAdvisor(AdvisorModernJS, scriptLanguages, "", review.Suggestion{
		Title:       "Use modern JavaScript features",
		Description: "Optional chaining and nullish coalescing make property access on possibly missing values shorter and safer.",
		Category:    config.SuggestionModernization,
		Example: `// Before
const name = user && user.profile && user.profile.name ? user.profile.name : 'Anonymous';

// After
const name = user?.profile?.name ?? 'Anonymous';`,
	})
}

// NewArrowFunctionsAdvisor recommends arrow functions when the snippet declares functions.
func NewArrowFunctionsAdvisor() review.Advisor {
	return newStaticAdvisor(AdvisorArrowFuncs, scriptLanguages, "function", review.Suggestion{
		Title:       "Consider using arrow functions",
		Description: "Arrow functions are more concise and bind this lexically.",
		Category:    config.SuggestionModernization,
		Example: `// Before
function double(x) {
  return x * 2;
}

// After
const double = (x) => x * 2;`,
	})
}

// NewArrayMethodsAdvisor recommends map/filter/reduce over index loops.
func NewArrayMethodsAdvisor() review.Advisor {
	return newStaticAdvisor(AdvisorArrayMethods, scriptLanguages, "for (", review.Suggestion{
		Title:       "Use array methods instead of loops",
		Description: "map, filter and reduce express the transformation directly and avoid index bookkeeping.",
		Category:    config.SuggestionBestPractices,
		Example: `// Before
const result = [];
for (let i = 0; i < items.length; i++) {
  result.push(items[i] * 2);
}

// After
const result = items.map((item) => item * 2);`,
	})
}

// NewListComprehensionAdvisor always recommends list comprehensions for Python.
func NewListComprehensionAdvisor() review.Advisor {
	return newStaticAdvisor(AdvisorComprehension, pythonLanguages, "", review.Suggestion{
		Title:       "Use list comprehensions",
		Description: "List comprehensions build lists in a single readable expression.",
		Category:    config.SuggestionPythonic,
		Example: `# Before
squares = []
for x in numbers:
    squares.append(x * x)

# After
squares = [x * x for x in numbers]`,
	})
}

// NewContextManagerAdvisor recommends with-blocks when the snippet opens files.
func NewContextManagerAdvisor() review.Advisor {
	return newStaticAdvisor(AdvisorContextMgr, pythonLanguages, "open(", review.Suggestion{
		Title:       "Use context managers for resources",
		Description: "A with statement closes the file even when an exception is raised.",
		Category:    config.SuggestionBestPractices,
		Example: `# Before
f = open("data.txt")
data = f.read()
f.close()

# After
with open("data.txt") as f:
    data = f.read()`,
	})
}

// NewResourceUsageAdvisor always recommends memoizing expensive computations.
func NewResourceUsageAdvisor() review.Advisor {
	return newStaticAdvisor(AdvisorResourceUsage, allLanguages, "", review.Suggestion{
		Title:       "Optimize resource usage",
		Description: "Memoize the results of expensive pure computations instead of recomputing them on every call.",
		Category:    config.SuggestionPerformance,
		Example: `// Before
const total = computeExpensiveTotal(items);

// After
const total = useMemo(() => computeExpensiveTotal(items), [items]);`,
	})
}
