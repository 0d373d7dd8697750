// Package rules provides the built-in review rules and advisors for snipreview.
//
// # Rules
//
//   - JavaScript and TypeScript:
//
//   - JS001: console-statements - console.log left in the snippet
//
//   - JS002: effect-cleanup - useEffect without any cleanup return
//
//   - JS003: hardcoded-endpoint - example or localhost API endpoints
//
//   - JS004: loose-equality - == instead of ===
//
//   - JS005: no-eval - eval() usage
//
//   - Python:
//
//   - PY001: print-statements - print() left in the snippet
//
//   - PY002: bare-except - except clause without an exception type
//
//   - PY003: none-comparison - == None instead of is None
//
//   - Any language:
//
//   - GEN001: missing-comments - no // or /* comment anywhere
//
// Rules run in the order RegisterAll registers them, which is also the order
// their issues appear in a report.
//
// # Advisors
//
// Advisors attach improvement suggestions that do not depend on detected issues.
// They are keyed off the snippet language and simple substring checks.
package rules
