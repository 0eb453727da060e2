// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError records which operation failed, on which path, and what the
// user can do about it. The catalog in issue.go holds Markdown help cards for
// failures that need more than a one-line hint (missing archive utilities,
// missing editor, broken configuration), rendered with glamour.
package issue
