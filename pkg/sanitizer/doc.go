// Package sanitizer provides small, focused helpers for cleaning free-text
// input before it is stored or logged.
//
// The helpers fall into two groups:
//
//   - Strings: trimming, whitespace normalisation, control character removal
//     and multi-line collapsing (SingleLine).
//
//   - Security: defensive routines that strip content capable of corrupting
//     downstream consumers, such as null bytes.
//
// The package is completely stateless and depends only on the Go standard
// library. All helpers are pure functions that can be freely combined. The
// higher-order Apply and Compose helpers build reusable sanitisation
// pipelines:
//
//	clean := sanitizer.Compose(
//	    sanitizer.RemoveNullBytes,
//	    sanitizer.RemoveControlChars,
//	    sanitizer.Trim,
//	)
//
//	safe := clean("  suspended for non-payment\x00  ") // "suspended for non-payment"
//
// # Usage
//
// Import the package using its module-qualified path:
//
//	import "github.com/schooldesk/schoolkit/pkg/sanitizer"
//
// Request binding runs every decoded string field through such a pipeline,
// and administrative services collapse operator-supplied reasons to a single
// line before they reach the audit trail:
//
//	reason = sanitizer.SingleLine(reason)
//
// # Error handling
//
// None of the helpers returns an error. They always produce a safe result
// from whatever input they receive.
//
// Because there is no global state the helpers are safe for use from
// multiple goroutines concurrently.
package sanitizer
