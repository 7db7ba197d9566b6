// Package binder decodes HTTP request data into Go structs.
//
// Two binders cover the admin API surface: JSON for request bodies and
// Query for URL query strings. Both construct functions of the same
// shape, func(r *http.Request, v any) error, so handlers can treat any
// binder uniformly and wrap its error into their own response envelope.
//
// # JSON bodies
//
// The JSON binder is strict: it rejects unknown fields, trailing data
// after the document, missing or mismatched Content-Type headers and
// bodies over DefaultMaxJSONSize. Every decoded string field is run
// through a sanitisation pipeline (null byte and control character
// removal, whitespace trim) before the caller sees the struct.
//
//	type actionRequest struct {
//	    ActorID string `json:"actor_id"`
//	    Reason  string `json:"reason"`
//	}
//
//	var req actionRequest
//	if err := binder.JSON()(r, &req); err != nil {
//	    // respond 422 with the binding error
//	}
//
// # Query strings
//
// The Query binder maps parameters onto struct fields by `query` tag,
// falling back to the lowercased field name. Repeated parameters and
// comma-separated values both populate slice fields; pointer fields
// stay nil when the parameter is absent.
//
//	type auditQuery struct {
//	    Action string `query:"action"`
//	    Limit  int    `query:"limit"`
//	    Since  string `query:"since"`
//	}
//
// # Error Handling
//
// Binding failures wrap one of the package sentinels:
//
//   - ErrMissingContentType: body binder called without a Content-Type
//   - ErrUnsupportedMediaType: Content-Type is not application/json
//   - ErrFailedToParseJSON: unreadable, oversized or malformed body
//   - ErrFailedToParseQuery: query parameter could not be converted
//
// Callers match with errors.Is and map the sentinel onto their HTTP
// status of choice.
package binder
