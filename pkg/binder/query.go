package binder

import "net/http"

// Query creates a query string binder function.
//
// Example:
//
//	type ListParams struct {
//	    Search string `query:"q"`
//	    Page   int    `query:"page"`
//	    Limit  int    `query:"limit"`
//	}
//
//	var params ListParams
//	if err := binder.Query()(r, &params); err != nil {
//	    // handle binding error
//	}
//
// Fields without a query tag bind by lowercased field name; use `query:"-"`
// to skip a field. Repeated parameters and comma-separated values both
// populate slice fields.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}
