package enforcement

import (
	"net/http"

	"github.com/schooldesk/schoolkit/core"
	"github.com/schooldesk/schoolkit/pkg/binder"
)

var (
	jsonBinder  = binder.JSON()
	queryBinder = binder.Query()
)

// bindBody decodes a JSON request body. An absent body is valid; every
// body field has a header fallback or a zero-value meaning.
func bindBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := jsonBinder(r, v); err != nil {
		return core.NewValidationError("body", err.Error())
	}
	return nil
}

func bindQuery(r *http.Request, v any) error {
	if err := queryBinder(r, v); err != nil {
		return core.NewValidationError("query", err.Error())
	}
	return nil
}
