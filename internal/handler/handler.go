// Package handler contains the HTTP layer: request decoding, calling
// into the services, and turning their results into JSON responses.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/bookboxapp/bookbox/internal/validation"
)

// maxBodyBytes caps JSON request bodies. Image uploads have their own
// limit in the validation package.
const maxBodyBytes = 1 << 20 // 1 MB

// decodeJSON reads and validates a request body into dst. Struct tags
// on dst drive the validation; failures come back as validation errors
// so the response layer maps them to 400.
func decodeJSON(r *http.Request, v *validation.RequestValidator, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &validation.Error{Message: "request body is empty"}
		}
		return &validation.Error{Message: "invalid request body: " + err.Error()}
	}

	return v.Validate(dst)
}
