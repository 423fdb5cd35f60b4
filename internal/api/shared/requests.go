package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxRequestBody caps how much of a request body DecodeJSON reads. Every
// payload this API accepts is a small JSON document; anything larger is
// broken or hostile.
const maxRequestBody = 1 << 20 // 1 MiB

// Shared validator instance. The validator caches struct metadata, so a
// single instance is reused across requests.
var validate = validator.New()

// DecodeJSON decodes the request body into v. The body is read through a
// size cap, and content after the first JSON value is rejected.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(v); err != nil {
		return err
	}

	// A second decode must hit EOF; anything else means the body carried
	// more than one value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON value")
	}
	return nil
}

// ValidateRequest validates v. Types that implement their own Validate
// method are asked directly; everything else goes through the struct-tag
// validator.
func ValidateRequest(v interface{}) error {
	if self, ok := v.(interface{ Validate() error }); ok {
		return self.Validate()
	}
	return validate.Struct(v)
}
