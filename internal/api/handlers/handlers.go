// Package handlers maps the REST surface onto the facade. Each handler
// resolves the principal once, runs the authz checks with it explicitly,
// and translates taxonomy errors into status codes via httpx.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ecavus/stayhub-backend/internal/apperr"
)

// decodeStrict rejects malformed bodies and unknown fields alike.
func decodeStrict(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid request body", err)
	}
	return nil
}
