package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is the wire version of the response envelope. Bump it when
// the envelope structure changes in a way clients must detect.
const EnvelopeVersion = 1

// APIEnvelope wraps every response body so clients can rely on a single
// top-level shape: {"v": 1, "success": true, "data": ...} on success and
// {"v": 1, "success": false, "error": "...", "error_detail": {...}} on failure.
type APIEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version     int       `json:"v"`
	Success     bool      `json:"success"`
	Data        any       `json:"data,omitempty"`
	Error       string    `json:"error,omitempty"`
	ErrorDetail *APIError `json:"error_detail,omitempty"`
}

// EnvelopeTransformer wraps handler output in the response envelope.
// Registered on the huma config so it applies to every operation.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	// Already wrapped (e.g. re-entrant transformers).
	if _, ok := v.(APIEnvelope); ok {
		return v, nil
	}

	if isErrorStatus(status) {
		envelope := APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
		}

		switch err := v.(type) {
		case *APIError:
			envelope.Error = err.Message
			envelope.ErrorDetail = err
		case error:
			envelope.Error = err.Error()
		default:
			envelope.Error = "request failed"
		}

		return envelope, nil
	}

	return APIEnvelope{
		Version: EnvelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}

// isErrorStatus reports whether an HTTP status string is 4xx or 5xx.
func isErrorStatus(status string) bool {
	return len(status) > 0 && (status[0] == '4' || status[0] == '5')
}
