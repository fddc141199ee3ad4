package request

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"favorites-server/internal/shared/errors"
)

const maxBodyBytes = 1 << 20 // 1 MB

const malformedBodyMessage = "Malformed request body"

// DecodeJSON reads a JSON object body. A missing body, invalid JSON and a
// literal null are all reported as malformed requests.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request) (*T, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var payload *T
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return nil, errors.Application(http.StatusRequestEntityTooLarge, "request body too large")
		}
		return nil, errors.WrapMalformed(malformedBodyMessage, err)
	}

	if payload == nil {
		return nil, errors.Malformed(malformedBodyMessage)
	}

	return payload, nil
}

// PathID parses a non-negative integer path segment. Anything else means the
// route does not exist.
func PathID(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return 0, errors.NotFound("Not found")
	}

	for _, c := range raw {
		if c < '0' || c > '9' {
			return 0, errors.NotFound("Not found")
		}
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NotFound("Not found")
	}
	return id, nil
}
