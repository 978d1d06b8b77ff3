package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/klimenko666/dptmptch/internal/common"
)

func decodeJSON(r *http.Request, target any) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return nil
}

// idFromPath extracts a UUID path segment counted from the end of the
// path: 1 is the last segment, 2 the one before it.
func idFromPath(r *http.Request, fromEnd int) (common.UUID, error) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if fromEnd < 1 || fromEnd > len(segments) {
		return "", common.NewError(common.CodeValidation, "invalid id", nil)
	}
	id, err := common.ParseUUID(segments[len(segments)-fromEnd])
	if err != nil {
		return "", common.NewError(common.CodeValidation, "invalid id", err)
	}
	return id, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}
