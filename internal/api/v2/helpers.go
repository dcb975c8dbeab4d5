package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// parseResourceIDFromURL parses a URL path with the format
// "/api/v2/{apiPath}/{resourceID}" and returns the resource ID.
func parseResourceIDFromURL(url, apiPath string) (string, error) {
	url = strings.TrimPrefix(url, fmt.Sprintf("/api/v2/%s", apiPath))

	// Remove empty entries and validate path.
	var resultPath []string
	for _, v := range strings.Split(url, "/") {
		if v != "" {
			resultPath = append(resultPath, v)
		}
	}
	if len(resultPath) > 1 {
		return "", fmt.Errorf("invalid URL path")
	}
	if len(resultPath) == 0 {
		return "", fmt.Errorf("no resource ID set in url path")
	}

	return resultPath[0], nil
}

// parseIntParam parses an optional non-negative integer query parameter. A
// missing parameter returns def.
func parseIntParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative", name)
	}
	return v, nil
}

// requestLogArgs returns the common log arguments for a request, including a
// request ID that is also echoed in the X-Request-ID response header.
func requestLogArgs(w http.ResponseWriter, r *http.Request) []any {
	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set("X-Request-ID", requestID)

	return []any{
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", requestID,
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
