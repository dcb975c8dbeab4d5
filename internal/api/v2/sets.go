package api

import (
	"net/http"

	"github.com/hashicorp-forge/hermes-oai/internal/config"
	"github.com/hashicorp-forge/hermes-oai/internal/server"
	"github.com/hashicorp-forge/hermes-oai/pkg/setrepo"
	"github.com/hashicorp-forge/hermes-oai/pkg/setspec"
)

type SetsGetResponse struct {
	Sets    []setrepo.Set `json:"sets"`
	HasMore bool          `json:"hasMore"`
	Total   int           `json:"total"`
	Offset  int           `json:"offset"`
	Length  int           `json:"length"`
}

type SetGetResponse struct {
	Spec   string `json:"spec"`
	Exists bool   `json:"exists"`
}

// SetsHandler lists a window of sets.
func SetsHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logArgs := requestLogArgs(w, r)

		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		defaultLength, maxLength := pageSizes(srv)

		offset, err := parseIntParam(r, "offset", 0)
		if err != nil {
			srv.Logger.Warn("invalid offset",
				append([]any{"error", err}, logArgs...)...)
			http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
			return
		}
		length, err := parseIntParam(r, "length", defaultLength)
		if err != nil {
			srv.Logger.Warn("invalid length",
				append([]any{"error", err}, logArgs...)...)
			http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
			return
		}
		if length > maxLength {
			length = maxLength
		}

		result := srv.Sets.List(r.Context(), offset, length)

		resp := SetsGetResponse{
			Sets:    result.Sets,
			HasMore: result.HasMore,
			Total:   result.Total,
			Offset:  offset,
			Length:  length,
		}
		if resp.Sets == nil {
			resp.Sets = []setrepo.Set{}
		}

		if err := respondJSON(w, http.StatusOK, resp); err != nil {
			srv.Logger.Error("error encoding sets response",
				append([]any{"error", err}, logArgs...)...)
			return
		}

		srv.Logger.Debug("listed sets",
			append([]any{
				"offset", offset,
				"length", length,
				"returned", len(resp.Sets),
				"has_more", resp.HasMore,
			}, logArgs...)...)
	})
}

// SetHandler reports whether a set spec refers to an existing set.
func SetHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logArgs := requestLogArgs(w, r)

		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		spec, err := parseResourceIDFromURL(r.URL.Path, "sets")
		if err != nil {
			srv.Logger.Warn("error parsing set spec from URL",
				append([]any{"error", err}, logArgs...)...)
			http.Error(w, "Set spec not found", http.StatusNotFound)
			return
		}
		logArgs = append(logArgs, "spec", spec)

		parsed, err := setspec.Parse(spec)
		if err != nil {
			srv.Logger.Warn("invalid set spec",
				append([]any{"error", err}, logArgs...)...)
			http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
			return
		}
		logArgs = append(logArgs, "handle", parsed.Handle())

		if !srv.Sets.Exists(r.Context(), parsed.String()) {
			srv.Logger.Debug("set not found", logArgs...)
			http.Error(w, "Set not found", http.StatusNotFound)
			return
		}

		if err := respondJSON(w, http.StatusOK, SetGetResponse{
			Spec:   spec,
			Exists: true,
		}); err != nil {
			srv.Logger.Error("error encoding set response",
				append([]any{"error", err}, logArgs...)...)
		}
	})
}

// pageSizes returns the configured default and maximum listing lengths.
func pageSizes(srv server.Server) (int, int) {
	if srv.Config == nil || srv.Config.Sets == nil {
		return config.DefaultPageSize, config.DefaultMaxPageSize
	}
	return srv.Config.Sets.DefaultPageSize, srv.Config.Sets.MaxPageSize
}
