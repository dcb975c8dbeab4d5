package setrepo

import (
	"github.com/hashicorp-forge/hermes-oai/pkg/sequence"
	"github.com/hashicorp-forge/hermes-oai/pkg/setspec"
)

// Set is a named grouping a harvester can filter records by.
type Set struct {
	// Spec is the opaque, URL-safe set identifier.
	Spec string `json:"spec"`

	// Name is the human-readable set name.
	Name string `json:"name"`
}

// ListResult is one window of the combined set sequence.
type ListResult struct {
	// HasMore is true if sets exist beyond this window.
	HasMore bool `json:"hasMore"`

	// Sets are the sets in this window, in listing order.
	Sets []Set `json:"sets"`

	// Total is the combined number of communities and collections at the
	// time of the call.
	Total int `json:"total"`
}

// Project converts a stored entity into a set.
func Project(e sequence.Entity, kind setspec.Kind) Set {
	return Set{
		Spec: setspec.Format(kind, e.Handle),
		Name: e.Name,
	}
}

// projectAll converts entities served by a provider of the given kind.
func projectAll(entities []sequence.Entity, kind setspec.Kind) []Set {
	sets := make([]Set, 0, len(entities))
	for _, e := range entities {
		sets = append(sets, Project(e, kind))
	}
	return sets
}
