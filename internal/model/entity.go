package model

import (
	"sort"

	"github.com/watchlist-screener/internal/schema"
)

// Entity is a schema-tagged record of multi-valued properties describing a
// person, organization, vessel or similar subject. Entities are immutable
// for the duration of a match operation; the engine never mutates them.
type Entity struct {
	ID         string              `json:"id"`
	Schema     string              `json:"schema"`
	Properties map[string][]string `json:"properties"`
}

// NewEntity validates the schema reference and every property name against
// the registry before returning the entity. Queries constructed from caller
// input go through the same path; required-ness is not enforced, any subset
// of properties may be empty.
func NewEntity(reg *schema.Registry, id, schemaName string, props map[string][]string) (*Entity, error) {
	if _, err := reg.Get(schemaName); err != nil {
		return nil, err
	}
	for name := range props {
		ok, err := reg.Allows(schemaName, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &schema.Error{Schema: schemaName, Property: name}
		}
	}
	return &Entity{ID: id, Schema: schemaName, Properties: props}, nil
}

// Values returns the values recorded for prop, nil when unset.
func (e *Entity) Values(prop string) []string {
	if e.Properties == nil {
		return nil
	}
	return e.Properties[prop]
}

// Gather collects the values of several property domains into one sequence,
// in deterministic property order.
func (e *Entity) Gather(props ...string) []string {
	sorted := append([]string(nil), props...)
	sort.Strings(sorted)
	var out []string
	for _, p := range sorted {
		out = append(out, e.Values(p)...)
	}
	return out
}

// Select returns the values of the given properties keyed by property name,
// omitting properties with no values.
func (e *Entity) Select(props ...string) map[string][]string {
	out := make(map[string][]string, len(props))
	for _, p := range props {
		if vs := e.Values(p); len(vs) > 0 {
			out[p] = vs
		}
	}
	return out
}

// Has reports whether the entity carries at least one value for prop.
func (e *Entity) Has(prop string) bool {
	return len(e.Values(prop)) > 0
}
