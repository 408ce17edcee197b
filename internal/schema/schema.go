package schema

import (
	"fmt"
	"sort"
)

// Schema describes one entity type: its name, its parent in the type
// hierarchy, and the properties entities of this type may carry. Properties
// declared on an ancestor are inherited.
type Schema struct {
	Name       string
	Parent     string
	Properties map[string]bool
}

// Registry is a closed set of schemas resolved once at startup. It is
// read-only after construction and safe for concurrent use.
type Registry struct {
	schemas map[string]*Schema
}

// Error reports a reference to an unknown schema or an illegal property.
// It signals a data integrity problem upstream and is never retried.
type Error struct {
	Schema   string
	Property string
}

func (e *Error) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("schema %q does not allow property %q", e.Schema, e.Property)
	}
	return fmt.Sprintf("unknown schema %q", e.Schema)
}

// Builtin returns the registry of supported watchlist entity types.
//
// The hierarchy mirrors the upstream data model: Thing is the root,
// LegalEntity covers anything that can hold registrations and identifiers,
// and Person / Organization / Company / Vessel specialise it.
func Builtin() *Registry {
	r := &Registry{schemas: make(map[string]*Schema)}
	r.add("Thing", "", "name", "alias", "country", "address", "notes")
	r.add("LegalEntity", "Thing", "idNumber", "taxNumber", "email", "phone")
	r.add("Person", "LegalEntity", "birthDate", "nationality", "passportNumber", "gender", "title", "position")
	r.add("Organization", "LegalEntity", "registrationNumber", "jurisdiction", "incorporationDate", "program")
	r.add("Company", "Organization", "ticker", "jurisdiction")
	r.add("PublicBody", "Organization")
	r.add("Vessel", "Thing", "imoNumber", "mmsi", "flag", "callSign", "buildDate", "type")
	return r
}

func (r *Registry) add(name, parent string, props ...string) {
	s := &Schema{Name: name, Parent: parent, Properties: make(map[string]bool)}
	for _, p := range props {
		s.Properties[p] = true
	}
	r.schemas[name] = s
}

// Get returns the schema for name, or a *Error when it is not part of the
// closed set.
func (r *Registry) Get(name string) (*Schema, error) {
	s, ok := r.schemas[name]
	if !ok {
		return nil, &Error{Schema: name}
	}
	return s, nil
}

// Allows reports whether entities of the named schema may carry prop,
// directly or via an ancestor.
func (r *Registry) Allows(name, prop string) (bool, error) {
	for name != "" {
		s, ok := r.schemas[name]
		if !ok {
			return false, &Error{Schema: name}
		}
		if s.Properties[prop] {
			return true, nil
		}
		name = s.Parent
	}
	return false, nil
}

// AllProperties returns the full inherited property set of the named schema,
// sorted for deterministic iteration.
func (r *Registry) AllProperties(name string) ([]string, error) {
	set := make(map[string]bool)
	for name != "" {
		s, ok := r.schemas[name]
		if !ok {
			return nil, &Error{Schema: name}
		}
		for p := range s.Properties {
			set[p] = true
		}
		name = s.Parent
	}
	props := make([]string, 0, len(set))
	for p := range set {
		props = append(props, p)
	}
	sort.Strings(props)
	return props, nil
}

// Compatible reports whether two schemas are the same or related by
// ancestry in either direction. A Person query can match a LegalEntity
// candidate and vice versa; a Person can never match a Vessel.
func (r *Registry) Compatible(a, b string) (bool, error) {
	if _, err := r.Get(a); err != nil {
		return false, err
	}
	if _, err := r.Get(b); err != nil {
		return false, err
	}
	return r.isAncestor(a, b) || r.isAncestor(b, a), nil
}

// isAncestor reports whether ancestor is name itself or one of its parents.
func (r *Registry) isAncestor(ancestor, name string) bool {
	for name != "" {
		if name == ancestor {
			return true
		}
		s, ok := r.schemas[name]
		if !ok {
			return false
		}
		name = s.Parent
	}
	return false
}

// Names returns all schema names in the registry, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.schemas))
	for n := range r.schemas {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
