// Package criteria holds the immutable table of job roles and their required terms.
package criteria

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Definition describes a role as written in configuration.
type Definition struct {
	Name      string   `mapstructure:"name"`
	Skills    []string `mapstructure:"skills"`
	Languages []string `mapstructure:"languages"`
}

// Role is a validated, read-only set of requirements.
type Role struct {
	name      string
	skills    []string
	languages []string
}

func (r Role) Name() string { return r.name }

// Skills returns the required skill terms in definition order.
func (r Role) Skills() []string { return append([]string(nil), r.skills...) }

// Languages returns the required language/tool terms in definition order.
func (r Role) Languages() []string { return append([]string(nil), r.languages...) }

// Registry maps role names to their criteria. It is never modified after New returns.
type Registry struct {
	order []string
	roles map[string]Role
}

// New validates every definition and builds the registry.
// A role without skills or languages is rejected with a *DefinitionError.
func New(defs ...Definition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, &DefinitionError{Reason: "no roles defined"}
	}

	reg := &Registry{
		order: make([]string, 0, len(defs)),
		roles: make(map[string]Role, len(defs)),
	}

	for _, def := range defs {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			return nil, &DefinitionError{Reason: "role name is empty"}
		}
		if _, ok := reg.roles[name]; ok {
			return nil, &DefinitionError{Role: name, Reason: "role is defined more than once"}
		}

		role := Role{
			name:      name,
			skills:    NormalizeTerms(def.Skills),
			languages: NormalizeTerms(def.Languages),
		}
		if len(role.skills) == 0 {
			return nil, &DefinitionError{Role: name, Reason: "skill set is empty"}
		}
		if len(role.languages) == 0 {
			return nil, &DefinitionError{Role: name, Reason: "language set is empty"}
		}

		reg.order = append(reg.order, name)
		reg.roles[name] = role
	}

	return reg, nil
}

// MustDefault returns the registry built from Defaults.
func MustDefault() *Registry {
	reg, err := New(Defaults()...)
	if err != nil {
		panic(err)
	}
	return reg
}

// Lookup returns the role with the given name.
func (r *Registry) Lookup(name string) (Role, bool) {
	role, ok := r.roles[name]
	return role, ok
}

// Names lists role names in definition order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Len() int {
	return len(r.order)
}

// NormalizeTerms lower-cases and trims terms, dropping blanks and duplicates.
func NormalizeTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}

// Decode converts a raw configuration value (a list of maps) into definitions.
func Decode(raw any) ([]Definition, error) {
	if raw == nil {
		return nil, nil
	}

	var defs []Definition
	if err := mapstructure.Decode(raw, &defs); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}

	return defs, nil
}

// Defaults returns the built-in roles.
func Defaults() []Definition {
	return []Definition{
		{
			Name:      "Developer",
			Skills:    []string{"web development", "problem solving", "html", "css", "communication"},
			Languages: []string{"python", "java", "javascript"},
		},
		{
			Name:      "Data Analyst",
			Skills:    []string{"data analysis", "machine learning", "excel", "visualization"},
			Languages: []string{"python", "r", "sql"},
		},
		{
			Name:      "Manager",
			Skills:    []string{"leadership", "project management", "communication"},
			Languages: []string{"python", "excel"},
		},
	}
}
