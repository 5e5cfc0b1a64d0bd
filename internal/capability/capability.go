package capability

import (
	"fmt"
	"slices"
	"strings"
)

// Variant identifies one optional API-client configuration.
type Variant string

const (
	None       Variant = "none"
	Axios      Variant = "axios"
	ReactQuery Variant = "react-query"
	GraphQL    Variant = "graphql"
)

// FileCopy is a source file in the optional template area and the path it
// is written to, both slash-separated. Dest is relative to the project root.
type FileCopy struct {
	Source string
	Dest   string
}

// Dependency is a package name with its version constraint.
type Dependency struct {
	Name       string
	Constraint string
}

// Module is the static bundle for one Variant.
type Module struct {
	Title        string
	Description  string
	Dirs         []string
	Files        []FileCopy
	Dependencies []Dependency
}

// All returns every variant in menu order, None first.
func All() []Variant {
	return []Variant{None, Axios, ReactQuery, GraphQL}
}

// modules maps each variant to its bundle. None has no entry.
var modules = map[Variant]Module{
	Axios: {
		Title:       "Axios",
		Description: "Axios client with a typed example service",
		Dirs:        []string{"src/lib", "src/services"},
		Files: []FileCopy{
			{Source: "api-clients/axios-setup.ts", Dest: "src/lib/api-client.ts"},
			{Source: "api-clients/example-service.ts", Dest: "src/services/user-service.ts"},
		},
		Dependencies: []Dependency{
			{Name: "axios", Constraint: "^1.7.9"},
		},
	},
	ReactQuery: {
		Title:       "React Query",
		Description: "Axios client plus TanStack Query provider and hooks",
		Dirs:        []string{"src/lib", "src/services", "src/providers", "src/hooks"},
		Files: []FileCopy{
			{Source: "api-clients/axios-setup.ts", Dest: "src/lib/api-client.ts"},
			{Source: "api-clients/example-service.ts", Dest: "src/services/user-service.ts"},
			{Source: "api-clients/query-provider.tsx", Dest: "src/providers/query-provider.tsx"},
			{Source: "api-clients/example-hook.ts", Dest: "src/hooks/use-users.ts"},
		},
		Dependencies: []Dependency{
			{Name: "axios", Constraint: "^1.7.9"},
			{Name: "@tanstack/react-query", Constraint: "^5.62.11"},
			{Name: "@tanstack/react-query-devtools", Constraint: "^5.62.11"},
		},
	},
	GraphQL: {
		Title:       "GraphQL",
		Description: "Apollo Client with a GraphQL example service",
		Dirs:        []string{"src/lib", "src/services"},
		Files: []FileCopy{
			{Source: "api-clients/apollo-setup.ts", Dest: "src/lib/apollo-client.ts"},
			{Source: "api-clients/example-graphql-service.ts", Dest: "src/services/user-service.ts"},
		},
		Dependencies: []Dependency{
			{Name: "@apollo/client", Constraint: "^3.12.4"},
			{Name: "graphql", Constraint: "^16.10.0"},
		},
	},
}

// Parse converts a string to a Variant, returning false if invalid. The
// empty string parses as None.
func Parse(s string) (Variant, bool) {
	v := Variant(strings.TrimSpace(s))
	if v == "" {
		return None, true
	}
	if slices.Contains(All(), v) {
		return v, true
	}
	return "", false
}

// Lookup returns the module for v. None and unknown variants report false.
func Lookup(v Variant) (Module, bool) {
	m, ok := modules[v]
	return m, ok
}

// Title returns the human-readable name of v.
func (v Variant) Title() string {
	if v == None {
		return "None"
	}
	if m, ok := modules[v]; ok {
		return m.Title
	}
	return string(v)
}

// Validate reports an error for a variant outside the closed set.
func (v Variant) Validate() error {
	if _, ok := Parse(string(v)); !ok {
		return fmt.Errorf("unknown API client %q (valid: %s)", v, strings.Join(names(), ", "))
	}
	return nil
}

func names() []string {
	var out []string
	for _, v := range All() {
		out = append(out, string(v))
	}
	return out
}
