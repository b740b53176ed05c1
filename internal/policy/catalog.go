// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd003-policy-catalog R2.
package policy

// Config selects and parameterizes the built-in policies. Zero values
// fall back to defaults; see withDefaults.
type Config struct {
	Enabled []string // Policy names to run, in catalog order; empty = all

	ValueObjectPaths []string // Scope segments for value-object-suffix

	RepositoryPaths         []string // Scope segments for repository-prefix
	RepositoryPrefixes      []string // Recognized technology prefixes
	DefaultRepositoryPrefix string   // Prefix applied when none is recognized

	AbstractPaths []string // Scope segments for abstract-prefix; empty = whole tree

	CommandPaths     []string          // Scope segments for command-verb
	CommandOverrides map[string]string // Literal name overrides, checked first

	ErrorPaths []string // Scope segments for error-suffix
}

// Catalog default scope segments and tables.
var (
	defaultValueObjectPaths = []string{"valueobject", "valueobjects", "value_object", "vo"}

	defaultRepositoryPaths    = []string{"repository", "repositories"}
	defaultRepositoryPrefixes = []string{"Eloquent", "Redis", "Doctrine", "InMemory", "Sql", "Cache", "File"}
	defaultRepositoryPrefix   = "Eloquent"

	defaultCommandPaths = []string{"command", "commands", "usecase", "usecases", "actions"}

	defaultErrorPaths = []string{"error", "errors", "exception", "exceptions"}

	// canonicalVerbs are the verbs a command name may start with and be
	// considered conforming.
	canonicalVerbs = []string{"Find", "Create", "Delete", "Update", "Handle"}

	// verbTable recomposes a recognized leading verb into its canonical
	// form. Verbs absent here fall back to the Handle prefix.
	verbTable = map[string]string{
		"Get":      "Find",
		"Fetch":    "Find",
		"Retrieve": "Find",
		"Make":     "Create",
		"Build":    "Create",
		"Remove":   "Delete",
		"Destroy":  "Delete",
		"Modify":   "Update",
		"Change":   "Update",
	}
)

// withDefaults fills zero-value fields with the catalog defaults.
func (c Config) withDefaults() Config {
	if len(c.ValueObjectPaths) == 0 {
		c.ValueObjectPaths = defaultValueObjectPaths
	}
	if len(c.RepositoryPaths) == 0 {
		c.RepositoryPaths = defaultRepositoryPaths
	}
	if len(c.RepositoryPrefixes) == 0 {
		c.RepositoryPrefixes = defaultRepositoryPrefixes
	}
	if c.DefaultRepositoryPrefix == "" {
		c.DefaultRepositoryPrefix = defaultRepositoryPrefix
	}
	if len(c.CommandPaths) == 0 {
		c.CommandPaths = defaultCommandPaths
	}
	if len(c.ErrorPaths) == 0 {
		c.ErrorPaths = defaultErrorPaths
	}
	return c
}

// Catalog builds the ordered policy list for a run. Order is fixed:
// overlap between policies is resolved by catalog position, so a run is
// deterministic even when scopes are misconfigured to overlap.
//
// Implements: prd003-policy-catalog R2.1-R2.3.
func Catalog(cfg Config) []Policy {
	cfg = cfg.withDefaults()

	all := []Policy{
		&ValueObjectSuffix{Scope: cfg.ValueObjectPaths},
		&RepositoryPrefix{
			Scope:         cfg.RepositoryPaths,
			Prefixes:      cfg.RepositoryPrefixes,
			DefaultPrefix: cfg.DefaultRepositoryPrefix,
		},
		&AbstractPrefix{Scope: cfg.AbstractPaths},
		&CommandVerb{Scope: cfg.CommandPaths, Overrides: cfg.CommandOverrides},
		&ErrorSuffix{Scope: cfg.ErrorPaths},
	}

	if len(cfg.Enabled) == 0 {
		return all
	}

	enabled := make(map[string]bool, len(cfg.Enabled))
	for _, name := range cfg.Enabled {
		enabled[name] = true
	}

	var selected []Policy
	for _, p := range all {
		if enabled[p.Name()] {
			selected = append(selected, p)
		}
	}
	return selected
}
