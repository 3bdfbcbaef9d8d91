// Package flake owns the persistent registry of tracked flakes: the
// name→entry mapping, its storage file, and the load/mutate/save
// lifecycle of one command invocation.
package flake

// Entry is a named, enable-able reference to a flake directory.
// Disabled entries are kept in the registry but skipped by batch updates.
type Entry struct {
	// Name uniquely identifies the entry within the registry.
	Name string `csv:"name"`
	// Location is the absolute path of the flake directory. It is made
	// absolute when the entry is created and never re-normalized.
	Location string `csv:"location"`
	Enabled  bool   `csv:"enabled"`
}

// StateName renders an enabled flag the way entries are described to the
// user, as "enabled" or "disabled".
func StateName(enabled bool) string {
	if enabled {
		return "enabled"
	}

	return "disabled"
}
