package flake

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
	"github.com/snow-plow/snow-plow/pkg/ui/notify"
)

// StorageFile is the name of the registry file inside the storage directory.
const StorageFile = "config.csv"

const storageDirPerm = 0o755

// LocationChecker validates that a location holds a usable flake before
// it is registered. Satisfied by the nix runner's show operation.
type LocationChecker interface {
	Check(ctx context.Context, location string) error
}

// Registry is the in-memory name→entry mapping backed by a delimited
// storage file. It is loaded once per command invocation, mutated by at
// most one command, and persisted exactly once via Save.
type Registry struct {
	path     string
	entries  map[string]Entry
	notifier *notify.Notifier
}

// Load reads the registry from the storage file under dir, creating the
// directory and an empty file first when absent. Recoverable anomalies in
// the file (duplicate names) are reported as warnings on the notifier.
func Load(dir string, notifier *notify.Notifier) (*Registry, error) {
	path := filepath.Join(dir, StorageFile)

	reg := &Registry{
		path:     path,
		entries:  map[string]Entry{},
		notifier: notifier,
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		err = os.MkdirAll(dir, storageDirPerm)
		if err != nil {
			return nil, fmt.Errorf("create storage directory %s: %w", dir, err)
		}

		file, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create storage file %s: %w", path, err)
		}

		err = file.Close()
		if err != nil {
			return nil, fmt.Errorf("close storage file %s: %w", path, err)
		}

		logrus.WithField("path", path).Debug("initialized empty registry")

		return reg, nil
	}

	if err != nil {
		return nil, fmt.Errorf("stat storage file %s: %w", path, err)
	}

	if info.Size() == 0 {
		return reg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open storage file %s: %w", path, err)
	}
	defer file.Close()

	var records []Entry

	err = gocsv.UnmarshalFile(file, &records)
	if err != nil {
		return nil, fmt.Errorf("parse storage file %s: %w", path, err)
	}

	for _, record := range records {
		if _, ok := reg.entries[record.Name]; ok {
			// First record wins so load order decides deterministically.
			notifier.Warningf("flake %q appears more than once in %s, dropped the record for %q",
				record.Name, path, record.Location)

			continue
		}

		reg.entries[record.Name] = record
	}

	logrus.WithFields(logrus.Fields{
		"path":    path,
		"entries": len(reg.entries),
	}).Debug("registry loaded")

	return reg, nil
}

// Add registers a new flake under name. The location is probed with the
// checker before anything is inserted, and normalized to an absolute path
// on success. New entries start enabled.
func (r *Registry) Add(ctx context.Context, name, location string, checker LocationChecker) error {
	if _, ok := r.entries[name]; ok {
		return fmt.Errorf("flake %q is %w", name, ErrDuplicateName)
	}

	err := checker.Check(ctx, location)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(location)
	if err != nil {
		return fmt.Errorf("resolve path %s: %w", location, err)
	}

	r.entries[name] = Entry{Name: name, Location: abs, Enabled: true}

	return nil
}

// Enable marks the named flake for batch updates.
func (r *Registry) Enable(name string) error {
	return r.setEnabled(name, true)
}

// Disable excludes the named flake from batch updates without removing it.
func (r *Registry) Disable(name string) error {
	return r.setEnabled(name, false)
}

func (r *Registry) setEnabled(name string, enabled bool) error {
	entry, ok := r.entries[name]
	if !ok {
		return fmt.Errorf("flake %q is %w", name, ErrUnknownName)
	}

	if entry.Enabled == enabled {
		r.notifier.Warningf("flake %q is already %s", name, StateName(enabled))

		return nil
	}

	entry.Enabled = enabled
	r.entries[name] = entry

	return nil
}

// Remove deletes the named flake. Removing an absent name is not an
// error, only a warning, so remove is idempotent.
func (r *Registry) Remove(name string) {
	if _, ok := r.entries[name]; !ok {
		r.notifier.Warningf("flake %q does not exist", name)

		return
	}

	delete(r.entries, name)
}

// Get returns the entry for name and whether it exists.
func (r *Registry) Get(name string) (Entry, bool) {
	entry, ok := r.entries[name]

	return entry, ok
}

// Entries returns all entries in unspecified order.
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		entries = append(entries, entry)
	}

	return entries
}

// Names returns all entry names sorted alphabetically, for stable rendering.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Len returns the number of tracked flakes.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Save serializes all entries to a temporary file beside the storage file
// and atomically renames it over the real one, so the storage file is
// never observable in a partially-written state. It must be called
// exactly once per command invocation, after all mutations.
func (r *Registry) Save() error {
	tmp := r.path + ".tmp"

	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temporary storage file %s: %w", tmp, err)
	}

	records := make([]Entry, 0, len(r.entries))
	for _, name := range r.Names() {
		records = append(records, r.entries[name])
	}

	err = gocsv.MarshalFile(&records, file)
	if err != nil {
		_ = file.Close()

		return fmt.Errorf("write temporary storage file %s: %w", tmp, err)
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("close temporary storage file %s: %w", tmp, err)
	}

	err = os.Rename(tmp, r.path)
	if err != nil {
		return fmt.Errorf("replace storage file %s: %w", r.path, err)
	}

	logrus.WithFields(logrus.Fields{
		"path":    r.path,
		"entries": len(records),
	}).Debug("registry saved")

	return nil
}
