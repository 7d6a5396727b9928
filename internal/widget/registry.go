package widget

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"plugin"
	"sort"
	"sync"
)

// Registry maps widget type names to their plugins. It is constructed
// explicitly at startup and passed to whoever needs to create widgets;
// there is no hidden process-global instance. NewRegistry pre-registers the
// built-in widget types, preserving load-once, query-many semantics.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	logger  *slog.Logger
}

// NewRegistry creates a registry with all built-in widget types
// registered.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		plugins: make(map[string]Plugin),
		logger:  logger,
	}
	for _, p := range builtinPlugins() {
		r.Register(p)
	}
	return r
}

// Register adds a plugin under its metadata name. Registering the same
// (name, version) pair twice is a no-op returning false. A registration
// with the same name but a different version silently replaces the
// previous one: last full registration wins.
func (r *Registry) Register(p Plugin) bool {
	meta := p.Metadata()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.plugins[meta.Name]; ok {
		if existing.Metadata().Version == meta.Version {
			r.logger.Warn("plugin already registered",
				"name", meta.Name, "version", meta.Version)
			return false
		}
	}

	r.plugins[meta.Name] = p
	r.logger.Info("registered plugin",
		"name", meta.Name, "version", meta.Version, "author", meta.Author)
	return true
}

// Unregister removes a plugin by name. Unknown names are ignored.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.plugins, name)
}

// Create builds a widget of the named type, or nil when the name is
// unknown. Callers must nil-check.
func (r *Registry) Create(name string, opts Options) Widget {
	r.mu.RLock()
	p, ok := r.plugins[name]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return p.Create(opts)
}

// Plugin returns the plugin registered under name, or nil.
func (r *Registry) Plugin(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.plugins[name]
}

// List returns metadata for every registered plugin, sorted by name.
func (r *Registry) List() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Metadata, 0, len(r.plugins))
	for _, p := range r.plugins {
		out = append(out, p.Metadata())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ByCategory returns every plugin whose metadata category matches.
func (r *Registry) ByCategory(category string) []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Plugin
	for _, p := range r.plugins {
		if p.Metadata().Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Types returns every registered widget type name, sorted.
func (r *Registry) Types() []string {
	metas := r.List()
	types := make([]string, len(metas))
	for i, m := range metas {
		types[i] = m.Name
	}
	return types
}

// LoadDirectory scans dir for compiled plugin modules (.so files built with
// -buildmode=plugin) and registers each one. A module that fails to open,
// lacks the expected symbol, or registers a duplicate is logged and
// skipped; one bad module never aborts discovery of the rest. A missing
// directory is not an error.
func (r *Registry) LoadDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read plugin directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".so" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := r.loadModule(path); err != nil {
			r.logger.Warn("skipping plugin module", "path", path, "error", err)
		}
	}
	return nil
}

// loadModule opens one plugin module and registers the Plugin it exports.
// Modules export either a `Plugin` variable satisfying the Plugin
// interface or a `New` constructor returning one.
func (r *Registry) loadModule(path string) error {
	mod, err := plugin.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open: %w", err)
	}

	var p Plugin
	if sym, err := mod.Lookup("Plugin"); err == nil {
		switch v := sym.(type) {
		case Plugin:
			p = v
		case *Plugin:
			p = *v
		}
	}
	if p == nil {
		sym, err := mod.Lookup("New")
		if err != nil {
			return fmt.Errorf("no Plugin variable or New constructor exported")
		}
		ctor, ok := sym.(func() Plugin)
		if !ok {
			return fmt.Errorf("New has unexpected signature %T", sym)
		}
		p = ctor()
	}

	if !r.Register(p) {
		return fmt.Errorf("duplicate plugin %s v%s",
			p.Metadata().Name, p.Metadata().Version)
	}
	return nil
}
