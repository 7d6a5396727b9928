package widget

// Metadata identifies a widget plugin. Name doubles as the widget type name
// used in layout files, so it must be unique across registered plugins.
type Metadata struct {
	Name         string
	Description  string
	Version      string
	Author       string
	Category     string
	Dependencies []string
}

// Plugin is the contract an externally registered widget type satisfies:
// identification, a factory, and an advisory property schema for
// configuration UIs.
type Plugin interface {
	Metadata() Metadata
	Create(opts Options) Widget
	PropertySchema() Schema
}

// funcPlugin adapts a constructor function to the Plugin interface. The
// built-in widgets register through it; external plugin modules may use
// NewPlugin for the same convenience.
type funcPlugin struct {
	meta   Metadata
	create func(Options) Widget
}

// NewPlugin wraps a widget constructor and its metadata as a Plugin.
func NewPlugin(meta Metadata, create func(Options) Widget) Plugin {
	return &funcPlugin{meta: meta, create: create}
}

func (p *funcPlugin) Metadata() Metadata         { return p.meta }
func (p *funcPlugin) Create(opts Options) Widget { return p.create(opts) }
func (p *funcPlugin) PropertySchema() Schema     { return p.create(Options{}).PropertySchema() }
