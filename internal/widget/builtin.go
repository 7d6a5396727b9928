package widget

// builtinFactories is the first tier of the widget factory seam: type name
// to constructor for every built-in widget. The plugin registry is the
// second tier.
var builtinFactories = map[string]func(Options) Widget{
	TypeClock:       func(o Options) Widget { return NewClock(o) },
	TypeWeather:     func(o Options) Widget { return NewWeather(o) },
	TypeDate:        func(o Options) Widget { return NewDate(o) },
	TypeCountdown:   func(o Options) Widget { return NewCountdown(o) },
	TypeStopwatch:   func(o Options) Widget { return NewStopwatch(o) },
	TypeSystemStats: func(o Options) Widget { return NewSystemStats(o) },
	TypeSimpleText:  func(o Options) Widget { return NewSimpleText(o) },
	TypeProgressBar: func(o Options) Widget { return NewProgressBar(o) },
}

// NewByType constructs a built-in widget by type name, or nil when the name
// is not a built-in.
func NewByType(typ string, opts Options) Widget {
	if factory, ok := builtinFactories[typ]; ok {
		return factory(opts)
	}
	return nil
}

// BuiltinTypes lists the built-in widget type names.
func BuiltinTypes() []string {
	types := make([]string, 0, len(builtinFactories))
	for typ := range builtinFactories {
		types = append(types, typ)
	}
	return types
}

// builtinPlugins returns plugin registrations for every built-in widget so
// they are discoverable through the registry like external types.
func builtinPlugins() []Plugin {
	meta := func(name, desc, category string) Metadata {
		return Metadata{
			Name:        name,
			Description: desc,
			Version:     "1.0.0",
			Author:      "pixelmat",
			Category:    category,
		}
	}
	return []Plugin{
		NewPlugin(meta(TypeClock, "Displays the current time.", "Time"),
			func(o Options) Widget { return NewClock(o) }),
		NewPlugin(meta(TypeWeather, "Displays the current weather.", "Weather"),
			func(o Options) Widget { return NewWeather(o) }),
		NewPlugin(meta(TypeDate, "Displays the current date.", "Time"),
			func(o Options) Widget { return NewDate(o) }),
		NewPlugin(meta(TypeCountdown, "Counts down to a specific date and time.", "Time"),
			func(o Options) Widget { return NewCountdown(o) }),
		NewPlugin(meta(TypeStopwatch, "A simple stopwatch with start/stop/reset.", "Utility"),
			func(o Options) Widget { return NewStopwatch(o) }),
		NewPlugin(meta(TypeSystemStats, "Displays CPU, memory and disk usage.", "System"),
			func(o Options) Widget { return NewSystemStats(o) }),
		NewPlugin(meta(TypeSimpleText, "Displays custom text.", "Display"),
			func(o Options) Widget { return NewSimpleText(o) }),
		NewPlugin(meta(TypeProgressBar, "Displays a configurable progress bar.", "Display"),
			func(o Options) Widget { return NewProgressBar(o) }),
	}
}
