package widget

// FromMap reconstructs a widget from its layout-file representation using
// the two-tier factory seam: built-in types first, then the plugin
// registry by exact name. It returns nil when the type is unknown to both
// tiers — callers decide how to handle the skip.
//
// Position, size, visibility, z-index and update interval are restored
// structurally; the serialized properties map is then re-applied verbatim
// through SetProperty, which is how plugin-defined state survives
// round-trips without this package knowing its shape.
func FromMap(data map[string]any, screenSize int, reg *Registry) Widget {
	typ := asString(data["type"], "")
	if typ == "" {
		return nil
	}

	opts := Options{
		X:          asInt(data["x"], 0),
		Y:          asInt(data["y"], 0),
		Width:      asInt(data["width"], 0),
		Height:     asInt(data["height"], 0),
		ScreenSize: screenSize,
	}

	w := NewByType(typ, opts)
	if w == nil && reg != nil {
		w = reg.Create(typ, opts)
	}
	if w == nil {
		return nil
	}

	w.SetVisible(asBool(data["visible"], true))
	w.SetZIndex(asInt(data["z_index"], 0))
	w.SetUpdateInterval(asInt(data["update_interval"], w.UpdateInterval()))

	for key, value := range asMap(data["properties"]) {
		w.SetProperty(key, value)
	}

	return w
}
