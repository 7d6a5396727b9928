package widget

// PropType names the value kind a schema entry declares. The set is
// advisory: widgets declare what their configuration UI should offer, but
// SetProperty never checks values against it.
type PropType string

const (
	PropString      PropType = "string"
	PropInteger     PropType = "integer"
	PropFloat       PropType = "float"
	PropBoolean     PropType = "boolean"
	PropColor       PropType = "color"
	PropSelect      PropType = "select"
	PropMultiSelect PropType = "multiselect"
)

// PropertySpec describes one configurable property for UI and advisory
// validation purposes. Min/Max/Step/Options are optional and not every
// widget supplies them.
type PropertySpec struct {
	Type        PropType
	Label       string
	Default     any
	Min, Max    *float64
	Step        float64
	Options     []string
	Description string
}

// Schema maps property keys to their specs.
type Schema map[string]PropertySpec

func limit(v float64) *float64 { return &v }
