package widget

// RecordType tags a render record with the drawing primitive it describes.
type RecordType string

const (
	RecordText        RecordType = "text"
	RecordRectangle   RecordType = "rectangle"
	RecordCircle      RecordType = "circle"
	RecordProgressBar RecordType = "progress_bar"
	RecordSystemStats RecordType = "system_stats"
)

// Stat is a single labeled percentage in a system_stats record. Stats are
// ordered so bars render in the configured metric order.
type Stat struct {
	Label string
	Value float64
}

// Record is the tagged payload a widget hands to the render pipeline. It is
// the sole channel between widgets and rendering: the pipeline never
// introspects widget internals. Only the fields relevant to the record's
// Type are meaningful; the rest stay zero.
type Record struct {
	Type RecordType

	X, Y int

	// text
	Text       string
	Color      RGB
	Background *RGB

	// rectangle / circle
	X2, Y2 int
	Radius int
	Filled bool

	// progress_bar
	Width, Height  int
	Progress       float64
	Foreground     RGB
	BorderColor    RGB
	ShowPercentage bool

	// system_stats
	Stats []Stat

	// weather text records carry the WMO weather code when available so
	// the pipeline can draw a condition icon next to the reading.
	WeatherCode *int
	ShowIcon    bool
}
