package scene

// Style is the presentation theme handed to map and form renderers.
// It is a plain value; callers receive copies and cannot change shared state.
type Style struct {
	PrimaryColor    string `json:"primary_color" mapstructure:"primary_color"`
	SecondaryColor  string `json:"secondary_color" mapstructure:"secondary_color"`
	BackgroundColor string `json:"background_color" mapstructure:"background_color"`
	FontFamily      string `json:"font_family" mapstructure:"font_family"`

	CampusIcon     string `json:"campus_icon" mapstructure:"campus_icon"`
	EligibleIcon   string `json:"eligible_icon" mapstructure:"eligible_icon"`
	IneligibleIcon string `json:"ineligible_icon" mapstructure:"ineligible_icon"`

	CircleStrokeColor   string  `json:"circle_stroke_color" mapstructure:"circle_stroke_color"`
	CircleStrokeOpacity float64 `json:"circle_stroke_opacity" mapstructure:"circle_stroke_opacity"`
	CircleStrokeWeight  int     `json:"circle_stroke_weight" mapstructure:"circle_stroke_weight"`
	CircleFillColor     string  `json:"circle_fill_color" mapstructure:"circle_fill_color"`
	CircleFillOpacity   float64 `json:"circle_fill_opacity" mapstructure:"circle_fill_opacity"`

	DefaultZoom int `json:"default_zoom" mapstructure:"default_zoom"`
}

// DefaultStyle returns the stock theme.
func DefaultStyle() Style {
	return Style{
		PrimaryColor:    "#3f51b5",
		SecondaryColor:  "#f50057",
		BackgroundColor: "#f5f5f5",
		FontFamily:      `"Roboto", "Helvetica", "Arial", sans-serif`,

		CampusIcon:     "http://maps.google.com/mapfiles/ms/icons/blue-dot.png",
		EligibleIcon:   "http://maps.google.com/mapfiles/ms/icons/green-dot.png",
		IneligibleIcon: "http://maps.google.com/mapfiles/ms/icons/red-dot.png",

		CircleStrokeColor:   "#3f51b5",
		CircleStrokeOpacity: 0.8,
		CircleStrokeWeight:  2,
		CircleFillColor:     "#3f51b5",
		CircleFillOpacity:   0.1,

		DefaultZoom: 10,
	}
}

// WithDefaults fills empty fields from DefaultStyle.
func (s Style) WithDefaults() Style {
	d := DefaultStyle()
	if s.PrimaryColor == "" {
		s.PrimaryColor = d.PrimaryColor
	}
	if s.SecondaryColor == "" {
		s.SecondaryColor = d.SecondaryColor
	}
	if s.BackgroundColor == "" {
		s.BackgroundColor = d.BackgroundColor
	}
	if s.FontFamily == "" {
		s.FontFamily = d.FontFamily
	}
	if s.CampusIcon == "" {
		s.CampusIcon = d.CampusIcon
	}
	if s.EligibleIcon == "" {
		s.EligibleIcon = d.EligibleIcon
	}
	if s.IneligibleIcon == "" {
		s.IneligibleIcon = d.IneligibleIcon
	}
	if s.CircleStrokeColor == "" {
		s.CircleStrokeColor = d.CircleStrokeColor
	}
	if s.CircleStrokeOpacity == 0 {
		s.CircleStrokeOpacity = d.CircleStrokeOpacity
	}
	if s.CircleStrokeWeight == 0 {
		s.CircleStrokeWeight = d.CircleStrokeWeight
	}
	if s.CircleFillColor == "" {
		s.CircleFillColor = d.CircleFillColor
	}
	if s.CircleFillOpacity == 0 {
		s.CircleFillOpacity = d.CircleFillOpacity
	}
	if s.DefaultZoom == 0 {
		s.DefaultZoom = d.DefaultZoom
	}
	return s
}
