package entities

// ThemeStep is the document root state expected after one click of the theme toggle
type ThemeStep struct {
	Attribute string `json:"attribute" yaml:"attribute"`
	Value     string `json:"value" yaml:"value"`
}
