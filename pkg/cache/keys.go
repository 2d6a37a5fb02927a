package cache

// Keyer derives cache keys.
type Keyer interface {
	// SourceKey identifies a fetched remote data document.
	SourceKey(url string) string
	// ArtifactKey identifies one rendered output of a data document.
	ArtifactKey(dataHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every render option that changes the output bytes.
type ArtifactKeyOpts struct {
	Chart       string   `json:"chart"`
	Format      string   `json:"format"`
	View        string   `json:"view,omitempty"`
	Title       string   `json:"title,omitempty"`
	Radius      float64  `json:"radius,omitempty"`
	LabelOffset float64  `json:"label_offset,omitempty"`
	Max         float64  `json:"max,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Palette     []string `json:"palette,omitempty"`
	Locale      string   `json:"locale,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	Version     string   `json:"version,omitempty"`
}

// DefaultKeyer produces "source:<hash>" and "artifact:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) SourceKey(url string) string {
	return hashKey("source", url)
}

func (DefaultKeyer) ArtifactKey(dataHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dataHash, opts)
}
