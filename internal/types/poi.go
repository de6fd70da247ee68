package types

// GeoPoint is a plain lat/lon pair. Unknown coordinates default to 0,0
// rather than being omitted so downstream consumers never see a null.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// POI is the canonical point-of-interest shape every candidate source is
// normalized into. IDs are source-prefixed and stable within one planning run.
type POI struct {
	ID                     string            `json:"id"`
	Name                   string            `json:"name"`
	Category               string            `json:"category"`
	Description            string            `json:"description,omitempty"`
	Location               GeoPoint          `json:"location"`
	AverageDurationMinutes int               `json:"average_duration_minutes"`
	Rating                 float64           `json:"rating"`
	SourceURL              string            `json:"source_url,omitempty"`
	Details                map[string]string `json:"details"` // cost, tips, hours, links
}

// RawCandidate is the loose record shape candidate sources return before
// normalization. Location longitude may arrive under "lon" or "lng"
// depending on the provider.
type RawCandidate struct {
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Description string            `json:"description"`
	Rating      float64           `json:"rating"`
	Location    RawLocation       `json:"location"`
	Details     map[string]string `json:"details"`
}

type RawLocation struct {
	Lat float64  `json:"lat"`
	Lon *float64 `json:"lon,omitempty"`
	Lng *float64 `json:"lng,omitempty"`
}

// Longitude resolves the two provider spellings, defaulting to 0.
func (rl RawLocation) Longitude() float64 {
	if rl.Lon != nil {
		return *rl.Lon
	}
	if rl.Lng != nil {
		return *rl.Lng
	}
	return 0.0
}
