package models

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// NewGeoPoint builds a GeoJSON point from a longitude/latitude pair.
func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Location is a geocoded service address: the resolved point plus the
// free-text address the user typed.
type Location struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
	Address     string    `bson:"address" json:"address"`
}

// Point returns the location as a bare GeoJSON point.
func (l Location) Point() GeoPoint {
	return GeoPoint{Type: l.Type, Coordinates: l.Coordinates}
}
