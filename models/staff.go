package models

// Staff is a bookable service professional or studio entity from the
// provider directory.
type Staff struct {
	ID        string  `bson:"id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	Address   string  `bson:"address" json:"address"`
	City      string  `bson:"city" json:"city"`
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	Rating    float64 `bson:"rating" json:"rating"`
	Distance  float64 `bson:"distance,omitempty" json:"distance,omitempty"`
	ServiceID string  `bson:"service_id" json:"service_id"`
	ImageURL  string  `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Type      string  `bson:"type" json:"type"` // e.g. "freelancer", "studio"
}
