package domain

import "errors"

var ErrStreetNotFound = errors.New("street not found")
var ErrDistrictNotFound = errors.New("district not found")

// City is the root of the geographic hierarchy.
type City struct {
	ID   string `json:"id" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
}

// District belongs to a city.
type District struct {
	ID     string `json:"id" bson:"_id,omitempty"`
	Name   string `json:"name" bson:"name"`
	CityID string `json:"city_id" bson:"city_id"`
}

// Street belongs to a district; accounts and reports reference streets.
type Street struct {
	ID         string `json:"id" bson:"_id,omitempty"`
	Name       string `json:"name" bson:"name"`
	DistrictID string `json:"district_id" bson:"district_id"`
}
