package geonames

// searchResponse is the raw payload of both the searchJSON and
// findNearbyPlaceNameJSON endpoints. Coordinates arrive as strings.
type searchResponse struct {
	Geonames []geonameEntry `json:"geonames"`
	Status   *statusEntry   `json:"status,omitempty"`
}

// statusEntry is the in-band error envelope. GeoNames reports auth and
// quota problems with HTTP 200 plus this block.
type statusEntry struct {
	Message string `json:"message"`
	Value   int    `json:"value"`
}

// geonameEntry is one place record.
type geonameEntry struct {
	GeonameID   int64  `json:"geonameId"`
	Name        string `json:"name"`
	AdminName1  string `json:"adminName1"`
	CountryName string `json:"countryName"`
	Lat         string `json:"lat"`
	Lng         string `json:"lng"`
	Population  int64  `json:"population"`
}
