package hotels4

import (
	"bytes"
	"strconv"
)

// flexFloat tolerates numeric fields that arrive either as JSON numbers or
// as quoted strings. Anything unparseable decodes to 0 rather than failing
// the whole payload.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

// locationResponse is the payload of the region lookup step.
type locationResponse struct {
	SR []regionEntry `json:"sr"`
}

type regionEntry struct {
	GaiaID      string `json:"gaiaId"`
	RegionNames struct {
		FullName string `json:"fullName"`
	} `json:"regionNames"`
}

// propertiesResponse is the payload of the property listing step.
type propertiesResponse struct {
	Data struct {
		PropertySearch struct {
			Properties []propertyEntry `json:"properties"`
		} `json:"propertySearch"`
	} `json:"data"`
}

// propertyEntry is one hotel result. Score and price are flexFloat because
// the upstream sometimes serializes them as strings.
type propertyEntry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Reviews struct {
		Score flexFloat `json:"score"`
	} `json:"reviews"`
	Price struct {
		Lead struct {
			Amount flexFloat `json:"amount"`
		} `json:"lead"`
	} `json:"price"`
	Neighborhood struct {
		Name string `json:"name"`
	} `json:"neighborhood"`
	Amenities []struct {
		Text string `json:"text"`
	} `json:"amenities"`
	PropertyImage struct {
		Image struct {
			URL string `json:"url"`
		} `json:"image"`
	} `json:"propertyImage"`
}

// listRequest is the body of the property listing step.
type listRequest struct {
	Currency    string `json:"currency"`
	Destination struct {
		RegionID string `json:"regionId"`
	} `json:"destination"`
	CheckInDate          dateParts `json:"checkInDate"`
	CheckOutDate         dateParts `json:"checkOutDate"`
	Rooms                []room    `json:"rooms"`
	ResultsStartingIndex int       `json:"resultsStartingIndex"`
	ResultsSize          int       `json:"resultsSize"`
}

type dateParts struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

type room struct {
	Adults   int        `json:"adults"`
	Children []childAge `json:"children"`
}

type childAge struct {
	Age int `json:"age"`
}
