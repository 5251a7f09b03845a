package place

// createRequest is the payload for POST /api/places.
type createRequest struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	Significance string `json:"significance"`
	Atmosphere   string `json:"atmosphere"`
	History      string `json:"history"`
	Inhabitants  string `json:"inhabitants"`
	Features     string `json:"features"`
	ImageURL     string `json:"imageUrl"`
}

// updateRequest carries a partial edit; only present keys overwrite.
type updateRequest struct {
	Name         *string `json:"name"`
	Type         *string `json:"type"`
	Description  *string `json:"description"`
	Location     *string `json:"location"`
	Significance *string `json:"significance"`
	Atmosphere   *string `json:"atmosphere"`
	History      *string `json:"history"`
	Inhabitants  *string `json:"inhabitants"`
	Features     *string `json:"features"`
	ImageURL     *string `json:"imageUrl"`
}

func (r updateRequest) patch() map[string]any {
	patch := map[string]any{}
	if r.Name != nil {
		patch["name"] = *r.Name
	}
	if r.Type != nil {
		patch["type"] = *r.Type
	}
	if r.Description != nil {
		patch["description"] = *r.Description
	}
	if r.Location != nil {
		patch["location"] = *r.Location
	}
	if r.Significance != nil {
		patch["significance"] = *r.Significance
	}
	if r.Atmosphere != nil {
		patch["atmosphere"] = *r.Atmosphere
	}
	if r.History != nil {
		patch["history"] = *r.History
	}
	if r.Inhabitants != nil {
		patch["inhabitants"] = *r.Inhabitants
	}
	if r.Features != nil {
		patch["features"] = *r.Features
	}
	if r.ImageURL != nil {
		patch["image_url"] = *r.ImageURL
	}
	return patch
}
