package plot

// createRequest is the payload for POST /api/plots.
// The canonical plot shape is title/chapter/type/...; an earlier
// description/beginning/middle/end draft is superseded and not accepted.
type createRequest struct {
	Title        string `json:"title"`
	Chapter      string `json:"chapter"`
	Type         string `json:"type"`
	Description  string `json:"description"`
	Timeframe    string `json:"timeframe"`
	Location     string `json:"location"`
	Characters   string `json:"characters"`
	Significance string `json:"significance"`
	Conflicts    string `json:"conflicts"`
	Resolution   string `json:"resolution"`
	Notes        string `json:"notes"`
	ImageURL     string `json:"imageUrl"`
}

// updateRequest carries a partial edit; only present keys overwrite.
type updateRequest struct {
	Title        *string `json:"title"`
	Chapter      *string `json:"chapter"`
	Type         *string `json:"type"`
	Description  *string `json:"description"`
	Timeframe    *string `json:"timeframe"`
	Location     *string `json:"location"`
	Characters   *string `json:"characters"`
	Significance *string `json:"significance"`
	Conflicts    *string `json:"conflicts"`
	Resolution   *string `json:"resolution"`
	Notes        *string `json:"notes"`
	ImageURL     *string `json:"imageUrl"`
}

func (r updateRequest) patch() map[string]any {
	patch := map[string]any{}
	if r.Title != nil {
		patch["title"] = *r.Title
	}
	if r.Chapter != nil {
		patch["chapter"] = *r.Chapter
	}
	if r.Type != nil {
		patch["type"] = *r.Type
	}
	if r.Description != nil {
		patch["description"] = *r.Description
	}
	if r.Timeframe != nil {
		patch["timeframe"] = *r.Timeframe
	}
	if r.Location != nil {
		patch["location"] = *r.Location
	}
	if r.Characters != nil {
		patch["characters"] = *r.Characters
	}
	if r.Significance != nil {
		patch["significance"] = *r.Significance
	}
	if r.Conflicts != nil {
		patch["conflicts"] = *r.Conflicts
	}
	if r.Resolution != nil {
		patch["resolution"] = *r.Resolution
	}
	if r.Notes != nil {
		patch["notes"] = *r.Notes
	}
	if r.ImageURL != nil {
		patch["image_url"] = *r.ImageURL
	}
	return patch
}
