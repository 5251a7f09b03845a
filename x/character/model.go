package character

// createRequest is the payload for POST /api/characters.
type createRequest struct {
	Name          string `json:"name"`
	Age           *int   `json:"age"`
	Role          string `json:"role"`
	Description   string `json:"description"`
	Background    string `json:"background"`
	Personality   string `json:"personality"`
	Appearance    string `json:"appearance"`
	Relationships string `json:"relationships"`
	Motivations   string `json:"motivations"`
}

// updateRequest carries a partial edit. Only keys present in the body
// overwrite the stored record; omitted keys are left untouched.
type updateRequest struct {
	Name          *string `json:"name"`
	Age           *int    `json:"age"`
	Role          *string `json:"role"`
	Description   *string `json:"description"`
	Background    *string `json:"background"`
	Personality   *string `json:"personality"`
	Appearance    *string `json:"appearance"`
	Relationships *string `json:"relationships"`
	Motivations   *string `json:"motivations"`
}

func (r updateRequest) patch() map[string]any {
	patch := map[string]any{}
	if r.Name != nil {
		patch["name"] = *r.Name
	}
	if r.Age != nil {
		patch["age"] = *r.Age
	}
	if r.Role != nil {
		patch["role"] = *r.Role
	}
	if r.Description != nil {
		patch["description"] = *r.Description
	}
	if r.Background != nil {
		patch["background"] = *r.Background
	}
	if r.Personality != nil {
		patch["personality"] = *r.Personality
	}
	if r.Appearance != nil {
		patch["appearance"] = *r.Appearance
	}
	if r.Relationships != nil {
		patch["relationships"] = *r.Relationships
	}
	if r.Motivations != nil {
		patch["motivations"] = *r.Motivations
	}
	return patch
}
