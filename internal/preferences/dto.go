package preferences

import "time"

type createRequest struct {
	Title       string   `json:"title"`
	Industry    string   `json:"industry"`
	Location    string   `json:"location"`
	WorkMode    string   `json:"workMode"`
	MinSalary   *int64   `json:"minSalary"`
	MaxSalary   *int64   `json:"maxSalary"`
	CompanySize string   `json:"companySize"`
	Keywords    []string `json:"keywords"`
}

type updateRequest struct {
	Title       *string  `json:"title"`
	Industry    *string  `json:"industry"`
	Location    *string  `json:"location"`
	WorkMode    *string  `json:"workMode"`
	MinSalary   *int64   `json:"minSalary"`
	MaxSalary   *int64   `json:"maxSalary"`
	CompanySize *string  `json:"companySize"`
	Keywords    []string `json:"keywords"`
}

// PreferenceResponse is the outward-facing representation of a preference
// version.
type PreferenceResponse struct {
	PreferenceID string    `json:"preferenceId"`
	Title        string    `json:"title"`
	Industry     string    `json:"industry,omitempty"`
	Location     string    `json:"location,omitempty"`
	WorkMode     string    `json:"workMode,omitempty"`
	MinSalary    *int64    `json:"minSalary,omitempty"`
	MaxSalary    *int64    `json:"maxSalary,omitempty"`
	CompanySize  string    `json:"companySize,omitempty"`
	Keywords     []string  `json:"keywords"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toResponse(pref Preference) PreferenceResponse {
	keywords := pref.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return PreferenceResponse{
		PreferenceID: pref.ID,
		Title:        pref.Title,
		Industry:     pref.Industry,
		Location:     pref.Location,
		WorkMode:     pref.WorkMode,
		MinSalary:    pref.MinSalary,
		MaxSalary:    pref.MaxSalary,
		CompanySize:  pref.CompanySize,
		Keywords:     keywords,
		IsActive:     pref.IsActive,
		CreatedAt:    pref.CreatedAt,
	}
}
