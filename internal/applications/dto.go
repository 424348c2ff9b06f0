package applications

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

type createRequest struct {
	JobTitle        string   `json:"jobTitle"`
	Company         string   `json:"company"`
	ApplicationDate string   `json:"applicationDate"`
	Status          string   `json:"status"`
	FollowUpDate    *string  `json:"followUpDate"`
	Notes           string   `json:"notes"`
	MatchScore      *float64 `json:"matchScore"`
}

type updateRequest struct {
	JobTitle        *string  `json:"jobTitle"`
	Company         *string  `json:"company"`
	ApplicationDate *string  `json:"applicationDate"`
	Status          *string  `json:"status"`
	FollowUpDate    *string  `json:"followUpDate"`
	Notes           *string  `json:"notes"`
	Feedback        *string  `json:"feedback"`
	MatchScore      *float64 `json:"matchScore"`
}

// ApplicationResponse is the outward-facing representation of an
// application.
type ApplicationResponse struct {
	ApplicationID   string    `json:"applicationId"`
	JobTitle        string    `json:"jobTitle"`
	Company         string    `json:"company"`
	ApplicationDate string    `json:"applicationDate"`
	Status          string    `json:"status"`
	FollowUpDate    *string   `json:"followUpDate,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Feedback        string    `json:"feedback,omitempty"`
	MatchScore      *float64  `json:"matchScore"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toResponse(app Application) ApplicationResponse {
	resp := ApplicationResponse{
		ApplicationID:   app.ID,
		JobTitle:        app.JobTitle,
		Company:         app.Company,
		ApplicationDate: app.ApplicationDate.Format(dateLayout),
		Status:          app.Status,
		Notes:           app.Notes,
		Feedback:        app.Feedback,
		MatchScore:      app.MatchScore,
		CreatedAt:       app.CreatedAt,
		UpdatedAt:       app.UpdatedAt,
	}
	if app.FollowUpDate != nil {
		s := app.FollowUpDate.Format(dateLayout)
		resp.FollowUpDate = &s
	}
	return resp
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", ErrInvalidInput, raw)
	}
	return t, nil
}
