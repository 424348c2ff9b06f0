package applications

import "time"

// Application is one tracked job application.
type Application struct {
	ID              string
	UserID          string
	JobTitle        string
	Company         string
	ApplicationDate time.Time
	Status          string
	FollowUpDate    *time.Time
	Notes           string
	Feedback        string
	MatchScore      *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Statuses lists the accepted application statuses.
var Statuses = map[string]bool{
	"applied":   true,
	"interview": true,
	"offer":     true,
	"rejected":  true,
	"withdrawn": true,
	"ghosted":   true,
}
