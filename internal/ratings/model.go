package ratings

import "time"

// Rating is one user's review of a company. Anonymous ratings keep their
// user_id in storage; it is nulled out only in public views.
type Rating struct {
	ID               string
	UserID           string
	JobApplicationID *string
	CompanyName      string
	Overall          int
	Interview        *int
	WorkLife         *int
	Compensation     *int
	Growth           *int
	Review           string
	Pros             string
	Cons             string
	Anonymous        bool
	CreatedAt        time.Time
}

// CompanyStats aggregates ratings for one company. Means are nil when the
// company has no ratings for that dimension.
type CompanyStats struct {
	CompanyName     string
	Count           int
	AvgOverall      *float64
	AvgInterview    *float64
	AvgWorkLife     *float64
	AvgCompensation *float64
	AvgGrowth       *float64
}

// TopCompany is one row of the top-rated companies report.
type TopCompany struct {
	CompanyName string
	Count       int
	AvgOverall  float64
}
