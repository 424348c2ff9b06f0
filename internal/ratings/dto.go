package ratings

import "time"

type createRequest struct {
	CompanyName      string  `json:"companyName"`
	JobApplicationID *string `json:"jobApplicationId"`
	OverallRating    int     `json:"overallRating"`
	InterviewRating  *int    `json:"interviewRating"`
	WorkLifeRating   *int    `json:"workLifeRating"`
	CompRating       *int    `json:"compensationRating"`
	GrowthRating     *int    `json:"growthRating"`
	Review           string  `json:"review"`
	Pros             string  `json:"pros"`
	Cons             string  `json:"cons"`
	Anonymous        bool    `json:"anonymous"`
}

// RatingResponse is the outward-facing representation of a rating. UserID is
// null for anonymous ratings in public views.
type RatingResponse struct {
	RatingID         string    `json:"ratingId"`
	UserID           *string   `json:"userId"`
	JobApplicationID *string   `json:"jobApplicationId,omitempty"`
	CompanyName      string    `json:"companyName"`
	OverallRating    int       `json:"overallRating"`
	InterviewRating  *int      `json:"interviewRating,omitempty"`
	WorkLifeRating   *int      `json:"workLifeRating,omitempty"`
	CompRating       *int      `json:"compensationRating,omitempty"`
	GrowthRating     *int      `json:"growthRating,omitempty"`
	Review           string    `json:"review,omitempty"`
	Pros             string    `json:"pros,omitempty"`
	Cons             string    `json:"cons,omitempty"`
	Anonymous        bool      `json:"anonymous"`
	CreatedAt        time.Time `json:"createdAt"`
}

// StatsResponse is the aggregate block of a company view.
type StatsResponse struct {
	CompanyName     string   `json:"companyName"`
	RatingCount     int      `json:"ratingCount"`
	AvgOverall      *float64 `json:"avgOverall"`
	AvgInterview    *float64 `json:"avgInterview"`
	AvgWorkLife     *float64 `json:"avgWorkLife"`
	AvgCompensation *float64 `json:"avgCompensation"`
	AvgGrowth       *float64 `json:"avgGrowth"`
}

type companyResponse struct {
	Stats   StatsResponse    `json:"stats"`
	Ratings []RatingResponse `json:"ratings"`
}

// TopCompanyResponse is one entry of the top-rated companies report.
type TopCompanyResponse struct {
	CompanyName string  `json:"companyName"`
	RatingCount int     `json:"ratingCount"`
	AvgOverall  float64 `json:"avgOverall"`
}

func toResponse(rating Rating) RatingResponse {
	resp := RatingResponse{
		RatingID:         rating.ID,
		JobApplicationID: rating.JobApplicationID,
		CompanyName:      rating.CompanyName,
		OverallRating:    rating.Overall,
		InterviewRating:  rating.Interview,
		WorkLifeRating:   rating.WorkLife,
		CompRating:       rating.Compensation,
		GrowthRating:     rating.Growth,
		Review:           rating.Review,
		Pros:             rating.Pros,
		Cons:             rating.Cons,
		Anonymous:        rating.Anonymous,
		CreatedAt:        rating.CreatedAt,
	}
	if rating.UserID != "" {
		resp.UserID = &rating.UserID
	}
	return resp
}

func toStatsResponse(stats CompanyStats) StatsResponse {
	return StatsResponse{
		CompanyName:     stats.CompanyName,
		RatingCount:     stats.Count,
		AvgOverall:      stats.AvgOverall,
		AvgInterview:    stats.AvgInterview,
		AvgWorkLife:     stats.AvgWorkLife,
		AvgCompensation: stats.AvgCompensation,
		AvgGrowth:       stats.AvgGrowth,
	}
}
