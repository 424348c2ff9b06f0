package ratings

import "context"

// Repo abstracts rating persistence.
type Repo interface {
	Create(ctx context.Context, rating Rating) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Rating, error)
	// ListByCompany matches the company name exactly, case-sensitive.
	ListByCompany(ctx context.Context, companyName string, limit, offset int) ([]Rating, error)
	// Stats returns aggregates for a company. A company with no ratings
	// yields Count 0 and nil means, not an error.
	Stats(ctx context.Context, companyName string) (CompanyStats, error)
	// Top returns companies with at least minRatings ratings, ordered by
	// average overall rating descending, company name ascending on ties.
	Top(ctx context.Context, limit, minRatings int) ([]TopCompany, error)
}
