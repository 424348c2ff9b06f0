package parser

import (
	"context"
	"errors"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// ErrUnsupported indicates the payload is not a parseable resume.
	ErrUnsupported = errors.New("unsupported resume content")

	// ErrUnavailable indicates the parsing collaborator failed or timed out.
	ErrUnavailable = errors.New("parsing service unavailable")
)

// Skill is a normalized skill extracted from a resume.
type Skill struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// Experience is a single work-history entry.
type Experience struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Description []string `json:"description,omitempty"`
}

// Education is a single education entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

// ParsedResume is the structured result of parsing. The resume core stores it
// verbatim as opaque JSON and never interprets individual fields.
type ParsedResume struct {
	Name       string       `json:"name,omitempty"`
	Email      string       `json:"email,omitempty"`
	Phone      string       `json:"phone,omitempty"`
	Location   string       `json:"location,omitempty"`
	Summary    string       `json:"summary,omitempty"`
	Skills     []Skill      `json:"skills,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Education  []Education  `json:"education,omitempty"`
}

// Parser extracts structured data from resume file bytes. Implementations
// must honor ctx cancellation; callers impose the timeout.
type Parser interface {
	Parse(ctx context.Context, data []byte, mimeType, fileName string) (ParsedResume, error)
}
