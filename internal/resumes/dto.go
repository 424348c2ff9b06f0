package resumes

import (
	"encoding/json"
	"time"
)

// ResumeResponse is the outward-facing representation of a resume.
type ResumeResponse struct {
	ResumeID   string          `json:"resumeId"`
	FileName   string          `json:"fileName"`
	MimeType   string          `json:"mimeType"`
	SizeBytes  int64           `json:"sizeBytes"`
	IsActive   bool            `json:"isActive"`
	ParsedData json.RawMessage `json:"parsedData,omitempty"`
	UploadedAt time.Time       `json:"uploadedAt"`
}

func toResponse(resume Resume) ResumeResponse {
	return ResumeResponse{
		ResumeID:   resume.ID,
		FileName:   resume.OriginalFilename,
		MimeType:   resume.MimeType,
		SizeBytes:  resume.SizeBytes,
		IsActive:   resume.IsActive,
		ParsedData: resume.ParsedData,
		UploadedAt: resume.CreatedAt,
	}
}
