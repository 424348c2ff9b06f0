package resumes

import (
	"encoding/json"
	"time"
)

// Resume represents an uploaded resume owned by a user. At most one resume
// per user is active; superseded rows stay queryable until hard-deleted.
type Resume struct {
	ID               string
	UserID           string
	StorageKey       string
	OriginalFilename string
	MimeType         string
	SizeBytes        int64
	IsActive         bool
	ParsedData       json.RawMessage
	CreatedAt        time.Time
}
