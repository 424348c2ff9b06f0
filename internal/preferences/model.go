package preferences

import "time"

// Preference is one immutable version of a user's job search preferences.
// Updates never mutate a row; they append a new version and deactivate the
// old one, so the history endpoint can replay every change.
type Preference struct {
	ID          string
	UserID      string
	Title       string
	Industry    string
	Location    string
	WorkMode    string
	MinSalary   *int64
	MaxSalary   *int64
	CompanySize string
	Keywords    []string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WorkModes lists the accepted work_mode values.
var WorkModes = map[string]bool{
	"remote": true,
	"hybrid": true,
	"onsite": true,
}

// CompanySizes lists the accepted company_size values.
var CompanySizes = map[string]bool{
	"startup":    true,
	"small":      true,
	"medium":     true,
	"large":      true,
	"enterprise": true,
}
