package domain

// Availability is the staffing state of an employee.
type Availability string

const (
	Available Availability = "available"
	Busy      Availability = "busy"
)

type Employee struct {
	ID              int          `json:"id" validate:"required,gt=0"`
	Name            string       `json:"name" validate:"required"`
	Skills          []string     `json:"skills" validate:"required,min=1,dive,required"`
	ExperienceYears int          `json:"experience_years" validate:"gte=0"`
	Projects        []string     `json:"projects"`
	Availability    Availability `json:"availability" validate:"required,oneof=available busy"`
	Department      string       `json:"department,omitempty"`
	Email           string       `json:"email,omitempty" validate:"omitempty,email"`
	Location        string       `json:"location,omitempty"`
}

// ProfileVector is the searchable form of one employee: the encoded profile
// text and its embedding.
type ProfileVector struct {
	EmployeeID int
	Text       string
	Vector     []float32
}

// ShortlistEntry is one ranked retrieval match.
type ShortlistEntry struct {
	Employee Employee
	Score    float64
	Rank     int
}

// Answer sources.
const (
	SourceGenerated = "generated"
	SourceFallback  = "fallback"
)

// Answer is the reply to one staffing query. Confidence reflects retrieval
// strength only, never the wording of Text.
type Answer struct {
	Text       string
	Shortlist  []ShortlistEntry
	Confidence float64
	Source     string
}
