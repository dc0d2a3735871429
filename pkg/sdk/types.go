package qbet

// Availability is how soon a freelancer can start.
type Availability string

// Availability constants.
const (
	Immediate   Availability = "immediate"
	WithinWeek  Availability = "within_week"
	WithinMonth Availability = "within_month"
)

// Freelancer is a candidate profile. Platform defaults to "fiverr" when empty.
type Freelancer struct {
	ID           string
	Name         string
	Avatar       string
	Skills       []string
	HourlyRate   float64
	Rating       float64 // 0..5
	Availability Availability
	Platform     string
	Location     string
	Description  string
}

// Intent is the structured interpretation of a query.
// Nil pointers mean the query did not state the constraint.
type Intent struct {
	OriginalQuery  string
	Skills         []string
	Location       string
	MaxBudget      *float64
	NeedsImmediate bool
	Limit          *int
}

// Weights are the relevance factor weights. They should sum to 1.
type Weights struct {
	Skill        float64
	Rating       float64
	Availability float64
	Location     float64
	Price        float64
}

// SkillCount is one skill and the number of freelancers listing it.
type SkillCount struct {
	Skill string
	Count int
}

// RateBucket is one hourly rate range and its freelancer count.
type RateBucket struct {
	Label string
	Count int
}

// Market summarizes a freelancer list.
type Market struct {
	Total       int
	Available   int
	AverageRate int
	TopSkills   []SkillCount
	RateBuckets []RateBucket
}
