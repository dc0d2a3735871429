package candidate

// Availability is how soon a freelancer can start.
type Availability string

// Availability tiers.
const (
	Immediate   Availability = "immediate"
	WithinWeek  Availability = "within_week"
	WithinMonth Availability = "within_month"
)

// IsValid checks if the tier is one of the supported values.
func (a Availability) IsValid() bool {
	return a == Immediate || a == WithinWeek || a == WithinMonth
}
