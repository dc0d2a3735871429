package candidate

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/qbet/internal/domain"
)

// MaxRating is the upper bound of the rating scale.
const MaxRating = 5.0

// DefaultPlatform is used when a candidate does not name its marketplace.
const DefaultPlatform = "fiverr"

// Candidate is a freelancer profile. The pipeline only reads and reorders it.
type Candidate struct {
	id           string
	name         string
	avatar       string
	skills       []string
	hourlyRate   float64
	rating       float64
	availability Availability
	platform     string
	location     string
	description  string
}

// Params groups the raw candidate fields for New.
type Params struct {
	ID           string
	Name         string
	Avatar       string
	Skills       []string
	HourlyRate   float64
	Rating       float64
	Availability Availability
	Platform     string
	Location     string
	Description  string
}

// New validates p and builds a Candidate. Skills are copied.
func New(p Params) (Candidate, error) {
	if p.ID == "" {
		return Candidate{}, fmt.Errorf("%w: id is required", domain.ErrInvalidCandidate)
	}
	if math.IsNaN(p.HourlyRate) || p.HourlyRate < 0 {
		return Candidate{}, fmt.Errorf("%w: hourly rate must be non-negative, got %v",
			domain.ErrInvalidCandidate, p.HourlyRate)
	}
	if math.IsNaN(p.Rating) || p.Rating < 0 || p.Rating > MaxRating {
		return Candidate{}, fmt.Errorf("%w: rating must be between 0 and %v, got %v",
			domain.ErrInvalidCandidate, MaxRating, p.Rating)
	}
	if !p.Availability.IsValid() {
		return Candidate{}, fmt.Errorf("%w: invalid availability %q",
			domain.ErrInvalidCandidate, p.Availability)
	}
	platform := p.Platform
	if platform == "" {
		platform = DefaultPlatform
	}

	skills := make([]string, len(p.Skills))
	copy(skills, p.Skills)

	return Candidate{
		id:           p.ID,
		name:         p.Name,
		avatar:       p.Avatar,
		skills:       skills,
		hourlyRate:   p.HourlyRate,
		rating:       p.Rating,
		availability: p.Availability,
		platform:     platform,
		location:     p.Location,
		description:  p.Description,
	}, nil
}

// ID returns the candidate identifier.
func (c Candidate) ID() string { return c.id }

// Name returns the display name.
func (c Candidate) Name() string { return c.name }

// Avatar returns the profile picture URL.
func (c Candidate) Avatar() string { return c.avatar }

// Skills returns the skill tags in their stored order.
func (c Candidate) Skills() []string { return c.skills }

// HourlyRate returns the hourly rate.
func (c Candidate) HourlyRate() float64 { return c.hourlyRate }

// Rating returns the rating in [0, 5].
func (c Candidate) Rating() float64 { return c.rating }

// Availability returns the availability tier.
func (c Candidate) Availability() Availability { return c.availability }

// Platform returns the marketplace the profile comes from.
func (c Candidate) Platform() string { return c.platform }

// Location returns the free-text location.
func (c Candidate) Location() string { return c.location }

// Description returns the free-text description.
func (c Candidate) Description() string { return c.description }
