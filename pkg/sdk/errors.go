package qbet

import "github.com/kailas-cloud/qbet/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidFreelancer     = domain.ErrInvalidCandidate
	ErrRecognizerUnavailable = domain.ErrRecognizerUnavailable
)
