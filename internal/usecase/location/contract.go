package location

import "github.com/kailas-cloud/qbet/internal/domain"

// Recognizer is the optional external entity lookup consulted after the local tables.
type Recognizer = domain.EntityRecognizer
