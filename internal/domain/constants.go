package domain

import "time"

const (
	ChallengeRecordName    = "_acme-challenge"
	ChallengeRecordTTL     = 60
	DefaultRecordTTL       = 900
	DefaultChallengeTarget = "acme.certservice.nl."
)

const (
	DefaultBaseURL     = "https://mijn.host/api/v2/"
	DefaultHTTPTimeout = 30 * time.Second
)

// StatusOK is the provider's API-level success code. It travels in the
// response body and is checked separately from the HTTP status.
const StatusOK = 200
