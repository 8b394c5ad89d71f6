package constants

import (
	"net/http"
	"time"
)

// Value-mapping environment variables
const (
	// Variables fed into the interpolation value mapping
	BuildMetadataPrefix = "BUILD_"
	ExternalURLVar      = "ATC_EXTERNAL_URL"

	// Runtime behavior flags
	DebugVar    = "RESOURCE_DEBUG"
	TestModeVar = "TEST"
)

// File reference sentinels
const (
	RefPrefix      = "@"  // insert file contents verbatim
	RefStripPrefix = "-@" // insert file contents with surrounding whitespace trimmed
)

// Request defaults
const (
	DefaultMethod = http.MethodGet

	// Hardening deviation: the original contract has no caller timeout,
	// but an unbounded hang would stall the whole pipeline step.
	DefaultRequestTimeout = 5 * time.Minute
)

// DefaultOKResponses returns the status codes accepted when ok_responses
// is not supplied.
func DefaultOKResponses() []int {
	return []int{
		http.StatusOK,
		http.StatusCreated,
		http.StatusAccepted,
		http.StatusNoContent,
	}
}
