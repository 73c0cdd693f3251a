package restclient

import "fmt"

// ValidationResult is the classified outcome of one completed HTTP exchange,
// independent of how many retries preceded it.
type ValidationResult struct {
	Success    bool
	Message    string
	StatusCode int
}

// statusMessages are the fixed classifications for the status codes the Cars API is
// known to return. Anything else falls through to the generic arms in Classify.
var statusMessages = map[int]string{
	200: "OK: request completed successfully",
	401: "401 Unauthorized: authenticate with proper credentials or provide a basic auth header",
	403: "403 Forbidden: authentication succeeded but this user does not have access",
	404: "404 Not Found: no resource at this URL",
	500: "500 Internal Server Error: the server failed to process the request",
}

// Classify derives a ValidationResult from a ResponseOutcome. It is a pure function:
// any status in the 2xx range is a success regardless of body shape, the explicitly
// tabled codes get their fixed messages, and everything else is an "unexpected
// status" failure. Body-schema validation is the concern of individual endpoint
// callers, not of this classification.
func Classify(outcome ResponseOutcome) ValidationResult {
	if msg, ok := statusMessages[outcome.StatusCode]; ok {
		return ValidationResult{
			Success:    outcome.StatusCode == 200,
			Message:    msg,
			StatusCode: outcome.StatusCode,
		}
	}
	if outcome.IsSuccess() {
		return ValidationResult{
			Success:    true,
			Message:    fmt.Sprintf("request completed with status %d", outcome.StatusCode),
			StatusCode: outcome.StatusCode,
		}
	}
	return ValidationResult{
		Success:    false,
		Message:    fmt.Sprintf("unexpected status %d", outcome.StatusCode),
		StatusCode: outcome.StatusCode,
	}
}
