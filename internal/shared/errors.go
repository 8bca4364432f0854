package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrInvalidCode      = fmt.Errorf("verification code does not match")
	ErrCodeNotIssued    = fmt.Errorf("no verification code issued")
	ErrResendCooldown   = fmt.Errorf("resend cooldown active")
	ErrEmailSend        = fmt.Errorf("verification email could not be sent")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPlaylistEmpty      = fmt.Errorf("playlist contains no channels")
	ErrRefreshSuperseded  = fmt.Errorf("catalog refresh superseded by a newer one")

	// Storage errors
	ErrStorageWrite = fmt.Errorf("storage write failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
