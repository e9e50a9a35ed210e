package handlers

const (
	SessionCookieName = "worddee_session"

	ErrInvalidFormData     = "Invalid form data"
	ErrInvalidCSRFToken    = "Invalid CSRF token"
	ErrTooManyRequests     = "Too many requests"
	ErrInternalServerError = "Internal server error"

	siteName = "Worddee.ai"
)
