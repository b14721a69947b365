package handlers

const (
	ErrInvalidJSON         = "Invalid request body"
	ErrUnauthorized        = "Unauthorized"
	ErrNotLoggedIn         = "Silakan masuk dengan kode kamu dulu ya!"
	ErrTooManyRequests     = "Too many requests, please try again later"
	ErrInternalServerError = "Internal server error"
	ErrNotFound            = "Not found"

	// maxBodyBytes caps JSON request bodies
	maxBodyBytes = 64 << 10
)
