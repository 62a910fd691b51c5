package client

import "time"

// Config holds the settings of the HTTP access layer
type Config struct {
	// BaseURL is the backend root, e.g. http://localhost:5000/api
	BaseURL string

	// Timeout bounds every request, connection and body read included
	Timeout time.Duration

	// RateLimit is the sustained number of requests per second. Zero
	// disables throttling.
	RateLimit float64
	Burst     int

	// LoginPath is the navigation location of the login screen. A 401 seen
	// there never clears the session.
	LoginPath string
}

// DefaultConfig returns the defaults used by the console
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:5000/api",
		Timeout:   10 * time.Second,
		Burst:     1,
		LoginPath: "/login",
	}
}
