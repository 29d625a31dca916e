package http

import "time"

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 10 * time.Second
	idleTimeout     = 60 * time.Second
	ShutdownTimeout = 10 * time.Second
)
