package server

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "HTTP server starting"
	LogMsgRequestCompleted = "Request completed"
	LogMsgPanicRecovered   = "Panic recovered"
)

// HTTP header names
const (
	HeaderRequestID = "X-Request-ID"
)

// Request limits
const (
	MaxRequestBodyBytes = 1 << 16
)
