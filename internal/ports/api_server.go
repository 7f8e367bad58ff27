package ports

// APIServer defines the interface for the HTTP transport serving the
// classification and metrics endpoints
type APIServer interface {
	// Start starts serving requests
	Start() error

	// Stop gracefully shuts the server down
	Stop() error
}
