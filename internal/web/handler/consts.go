package handler

const (
	// ErrNilACDFatalLogMsg is used if the app, cfg or db pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
