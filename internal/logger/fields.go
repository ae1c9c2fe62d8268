package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Tracing fields, carried on the context logger through a call chain.
const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldPhotoID is the feed identifier of the photo being handled
	FieldPhotoID = "photo_id"

	// FieldMethod is the feed listing method
	FieldMethod = "method"

	FieldURL = "url"
)

// Metric fields, attached per entry for aggregation.
const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	FieldCount = "count"

	// FieldSize is the data size in bytes
	FieldSize = "size"

	// FieldStatus is the operation or HTTP status
	FieldStatus = "status"
)
