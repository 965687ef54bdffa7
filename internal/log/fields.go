package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldSource     = "source"
	FieldRows       = "rows"
	FieldYear       = "year"
	FieldIndicator  = "indicator"
	FieldSheet      = "sheet"
	FieldChart      = "chart"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentDataset = "dataset"
	ComponentExport  = "export"
	ComponentRender  = "render"
)
