package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status_code"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldBudgetID  = "budget_id"
	FieldGroup     = "group"
	FieldCategory  = "category_id"
	FieldCount     = "count"
	FieldEndpoint  = "endpoint"
)

// ComponentApp is the default component name.
const ComponentApp = "app"
