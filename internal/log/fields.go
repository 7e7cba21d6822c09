package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldURL        = "url"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldExpenseID  = "expense_id"
	FieldFetchSeq   = "fetch_seq"
	FieldCount      = "count"
	FieldIncome     = "income"
	FieldRemaining  = "remaining"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentGateway    = "gateway"
	ComponentStore      = "store"
	ComponentSettings   = "settings"
	ComponentController = "controller"
	ComponentRender     = "render"
	ComponentAMQP       = "amqp"
	ComponentExport     = "export"
)

// Operations defines standard operation names
const (
	OpList    = "list"
	OpGet     = "get"
	OpCreate  = "create"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpRender  = "render"
	OpExport  = "export"
	OpRefresh = "refresh"
)
