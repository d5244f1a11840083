package constants

const (
	MsgNotFound       = "Not found"
	MsgInvalidID      = "Invalid load map id"
	MsgInvalidBody    = "Invalid JSON body"
	MsgSaveFailed     = "Save failed"
	MsgDeleteFailed   = "Delete failed"
	MsgLoadFailed     = "Failed to load load maps"
	MsgExportFailed   = "Export failed"
	MsgRateLimited    = "Rate limit exceeded. Please try again later."
	MsgDatabaseFailed = "Database unavailable"
)
