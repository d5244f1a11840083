package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixLoadMap   CachePrefix = "LM_"
	CachePrefixUISession CachePrefix = "UI_SESSION_"
)

// Sync events broadcast to websocket clients after a write.
const (
	SyncEventCreated = "loadmap_created"
	SyncEventUpdated = "loadmap_updated"
	SyncEventDeleted = "loadmap_deleted"
)

const (
	DefaultNewTitle = "New Load Map"
	RequestIDHeader = "X-Request-ID"
)
