package constants

// Summary queries use ? placeholders; callers Rebind for the active driver.
const (
	ListLoadMapSummaries = `
	SELECT id, title, run_number, trailer_number, updated_at
	FROM load_maps
	ORDER BY updated_at DESC, id DESC
	`

	SearchLoadMapSummaries = `
	SELECT id, title, run_number, trailer_number, updated_at
	FROM load_maps
	WHERE (LOWER(title) LIKE LOWER(?)
	    OR LOWER(run_number) LIKE LOWER(?)
	    OR LOWER(trailer_number) LIKE LOWER(?))
	ORDER BY updated_at DESC, id DESC
	`

	PingQuery = `SELECT 1`
)
