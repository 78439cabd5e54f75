package queries

const (
	GetAllResponseFilenames = `SELECT filename FROM edi_response_files`

	GetPendingResponseFiles = `
		SELECT
			id,
			filename,
			file_type,
			content,
			processing_status,
			claims_updated,
			error_message,
			downloaded_at
		FROM edi_response_files
		WHERE processing_status = 'pending'
		ORDER BY downloaded_at, filename
	`

	// InsertResponseFile is a no-op for a filename that was already saved.
	InsertResponseFile = `
		INSERT INTO edi_response_files (
			id,
			filename,
			file_type,
			content,
			processing_status,
			claims_updated,
			error_message,
			downloaded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (filename) DO NOTHING
	`

	UpdateResponseFileProcessingResult = `
		UPDATE edi_response_files SET
			processing_status = $2,
			claims_updated    = $3,
			error_message     = $4,
			processed_at      = NOW()
		WHERE filename = $1
	`
)
