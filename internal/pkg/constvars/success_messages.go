package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"

	// Claim messages
	ClaimSubmittedSuccess         = "claim submitted successfully"
	ClaimStatusEventsFoundSuccess = "claim status events retrieved successfully"

	// Reconciliation messages
	ReconciliationRunSuccess = "reconciliation run completed"
)
