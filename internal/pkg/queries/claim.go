package queries

const claimColumns = `
			id,
			appointment_id,
			patient,
			subscriber,
			subscriber_relationship,
			payer,
			member_id,
			group_number,
			diagnoses,
			service_lines,
			rendering_provider,
			billing_provider_npi,
			place_of_service,
			total_charge,
			status,
			control_number,
			payer_claim_number,
			edi_file_name,
			submitted_at,
			acknowledged_at,
			accepted_at,
			rejected_at,
			paid_at,
			paid_amount,
			rejection_reason,
			rejection_codes,
			created_at,
			updated_at`

const (
	GetClaimByID = `
		SELECT` + claimColumns + `
		FROM claims
		WHERE id = $1
	`

	GetClaimsByControlNumber = `
		SELECT` + claimColumns + `
		FROM claims
		WHERE control_number = $1
		ORDER BY created_at
	`

	GetClaimsByPayerClaimNumber = `
		SELECT` + claimColumns + `
		FROM claims
		WHERE payer_claim_number = $1
		ORDER BY created_at
	`

	InsertClaim = `
		INSERT INTO claims (` + claimColumns + `
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, NOW(), NOW()
		)
	`

	// UpdateClaimPatch leaves a column untouched when its argument is NULL.
	UpdateClaimPatch = `
		UPDATE claims SET` + claimPatchAssignments + `
		WHERE id = $1
	`

	// UpdateClaimStatusTransition only applies while the claim still has the
	// status ($14) the transition was computed from.
	UpdateClaimStatusTransition = `
		UPDATE claims SET` + claimPatchAssignments + `
		WHERE id = $1 AND status = $14
	`

	NextClaimControlNumber = `SELECT nextval('claim_control_number_seq')`
)

const claimPatchAssignments = `
			status             = COALESCE($2::text, status),
			control_number     = COALESCE($3::text, control_number),
			payer_claim_number = COALESCE($4::text, payer_claim_number),
			edi_file_name      = COALESCE($5::text, edi_file_name),
			submitted_at       = COALESCE($6::timestamptz, submitted_at),
			acknowledged_at    = COALESCE($7::timestamptz, acknowledged_at),
			accepted_at        = COALESCE($8::timestamptz, accepted_at),
			rejected_at        = COALESCE($9::timestamptz, rejected_at),
			paid_at            = COALESCE($10::timestamptz, paid_at),
			paid_amount        = COALESCE($11::numeric, paid_amount),
			rejection_reason   = COALESCE($12::text, rejection_reason),
			rejection_codes    = COALESCE($13::jsonb, rejection_codes),
			updated_at         = NOW()`

const (
	InsertClaimStatusEvent = `
		INSERT INTO claim_status_events (
			id,
			claim_id,
			previous_status,
			new_status,
			source,
			response_code,
			response_description,
			payment_amount,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	GetClaimStatusEventsByClaimID = `
		SELECT
			id,
			claim_id,
			previous_status,
			new_status,
			source,
			response_code,
			response_description,
			payment_amount,
			created_at
		FROM claim_status_events
		WHERE claim_id = $1
		ORDER BY created_at, id
	`
)
