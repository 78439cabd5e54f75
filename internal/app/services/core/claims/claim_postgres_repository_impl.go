package claims

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"claimsync-service/internal/app/contracts"
	"claimsync-service/internal/app/models"
	"claimsync-service/internal/pkg/exceptions"
	"claimsync-service/internal/pkg/queries"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type claimPostgresRepository struct {
	DB *sql.DB
}

func NewClaimPostgresRepository(db *sql.DB) contracts.ClaimRepository {
	return &claimPostgresRepository{
		DB: db,
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (repo *claimPostgresRepository) CreateClaim(ctx context.Context, claim *models.Claim) error {
	if claim.ID == "" {
		claim.ID = uuid.NewString()
	}
	if claim.Status == "" {
		claim.Status = models.ClaimStatusDraft
	}

	// jsonb arguments go as text; lib/pq would hex encode []byte as bytea.
	documents := make([]string, 0, 7)
	for _, value := range []interface{}{
		claim.Patient,
		claim.Subscriber,
		claim.Payer,
		claim.Diagnoses,
		claim.ServiceLines,
		claim.RenderingProvider,
		nonNilStrings(claim.RejectionCodes),
	} {
		encoded, err := json.Marshal(value)
		if err != nil {
			return exceptions.ErrCannotMarshalJSON(err)
		}
		documents = append(documents, string(encoded))
	}

	_, err := repo.DB.ExecContext(ctx, queries.InsertClaim,
		claim.ID,
		claim.AppointmentID,
		documents[0],
		documents[1],
		claim.SubscriberRelationship,
		documents[2],
		claim.MemberID,
		claim.GroupNumber,
		documents[3],
		documents[4],
		documents[5],
		claim.BillingProviderNPI,
		claim.PlaceOfService,
		claim.TotalCharge,
		string(claim.Status),
		claim.ControlNumber,
		claim.PayerClaimNumber,
		claim.EDIFileName,
		claim.SubmittedAt,
		claim.AcknowledgedAt,
		claim.AcceptedAt,
		claim.RejectedAt,
		claim.PaidAt,
		claim.PaidAmount,
		claim.RejectionReason,
		documents[6],
	)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *claimPostgresRepository) FindClaimByID(ctx context.Context, claimID string) (*models.Claim, error) {
	claim, err := scanClaim(repo.DB.QueryRowContext(ctx, queries.GetClaimByID, claimID))
	if err == sql.ErrNoRows {
		return nil, exceptions.ErrClaimNotFound(err, claimID)
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return claim, nil
}

func (repo *claimPostgresRepository) FindClaimsByControlNumber(ctx context.Context, controlNumber string) ([]models.Claim, error) {
	return repo.findClaims(ctx, queries.GetClaimsByControlNumber, controlNumber)
}

func (repo *claimPostgresRepository) FindClaimsByPayerClaimNumber(ctx context.Context, payerClaimNumber string) ([]models.Claim, error) {
	return repo.findClaims(ctx, queries.GetClaimsByPayerClaimNumber, payerClaimNumber)
}

func (repo *claimPostgresRepository) findClaims(ctx context.Context, query, key string) ([]models.Claim, error) {
	if key == "" {
		return nil, nil
	}

	rows, err := repo.DB.QueryContext(ctx, query, key)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var claims []models.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		claims = append(claims, *claim)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return claims, nil
}

func (repo *claimPostgresRepository) UpdateClaim(ctx context.Context, claimID string, patch models.ClaimPatch) error {
	return updateClaim(ctx, repo.DB, claimID, patch)
}

func (repo *claimPostgresRepository) InsertStatusEvent(ctx context.Context, event *models.ClaimStatusEvent) error {
	return insertStatusEvent(ctx, repo.DB, event)
}

// ApplyStatusTransition writes the claim patch and its audit event in one
// transaction. Either both are stored or neither is. The update only matches
// while the claim still has event.PreviousStatus, so a writer holding a stale
// snapshot gets ErrClaimStatusConflict instead of overwriting a newer status.
func (repo *claimPostgresRepository) ApplyStatusTransition(ctx context.Context, claimID string, patch models.ClaimPatch, event *models.ClaimStatusEvent) error {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBBeginTx(err)
	}
	defer tx.Rollback()

	affected, err := execClaimPatch(ctx, tx, queries.UpdateClaimStatusTransition, claimID, patch, string(event.PreviousStatus))
	if err != nil {
		return err
	}
	if affected == 0 {
		return exceptions.ErrClaimStatusConflict(claimID, string(event.PreviousStatus))
	}

	event.ClaimID = claimID
	if err := insertStatusEvent(ctx, tx, event); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBCommitTx(err)
	}
	return nil
}

func (repo *claimPostgresRepository) FindStatusEventsByClaimID(ctx context.Context, claimID string) ([]models.ClaimStatusEvent, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetClaimStatusEventsByClaimID, claimID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	events := make([]models.ClaimStatusEvent, 0)
	for rows.Next() {
		var (
			event          models.ClaimStatusEvent
			previousStatus string
			newStatus      string
			source         string
		)
		if err := rows.Scan(
			&event.ID,
			&event.ClaimID,
			&previousStatus,
			&newStatus,
			&source,
			&event.ResponseCode,
			&event.ResponseDescription,
			&event.PaymentAmount,
			&event.CreatedAt,
		); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		event.PreviousStatus = models.ClaimStatus(previousStatus)
		event.NewStatus = models.ClaimStatus(newStatus)
		event.Source = models.EventSource(source)
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return events, nil
}

func (repo *claimPostgresRepository) NextControlNumber(ctx context.Context) (string, error) {
	var sequence int64
	err := repo.DB.QueryRowContext(ctx, queries.NextClaimControlNumber).Scan(&sequence)
	if err != nil {
		return "", exceptions.ErrPostgresDBFindData(err)
	}
	return fmt.Sprintf("%09d", sequence), nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func updateClaim(ctx context.Context, db execer, claimID string, patch models.ClaimPatch) error {
	affected, err := execClaimPatch(ctx, db, queries.UpdateClaimPatch, claimID, patch)
	if err != nil {
		return err
	}
	if affected == 0 {
		return exceptions.ErrClaimNotFound(sql.ErrNoRows, claimID)
	}
	return nil
}

// execClaimPatch runs one of the claim patch updates. extra is appended after
// the thirteen patch arguments.
func execClaimPatch(ctx context.Context, db execer, query, claimID string, patch models.ClaimPatch, extra ...interface{}) (int64, error) {
	var status interface{}
	if patch.Status != nil {
		status = string(*patch.Status)
	}

	var rejectionCodes interface{}
	if patch.RejectionCodes != nil {
		encoded, err := json.Marshal(patch.RejectionCodes)
		if err != nil {
			return 0, exceptions.ErrCannotMarshalJSON(err)
		}
		rejectionCodes = string(encoded)
	}

	args := []interface{}{
		claimID,
		status,
		nullableString(patch.ControlNumber),
		nullableString(patch.PayerClaimNumber),
		nullableString(patch.EDIFileName),
		nullableTime(patch.SubmittedAt),
		nullableTime(patch.AcknowledgedAt),
		nullableTime(patch.AcceptedAt),
		nullableTime(patch.RejectedAt),
		nullableTime(patch.PaidAt),
		nullableDecimal(patch.PaidAmount),
		nullableString(patch.RejectionReason),
		rejectionCodes,
	}
	args = append(args, extra...)

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, exceptions.ErrPostgresDBUpdateData(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, exceptions.ErrPostgresDBUpdateData(err)
	}
	return affected, nil
}

func insertStatusEvent(ctx context.Context, db execer, event *models.ClaimStatusEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	_, err := db.ExecContext(ctx, queries.InsertClaimStatusEvent,
		event.ID,
		event.ClaimID,
		string(event.PreviousStatus),
		string(event.NewStatus),
		string(event.Source),
		event.ResponseCode,
		event.ResponseDescription,
		event.PaymentAmount,
		event.CreatedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func scanClaim(row rowScanner) (*models.Claim, error) {
	var (
		claim             models.Claim
		status            string
		patient           []byte
		subscriber        []byte
		payer             []byte
		diagnoses         []byte
		serviceLines      []byte
		renderingProvider []byte
		rejectionCodes    []byte
		submittedAt       sql.NullTime
		acknowledgedAt    sql.NullTime
		acceptedAt        sql.NullTime
		rejectedAt        sql.NullTime
		paidAt            sql.NullTime
	)

	err := row.Scan(
		&claim.ID,
		&claim.AppointmentID,
		&patient,
		&subscriber,
		&claim.SubscriberRelationship,
		&payer,
		&claim.MemberID,
		&claim.GroupNumber,
		&diagnoses,
		&serviceLines,
		&renderingProvider,
		&claim.BillingProviderNPI,
		&claim.PlaceOfService,
		&claim.TotalCharge,
		&status,
		&claim.ControlNumber,
		&claim.PayerClaimNumber,
		&claim.EDIFileName,
		&submittedAt,
		&acknowledgedAt,
		&acceptedAt,
		&rejectedAt,
		&paidAt,
		&claim.PaidAmount,
		&claim.RejectionReason,
		&rejectionCodes,
		&claim.CreatedAt,
		&claim.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	documents := []struct {
		raw    []byte
		target interface{}
	}{
		{patient, &claim.Patient},
		{subscriber, &claim.Subscriber},
		{payer, &claim.Payer},
		{diagnoses, &claim.Diagnoses},
		{serviceLines, &claim.ServiceLines},
		{renderingProvider, &claim.RenderingProvider},
		{rejectionCodes, &claim.RejectionCodes},
	}
	for _, document := range documents {
		if len(document.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(document.raw, document.target); err != nil {
			return nil, err
		}
	}

	claim.Status = models.ClaimStatus(status)
	claim.SubmittedAt = timePtr(submittedAt)
	claim.AcknowledgedAt = timePtr(acknowledgedAt)
	claim.AcceptedAt = timePtr(acceptedAt)
	claim.RejectedAt = timePtr(rejectedAt)
	claim.PaidAt = timePtr(paidAt)
	return &claim, nil
}

func nullableString(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

func nullableTime(value *time.Time) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

func nullableDecimal(value *decimal.Decimal) interface{} {
	if value == nil {
		return nil
	}
	return value.String()
}

func timePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time
	return &t
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
