// Package claimstest provides in-memory collaborators for tests of claim
// submission and reconciliation.
package claimstest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"claimsync-service/internal/app/models"
	"claimsync-service/internal/pkg/exceptions"

	"github.com/google/uuid"
)

// MemoryStore implements contracts.ClaimRepository and
// contracts.ResponseFileRepository.
type MemoryStore struct {
	mu            sync.Mutex
	claims        map[string]*models.Claim
	events        []models.ClaimStatusEvent
	files         map[string]*models.ResponseFile
	controlNumber int

	// FailTransition makes ApplyStatusTransition fail for the claim ID.
	FailTransition map[string]error
}

func NewMemoryStore(claims ...*models.Claim) *MemoryStore {
	store := &MemoryStore{
		claims:         make(map[string]*models.Claim),
		files:          make(map[string]*models.ResponseFile),
		FailTransition: make(map[string]error),
	}
	for _, claim := range claims {
		copied := *claim
		store.claims[claim.ID] = &copied
	}
	return store
}

func (s *MemoryStore) CreateClaim(ctx context.Context, claim *models.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if claim.ID == "" {
		claim.ID = uuid.NewString()
	}
	claim.SetCreatedAtUpdatedAt()
	copied := *claim
	s.claims[claim.ID] = &copied
	return nil
}

func (s *MemoryStore) FindClaimByID(ctx context.Context, claimID string) (*models.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claim, ok := s.claims[claimID]
	if !ok {
		return nil, exceptions.ErrClaimNotFound(nil, claimID)
	}
	copied := *claim
	return &copied, nil
}

// Claim returns the stored claim, or nil.
func (s *MemoryStore) Claim(claimID string) *models.Claim {
	claim, _ := s.FindClaimByID(context.Background(), claimID)
	return claim
}

func (s *MemoryStore) FindClaimsByControlNumber(ctx context.Context, controlNumber string) ([]models.Claim, error) {
	return s.find(func(c *models.Claim) bool { return controlNumber != "" && c.ControlNumber == controlNumber }), nil
}

func (s *MemoryStore) FindClaimsByPayerClaimNumber(ctx context.Context, payerClaimNumber string) ([]models.Claim, error) {
	return s.find(func(c *models.Claim) bool { return payerClaimNumber != "" && c.PayerClaimNumber == payerClaimNumber }), nil
}

func (s *MemoryStore) find(match func(*models.Claim) bool) []models.Claim {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found []models.Claim
	for _, claim := range s.claims {
		if match(claim) {
			found = append(found, *claim)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found
}

func (s *MemoryStore) UpdateClaim(ctx context.Context, claimID string, patch models.ClaimPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(claimID, patch)
}

func (s *MemoryStore) update(claimID string, patch models.ClaimPatch) error {
	claim, ok := s.claims[claimID]
	if !ok {
		return exceptions.ErrClaimNotFound(nil, claimID)
	}
	patch.Apply(claim)
	claim.SetUpdatedAt()
	return nil
}

func (s *MemoryStore) InsertStatusEvent(ctx context.Context, event *models.ClaimStatusEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertEvent(event)
	return nil
}

func (s *MemoryStore) insertEvent(event *models.ClaimStatusEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	s.events = append(s.events, *event)
}

func (s *MemoryStore) ApplyStatusTransition(ctx context.Context, claimID string, patch models.ClaimPatch, event *models.ClaimStatusEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FailTransition[claimID]; err != nil {
		return err
	}
	claim, ok := s.claims[claimID]
	if !ok {
		return exceptions.ErrClaimNotFound(nil, claimID)
	}
	if claim.Status != event.PreviousStatus {
		return exceptions.ErrClaimStatusConflict(claimID, string(event.PreviousStatus))
	}
	if err := s.update(claimID, patch); err != nil {
		return err
	}
	event.ClaimID = claimID
	s.insertEvent(event)
	return nil
}

func (s *MemoryStore) FindStatusEventsByClaimID(ctx context.Context, claimID string) ([]models.ClaimStatusEvent, error) {
	return s.Events(claimID), nil
}

// Events returns the audit trail of a claim in insertion order.
func (s *MemoryStore) Events(claimID string) []models.ClaimStatusEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]models.ClaimStatusEvent, 0)
	for _, event := range s.events {
		if event.ClaimID == claimID {
			events = append(events, event)
		}
	}
	return events
}

func (s *MemoryStore) NextControlNumber(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controlNumber++
	return fmt.Sprintf("%09d", s.controlNumber), nil
}

// SetNextControlNumber makes the next minted control number equal next.
func (s *MemoryStore) SetNextControlNumber(next int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controlNumber = next - 1
}

// SetClaimStatus overwrites the stored status, as a concurrent writer would.
func (s *MemoryStore) SetClaimStatus(claimID string, status models.ClaimStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if claim, ok := s.claims[claimID]; ok {
		claim.Status = status
	}
}

func (s *MemoryStore) ListKnownResponseFilenames(ctx context.Context) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	known := make(map[string]struct{}, len(s.files))
	for name := range s.files {
		known[name] = struct{}{}
	}
	return known, nil
}

func (s *MemoryStore) SaveResponseFile(ctx context.Context, file *models.ResponseFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.files[file.FileName]; exists {
		return nil
	}
	copied := *file
	s.files[file.FileName] = &copied
	return nil
}

func (s *MemoryStore) UpdateResponseFileProcessingResult(ctx context.Context, fileName string, status models.ProcessingStatus, claimsUpdated int, errorMessage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, ok := s.files[fileName]
	if !ok {
		return fmt.Errorf("response file %s not saved", fileName)
	}
	now := time.Now().UTC()
	file.ProcessingStatus = status
	file.ClaimsUpdated = claimsUpdated
	file.ErrorMessage = errorMessage
	file.ProcessedAt = &now
	return nil
}

func (s *MemoryStore) ListPendingResponseFiles(ctx context.Context) ([]models.ResponseFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := make([]models.ResponseFile, 0)
	for _, file := range s.files {
		if file.ProcessingStatus == models.ProcessingStatusPending {
			pending = append(pending, *file)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		if !pending[i].DownloadedAt.Equal(pending[j].DownloadedAt) {
			return pending[i].DownloadedAt.Before(pending[j].DownloadedAt)
		}
		return pending[i].FileName < pending[j].FileName
	})
	return pending, nil
}

// ResponseFile returns the saved response file, or nil.
func (s *MemoryStore) ResponseFile(fileName string) *models.ResponseFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, ok := s.files[fileName]
	if !ok {
		return nil
	}
	copied := *file
	return &copied
}
