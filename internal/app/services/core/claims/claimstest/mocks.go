package claimstest

import (
	"context"
	"sync"
	"time"

	"claimsync-service/internal/app/models"
	"claimsync-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/mock"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) ListInboundFiles(ctx context.Context) ([]models.InboundFile, error) {
	args := m.Called(ctx)
	files, _ := args.Get(0).([]models.InboundFile)
	return files, args.Error(1)
}

func (m *MockTransport) FetchFile(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockTransport) DeliverFile(ctx context.Context, name, content string) error {
	args := m.Called(ctx, name, content)
	return args.Error(0)
}

// RecordingPublisher keeps every published event.
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []models.ClaimStatusEvent
	Err    error
}

func (p *RecordingPublisher) PublishStatusEvent(ctx context.Context, event *models.ClaimStatusEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, *event)
	return nil
}

// MemoryLocker is a process local LockerService that never waits.
type MemoryLocker struct {
	mu   sync.Mutex
	Held map[string]bool
}

func (l *MemoryLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if err := ctx.Err(); err != nil {
		return false, "", exceptions.ErrClaimLockNotAcquired(err, key)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Held == nil {
		l.Held = make(map[string]bool)
	}
	if l.Held[key] {
		return false, "", nil
	}
	l.Held[key] = true
	return true, key, nil
}

func (l *MemoryLocker) Lock(ctx context.Context, key string, expiration, wait time.Duration) (string, error) {
	acquired, token, err := l.TryLock(ctx, key, expiration)
	if err != nil {
		return "", err
	}
	if !acquired {
		return "", exceptions.ErrClaimLockNotAcquired(nil, key)
	}
	return token, nil
}

func (l *MemoryLocker) Unlock(ctx context.Context, key, lockValue string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.Held, key)
	return nil
}

func (l *MemoryLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return nil
}
