package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/lcalzada-xor/prr/internal/core/domain"
	"github.com/lcalzada-xor/prr/internal/core/services/codec"
	"github.com/lcalzada-xor/prr/internal/core/services/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	saveErr error
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) LoadState(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[key]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return d, nil
}

func (m *memStore) SaveState(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[key] = data
	return nil
}

func (m *memStore) DeleteState(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Log(ctx context.Context, action domain.AuditAction, target, details string) error {
	args := m.Called(ctx, action, target, details)
	return args.Error(0)
}

func (m *MockAuditService) GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

type recordingNotifier struct {
	mu    sync.Mutex
	views []domain.SessionView
}

func (r *recordingNotifier) BroadcastSession(v domain.SessionView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
}

func newTestService(store *memStore) (*Service, *MockAuditService) {
	audit := new(MockAuditService)
	audit.On("Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return NewService(scoring.NewEngine(), codec.New(), store, audit), audit
}

func privacyReid() domain.Assessment {
	return domain.Assessment{
		Scope:            domain.ScopePrivacy,
		DataType:         domain.DataAggregated,
		Ease:             2,
		Reidentification: true,
	}
}

func TestService_StartsAtDefaults(t *testing.T) {
	svc, _ := newTestService(newMemStore())

	v := svc.Current()
	assert.Equal(t, domain.DefaultAssessment(), v.Assessment)
	assert.Empty(t, v.FindingRef)
	assert.Equal(t, v.Code, v.Shared)
	assert.Len(t, v.Code, 10)
}

func TestService_UpdatePersistsAndNotifies(t *testing.T) {
	store := newMemStore()
	svc, audit := newTestService(store)
	notifier := &recordingNotifier{}
	svc.SetNotifier(notifier)

	v, err := svc.Update(context.Background(), privacyReid(), "PRIV-<7>")
	require.NoError(t, err)

	assert.Equal(t, "PRIV-7", v.FindingRef)
	assert.Equal(t, domain.BandCritical, v.Scores.OverallBand)
	assert.Equal(t, "PRIV-7-"+v.Code, v.Shared)

	var stored domain.SessionState
	require.NoError(t, json.Unmarshal(store.data[domain.SessionStateKey], &stored))
	assert.Equal(t, privacyReid(), stored.Assessment)
	assert.Equal(t, "PRIV-7", stored.FindingRef)

	require.Len(t, notifier.views, 1)
	assert.Equal(t, v, notifier.views[0])
	audit.AssertCalled(t, "Log", mock.Anything, domain.ActionAssessmentUpdated, v.Shared, "band=Critical")
}

func TestService_UpdateClamps(t *testing.T) {
	svc, _ := newTestService(newMemStore())

	v, err := svc.Update(context.Background(), domain.Assessment{Scope: 7, Ease: 40, OverrideOverall: 12}, "")
	require.NoError(t, err)
	assert.Equal(t, domain.ScopePrivacySecurity, v.Assessment.Scope)
	assert.Equal(t, uint8(5), v.Assessment.Ease)
	assert.Equal(t, uint8(5), v.Assessment.OverrideOverall)
	assert.Equal(t, domain.BandCritical, v.Scores.OverallBand)
}

func TestService_UpdateKeepsStateWhenSaveFails(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("disk full")
	svc, _ := newTestService(store)

	v, err := svc.Update(context.Background(), privacyReid(), "F1")
	assert.Error(t, err)
	assert.Equal(t, v, svc.Current())
}

func TestService_ApplyCode(t *testing.T) {
	svc, audit := newTestService(newMemStore())
	c := codec.New()
	shared := c.Share("AUTH-2024-1", c.Encode(privacyReid()))

	v, err := svc.ApplyCode(context.Background(), shared)
	require.NoError(t, err)
	assert.Equal(t, privacyReid(), v.Assessment)
	assert.Equal(t, "AUTH-2024-1", v.FindingRef)
	assert.Equal(t, shared, v.Shared)
	audit.AssertCalled(t, "Log", mock.Anything, domain.ActionCodeApplied, shared, "band=Critical")
}

func TestService_ApplyCodeRejectsWithoutMutation(t *testing.T) {
	store := newMemStore()
	svc, audit := newTestService(store)
	notifier := &recordingNotifier{}
	svc.SetNotifier(notifier)

	before, err := svc.Update(context.Background(), privacyReid(), "KEEP")
	require.NoError(t, err)
	storedBefore := string(store.data[domain.SessionStateKey])

	c := codec.New()
	good := c.Encode(domain.DefaultAssessment())
	corrupted := []byte(good)
	// change one character in the middle of the payload
	if corrupted[4] == 'A' {
		corrupted[4] = 'B'
	} else {
		corrupted[4] = 'A'
	}

	for _, bad := range []string{"", "short", "X-" + string(corrupted)} {
		v, err := svc.ApplyCode(context.Background(), bad)
		assert.Error(t, err, "input %q", bad)
		assert.Equal(t, before, v)
		assert.Equal(t, before, svc.Current())
	}

	assert.Equal(t, storedBefore, string(store.data[domain.SessionStateKey]))
	assert.Len(t, notifier.views, 1)
	audit.AssertCalled(t, "Log", mock.Anything, domain.ActionCodeRejected, "short", "invalid_length")
}

func TestService_Reset(t *testing.T) {
	store := newMemStore()
	svc, audit := newTestService(store)

	_, err := svc.Update(context.Background(), privacyReid(), "F1")
	require.NoError(t, err)

	v, err := svc.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAssessment(), v.Assessment)
	assert.Empty(t, v.FindingRef)
	assert.NotContains(t, store.data, domain.SessionStateKey)
	audit.AssertCalled(t, "Log", mock.Anything, domain.ActionSessionReset, domain.SessionStateKey, "")
}

func TestService_Restore(t *testing.T) {
	store := newMemStore()
	first, _ := newTestService(store)
	want, err := first.Update(context.Background(), privacyReid(), "F-9")
	require.NoError(t, err)

	second, _ := newTestService(store)
	require.NoError(t, second.Restore(context.Background()))
	assert.Equal(t, want, second.Current())
}

func TestService_RestoreIgnoresMissingAndCorrupt(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(store)
	require.NoError(t, svc.Restore(context.Background()))
	assert.Equal(t, domain.DefaultAssessment(), svc.Current().Assessment)

	store.data[domain.SessionStateKey] = []byte("{not json")
	require.NoError(t, svc.Restore(context.Background()))
	assert.Equal(t, domain.DefaultAssessment(), svc.Current().Assessment)

	// out-of-range stored values are clamped on the way in
	store.data[domain.SessionStateKey] = []byte(`{"assessment":{"scope":9,"dataType":0,"ease":0},"findingRef":"a<b>"}`)
	require.NoError(t, svc.Restore(context.Background()))
	v := svc.Current()
	assert.Equal(t, domain.ScopePrivacySecurity, v.Assessment.Scope)
	assert.Equal(t, domain.DataAggregated, v.Assessment.DataType)
	assert.Equal(t, uint8(1), v.Assessment.Ease)
	assert.Equal(t, "ab", v.FindingRef)
}

func TestService_WithoutStoreOrAudit(t *testing.T) {
	svc := NewService(scoring.NewEngine(), codec.New(), nil, nil)

	require.NoError(t, svc.Restore(context.Background()))
	_, err := svc.Update(context.Background(), privacyReid(), "")
	require.NoError(t, err)
	_, err = svc.Reset(context.Background())
	require.NoError(t, err)
}

func TestService_ConcurrentAccess(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	c := codec.New()
	code := c.Encode(privacyReid())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func(ease uint8) {
			defer wg.Done()
			a := domain.DefaultAssessment()
			a.Ease = ease
			_, _ = svc.Update(context.Background(), a, "")
		}(uint8(i%5 + 1))
		go func() {
			defer wg.Done()
			_, _ = svc.ApplyCode(context.Background(), code)
		}()
		go func() {
			defer wg.Done()
			v := svc.Current()
			assert.Equal(t, c.Encode(v.Assessment), v.Code)
		}()
	}
	wg.Wait()
}

// gatedStore holds its first SaveState until release is closed.
type gatedStore struct {
	*memStore
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (g *gatedStore) SaveState(ctx context.Context, key string, data []byte) error {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return g.memStore.SaveState(ctx, key, data)
}

func TestService_WritesPersistInOrder(t *testing.T) {
	store := &gatedStore{memStore: newMemStore(), entered: make(chan struct{}), release: make(chan struct{})}
	svc := NewService(scoring.NewEngine(), codec.New(), store, nil)
	notifier := &recordingNotifier{}
	svc.SetNotifier(notifier)

	slow := domain.DefaultAssessment()
	slow.Ease = 1
	fast := domain.DefaultAssessment()
	fast.Ease = 5

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = svc.Update(context.Background(), slow, "A")
	}()
	<-store.entered

	// readers are not held up by a pending write
	assert.Equal(t, "A", svc.Current().FindingRef)

	go func() {
		defer wg.Done()
		_, _ = svc.Update(context.Background(), fast, "B")
	}()
	close(store.release)
	wg.Wait()

	live := svc.Current()
	assert.Equal(t, "B", live.FindingRef)

	var stored domain.SessionState
	require.NoError(t, json.Unmarshal(store.data[domain.SessionStateKey], &stored))
	assert.Equal(t, live.FindingRef, stored.FindingRef)
	assert.Equal(t, live.Assessment, stored.Assessment)

	require.Len(t, notifier.views, 2)
	assert.Equal(t, live, notifier.views[1])
}
