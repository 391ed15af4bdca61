package clinic_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackgods/clinic-records-api/internal/clinic"
	"github.com/hackgods/clinic-records-api/internal/config"
	"github.com/hackgods/clinic-records-api/internal/memstore"
)

// pausingStore holds the next non-transactional patient read right after it
// returns from the store, until resume is closed. Transactions go straight to
// the wrapped store and are never held.
type pausingStore struct {
	clinic.Store
	armed  atomic.Bool
	read   chan struct{}
	resume chan struct{}
}

func newPausingStore(inner clinic.Store) *pausingStore {
	return &pausingStore{Store: inner, read: make(chan struct{}), resume: make(chan struct{})}
}

func (s *pausingStore) Patients() clinic.PatientRepository {
	return pausingPatients{PatientRepository: s.Store.Patients(), s: s}
}

type pausingPatients struct {
	clinic.PatientRepository
	s *pausingStore
}

func (r pausingPatients) FindByID(ctx context.Context, id int64) (*clinic.Patient, error) {
	p, err := r.PatientRepository.FindByID(ctx, id)
	if r.s.armed.CompareAndSwap(true, false) {
		close(r.s.read)
		<-r.s.resume
	}
	return p, err
}

// interleave starts a GetPatient that loads the row, then runs write while
// that Get is held between its store read and its cache fill.
func interleave(t *testing.T, svc *clinic.Service, store *pausingStore, id int64, write func()) {
	t.Helper()

	store.armed.Store(true)
	done := make(chan error, 1)
	go func() {
		_, err := svc.GetPatient(context.Background(), id)
		done <- err
	}()

	select {
	case <-store.read:
	case <-time.After(5 * time.Second):
		t.Fatal("get never reached the store")
	}

	write()
	close(store.resume)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("get never finished")
	}
}

func newPausingFixture(t *testing.T) (*clinic.Service, *pausingStore) {
	t.Helper()
	store := newPausingStore(memstore.New())
	svc := clinic.NewService(store, newMapCache(), config.Config{CacheTTL: time.Minute})
	return svc, store
}

func TestRemoveDuringGetLeavesNoStaleEntry(t *testing.T) {
	svc, store := newPausingFixture(t)
	ctx := context.Background()

	p, err := svc.AddPatient(ctx, anaRegistration(t))
	require.NoError(t, err)

	interleave(t, svc, store, p.ID, func() {
		require.NoError(t, svc.RemovePatient(ctx, p.ID))
	})

	_, err = svc.GetPatient(ctx, p.ID)
	assert.ErrorIs(t, err, clinic.ErrPatientNotFound)
}

func TestModifyDuringGetLeavesNoStaleEntry(t *testing.T) {
	svc, store := newPausingFixture(t)
	ctx := context.Background()

	p, err := svc.AddPatient(ctx, anaRegistration(t))
	require.NoError(t, err)

	interleave(t, svc, store, p.ID, func() {
		_, err := svc.ModifyPatient(ctx, p.ID, clinic.PatientUpdate{Name: ptr("Anabel")})
		require.NoError(t, err)
	})

	got, err := svc.GetPatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anabel", got.Name)
}

func TestGetFillsCacheWhenNothingChanged(t *testing.T) {
	store := newPausingStore(memstore.New())
	cache := newMapCache()
	svc := clinic.NewService(store, cache, config.Config{CacheTTL: time.Minute})
	ctx := context.Background()

	p, err := svc.AddPatient(ctx, anaRegistration(t))
	require.NoError(t, err)

	interleave(t, svc, store, p.ID, func() {})

	_, err = svc.GetPatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
}
