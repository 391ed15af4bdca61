// Package memstore is an in-memory clinic.Store. A transaction works on a
// cloned copy of the state that replaces the live state only when the
// transaction function succeeds, so a failed write leaves nothing behind.
// Like the Postgres schema it refuses deletes of referenced rows and a second
// prescription for the same appointment.
package memstore

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/hackgods/clinic-records-api/internal/clinic"
)

type state struct {
	patients      map[int64]clinic.Patient
	doctors       map[int64]clinic.Doctor
	medicines     map[int64]clinic.Medicine
	appointments  map[int64]clinic.Appointment
	prescriptions map[int64]clinic.Prescription
	events        []clinic.EventLog

	// last issued id per table
	seq map[string]int64
}

func newState() *state {
	return &state{
		patients:      map[int64]clinic.Patient{},
		doctors:       map[int64]clinic.Doctor{},
		medicines:     map[int64]clinic.Medicine{},
		appointments:  map[int64]clinic.Appointment{},
		prescriptions: map[int64]clinic.Prescription{},
		seq:           map[string]int64{},
	}
}

func (s *state) clone() *state {
	c := &state{
		patients:      maps.Clone(s.patients),
		doctors:       maps.Clone(s.doctors),
		medicines:     make(map[int64]clinic.Medicine, len(s.medicines)),
		appointments:  maps.Clone(s.appointments),
		prescriptions: maps.Clone(s.prescriptions),
		events:        slices.Clone(s.events),
		seq:           maps.Clone(s.seq),
	}
	for id, m := range s.medicines {
		c.medicines[id] = cloneMedicine(m)
	}
	return c
}

func (s *state) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// cloneMedicine copies the expiry date so callers never share the pointer
// with the stored row.
func cloneMedicine(m clinic.Medicine) clinic.Medicine {
	if m.ExpiryDate != nil {
		d := *m.ExpiryDate
		m.ExpiryDate = &d
	}
	return m
}

// Store implements clinic.Store. The zero value is not usable; call New.
type Store struct {
	mu   *sync.RWMutex
	live **state

	// tx is the working copy when the store is bound to a transaction.
	tx *state
}

func New() *Store {
	st := newState()
	return &Store{mu: &sync.RWMutex{}, live: &st}
}

func (s *Store) read(fn func(st *state) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(*s.live)
}

// write applies fn to a copy of the live state outside a transaction, so a
// failing single write is as atomic as one inside WithTx.
func (s *Store) write(fn func(st *state) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	work := (*s.live).clone()
	if err := fn(work); err != nil {
		return err
	}
	*s.live = work
	return nil
}

// WithTx serialises transactions behind the store's write lock.
func (s *Store) WithTx(_ context.Context, fn func(tx clinic.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Store{mu: s.mu, live: s.live, tx: (*s.live).clone()}
	if err := fn(tx); err != nil {
		return err
	}
	*s.live = tx.tx
	return nil
}

func (s *Store) Patients() clinic.PatientRepository {
	return patients{s}
}

func (s *Store) Doctors() clinic.DoctorRepository {
	return doctors{s}
}

func (s *Store) Medicines() clinic.MedicineRepository {
	return medicines{s}
}

func (s *Store) Appointments() clinic.AppointmentRepository {
	return appointments{s}
}

func (s *Store) Prescriptions() clinic.PrescriptionRepository {
	return prescriptions{s}
}

func (s *Store) Events() clinic.EventRepository {
	return events{s}
}

// EventLog returns a copy of every event written so far, oldest first.
func (s *Store) EventLog() []clinic.EventLog {
	var out []clinic.EventLog
	_ = s.read(func(st *state) error {
		out = slices.Clone(st.events)
		return nil
	})
	return out
}

// filter returns the rows of m accepted by keep, ordered by id. The result is
// never nil.
func filter[T any](m map[int64]T, keep func(T) bool) []T {
	ids := slices.Sorted(maps.Keys(m))
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if v := m[id]; keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func all[T any](T) bool { return true }

type events struct{ s *Store }

func (r events) InsertEvent(_ context.Context, ev clinic.EventLog) error {
	return r.s.write(func(st *state) error {
		ev.ID = st.nextID("event_logs")
		ev.Payload = slices.Clone(ev.Payload)
		st.events = append(st.events, ev)
		return nil
	})
}
