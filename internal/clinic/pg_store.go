package clinic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error codes the store translates into domain errors.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgStore is the Postgres implementation of Store.
type PgStore struct {
	pool *pgxpool.Pool
	q    querier
	inTx bool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool, q: pool}
}

func (s *PgStore) Patients() PatientRepository {
	return &pgPatients{q: s.q}
}

func (s *PgStore) Doctors() DoctorRepository {
	return &pgDoctors{q: s.q}
}

func (s *PgStore) Medicines() MedicineRepository {
	return &pgMedicines{q: s.q}
}

func (s *PgStore) Appointments() AppointmentRepository {
	return &pgAppointments{q: s.q}
}

func (s *PgStore) Prescriptions() PrescriptionRepository {
	return &pgPrescriptions{q: s.q}
}

func (s *PgStore) Events() EventRepository {
	return &pgEvents{q: s.q}
}

// WithTx opens a transaction unless the store is already bound to one.
func (s *PgStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&PgStore{pool: s.pool, q: tx, inTx: true})
	})
}

// Helpers

// collect drains rows through scan. It never returns a nil slice so empty
// results encode as [].
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]T, error) {
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func queryAll[T any](ctx context.Context, q querier, scan func(pgx.Row) (*T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scan)
}

func pgCode(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// deleteError maps a restrict violation onto ErrHasDependents.
func deleteError(err error) error {
	if pgErr, ok := pgCode(err); ok && pgErr.Code == pgForeignKeyViolation {
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, ErrHasDependents)
	}
	return err
}

func deleteByID(ctx context.Context, q querier, table string, id int64, notFound error) error {
	tag, err := q.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return deleteError(err)
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}

func dateArg(d Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func dateFrom(t *time.Time) Date {
	if t == nil {
		return Date{}
	}
	return NewDate(*t)
}

type pgEvents struct {
	q querier
}

func (r *pgEvents) InsertEvent(ctx context.Context, ev EventLog) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO event_logs (event_type, entity_type, entity_id, payload, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))
	`, ev.EventType, ev.EntityType, ev.EntityID, ev.Payload, nullableTime(ev.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert event log: %w", err)
	}
	return nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
