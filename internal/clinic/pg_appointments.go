package clinic

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// Columns are qualified so the same list works in the patient and doctor joins.
const appointmentColumns = `a.id, a.appointment_date, a.reason, a.confirmed, a.cost, a.duration_minutes, a.patient_id, a.doctor_id`

type pgAppointments struct {
	q querier
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var day *time.Time

	err := row.Scan(
		&a.ID,
		&day,
		&a.Reason,
		&a.Confirmed,
		&a.Cost,
		&a.DurationMinutes,
		&a.PatientID,
		&a.DoctorID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	a.Date = dateFrom(day)
	return &a, nil
}

func (r *pgAppointments) FindByID(ctx context.Context, id int64) (*Appointment, error) {
	row := r.q.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments a WHERE a.id = $1`, id)
	return scanAppointment(row)
}

func (r *pgAppointments) FindAll(ctx context.Context) ([]Appointment, error) {
	return queryAll(ctx, r.q, scanAppointment, `SELECT `+appointmentColumns+` FROM appointments a ORDER BY a.id`)
}

func (r *pgAppointments) FindByDate(ctx context.Context, day Date) ([]Appointment, error) {
	return queryAll(ctx, r.q, scanAppointment, `
		SELECT `+appointmentColumns+`
		FROM appointments a
		WHERE a.appointment_date = $1
		ORDER BY a.id
	`, day.Time)
}

func (r *pgAppointments) FindByConfirmed(ctx context.Context, confirmed bool) ([]Appointment, error) {
	return queryAll(ctx, r.q, scanAppointment, `
		SELECT `+appointmentColumns+`
		FROM appointments a
		WHERE a.confirmed = $1
		ORDER BY a.id
	`, confirmed)
}

func (r *pgAppointments) FindByDateAndConfirmed(ctx context.Context, day Date, confirmed bool) ([]Appointment, error) {
	return queryAll(ctx, r.q, scanAppointment, `
		SELECT `+appointmentColumns+`
		FROM appointments a
		WHERE a.appointment_date = $1 AND a.confirmed = $2
		ORDER BY a.id
	`, day.Time, confirmed)
}

func (r *pgAppointments) FindByPatientEmail(ctx context.Context, email string) ([]Appointment, error) {
	return queryAll(ctx, r.q, scanAppointment, `
		SELECT `+appointmentColumns+`
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		WHERE p.email = $1
		ORDER BY a.id
	`, email)
}

func (r *pgAppointments) FindByDoctorName(ctx context.Context, name string) ([]Appointment, error) {
	return queryAll(ctx, r.q, scanAppointment, `
		SELECT `+appointmentColumns+`
		FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		WHERE d.name = $1
		ORDER BY a.id
	`, name)
}

func (r *pgAppointments) FindByCostGreaterThan(ctx context.Context, cost float64) ([]Appointment, error) {
	return queryAll(ctx, r.q, scanAppointment, `
		SELECT `+appointmentColumns+`
		FROM appointments a
		WHERE a.cost > $1
		ORDER BY a.id
	`, cost)
}

func (r *pgAppointments) FindByPatientID(ctx context.Context, patientID int64) ([]Appointment, error) {
	return queryAll(ctx, r.q, scanAppointment, `
		SELECT `+appointmentColumns+`
		FROM appointments a
		WHERE a.patient_id = $1
		ORDER BY a.id
	`, patientID)
}

func (r *pgAppointments) FindByDoctorID(ctx context.Context, doctorID int64) ([]Appointment, error) {
	return queryAll(ctx, r.q, scanAppointment, `
		SELECT `+appointmentColumns+`
		FROM appointments a
		WHERE a.doctor_id = $1
		ORDER BY a.id
	`, doctorID)
}

// Save never rewrites patient_id or doctor_id on update.
func (r *pgAppointments) Save(ctx context.Context, a *Appointment) (*Appointment, error) {
	if a.ID == 0 {
		row := r.q.QueryRow(ctx, `
			INSERT INTO appointments AS a (appointment_date, reason, confirmed, cost, duration_minutes, patient_id, doctor_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+appointmentColumns,
			dateArg(a.Date), a.Reason, a.Confirmed, a.Cost, a.DurationMinutes, a.PatientID, a.DoctorID)
		return scanAppointment(row)
	}

	row := r.q.QueryRow(ctx, `
		UPDATE appointments AS a
		SET appointment_date = $2,
		    reason = $3,
		    confirmed = $4,
		    cost = $5,
		    duration_minutes = $6
		WHERE a.id = $1
		RETURNING `+appointmentColumns,
		a.ID, dateArg(a.Date), a.Reason, a.Confirmed, a.Cost, a.DurationMinutes)
	return scanAppointment(row)
}

func (r *pgAppointments) DeleteByID(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, "appointments", id, ErrAppointmentNotFound)
}
