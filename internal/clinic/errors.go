package clinic

import (
	"errors"
	"fmt"
)

// Entity kinds, used in error messages, cache keys and the event log.
const (
	EntityPatient      = "patient"
	EntityDoctor       = "doctor"
	EntityMedicine     = "medicine"
	EntityAppointment  = "appointment"
	EntityPrescription = "prescription"
)

var (
	ErrPatientNotFound      = &NotFoundError{Entity: EntityPatient}
	ErrDoctorNotFound       = &NotFoundError{Entity: EntityDoctor}
	ErrMedicineNotFound     = &NotFoundError{Entity: EntityMedicine}
	ErrAppointmentNotFound  = &NotFoundError{Entity: EntityAppointment}
	ErrPrescriptionNotFound = &NotFoundError{Entity: EntityPrescription}

	ErrHasDependents      = errors.New("record is still referenced by other records")
	ErrPrescriptionExists = errors.New("the appointment already has a prescription")
)

// NotFoundError reports a missing record of one entity kind. Two NotFoundErrors
// match under errors.Is when they name the same entity, so a NotFoundError with
// a caller-specific message still matches the package sentinel.
type NotFoundError struct {
	Entity  string
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("The %s does not exist", e.Entity)
}

func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	return ok && t.Entity == e.Entity
}

// DependentsError names the child records blocking a delete.
type DependentsError struct {
	Entity    string
	ID        int64
	Dependent string
	Count     int
}

func (e *DependentsError) Error() string {
	return fmt.Sprintf("%s %d is referenced by %d %s record(s)", e.Entity, e.ID, e.Count, e.Dependent)
}

func (e *DependentsError) Unwrap() error {
	return ErrHasDependents
}
