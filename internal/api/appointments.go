package api

import (
	"net/http"

	"github.com/hackgods/clinic-records-api/internal/clinic"
)

func listAppointmentsHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := newQueryParams(r)
		filter := clinic.AppointmentFilter{
			Date:      q.Date("date"),
			Confirmed: q.Bool("confirmed"),
		}
		if err := q.Err(); err != nil {
			handleError(w, r, err)
			return
		}

		appts, err := svc.ListAppointments(r.Context(), filter)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, appts)
	}
}

func getAppointmentHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}

		appt, err := svc.GetAppointment(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, appt)
	}
}

// createAppointmentHandler serves POST /patients/{id}/doctors/{doctorId}/appointments.
func createAppointmentHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}
		doctorID, err := pathID(r, "doctorId")
		if err != nil {
			handleError(w, r, err)
			return
		}

		var req clinic.AppointmentRegistration
		if err := decode(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		appt, err := svc.AddAppointment(r.Context(), patientID, doctorID, req)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, appt)
	}
}

func updateAppointmentHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}

		var req clinic.AppointmentUpdate
		if err := decode(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		appt, err := svc.ModifyAppointment(r.Context(), id, req)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, appt)
	}
}

func deleteAppointmentHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}

		if err := svc.RemoveAppointment(r.Context(), id); err != nil {
			handleError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// The lookup handlers below are mounted under both /appointments/jpql and
// /appointments/native.

func appointmentsByPatientEmailHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := newQueryParams(r)
		email := q.RequiredString("email")
		if err := q.Err(); err != nil {
			handleError(w, r, err)
			return
		}

		appts, err := svc.FindAppointmentsByPatientEmail(r.Context(), email)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, appts)
	}
}

func appointmentsByDoctorNameHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := newQueryParams(r)
		name := q.RequiredString("name")
		if err := q.Err(); err != nil {
			handleError(w, r, err)
			return
		}

		appts, err := svc.FindAppointmentsByDoctorName(r.Context(), name)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, appts)
	}
}

func appointmentsWithCostGreaterThanHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := newQueryParams(r)
		cost := q.RequiredFloat("cost")
		if err := q.Err(); err != nil {
			handleError(w, r, err)
			return
		}

		appts, err := svc.FindAppointmentsWithCostGreaterThan(r.Context(), cost)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, appts)
	}
}

func appointmentPrescriptionHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}

		prescription, err := svc.GetAppointmentPrescription(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, prescription)
	}
}
