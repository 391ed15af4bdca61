package api

import (
	"net/http"

	"github.com/hackgods/clinic-records-api/internal/clinic"
)

func listDoctorsHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := newQueryParams(r)
		filter := clinic.DoctorFilter{
			Name:      q.String("name"),
			Specialty: q.String("specialty"),
		}

		doctors, err := svc.ListDoctors(r.Context(), filter)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, doctors)
	}
}

func getDoctorHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}

		doctor, err := svc.GetDoctor(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, doctor)
	}
}

func createDoctorHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clinic.DoctorRegistration
		if err := decode(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		doctor, err := svc.AddDoctor(r.Context(), req)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, doctor)
	}
}

func updateDoctorHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}

		var req clinic.DoctorUpdate
		if err := decode(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		doctor, err := svc.ModifyDoctor(r.Context(), id, req)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, doctor)
	}
}

func deleteDoctorHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}

		if err := svc.RemoveDoctor(r.Context(), id); err != nil {
			handleError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func doctorAppointmentsHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}

		appts, err := svc.ListDoctorAppointments(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, appts)
	}
}
