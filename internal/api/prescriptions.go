package api

import (
	"net/http"

	"github.com/hackgods/clinic-records-api/internal/clinic"
)

func listPrescriptionsHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := newQueryParams(r)
		filter := clinic.PrescriptionFilter{
			Active:       q.Bool("active"),
			DurationDays: q.Int("durationDays"),
		}
		if err := q.Err(); err != nil {
			handleError(w, r, err)
			return
		}

		prescriptions, err := svc.ListPrescriptions(r.Context(), filter)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, prescriptions)
	}
}

func getPrescriptionHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}

		prescription, err := svc.GetPrescription(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, prescription)
	}
}

// createPrescriptionHandler serves
// POST /appointments/{id}/medicines/{medicineId}/prescriptions.
func createPrescriptionHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointmentID, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}
		medicineID, err := pathID(r, "medicineId")
		if err != nil {
			handleError(w, r, err)
			return
		}

		var req clinic.PrescriptionRegistration
		if err := decode(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		prescription, err := svc.AddPrescription(r.Context(), appointmentID, medicineID, req)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, prescription)
	}
}

func updatePrescriptionHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}

		var req clinic.PrescriptionUpdate
		if err := decode(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		prescription, err := svc.ModifyPrescription(r.Context(), id, req)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, prescription)
	}
}

func deletePrescriptionHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}

		if err := svc.RemovePrescription(r.Context(), id); err != nil {
			handleError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
