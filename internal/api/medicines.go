package api

import (
	"net/http"

	"github.com/hackgods/clinic-records-api/internal/clinic"
)

func listMedicinesHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := newQueryParams(r)
		filter := clinic.MedicineFilter{
			Name:         q.String("name"),
			Manufacturer: q.String("manufacturer"),
		}

		medicines, err := svc.ListMedicines(r.Context(), filter)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, medicines)
	}
}

func getMedicineHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}

		medicine, err := svc.GetMedicine(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, medicine)
	}
}

func createMedicineHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clinic.MedicineRegistration
		if err := decode(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		medicine, err := svc.AddMedicine(r.Context(), req)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, medicine)
	}
}

func updateMedicineHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}

		var req clinic.MedicineUpdate
		if err := decode(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		medicine, err := svc.ModifyMedicine(r.Context(), id, req)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, medicine)
	}
}

func deleteMedicineHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}

		if err := svc.RemoveMedicine(r.Context(), id); err != nil {
			handleError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func medicinePrescriptionsHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}

		prescriptions, err := svc.ListMedicinePrescriptions(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, prescriptions)
	}
}
