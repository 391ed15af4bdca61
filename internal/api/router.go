package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hackgods/clinic-records-api/internal/clinic"
)

type RouterConfig struct {
	Service  *clinic.Service
	Postgres Pinger
	Redis    Pinger
	Env      string
	Version  string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(RecoverMiddleware)

	health := NewHealthHandler(cfg.Postgres, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	svc := cfg.Service

	r.Route("/patients", func(r chi.Router) {
		r.Get("/", listPatientsHandler(svc))
		r.Post("/", createPatientHandler(svc))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", getPatientHandler(svc))
			r.Put("/", updatePatientHandler(svc))
			r.Delete("/", deletePatientHandler(svc))
			r.Get("/appointments", patientAppointmentsHandler(svc))
			r.Post("/doctors/{doctorId}/appointments", createAppointmentHandler(svc))
		})
	})

	r.Route("/doctors", func(r chi.Router) {
		r.Get("/", listDoctorsHandler(svc))
		r.Post("/", createDoctorHandler(svc))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", getDoctorHandler(svc))
			r.Put("/", updateDoctorHandler(svc))
			r.Delete("/", deleteDoctorHandler(svc))
			r.Get("/appointments", doctorAppointmentsHandler(svc))
		})
	})

	r.Route("/medicines", func(r chi.Router) {
		r.Get("/", listMedicinesHandler(svc))
		r.Post("/", createMedicineHandler(svc))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", getMedicineHandler(svc))
			r.Put("/", updateMedicineHandler(svc))
			r.Delete("/", deleteMedicineHandler(svc))
			r.Get("/prescriptions", medicinePrescriptionsHandler(svc))
		})
	})

	r.Route("/appointments", func(r chi.Router) {
		r.Get("/", listAppointmentsHandler(svc))

		// Both query styles resolve to the same lookups.
		for _, style := range []string{"/jpql", "/native"} {
			r.Get(style+"/by-patient-email", appointmentsByPatientEmailHandler(svc))
			r.Get(style+"/by-doctor-name", appointmentsByDoctorNameHandler(svc))
			r.Get(style+"/with-cost-greater-than", appointmentsWithCostGreaterThanHandler(svc))
		}

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", getAppointmentHandler(svc))
			r.Put("/", updateAppointmentHandler(svc))
			r.Delete("/", deleteAppointmentHandler(svc))
			r.Get("/prescription", appointmentPrescriptionHandler(svc))
			r.Post("/medicines/{medicineId}/prescriptions", createPrescriptionHandler(svc))
		})
	})

	r.Route("/prescriptions", func(r chi.Router) {
		r.Get("/", listPrescriptionsHandler(svc))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", getPrescriptionHandler(svc))
			r.Put("/", updatePrescriptionHandler(svc))
			r.Delete("/", deletePrescriptionHandler(svc))
		})
	})

	return r
}
