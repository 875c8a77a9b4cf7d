package server

import (
	"net/http"
	"strconv"

	"github.com/caredesk/go-admin-portal/backend"
	"github.com/rs/zerolog/log"
)

// PatientsPageData contains data for rendering the patients page
type PatientsPageData struct {
	AppName  string
	Patients []backend.Patient
	Error    string
}

// PatientsPageHandler lists patients (GET /patients)
func (s *Server) PatientsPageHandler() http.HandlerFunc {
	patientsTmpl, err := ParseTemplate("patients.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse patients template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		patients, err := s.deps.Backend.ListPatients(r.Context(), s.sessionID(r))
		data := PatientsPageData{
			AppName:  s.config.GetAppName(),
			Patients: patients,
			Error:    r.URL.Query().Get("error"),
		}
		if err != nil {
			log.Err(err).Msg("Failed to list patients")
			data.Error = "Could not load patients"
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := patientsTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render patients template")
			http.Error(w, "Failed to render patients page", http.StatusInternalServerError)
		}
	}
}

// PatientCreateHandler processes the new-patient form (POST /patients)
func (s *Server) PatientCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		patient := backend.Patient{
			Name:  r.FormValue("name"),
			Email: r.FormValue("email"),
			Phone: r.FormValue("phone"),
		}
		if patient.Name == "" || patient.Email == "" {
			redirectWithError(w, r, RoutePatients, "Name and email are required")
			return
		}

		if _, err := s.deps.Backend.CreatePatient(r.Context(), s.sessionID(r), patient); err != nil {
			log.Err(err).Msg("Failed to create patient")
			redirectWithError(w, r, RoutePatients, backendErrorMessage(err, "Could not create patient"))
			return
		}

		http.Redirect(w, r, RoutePatients, http.StatusSeeOther)
	}
}

// PatientDeleteHandler removes a patient (POST /patients/{id}/delete)
func (s *Server) PatientDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid patient ID", http.StatusBadRequest)
			return
		}

		if err := s.deps.Backend.DeletePatient(r.Context(), s.sessionID(r), patientID); err != nil {
			log.Err(err).Msg("Failed to delete patient")
			redirectWithError(w, r, RoutePatients, backendErrorMessage(err, "Could not delete patient"))
			return
		}

		http.Redirect(w, r, RoutePatients, http.StatusSeeOther)
	}
}
