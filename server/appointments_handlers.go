package server

import (
	"net/http"
	"strconv"

	"github.com/caredesk/go-admin-portal/backend"
	"github.com/rs/zerolog/log"
)

// AppointmentsPageData contains data for rendering the appointments page
type AppointmentsPageData struct {
	AppName      string
	Appointments []backend.Appointment
	Doctors      []backend.Doctor
	Patients     []backend.Patient
	Error        string
}

// AppointmentsPageHandler lists appointments with the doctor and patient
// choices for the booking form (GET /appointments)
func (s *Server) AppointmentsPageHandler() http.HandlerFunc {
	appointmentsTmpl, err := ParseTemplate("appointments.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse appointments template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := s.sessionID(r)

		data := AppointmentsPageData{
			AppName: s.config.GetAppName(),
			Error:   r.URL.Query().Get("error"),
		}

		appointments, err := s.deps.Backend.ListAppointments(r.Context(), sessionID)
		if err != nil {
			log.Err(err).Msg("Failed to list appointments")
			data.Error = "Could not load appointments"
		}
		data.Appointments = appointments

		// Doctor and patient lists feed the booking form selects; their
		// failure degrades the form, not the page.
		if doctors, err := s.deps.Backend.ListDoctors(r.Context(), sessionID); err == nil {
			data.Doctors = doctors
		}
		if patients, err := s.deps.Backend.ListPatients(r.Context(), sessionID); err == nil {
			data.Patients = patients
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := appointmentsTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render appointments template")
			http.Error(w, "Failed to render appointments page", http.StatusInternalServerError)
		}
	}
}

// AppointmentCreateHandler books an appointment (POST /appointments).
// Conflict detection is backend-side; a 409 comes back to the page as the
// backend's own message.
func (s *Server) AppointmentCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		doctorID, err := strconv.Atoi(r.FormValue("doctor_id"))
		if err != nil {
			redirectWithError(w, r, RouteAppointments, "Pick a doctor")
			return
		}
		patientID, err := strconv.Atoi(r.FormValue("patient_id"))
		if err != nil {
			redirectWithError(w, r, RouteAppointments, "Pick a patient")
			return
		}

		appointment := backend.Appointment{
			DoctorID:  doctorID,
			PatientID: patientID,
			Date:      r.FormValue("date"),
			StartTime: r.FormValue("start_time"),
			EndTime:   r.FormValue("end_time"),
			Reason:    r.FormValue("reason"),
		}
		if appointment.Date == "" || appointment.StartTime == "" {
			redirectWithError(w, r, RouteAppointments, "Date and start time are required")
			return
		}

		if _, err := s.deps.Backend.CreateAppointment(r.Context(), s.sessionID(r), appointment); err != nil {
			log.Err(err).Msg("Failed to create appointment")
			if backend.IsStatus(err, http.StatusConflict) {
				redirectWithError(w, r, RouteAppointments, backendErrorMessage(err, "That slot is already booked"))
				return
			}
			redirectWithError(w, r, RouteAppointments, backendErrorMessage(err, "Could not book appointment"))
			return
		}

		http.Redirect(w, r, RouteAppointments, http.StatusSeeOther)
	}
}

// AppointmentUpdateHandler reschedules or changes the status of an
// appointment (POST /appointments/{id})
func (s *Server) AppointmentUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointmentID, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid appointment ID", http.StatusBadRequest)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		sessionID := s.sessionID(r)
		existing, err := s.deps.Backend.GetAppointment(r.Context(), sessionID, appointmentID)
		if err != nil {
			log.Err(err).Msg("Failed to load appointment for update")
			redirectWithError(w, r, RouteAppointments, backendErrorMessage(err, "Could not load appointment"))
			return
		}

		updated := *existing
		if v := r.FormValue("date"); v != "" {
			updated.Date = v
		}
		if v := r.FormValue("start_time"); v != "" {
			updated.StartTime = v
		}
		if v := r.FormValue("end_time"); v != "" {
			updated.EndTime = v
		}
		if v := r.FormValue("status"); v != "" {
			updated.Status = v
		}

		if _, err := s.deps.Backend.UpdateAppointment(r.Context(), sessionID, appointmentID, updated); err != nil {
			log.Err(err).Msg("Failed to update appointment")
			redirectWithError(w, r, RouteAppointments, backendErrorMessage(err, "Could not update appointment"))
			return
		}

		http.Redirect(w, r, RouteAppointments, http.StatusSeeOther)
	}
}

// AppointmentDeleteHandler cancels an appointment
// (POST /appointments/{id}/delete)
func (s *Server) AppointmentDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointmentID, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid appointment ID", http.StatusBadRequest)
			return
		}

		if err := s.deps.Backend.DeleteAppointment(r.Context(), s.sessionID(r), appointmentID); err != nil {
			log.Err(err).Msg("Failed to delete appointment")
			redirectWithError(w, r, RouteAppointments, backendErrorMessage(err, "Could not cancel appointment"))
			return
		}

		http.Redirect(w, r, RouteAppointments, http.StatusSeeOther)
	}
}
