package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/caredesk/go-admin-portal/backend"
	"github.com/rs/zerolog/log"
)

// DoctorsPageData contains data for rendering the doctors page
type DoctorsPageData struct {
	AppName string
	Doctors []backend.Doctor
	Error   string
}

// DoctorsPageHandler lists doctors (GET /doctors)
func (s *Server) DoctorsPageHandler() http.HandlerFunc {
	doctorsTmpl, err := ParseTemplate("doctors.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse doctors template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		doctors, err := s.deps.Backend.ListDoctors(r.Context(), s.sessionID(r))
		data := DoctorsPageData{
			AppName: s.config.GetAppName(),
			Doctors: doctors,
			Error:   r.URL.Query().Get("error"),
		}
		if err != nil {
			log.Err(err).Msg("Failed to list doctors")
			data.Error = "Could not load doctors"
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := doctorsTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render doctors template")
			http.Error(w, "Failed to render doctors page", http.StatusInternalServerError)
		}
	}
}

// DoctorCreateHandler processes the new-doctor form (POST /doctors)
func (s *Server) DoctorCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		slotDuration, _ := strconv.Atoi(r.FormValue("slot_duration"))
		doctor := backend.Doctor{
			Name:           r.FormValue("name"),
			Specialization: r.FormValue("specialization"),
			AvailableDays:  parseAvailability(r.FormValue("availability")),
			SlotDuration:   slotDuration,
		}
		if doctor.Name == "" || doctor.Specialization == "" {
			redirectWithError(w, r, RouteDoctors, "Name and specialization are required")
			return
		}

		if _, err := s.deps.Backend.CreateDoctor(r.Context(), s.sessionID(r), doctor); err != nil {
			log.Err(err).Msg("Failed to create doctor")
			redirectWithError(w, r, RouteDoctors, backendErrorMessage(err, "Could not create doctor"))
			return
		}

		http.Redirect(w, r, RouteDoctors, http.StatusSeeOther)
	}
}

// DoctorDeleteHandler removes a doctor (POST /doctors/{id}/delete)
func (s *Server) DoctorDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid doctor ID", http.StatusBadRequest)
			return
		}

		if err := s.deps.Backend.DeleteDoctor(r.Context(), s.sessionID(r), doctorID); err != nil {
			log.Err(err).Msg("Failed to delete doctor")
			redirectWithError(w, r, RouteDoctors, backendErrorMessage(err, "Could not delete doctor"))
			return
		}

		http.Redirect(w, r, RouteDoctors, http.StatusSeeOther)
	}
}

// SlotsPageData contains data for rendering the available-slots page
type SlotsPageData struct {
	AppName  string
	DoctorID int
	Date     string
	Slots    []string
	Error    string
}

// DoctorSlotsHandler shows a doctor's open slots for a date
// (GET /doctors/{id}/slots?date=YYYY-MM-DD). The slot computation is the
// backend's; this page only reflects it.
func (s *Server) DoctorSlotsHandler() http.HandlerFunc {
	slotsTmpl, err := ParseTemplate("slots.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse slots template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		doctorID, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid doctor ID", http.StatusBadRequest)
			return
		}

		data := SlotsPageData{
			AppName:  s.config.GetAppName(),
			DoctorID: doctorID,
			Date:     r.URL.Query().Get("date"),
		}
		if data.Date == "" {
			data.Error = "Pick a date to see available slots"
		} else {
			slots, err := s.deps.Backend.AvailableSlots(r.Context(), s.sessionID(r), doctorID, data.Date)
			if err != nil {
				log.Err(err).Msg("Failed to fetch available slots")
				data.Error = backendErrorMessage(err, "Could not load slots")
			}
			data.Slots = slots
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := slotsTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render slots template")
			http.Error(w, "Failed to render slots page", http.StatusInternalServerError)
		}
	}
}

// parseAvailability turns form lines like "mon 09:00-12:00,14:00-17:00"
// into the backend's available_days map.
func parseAvailability(raw string) map[string][]string {
	availability := make(map[string][]string)
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) != 2 {
			continue
		}
		day := strings.ToLower(fields[0])
		availability[day] = strings.Split(fields[1], ",")
	}
	return availability
}
