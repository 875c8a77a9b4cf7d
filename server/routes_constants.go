package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteLogin  = "/login"
	RouteLogout = "/logout"

	// Protected Pages
	RouteDashboard       = "/"
	RouteDoctors         = "/doctors"
	RouteDoctorDelete    = "/doctors/{id}/delete"
	RouteDoctorSlots     = "/doctors/{id}/slots"
	RoutePatients        = "/patients"
	RoutePatientDelete   = "/patients/{id}/delete"
	RouteAppointments    = "/appointments"
	RouteAppointmentDel  = "/appointments/{id}/delete"
	RouteAppointmentEdit = "/appointments/{id}"

	// Operational
	RouteMetrics = "/metrics"
	RouteHealth  = "/healthz"
)
