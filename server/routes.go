package server

func (s *Server) initRoutes() {
	// LOGIN / LOGOUT
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// Protected pages (session-guarded, server-rendered)
	s.RegisterRouteHandler("GET "+RouteDashboard, ChainMiddleware(s.DashboardHandler(), s.HTMLMiddleWare(s.RequireSessionAuth())...))

	s.RegisterRouteHandler("GET "+RouteDoctors, ChainMiddleware(s.DoctorsPageHandler(), s.HTMLMiddleWare(s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteDoctors, ChainMiddleware(s.DoctorCreateHandler(), s.HTMLMiddleWare(s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteDoctorDelete, ChainMiddleware(s.DoctorDeleteHandler(), s.HTMLMiddleWare(s.RequireSessionAuth())...))
	s.RegisterRouteHandler("GET "+RouteDoctorSlots, ChainMiddleware(s.DoctorSlotsHandler(), s.HTMLMiddleWare(s.RequireSessionAuth())...))

	s.RegisterRouteHandler("GET "+RoutePatients, ChainMiddleware(s.PatientsPageHandler(), s.HTMLMiddleWare(s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RoutePatients, ChainMiddleware(s.PatientCreateHandler(), s.HTMLMiddleWare(s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RoutePatientDelete, ChainMiddleware(s.PatientDeleteHandler(), s.HTMLMiddleWare(s.RequireSessionAuth())...))

	s.RegisterRouteHandler("GET "+RouteAppointments, ChainMiddleware(s.AppointmentsPageHandler(), s.HTMLMiddleWare(s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteAppointments, ChainMiddleware(s.AppointmentCreateHandler(), s.HTMLMiddleWare(s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteAppointmentEdit, ChainMiddleware(s.AppointmentUpdateHandler(), s.HTMLMiddleWare(s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteAppointmentDel, ChainMiddleware(s.AppointmentDeleteHandler(), s.HTMLMiddleWare(s.RequireSessionAuth())...))

	// Operational
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	if s.deps.MetricsHandler != nil {
		s.RegisterRouteHandler("GET "+RouteMetrics, s.deps.MetricsHandler)
	}
}
