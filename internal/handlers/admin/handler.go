package admin

import (
	"net/http"
	"safar/infras/otel"
	"safar/internal/domains/booking/service"
	"safar/shared/constant"
	"safar/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.Get("/dashboard", handler.GetDashboard)
	})
}

// GetDashboard returns the operational summary for the admin panel.
// @Summary Get the admin dashboard
// @Description Retrieve aggregate counts, recent bookings and the trailing six month revenue.
// @Tags Admin
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.DashboardResponse} "Dashboard summary"
// @Failure 403 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/admin/dashboard [get]
// @Security BearerAuth
func (handler *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDashboard")
	defer scope.End()

	res, err := handler.service.GetDashboard(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dashboard retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}
