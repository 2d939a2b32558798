package booking

import (
	"net/http"
	"safar/infras/otel"
	"safar/internal/domains/booking/model"
	"safar/internal/domains/booking/model/dto"
	"safar/internal/domains/booking/service"
	"safar/shared/constant"
	gDto "safar/shared/dto"
	"safar/shared/failure"
	"safar/shared/validator"
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
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/mybookings", handler.GetMyBookings)
		routerGroup.Get("/analytics/overview", handler.GetAnalyticsOverview)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Put("/{id}/status", handler.UpdateBookingStatus)
		routerGroup.Put("/{id}/payment", handler.UpdateBookingPayment)
		routerGroup.Post("/{id}/documents", handler.UploadBookingDocument)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Create a new package booking; pricing is computed server-side from the package and the service catalog.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Envelope{data=dto.BookingResponse} "Booking created successfully"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookings retrieves all bookings based on query parameters.
// @Summary Get all bookings
// @Description Retrieve all bookings with optional filtering and pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, confirmed, cancelled, completed)"
// @Param service_type query string false "Filter by service type (hajj, umrah, global-tourism)"
// @Param payment_status query string false "Filter by payment status (pending, paid, refunded, failed)"
// @Param search query string false "Search by booking reference"
// @Success 200 {object} response.Envelope{data=dto.GetBookingsResponse} "List of bookings"
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	appendBookingFilters(&filterGroup, r)

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetMyBookings retrieves all bookings for the currently authenticated user.
// @Summary Get my bookings
// @Description Retrieve all bookings for the currently authenticated user with optional filtering and pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, confirmed, cancelled, completed)"
// @Param payment_status query string false "Filter by payment status (pending, paid, refunded, failed)"
// @Success 200 {object} response.Envelope{data=dto.GetBookingsResponse} "List of user's bookings"
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/mybookings [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get user ID from context")

		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}

	appendBookingFilters(&filterGroup, r)

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User bookings retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve a booking by its unique identifier. Customers can only access their own bookings.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope{data=dto.BookingResponse} "Booking details"
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBookingStatus transitions a booking through its lifecycle.
// @Summary Update booking status
// @Description Transition a booking to a new status. Illegal transitions are rejected.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingStatusRequest true "Update Booking Status Request"
// @Success 200 {object} response.Envelope "Booking status updated successfully"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/{id}/status [put]
// @Security BearerAuth
func (handler *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBookingStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking status")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking status updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking status updated successfully")
}

// UpdateBookingPayment transitions a booking's payment state.
// @Summary Update booking payment status
// @Description Transition a booking's payment status. Illegal transitions are rejected.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingPaymentRequest true "Update Booking Payment Request"
// @Success 200 {object} response.Envelope "Booking payment updated successfully"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/{id}/payment [put]
// @Security BearerAuth
func (handler *Handler) UpdateBookingPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingPayment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBookingPaymentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdatePayment(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking payment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking payment updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking payment updated successfully")
}

// UploadBookingDocument attaches a document to a booking.
// @Summary Upload a booking document
// @Description Upload a supporting document (passport scan, visa, receipt) for a booking.
// @Tags Booking
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Booking ID"
// @Param file formData file true "Document file"
// @Success 200 {object} response.Envelope{data=dto.BookingResponse} "Document uploaded successfully"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/{id}/documents [post]
// @Security BearerAuth
func (handler *Handler) UploadBookingDocument(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadBookingDocument")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		err = failure.BadRequestFromString("failed to parse multipart form")
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		err = failure.BadRequestFromString("file is required")
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read uploaded file")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	res, err := handler.service.UploadDocument(ctx, id, file, fileHeader)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload booking document")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking document uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteBooking deletes a booking by its ID.
// @Summary Delete a booking by ID
// @Description Delete a booking; reserved capacity on the package is released.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope "Booking deleted successfully"
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}

// GetAnalyticsOverview returns booking analytics over a trailing window.
// @Summary Get booking analytics
// @Description Retrieve revenue, distributions, the monthly trend and the most booked packages over the requested period.
// @Tags Booking
// @Accept json
// @Produce json
// @Param period query string false "Trailing window (1month, 3months, 6months, 1year)" default(6months)
// @Success 200 {object} response.Envelope{data=dto.AnalyticsOverviewResponse} "Analytics overview"
// @Failure 403 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/analytics/overview [get]
// @Security BearerAuth
func (handler *Handler) GetAnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAnalyticsOverview")
	defer scope.End()

	period := r.URL.Query().Get(constant.RequestParamPeriod)

	res, err := handler.service.GetAnalyticsOverview(ctx, period)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get analytics overview")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Analytics overview retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// appendBookingFilters adds the shared list filters present on the request.
func appendBookingFilters(filterGroup *gDto.FilterGroup, r *http.Request) {
	if status := r.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if serviceType := r.URL.Query().Get(model.FieldServiceType); serviceType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldServiceType,
			Operator: gDto.FilterOperatorEq,
			Value:    serviceType,
			Table:    model.TableName,
		})
	}

	if paymentStatus := r.URL.Query().Get(model.FieldPaymentStatus); paymentStatus != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPaymentStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    paymentStatus,
			Table:    model.TableName,
		})
	}

	if search := r.URL.Query().Get(constant.RequestParamSearch); search != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBookingRef,
			Operator: gDto.FilterOperatorLike,
			Value:    search,
			Table:    model.TableName,
		})
	}
}
