package pkg

import (
	"net/http"
	"safar/infras/otel"
	"safar/internal/domains/pkg/model"
	"safar/internal/domains/pkg/model/dto"
	"safar/internal/domains/pkg/service"
	"safar/shared/constant"
	gDto "safar/shared/dto"
	"safar/shared/validator"
	"safar/transport/http/response"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

const (
	paramFeatured = "featured"
	paramMinPrice = "min_price"
	paramMaxPrice = "max_price"
)

type Handler struct {
	service service.Package
	otel    otel.Otel
}

func New(service service.Package, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/packages", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePackage)
		routerGroup.Get("/", handler.GetPackages)
		routerGroup.Get("/{id}", handler.GetPackageByID)
		routerGroup.Put("/{id}", handler.UpdatePackage)
		routerGroup.Put("/{id}/status", handler.UpdatePackageStatus)
		routerGroup.Delete("/{id}", handler.DeletePackage)
	})
}

// CreatePackage handles the creation of a new travel package.
// @Summary Create a new package
// @Description Create a new travel package with the provided details.
// @Tags Package
// @Accept json
// @Produce json
// @Param request body dto.CreatePackageRequest true "Create Package Request"
// @Success 201 {object} response.Envelope "Package created successfully"
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/packages [post]
// @Security BearerAuth
func (handler *Handler) CreatePackage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePackage")
	defer scope.End()

	req := dto.CreatePackageRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create package")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Package created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Package created successfully")
}

// GetPackages retrieves the package catalog based on query parameters.
// @Summary Get all packages
// @Description Retrieve the package catalog with optional filtering and pagination. Inactive packages are visible to admins only.
// @Tags Package
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param service_type query string false "Filter by service type (hajj, umrah, global-tourism)"
// @Param featured query bool false "Filter by featured flag"
// @Param is_active query bool false "Filter by active flag (admin only)"
// @Param search query string false "Search in name, description and destination"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Success 200 {object} response.Envelope{data=dto.GetPackagesResponse} "List of packages"
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/packages [get]
func (handler *Handler) GetPackages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	// Only admins see retired packages; everyone else is pinned to active ones.
	if role == constant.RoleAdmin {
		if isActive := r.URL.Query().Get(model.FieldIsActive); isActive != "" {
			if parsed, err := strconv.ParseBool(isActive); err == nil {
				filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
					Field:    model.FieldIsActive,
					Operator: gDto.FilterOperatorEq,
					Value:    parsed,
					Table:    model.TableName,
				})
			}
		}
	} else {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    true,
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

	if featured := r.URL.Query().Get(paramFeatured); featured != "" {
		if parsed, err := strconv.ParseBool(featured); err == nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    model.FieldIsFeatured,
				Operator: gDto.FilterOperatorEq,
				Value:    parsed,
				Table:    model.TableName,
			})
		}
	}

	if search := r.URL.Query().Get(constant.RequestParamSearch); search != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					Field:    model.FieldName,
					Operator: gDto.FilterOperatorLike,
					Value:    search,
					Table:    model.TableName,
				},
				gDto.Filter{
					Field:    model.FieldDescription,
					Operator: gDto.FilterOperatorLike,
					Value:    search,
					Table:    model.TableName,
				},
				gDto.Filter{
					ArgName:  "destination_country",
					Field:    "destination->>'country'",
					Operator: gDto.FilterOperatorLike,
					Value:    search,
					Table:    model.TableName,
				},
				gDto.Filter{
					ArgName:  "destination_city",
					Field:    "destination->>'city'",
					Operator: gDto.FilterOperatorLike,
					Value:    search,
					Table:    model.TableName,
				},
			},
		})
	}

	if minPrice := r.URL.Query().Get(paramMinPrice); minPrice != "" {
		if parsed, err := strconv.ParseFloat(minPrice, 64); err == nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				ArgName:  paramMinPrice,
				Field:    model.FieldPrice,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    parsed,
				Table:    model.TableName,
			})
		}
	}

	if maxPrice := r.URL.Query().Get(paramMaxPrice); maxPrice != "" {
		if parsed, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				ArgName:  paramMaxPrice,
				Field:    model.FieldPrice,
				Operator: gDto.FilterOperatorLessEq,
				Value:    parsed,
				Table:    model.TableName,
			})
		}
	}

	packages, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get packages")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Packages retrieved successfully")

	response.WithJSON(w, http.StatusOK, packages)
}

// GetPackageByID retrieves a package by its ID.
// @Summary Get a package by ID
// @Description Retrieve a package by its unique identifier.
// @Tags Package
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} response.Envelope{data=dto.PackageResponse} "Package details"
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/packages/{id} [get]
func (handler *Handler) GetPackageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackageByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	pkg, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get package by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Package retrieved successfully")

	response.WithJSON(w, http.StatusOK, pkg)
}

// UpdatePackage updates an existing package by its ID.
// @Summary Update a package by ID
// @Description Update the details of an existing package.
// @Tags Package
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Param request body dto.UpdatePackageRequest true "Update Package Request"
// @Success 200 {object} response.Envelope "Package updated successfully"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/packages/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePackage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePackageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update package")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Package updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Package updated successfully")
}

// UpdatePackageStatus activates or deactivates a package.
// @Summary Update package status
// @Description Activate or deactivate a package without touching its other fields.
// @Tags Package
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Param request body dto.UpdatePackageStatusRequest true "Update Package Status Request"
// @Success 200 {object} response.Envelope "Package status updated successfully"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/packages/{id}/status [put]
// @Security BearerAuth
func (handler *Handler) UpdatePackageStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePackageStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePackageStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update package status")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Package status updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Package status updated successfully")
}

// DeletePackage deletes a package by its ID.
// @Summary Delete a package by ID
// @Description Delete a package using its unique identifier.
// @Tags Package
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} response.Envelope "Package deleted successfully"
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/packages/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePackage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete package")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Package deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Package deleted successfully")
}
