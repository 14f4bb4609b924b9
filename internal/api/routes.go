// Package api defines the Huma API routes and handlers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/stirlingbridge/landdev/internal/boundary"
	"github.com/stirlingbridge/landdev/internal/humastar"
	"github.com/stirlingbridge/landdev/internal/service"
)

// Services holds the service dependencies for API handlers.
type Services struct {
	Land    *service.LandService
	Project *service.ProjectService
	Section *service.SectionService
}

// RegisterRoutes registers all REST API routes.
func RegisterRoutes(api huma.API, svc *Services) {
	huma.AutoRegister(api, NewAPIHandler(svc))
}

// Types

type IDInput struct {
	ID string `path:"id" doc:"Project ID" example:"7b0d2f1e-4c4e-4a46-9f2a-3f2b6f9a1c55"`
}

type IdentifyInput struct {
	Body struct {
		ProjectName string  `json:"projectName,omitempty" maxLength:"200" doc:"Project name; a default is used when empty" example:"Riverside Estate"`
		Latitude    float64 `json:"latitude" required:"true" minimum:"-90" maximum:"90" doc:"Latitude in decimal degrees" example:"-26.2041"`
		Longitude   float64 `json:"longitude" required:"true" minimum:"-180" maximum:"180" doc:"Longitude in decimal degrees" example:"28.0473"`
	}
}

type LandOutput struct {
	Body service.LandData
}

type ListProjectsInput struct {
	Limit  int    `query:"limit" default:"100" minimum:"1" maximum:"1000" doc:"Page size"`
	Offset int    `query:"offset" default:"0" minimum:"0" doc:"Page offset"`
	Search string `query:"search" doc:"Case-insensitive name filter"`
}

type ProjectsOutput struct {
	Body humastar.PageBody[service.Project]
}

// ProjectBody is a single project response with hypermedia actions.
type ProjectBody struct {
	service.Project
}

var projectActions = []humastar.ActionDef{
	{Rel: "delete", Pattern: "/api/projects/%s", Method: http.MethodDelete, Title: "Delete project"},
	{Rel: "land", Pattern: "/api/projects/%s/land", Method: http.MethodGet, Title: "Full land data"},
	{Rel: "layers", Pattern: "/api/projects/%s/layers", Method: http.MethodGet, Title: "Layer states"},
	{Rel: "progress", Pattern: "/api/projects/%s/progress", Method: http.MethodGet, Title: "Section progress"},
	{Rel: "alternate", Pattern: "/api/projects/%s/geojson", Method: http.MethodGet, Title: "Relevant boundaries as GeoJSON"},
}

// Actions implements humastar.Actor.
func (b ProjectBody) Actions() []humastar.Action {
	return humastar.ActionsFor(b.ID, projectActions)
}

type ProjectOutput struct {
	Body ProjectBody
}

type LayerStatesOutput struct {
	Body boundary.LayerStateMap
}

type ProgressOutput struct {
	Body []boundary.SectionStatus
}

type BoundaryTypesOutput struct {
	Body []service.BoundaryType
}

type SectionsOutput struct {
	Body []boundary.Section
}

type StatsOutput struct {
	Body service.ProjectStats
}

type MessageBody struct {
	Message string `json:"message" doc:"Result message"`
}

type HealthBody struct {
	Status  string `json:"status" doc:"Health status" example:"ok"`
	Version string `json:"version" doc:"API version" example:"1.0.0"`
}

// APIHandler holds all REST API handlers. Methods named Register* are
// auto-discovered by huma.AutoRegister.
type APIHandler struct {
	svc *Services
}

func NewAPIHandler(svc *Services) *APIHandler {
	return &APIHandler{svc: svc}
}

// RegisterHealth registers health check routes.
func (h *APIHandler) RegisterHealth(api huma.API) {
	huma.Get(api, "/health", h.GetHealth, huma.OperationTags("health"))
}

// RegisterIdentify registers the land identification route.
func (h *APIHandler) RegisterIdentify(api huma.API) {
	huma.Post(api, "/api/identify-land", h.IdentifyLand, huma.OperationTags("land"))
}

// RegisterProjects registers project CRUD and derived-data routes.
func (h *APIHandler) RegisterProjects(api huma.API) {
	huma.Get(api, "/api/projects", h.ListProjects, huma.OperationTags("projects"))
	huma.Get(api, "/api/projects/{id}", h.GetProject, huma.OperationTags("projects"))
	huma.Delete(api, "/api/projects/{id}", h.DeleteProject, huma.OperationTags("projects"))
	huma.Get(api, "/api/projects/{id}/land", h.GetProjectLand, huma.OperationTags("projects", "land"))
	huma.Get(api, "/api/projects/{id}/layers", h.GetProjectLayers, huma.OperationTags("projects", "land"))
	huma.Get(api, "/api/projects/{id}/progress", h.GetProjectProgress, huma.OperationTags("projects", "land"))
	huma.Get(api, "/api/projects/{id}/geojson", h.GetProjectGeoJSON, huma.OperationTags("projects", "land"))
}

// RegisterCatalog registers the layer catalog routes.
func (h *APIHandler) RegisterCatalog(api huma.API) {
	huma.Get(api, "/api/boundary-types", h.GetBoundaryTypes, huma.OperationTags("catalog"))
	huma.Get(api, "/api/sections", h.GetSections, huma.OperationTags("catalog"))
}

// RegisterStatistics registers the statistics route.
func (h *APIHandler) RegisterStatistics(api huma.API) {
	huma.Get(api, "/api/statistics", h.GetStatistics, huma.OperationTags("projects"))
}

// Handlers

func (h *APIHandler) GetHealth(ctx context.Context, input *struct{}) (*struct{ Body HealthBody }, error) {
	return &struct{ Body HealthBody }{Body: HealthBody{Status: "ok", Version: "1.0.0"}}, nil
}

func (h *APIHandler) IdentifyLand(ctx context.Context, input *IdentifyInput) (*LandOutput, error) {
	data, err := h.svc.Land.IdentifyLand(ctx, input.Body.ProjectName, boundary.Coordinate{
		Latitude:  input.Body.Latitude,
		Longitude: input.Body.Longitude,
	})
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}
	return &LandOutput{Body: data}, nil
}

func (h *APIHandler) ListProjects(ctx context.Context, input *ListProjectsInput) (*ProjectsOutput, error) {
	projects, total, err := h.svc.Project.List(ctx, input.Limit, input.Offset, input.Search)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list projects", err)
	}
	if projects == nil {
		projects = []service.Project{}
	}
	return &ProjectsOutput{Body: humastar.PageBody[service.Project]{
		Total:  total,
		Offset: input.Offset,
		Limit:  input.Limit,
		Data:   projects,
	}}, nil
}

func (h *APIHandler) GetProject(ctx context.Context, input *IDInput) (*ProjectOutput, error) {
	p, err := h.svc.Project.Get(ctx, input.ID)
	if err != nil {
		return nil, notFoundOr500(err)
	}
	return &ProjectOutput{Body: ProjectBody{Project: p}}, nil
}

func (h *APIHandler) DeleteProject(ctx context.Context, input *IDInput) (*struct{ Body MessageBody }, error) {
	if err := h.svc.Project.Delete(ctx, input.ID); err != nil {
		return nil, notFoundOr500(err)
	}
	return &struct{ Body MessageBody }{Body: MessageBody{Message: "Project deleted"}}, nil
}

func (h *APIHandler) GetProjectLand(ctx context.Context, input *IDInput) (*LandOutput, error) {
	data, err := h.svc.Land.Describe(ctx, input.ID)
	if err != nil {
		return nil, notFoundOr500(err)
	}
	return &LandOutput{Body: data}, nil
}

func (h *APIHandler) GetProjectLayers(ctx context.Context, input *IDInput) (*LayerStatesOutput, error) {
	data, err := h.svc.Land.Describe(ctx, input.ID)
	if err != nil {
		return nil, notFoundOr500(err)
	}
	return &LayerStatesOutput{Body: data.LayerStates}, nil
}

func (h *APIHandler) GetProjectProgress(ctx context.Context, input *IDInput) (*ProgressOutput, error) {
	data, err := h.svc.Land.Describe(ctx, input.ID)
	if err != nil {
		return nil, notFoundOr500(err)
	}
	return &ProgressOutput{Body: data.Progress}, nil
}

// GetProjectGeoJSON streams the relevant boundary set as GeoJSON. The
// feature collection is marshaled up front so schema reflection never sees
// the geometry interface types.
func (h *APIHandler) GetProjectGeoJSON(ctx context.Context, input *IDInput) (*huma.StreamResponse, error) {
	fc, err := h.svc.Land.GeoJSON(ctx, input.ID)
	if err != nil {
		return nil, notFoundOr500(err)
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to encode feature collection", err)
	}
	return &huma.StreamResponse{
		Body: func(hctx huma.Context) {
			hctx.SetHeader("Content-Type", "application/geo+json")
			hctx.BodyWriter().Write(data)
		},
	}, nil
}

func (h *APIHandler) GetBoundaryTypes(ctx context.Context, input *struct{}) (*BoundaryTypesOutput, error) {
	return &BoundaryTypesOutput{Body: h.svc.Section.BoundaryTypes()}, nil
}

func (h *APIHandler) GetSections(ctx context.Context, input *struct{}) (*SectionsOutput, error) {
	return &SectionsOutput{Body: h.svc.Section.Sections()}, nil
}

func (h *APIHandler) GetStatistics(ctx context.Context, input *struct{}) (*StatsOutput, error) {
	stats, err := h.svc.Project.Stats(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to compute statistics", err)
	}
	return &StatsOutput{Body: stats}, nil
}

func notFoundOr500(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, service.ErrInvalidID):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return huma.Error500InternalServerError(err.Error())
	}
}
