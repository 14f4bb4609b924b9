// Package dashboard contains Datastar SSE handlers for the map dashboard UI.
package dashboard

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"

	"github.com/stirlingbridge/landdev/internal/boundary"
	"github.com/stirlingbridge/landdev/internal/humastar"
	"github.com/stirlingbridge/landdev/internal/service"
	"github.com/stirlingbridge/landdev/internal/templates"
)

// ProjectHandler drives the project sidebar: list, identify, delete.
type ProjectHandler struct {
	humastar.Handler
	land    *service.LandService
	project *service.ProjectService
}

// NewProjectHandler creates a new project dashboard handler.
func NewProjectHandler(land *service.LandService, project *service.ProjectService, renderer *templates.Renderer) *ProjectHandler {
	return &ProjectHandler{
		Handler: humastar.Handler{Renderer: renderer},
		land:    land,
		project: project,
	}
}

func (h *ProjectHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/dashboard/projects", h.ListProjects, huma.OperationTags("dashboard"))
	huma.Post(api, "/api/dashboard/identify", h.Identify, huma.OperationTags("dashboard"))
	huma.Delete(api, "/api/dashboard/projects/{id}", h.DeleteProject, huma.OperationTags("dashboard"))
}

func (h *ProjectHandler) ListProjects(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		html, err := h.renderProjectList(ctx)
		if err != nil {
			sse.Error(err.Error())
			return
		}
		sse.Patch(html, "#project-list")
	}), nil
}

func (h *ProjectHandler) Identify(ctx context.Context, input *humastar.SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}
	if !signals.Has("latitude") || !signals.Has("longitude") {
		return nil, huma.Error400BadRequest("latitude and longitude are required")
	}

	name := signals.String("projectname")
	at := boundary.Coordinate{
		Latitude:  signals.Float("latitude"),
		Longitude: signals.Float("longitude"),
	}

	return h.Stream(func(sse humastar.SSE) {
		data, err := h.land.IdentifyLand(ctx, name, at)
		if err != nil {
			sse.Error(err.Error())
			return
		}

		sse.Signals(map[string]any{
			"projectname": "",
			"success":     fmt.Sprintf("Identified %d boundaries for %q", data.TotalBoundaries, data.Project.Name),
			"_identifying": false,
		})

		if html, err := h.renderProjectList(ctx); err == nil {
			sse.Patch(html, "#project-list")
		}
		sse.DispatchCustomEvent("project-changed", map[string]any{
			"action": "created", "id": data.Project.ID, "name": data.Project.Name,
		})
	}), nil
}

type DeleteProjectInput struct {
	ID string `path:"id" doc:"Project ID to delete"`
}

func (h *ProjectHandler) DeleteProject(ctx context.Context, input *DeleteProjectInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		if err := h.project.Delete(ctx, input.ID); err != nil {
			sse.Error(err.Error())
			return
		}

		sse.RemoveElementByID("project-" + input.ID)
		sse.Success("Project deleted")
		sse.DispatchCustomEvent("project-changed", map[string]any{
			"action": "deleted", "id": input.ID,
		})
	}), nil
}

// ProjectCardData feeds the project-card fragment template.
type ProjectCardData struct {
	ID         string
	Name       string
	Status     string
	Created    string
	Latitude   float64
	Longitude  float64
	Boundaries int
}

func (h *ProjectHandler) renderProjectList(ctx context.Context) (string, error) {
	projects, _, err := h.project.List(ctx, 100, 0, "")
	if err != nil {
		return "", err
	}

	items := make([]any, 0, len(projects))
	for _, p := range projects {
		items = append(items, ProjectCardData{
			ID:         p.ID,
			Name:       p.Name,
			Status:     p.Status,
			Created:    p.Created,
			Latitude:   p.Coordinate.Latitude,
			Longitude:  p.Coordinate.Longitude,
			Boundaries: len(p.Boundaries),
		})
	}
	return h.RenderList("project-card", items,
		"No projects yet", "Click the map to identify land"), nil
}
