package dashboard

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/stirlingbridge/landdev/internal/humastar"
	"github.com/stirlingbridge/landdev/internal/service"
	"github.com/stirlingbridge/landdev/internal/templates"
)

// EventHandler streams resource change events to the Datastar UI via SSE.
type EventHandler struct {
	humastar.Handler
	project *service.ProjectService
	bus     *service.EventBus
}

// NewEventHandler creates a new event handler.
func NewEventHandler(project *service.ProjectService, bus *service.EventBus, renderer *templates.Renderer) *EventHandler {
	return &EventHandler{
		Handler: humastar.Handler{Renderer: renderer},
		project: project,
		bus:     bus,
	}
}

func (h *EventHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/dashboard/events", h.Events,
		huma.OperationTags("dashboard"),
	)
}

func (h *EventHandler) Events(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		ch := h.bus.Subscribe()
		defer h.bus.Unsubscribe(ch)

		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-ch:
				if ev.Resource == "projects" {
					ph := &ProjectHandler{
						Handler: humastar.Handler{Renderer: h.Renderer},
						project: h.project,
					}
					if html, err := ph.renderProjectList(ctx); err == nil {
						sse.Patch(html, "#project-list")
					}
				}
				sse.DispatchCustomEvent("resource-changed", map[string]any{
					"resource": ev.Resource,
					"action":   ev.Action,
					"id":       ev.ID,
				})
			}
		}
	}), nil
}
