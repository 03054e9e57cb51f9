package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"idleodyssey/internal/app/catalog"
	"idleodyssey/internal/app/command"
	"idleodyssey/internal/app/observe"
	"idleodyssey/internal/app/ports"
	"idleodyssey/internal/domain/idle"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	ObserveUC observe.UseCase
	StatUC    observe.StatUseCase
	CommandUC command.UseCase
	CatalogUC catalog.UseCase
	ReloadUC  catalog.ReloadUseCase
	KPI       kpiSnapshotProvider
	// CORSOrigins limits browser access; empty allows any origin.
	CORSOrigins []string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.CORSOrigins))

	game := s.Group("/api/game")
	game.GET("/state", h.state)
	game.POST("/command", h.command)
	game.GET("/stats/:key", h.stat)

	s.GET("/ops/kpi", h.kpi)
	s.GET("/ops/catalog", h.catalogView)
	s.POST("/ops/catalog/reload", h.reloadCatalog)
}

type commandRequest struct {
	Type       string   `json:"type"`
	NodeID     string   `json:"node_id,omitempty"`
	ResourceID string   `json:"resource_id,omitempty"`
	UpgradeID  string   `json:"upgrade_id,omitempty"`
	RecipeID   string   `json:"recipe_id,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
}

func (h Handler) state(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ObserveUC.Execute(c, observe.Request{
		Category: idle.NodeCategory(ctx.Query("category")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) command(c context.Context, ctx *app.RequestContext) {
	var body commandRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.CommandUC.Execute(c, command.Request{
		Type:       command.Type(body.Type),
		NodeID:     body.NodeID,
		ResourceID: body.ResourceID,
		UpgradeID:  body.UpgradeID,
		RecipeID:   body.RecipeID,
		Amount:     body.Amount,
	})
	if err != nil {
		if writeCommandRejectedFromErr(ctx, err) {
			return
		}
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) stat(c context.Context, ctx *app.RequestContext) {
	key := strings.TrimSpace(ctx.Param("key"))
	if key == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_stat_key", "stat key is required")
		return
	}
	resp, err := h.StatUC.Execute(c, observe.StatRequest{Key: key})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) catalogView(c context.Context, ctx *app.RequestContext) {
	if h.CatalogUC.Live == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "catalog view not configured")
		return
	}
	resp, err := h.CatalogUC.Execute(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) reloadCatalog(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ReloadUC.Execute(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, command.ErrInvalidRequest),
		errors.Is(err, observe.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, command.ErrCommandRejected):
		writeErrorBody(ctx, consts.StatusConflict, "command_rejected", err.Error())
	case errors.Is(err, catalog.ErrReloadFailed):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "reload_failed", err.Error())
	case errors.Is(err, catalog.ErrNotConfigured):
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "unavailable", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeCommandRejectedFromErr(ctx *app.RequestContext, err error) bool {
	var rejected *command.RejectedError
	if !errors.As(err, &rejected) || rejected == nil {
		return false
	}
	writeCommandRejected(ctx, consts.StatusConflict, rejected.Code, rejected.Message, rejected.Details)
	return true
}

func writeCommandRejected(ctx *app.RequestContext, status int, code, message string, details map[string]any) {
	ctx.JSON(status, map[string]any{
		"result_code": "REJECTED",
		"error": map[string]any{
			"code":      code,
			"message":   message,
			"retryable": false,
			"details":   details,
		},
	})
}
