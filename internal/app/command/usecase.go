package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"idleodyssey/internal/app/ports"
	"idleodyssey/internal/domain/idle"
)

type UseCase struct {
	Session ports.EngineSession
	Metrics ports.CommandMetrics
	Logger  *slog.Logger
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req, err := ValidateRequest(req)
	if err != nil {
		return Response{}, err
	}
	def := registry[req.Type]

	var out Response
	err = u.Session.Do(ctx, func(e *idle.Engine) error {
		if err := def.apply(e, req, &out); err != nil {
			return err
		}
		out.ResultCode = ResultOK
		out.Command = req.Type
		out.Resources = e.Resources()
		out.Gather = e.Session()
		out.Level = e.Level()
		return nil
	})
	u.record(req.Type, err)
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

func (u UseCase) record(t Type, err error) {
	log := u.Logger
	if log == nil {
		log = slog.Default()
	}
	var rejected *RejectedError
	switch {
	case err == nil:
		log.Debug("command applied", "type", t)
		if u.Metrics != nil {
			u.Metrics.RecordAccepted(string(t))
		}
	case errors.As(err, &rejected):
		log.Info("command rejected", "type", t, "code", rejected.Code, "reason", rejected.Message)
		if u.Metrics != nil {
			u.Metrics.RecordRejected(string(t), rejected.Code)
		}
	default:
		log.Error("command failed", "type", t, "err", err)
		if u.Metrics != nil {
			u.Metrics.RecordFailure()
		}
	}
}

// ValidateRequest trims identifiers and checks that the command carries the
// parameters its type needs. It does not consult the engine.
func ValidateRequest(req Request) (Request, error) {
	req.Type = Type(strings.TrimSpace(string(req.Type)))
	req.NodeID = strings.TrimSpace(req.NodeID)
	req.ResourceID = strings.TrimSpace(req.ResourceID)
	req.UpgradeID = strings.TrimSpace(req.UpgradeID)
	req.RecipeID = strings.TrimSpace(req.RecipeID)

	def, ok := registry[req.Type]
	if !ok {
		return req, fmt.Errorf("%w: unsupported type %q", ErrInvalidRequest, req.Type)
	}
	if req.Amount != nil && (math.IsNaN(*req.Amount) || math.IsInf(*req.Amount, 0)) {
		return req, fmt.Errorf("%w: amount must be finite", ErrInvalidRequest)
	}
	if def.validate != nil {
		if err := def.validate(req); err != nil {
			return req, fmt.Errorf("%w: %s", ErrInvalidRequest, err.Error())
		}
	}
	return req, nil
}

func SupportedTypes() []Type {
	return []Type{
		TypeSelectNode, TypeStop, TypeSell, TypeBuyUpgrade,
		TypeCraft, TypeToggleAuto, TypeAddResource, TypeSetResource,
	}
}
