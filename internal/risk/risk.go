package risk

import (
	"github.com/rs/zerolog"

	"botcoin/internal/errors"
	"botcoin/internal/strategy"
)

// Rejections returned by Gate.Evaluate. All carry CodeOrderRejected and
// their message is the reason recorded with the decision.
var (
	ErrKillSwitch        = errors.New(errors.CodeOrderRejected, "kill_switch_enabled")
	ErrInvalidQuantity   = errors.New(errors.CodeOrderRejected, "invalid_quantity")
	ErrMaxVolumeExceeded = errors.New(errors.CodeOrderRejected, "max_volume_exceeded")
	ErrNoPosition        = errors.New(errors.CodeOrderRejected, "no_position_to_sell")
)

type RiskContext struct {
	Held       bool
	MaxVolume  int
	KillSwitch bool
}

type ApprovedOrder struct {
	Order  strategy.Order
	Reason string
}

// Gate is the last check before an order reaches the venue.
type Gate struct {
	log zerolog.Logger
}

func NewGate(log zerolog.Logger) Gate {
	return Gate{log: log.With().Str("component", "risk").Logger()}
}

func (g Gate) Evaluate(order strategy.Order, ctx RiskContext) (ApprovedOrder, error) {
	g.log.Debug().
		Str("symbol", order.Symbol).
		Str("side", string(order.Side())).
		Int("shares", order.Quantity()).
		Bool("held", ctx.Held).
		Msg("risk evaluation")

	if ctx.KillSwitch {
		return g.reject(order, ErrKillSwitch)
	}
	if order.Shares == 0 {
		return g.reject(order, ErrInvalidQuantity)
	}
	if order.Quantity() > ctx.MaxVolume {
		g.log.Info().Int("max", ctx.MaxVolume).Int("shares", order.Quantity()).Msg("max volume exceeded")
		return g.reject(order, ErrMaxVolumeExceeded)
	}
	if order.Side() == strategy.Sell && !ctx.Held {
		return g.reject(order, ErrNoPosition)
	}

	g.log.Debug().Str("symbol", order.Symbol).Int("shares", order.Shares).Msg("risk approved")
	return ApprovedOrder{Order: order, Reason: "approved"}, nil
}

func (g Gate) reject(order strategy.Order, err *errors.Error) (ApprovedOrder, error) {
	g.log.Info().Str("symbol", order.Symbol).Str("reason", err.Message).Msg("risk rejected")
	return ApprovedOrder{}, err
}
