package payment

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/toko-console/internal/obs"
	"github.com/noah-isme/toko-console/internal/pricing"
	"github.com/noah-isme/toko-console/internal/resilience"
)

// Process settles amount through m, recording a span, a log line and the
// settlement counter.
func Process(ctx context.Context, m Method, amount pricing.Money) (Settlement, error) {
	ctx, span := obs.StartSpan(ctx, "payment", "Payment.Settle")
	defer span.End()

	label := methodLabel(m)
	span.SetAttributes(
		attribute.String("payment.method", label),
		attribute.String("payment.amount", amount.StringFixed(2)),
	)

	settlement, err := m.Settle(ctx, amount)
	obs.Inc(obs.PaymentSettlementTotal, label, obs.Result(err))

	logger := zerolog.Ctx(ctx)
	var evt *zerolog.Event
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		evt = logger.Warn().Err(err)
	} else {
		evt = logger.Info().Str("reference", settlement.Reference)
	}
	switch inner := unwrap(m).(type) {
	case Card:
		evt = evt.Str("card", inner.MaskedNumber())
	case Wallet:
		evt = evt.Str("wallet", inner.Email)
	}
	evt.Str("method", label).Str("amount", amount.StringFixed(2)).Msg("payment_settlement")
	return settlement, err
}

// Guarded wraps a Method with a circuit breaker so a failing gateway stops
// being called until the breaker cools off.
type Guarded struct {
	Method  Method
	Breaker *resilience.Breaker
}

// Guard wraps m with b. A nil breaker returns m unchanged.
func Guard(m Method, b *resilience.Breaker) Method {
	if b == nil || m == nil {
		return m
	}
	return Guarded{Method: m, Breaker: b}
}

func (g Guarded) Settle(ctx context.Context, amount pricing.Money) (Settlement, error) {
	if !g.Breaker.Allow(ctx) {
		return Settlement{}, resilience.ErrOpenCircuit
	}
	settlement, err := g.Method.Settle(ctx, amount)
	g.Breaker.Report(ctx, err == nil)
	return settlement, err
}

func (g Guarded) Label() string { return g.Method.Label() }

// Unwrap returns the guarded method.
func (g Guarded) Unwrap() Method { return g.Method }

func unwrap(m Method) Method {
	for {
		w, ok := m.(interface{ Unwrap() Method })
		if !ok {
			return m
		}
		m = w.Unwrap()
	}
}

func methodLabel(m Method) string {
	label := strings.TrimSpace(m.Label())
	if label == "" {
		return "unknown"
	}
	return label
}
