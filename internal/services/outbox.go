package services

import (
	"context"

	"go.uber.org/zap"
)

const EffectPaymentConfirmation = "payment_confirmation"

// SideEffect is an intent emitted after a settlement commits. The
// dispatcher runs them best-effort: a slow or failing notification can
// never be mistaken for a settlement failure.
type SideEffect struct {
	Kind    string
	To      string
	Subject string
	Body    string
}

type OutboxDispatcher struct {
	mail   IMailService
	logger *zap.Logger
}

func NewOutboxDispatcher(mail IMailService, logger *zap.Logger) *OutboxDispatcher {
	return &OutboxDispatcher{mail: mail, logger: logger}
}

// Dispatch runs the effects off the request goroutine. The caller's
// transaction has already committed; failures are logged only.
func (d *OutboxDispatcher) Dispatch(ctx context.Context, effects []SideEffect) {
	go func() {
		for _, effect := range effects {
			if err := d.run(effect); err != nil {
				d.logger.Warn("side effect failed",
					zap.String("kind", effect.Kind),
					zap.String("to", effect.To),
					zap.Error(err))
			}
		}
	}()
}

func (d *OutboxDispatcher) run(effect SideEffect) error {
	switch effect.Kind {
	case EffectPaymentConfirmation:
		return d.mail.SendNotification(effect.To, effect.Subject, effect.Body)
	default:
		d.logger.Warn("unknown side effect kind", zap.String("kind", effect.Kind))
		return nil
	}
}
