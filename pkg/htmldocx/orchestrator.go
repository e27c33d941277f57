package htmldocx

import (
	"go.uber.org/zap"
)

// Orchestrator runs splice passes and reports on them.
type Orchestrator struct {
	log *zap.Logger
}

// NewOrchestrator returns an orchestrator logging to log. A nil logger disables
// logging.
func NewOrchestrator(log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{log: log.Named("splice")}
}

// Replace splices every replacement into body and returns the first failure.
func (o *Orchestrator) Replace(body Body, reps []Replacement) error {
	count := 0
	err := splice(body, reps, func(name string, at, inserted int) {
		count++
		o.log.Debug("Placeholder replaced",
			zap.String("placeholder", name), zap.Int("block", at), zap.Int("elements", inserted))
	})
	if err != nil {
		o.log.Error("Placeholder replacement failed", zap.Int("replaced", count), zap.Error(err))
		return err
	}
	o.log.Info("Placeholders replaced", zap.Int("replaced", count), zap.Int("replacements", len(reps)))
	return nil
}

// Update is Replace reduced to success or failure. The failure is logged.
func (o *Orchestrator) Update(body Body, reps []Replacement) bool {
	return o.Replace(body, reps) == nil
}
