package scorecard

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/benjaminschreck/go-scorecard/pkg/docx"
	"github.com/benjaminschreck/go-scorecard/pkg/htmldocx"
)

// Store supplies the rules and form submissions a scorecard is built from.
type Store interface {
	Rules(ctx context.Context) ([]Rule, error)
	Form(ctx context.Context, id int64) (Form, error)
}

// Builder fills scorecard templates.
type Builder struct {
	store Store
	orch  *htmldocx.Orchestrator
	log   *zap.Logger
}

// NewBuilder returns a builder reading from store. A nil logger disables logging.
func NewBuilder(store Store, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{store: store, orch: htmldocx.NewOrchestrator(log), log: log.Named("scorecard")}
}

// Build evaluates form formID against the stored rules and returns template with
// every section placeholder replaced. The template must be a DOCX package.
func (b *Builder) Build(ctx context.Context, template []byte, formID int64) ([]byte, error) {
	doc, err := docx.OpenBytes(template)
	if err != nil {
		return nil, fmt.Errorf("unable to open template: %w", err)
	}

	form, err := b.store.Form(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("unable to load form %d: %w", formID, err)
	}
	rules, err := b.store.Rules(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load rules: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := Evaluate(rules, form)
	sections := Sections(results)
	b.log.Debug("Form evaluated", zap.Int64("form", formID), zap.Int("rules", len(rules)),
		zap.Int("results", len(results)), zap.Int("sections", len(sections)))

	if err := b.orch.Replace(doc, sections); err != nil {
		return nil, fmt.Errorf("unable to fill template: %w", err)
	}
	out, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("unable to save document: %w", err)
	}
	b.log.Info("Scorecard built", zap.Int64("form", formID), zap.Int("size", len(out)))
	return out, nil
}
