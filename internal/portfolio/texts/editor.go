package texts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/twoong-studio/portfolio-backend/internal/portfolio/domain"
)

// BaseFunc returns the texts the overrides are layered over.
type BaseFunc func(ctx context.Context) domain.SiteTexts

// Editor reads and writes admin overrides of the site copy.
type Editor struct {
	store    Store
	base     BaseFunc
	notifier Notifier
	log      *zap.Logger
}

func NewEditor(store Store, base BaseFunc, notifier Notifier, log *zap.Logger) *Editor {
	if base == nil {
		base = func(context.Context) domain.SiteTexts { return domain.DefaultSiteTexts() }
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Editor{store: store, base: base, notifier: notifier, log: log}
}

// Texts returns the base texts with stored overrides applied. A store error
// is logged and the base texts are served.
func (e *Editor) Texts(ctx context.Context) domain.SiteTexts {
	base := e.base(ctx)
	saved, err := e.store.Load(ctx)
	if err != nil {
		e.log.Error("failed to load site texts", zap.Error(err))
		return base
	}
	return domain.Merge(base, saved)
}

// Save stores the overrides (trimmed keys, empty keys dropped), notifies
// listeners and returns the resulting texts.
func (e *Editor) Save(ctx context.Context, overrides map[string]string) (domain.SiteTexts, error) {
	clean := make(map[string]string, len(overrides))
	for k, v := range overrides {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		clean[k] = v
	}
	if err := e.store.Save(ctx, clean); err != nil {
		return nil, fmt.Errorf("save site texts: %w", err)
	}

	if e.notifier != nil {
		if err := e.notifier.Notify(ctx, Event{At: time.Now().UTC()}); err != nil {
			e.log.Warn("site texts saved but update event failed", zap.Error(err))
		}
	}
	return domain.Merge(e.base(ctx), clean), nil
}
