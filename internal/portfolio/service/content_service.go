package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/twoong-studio/portfolio-backend/internal/portfolio/cache"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/domain"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/fallback"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/mapper"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/sheets"
)

// Source says where served content came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
	SourceDefault  Source = "default"
)

// Result pairs mapped content with its source.
type Result[T any] struct {
	Items  T      `json:"items"`
	Source Source `json:"source"`
}

var skillTables = map[domain.SkillCategory]sheets.Table{
	domain.SkillCapabilities: sheets.TableSkills,
	domain.SkillTools:        sheets.TableTools,
	domain.SkillEquipment:    sheets.TableEquipment,
}

// ContentService loads each sheet table at most once per process and
// degrades to local content whenever the sheet cannot be used.
type ContentService struct {
	fetcher sheets.Fetcher
	log     *zap.Logger

	works  cache.Memo[Result[[]domain.WorkItem]]
	skills map[domain.SkillCategory]*cache.Memo[Result[[]domain.SkillItem]]
	texts  cache.Memo[Result[domain.SiteTexts]]
}

func NewContentService(fetcher sheets.Fetcher, log *zap.Logger) *ContentService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &ContentService{
		fetcher: fetcher,
		log:     log,
		skills:  make(map[domain.SkillCategory]*cache.Memo[Result[[]domain.SkillItem]], len(skillTables)),
	}
	for cat := range skillTables {
		s.skills[cat] = &cache.Memo[Result[[]domain.SkillItem]]{}
	}
	return s
}

// Works returns all visible work items. The error is non-nil only when ctx
// is done before content is available. Fallback content is memoized like
// live content; only Warm may later upgrade it.
func (s *ContentService) Works(ctx context.Context) (Result[[]domain.WorkItem], error) {
	return s.works.Get(ctx, keepAll(s.loadWorks))
}

func (s *ContentService) Skills(ctx context.Context, category domain.SkillCategory) (Result[[]domain.SkillItem], error) {
	if _, ok := skillTables[category]; !ok {
		return Result[[]domain.SkillItem]{}, fmt.Errorf("unknown skill category %q", category)
	}
	return s.skills[category].Get(ctx, keepAll(func(ctx context.Context) Result[[]domain.SkillItem] {
		return s.loadSkills(ctx, category)
	}))
}

func (s *ContentService) loadWorks(ctx context.Context) Result[[]domain.WorkItem] {
	if rows, err := s.rows(ctx, sheets.TableWorks); err == nil {
		var report mapper.Report
		items := mapper.Works(rows, &report)
		s.logReport(sheets.TableWorks, &report)
		if len(items) > 0 {
			return Result[[]domain.WorkItem]{Items: items, Source: SourceLive}
		}
		s.log.Warn("works sheet mapped to no items, using fallback data")
	}
	return Result[[]domain.WorkItem]{Items: fallback.Works(), Source: SourceFallback}
}

func (s *ContentService) loadSkills(ctx context.Context, category domain.SkillCategory) Result[[]domain.SkillItem] {
	table := skillTables[category]
	if rows, err := s.rows(ctx, table); err == nil {
		var report mapper.Report
		items := mapper.Skills(rows, category, &report)
		s.logReport(table, &report)
		if len(items) > 0 {
			return Result[[]domain.SkillItem]{Items: items, Source: SourceLive}
		}
		s.log.Warn("skills sheet mapped to no items, using fallback data", zap.String("table", string(table)))
	}
	return Result[[]domain.SkillItem]{Items: fallback.Skills(category), Source: SourceFallback}
}

func (s *ContentService) loadTexts(ctx context.Context) Result[domain.SiteTexts] {
	if rows, err := s.rows(ctx, sheets.TableTexts); err == nil {
		var report mapper.Report
		texts := mapper.ResolveSiteTexts(rows, &report)
		s.logReport(sheets.TableTexts, &report)
		return Result[domain.SiteTexts]{Items: texts, Source: SourceLive}
	}
	return Result[domain.SiteTexts]{Items: domain.DefaultSiteTexts(), Source: SourceDefault}
}

func keepAll[T any](load func(context.Context) Result[T]) cache.LoadFunc[Result[T]] {
	return func(ctx context.Context) (Result[T], bool, error) {
		return load(ctx), true, nil
	}
}

// AllSkills loads the three skill panels concurrently, in display order.
func (s *ContentService) AllSkills(ctx context.Context) (Result[[]domain.SkillItem], error) {
	results := make([]Result[[]domain.SkillItem], len(domain.SkillCategories))
	g, gctx := errgroup.WithContext(ctx)
	for i, cat := range domain.SkillCategories {
		g.Go(func() error {
			r, err := s.Skills(gctx, cat)
			results[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Result[[]domain.SkillItem]{}, err
	}

	out := Result[[]domain.SkillItem]{Source: SourceLive}
	for _, r := range results {
		out.Items = append(out.Items, r.Items...)
		if r.Source != SourceLive {
			out.Source = r.Source
		}
	}
	return out, nil
}

// SiteTexts returns the compiled-in defaults overlaid with the sheet's texts
// tab. Admin overrides are layered on top by texts.Editor.
func (s *ContentService) SiteTexts(ctx context.Context) (Result[domain.SiteTexts], error) {
	return s.texts.Get(ctx, keepAll(s.loadTexts))
}

// BaseTexts adapts SiteTexts for texts.Editor.
func (s *ContentService) BaseTexts(ctx context.Context) domain.SiteTexts {
	r, err := s.SiteTexts(ctx)
	if err != nil || r.Items == nil {
		return domain.DefaultSiteTexts()
	}
	return r.Items.Clone()
}

// TableStatus is one line of a Warm summary.
type TableStatus struct {
	Table  sheets.Table `json:"table"`
	Source Source       `json:"source"`
	Cached bool         `json:"cached"`
}

// Warm loads every table concurrently. A table already memoized with live
// content is not fetched again. A table holding fallback content is fetched
// once more and upgraded in place if the sheet now yields live content.
func (s *ContentService) Warm(ctx context.Context) ([]TableStatus, error) {
	statuses := make([]TableStatus, 0, len(sheets.Tables))
	ch := make(chan TableStatus, len(sheets.Tables))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := warmOne(gctx, &s.works, s.loadWorks)
		_, cached := s.works.Peek()
		ch <- TableStatus{Table: sheets.TableWorks, Source: r.Source, Cached: cached}
		return err
	})
	for cat, table := range skillTables {
		g.Go(func() error {
			r, err := warmOne(gctx, s.skills[cat], func(ctx context.Context) Result[[]domain.SkillItem] {
				return s.loadSkills(ctx, cat)
			})
			_, cached := s.skills[cat].Peek()
			ch <- TableStatus{Table: table, Source: r.Source, Cached: cached}
			return err
		})
	}
	g.Go(func() error {
		r, err := warmOne(gctx, &s.texts, s.loadTexts)
		_, cached := s.texts.Peek()
		ch <- TableStatus{Table: sheets.TableTexts, Source: r.Source, Cached: cached}
		return err
	})

	err := g.Wait()
	close(ch)
	for st := range ch {
		statuses = append(statuses, st)
	}
	return statuses, err
}

func warmOne[T any](ctx context.Context, m *cache.Memo[Result[T]], load func(context.Context) Result[T]) (Result[T], error) {
	if cur, ok := m.Peek(); ok {
		if cur.Source == SourceLive {
			return cur, nil
		}
		if next := load(ctx); next.Source == SourceLive {
			m.Replace(next)
			return next, nil
		}
		return cur, nil
	}
	return m.Get(ctx, keepAll(load))
}

// Cached reports which tables hold memoized content.
func (s *ContentService) Cached() map[sheets.Table]bool {
	out := make(map[sheets.Table]bool, len(sheets.Tables))
	_, out[sheets.TableWorks] = s.works.Peek()
	_, out[sheets.TableTexts] = s.texts.Peek()
	for cat, table := range skillTables {
		_, out[table] = s.skills[cat].Peek()
	}
	return out
}

// Inspect fetches and maps one table without touching the memo or falling
// back, for diagnostics.
func (s *ContentService) Inspect(ctx context.Context, table sheets.Table) (any, mapper.Report, error) {
	var report mapper.Report
	text, err := s.fetcher.Fetch(ctx, table)
	if err != nil {
		return nil, report, err
	}
	rows, err := sheets.ParseRows(text)
	if err != nil {
		return nil, report, err
	}
	switch table {
	case sheets.TableWorks:
		return mapper.Works(rows, &report), report, nil
	case sheets.TableTexts:
		return mapper.SiteTexts(rows, &report), report, nil
	}
	for cat, t := range skillTables {
		if t == table {
			return mapper.Skills(rows, cat, &report), report, nil
		}
	}
	return nil, report, fmt.Errorf("%w: %s", sheets.ErrUnknownTable, table)
}

// rows fetches and parses one table. Any error means the caller serves
// local content.
func (s *ContentService) rows(ctx context.Context, table sheets.Table) ([]sheets.Row, error) {
	text, err := s.fetcher.Fetch(ctx, table)
	if err != nil {
		if errors.Is(err, sheets.ErrUnknownTable) {
			s.log.Info("table not configured, serving local content", zap.String("table", string(table)))
			return nil, err
		}
		s.log.Warn("sheet fetch failed, serving local content", zap.String("table", string(table)), zap.Error(err))
		return nil, err
	}
	rows, err := sheets.ParseRows(text)
	if err != nil {
		s.log.Warn("sheet parse failed, serving local content", zap.String("table", string(table)), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (s *ContentService) logReport(table sheets.Table, r *mapper.Report) {
	if len(r.Dropped) == 0 {
		return
	}
	s.log.Debug("sheet rows dropped",
		zap.String("table", string(table)),
		zap.Int("kept", r.Kept),
		zap.Any("dropped", r.Dropped))
}
