package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/twoong-studio/portfolio-backend/internal/portfolio/domain"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/fallback"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/sheets"
)

// fakeFetcher serves canned CSV per table and counts calls.
type fakeFetcher struct {
	mu    sync.Mutex
	data  map[sheets.Table]string
	errs  map[sheets.Table]error
	calls map[sheets.Table]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		data:  map[sheets.Table]string{},
		errs:  map[sheets.Table]error{},
		calls: map[sheets.Table]int{},
	}
}

func (f *fakeFetcher) Fetch(ctx context.Context, table sheets.Table) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[table]++
	if err, ok := f.errs[table]; ok {
		return "", err
	}
	if d, ok := f.data[table]; ok {
		return d, nil
	}
	return "", sheets.ErrUnknownTable
}

func (f *fakeFetcher) set(table sheets.Table, csv string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[table] = csv
	if err != nil {
		f.errs[table] = err
	} else {
		delete(f.errs, table)
	}
}

func (f *fakeFetcher) count(table sheets.Table) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[table]
}

const liveWorks = "id,title,project_type,participation_level,video_url\n" +
	"10,Live One,Dance Film,,https://youtu.be/Sj60-By_T50\n" +
	"11,Live Two,MV,participated,\n"

func TestWorks_LiveIsMemoized(t *testing.T) {
	f := newFakeFetcher()
	f.set(sheets.TableWorks, liveWorks, nil)
	svc := NewContentService(f, zap.NewNop())
	ctx := context.Background()

	r, err := svc.Works(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceLive, r.Source)
	require.Len(t, r.Items, 2)
	assert.Equal(t, domain.CategoryDanceFilm, r.Items[0].Category)

	_, err = svc.Works(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.count(sheets.TableWorks))
}

func TestWorks_UnreachableResolvesWithFallback(t *testing.T) {
	f := newFakeFetcher()
	f.set(sheets.TableWorks, "", errors.New("dial tcp: connection refused"))
	svc := NewContentService(f, zap.NewNop())

	for i := 0; i < 3; i++ {
		r, err := svc.Works(context.Background())
		require.NoError(t, err)
		assert.Equal(t, SourceFallback, r.Source)
		assert.Equal(t, fallback.Works(), r.Items)
	}
	assert.Equal(t, 1, f.count(sheets.TableWorks))

	// a recovered sheet is not picked up by reads, only by Warm
	f.set(sheets.TableWorks, liveWorks, nil)
	r, err := svc.Works(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, r.Source)
	assert.Equal(t, 1, f.count(sheets.TableWorks))
}

func TestWorks_EmptySheetResolvesWithFallback(t *testing.T) {
	for name, csv := range map[string]string{
		"no rows":     "id,title\n",
		"all invalid": "id,title,hidden\n1,,\n2,Hidden,TRUE\n",
		"blank":       "",
	} {
		t.Run(name, func(t *testing.T) {
			f := newFakeFetcher()
			f.set(sheets.TableWorks, csv, nil)
			svc := NewContentService(f, zap.NewNop())

			r, err := svc.Works(context.Background())
			require.NoError(t, err)
			assert.Equal(t, SourceFallback, r.Source)
			assert.NotEmpty(t, r.Items)
		})
	}
}

func TestWorks_UnconfiguredTableMemoizesFallback(t *testing.T) {
	f := newFakeFetcher()
	svc := NewContentService(f, zap.NewNop())

	for i := 0; i < 2; i++ {
		r, err := svc.Works(context.Background())
		require.NoError(t, err)
		assert.Equal(t, SourceFallback, r.Source)
	}
	assert.Equal(t, 1, f.count(sheets.TableWorks))
}

func TestSkills(t *testing.T) {
	f := newFakeFetcher()
	f.set(sheets.TableTools, "name,group,level\nDaVinci Resolve,Proficient,5\nNuke,Familiar,x\n", nil)
	f.set(sheets.TableEquipment, "", errors.New("timeout"))
	svc := NewContentService(f, zap.NewNop())
	ctx := context.Background()

	tools, err := svc.Skills(ctx, domain.SkillTools)
	require.NoError(t, err)
	assert.Equal(t, SourceLive, tools.Source)
	require.Len(t, tools.Items, 2)
	assert.Equal(t, 0, tools.Items[1].Level)

	equipment, err := svc.Skills(ctx, domain.SkillEquipment)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, equipment.Source)
	assert.Equal(t, fallback.Skills(domain.SkillEquipment), equipment.Items)

	_, err = svc.Skills(ctx, domain.SkillCategory("Hobbies"))
	assert.Error(t, err)

	all, err := svc.AllSkills(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, all.Source)
	assert.Equal(t, domain.SkillCapabilities, all.Items[0].Category)
	assert.Len(t, all.Items, len(fallback.Skills(domain.SkillCapabilities))+2+len(equipment.Items))
}

func TestSiteTexts(t *testing.T) {
	f := newFakeFetcher()
	f.set(sheets.TableTexts, "key,value\nhomeButtonText,Watch Reel\n", nil)
	svc := NewContentService(f, zap.NewNop())

	r, err := svc.SiteTexts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceLive, r.Source)
	assert.Equal(t, "Watch Reel", r.Items["homeButtonText"])
	assert.Equal(t, domain.DefaultSiteTexts()["aboutTitle"], r.Items["aboutTitle"])

	base := svc.BaseTexts(context.Background())
	base["homeButtonText"] = "mutated"
	assert.Equal(t, "Watch Reel", svc.BaseTexts(context.Background())["homeButtonText"])
}

func TestSiteTexts_FailureUsesDefaults(t *testing.T) {
	f := newFakeFetcher()
	f.set(sheets.TableTexts, "", errors.New("503"))
	svc := NewContentService(f, zap.NewNop())

	r, err := svc.SiteTexts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceDefault, r.Source)
	assert.Equal(t, domain.DefaultSiteTexts(), r.Items)
}

func TestWarm(t *testing.T) {
	f := newFakeFetcher()
	f.set(sheets.TableWorks, liveWorks, nil)
	f.set(sheets.TableSkills, "", errors.New("down"))
	svc := NewContentService(f, zap.NewNop())

	statuses, err := svc.Warm(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, len(sheets.Tables))

	byTable := map[sheets.Table]TableStatus{}
	for _, st := range statuses {
		byTable[st.Table] = st
	}
	assert.Equal(t, TableStatus{Table: sheets.TableWorks, Source: SourceLive, Cached: true}, byTable[sheets.TableWorks])
	assert.Equal(t, TableStatus{Table: sheets.TableSkills, Source: SourceFallback, Cached: true}, byTable[sheets.TableSkills])
	assert.True(t, byTable[sheets.TableTools].Cached)

	for table, cached := range svc.Cached() {
		assert.True(t, cached, table)
	}

	// live tables are left alone; fallback tables get one more try
	_, err = svc.Warm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, f.count(sheets.TableWorks))
	assert.Equal(t, 2, f.count(sheets.TableSkills))
}

func TestWarm_UpgradesFallbackOnceSheetRecovers(t *testing.T) {
	f := newFakeFetcher()
	f.set(sheets.TableWorks, "", errors.New("503"))
	svc := NewContentService(f, zap.NewNop())
	ctx := context.Background()

	r, err := svc.Works(ctx)
	require.NoError(t, err)
	require.Equal(t, SourceFallback, r.Source)

	f.set(sheets.TableWorks, liveWorks, nil)
	_, err = svc.Warm(ctx)
	require.NoError(t, err)

	r, err = svc.Works(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceLive, r.Source)
	assert.Len(t, r.Items, 2)
	assert.Equal(t, 2, f.count(sheets.TableWorks))

	// a later outage does not knock live content back to fallback
	f.set(sheets.TableWorks, "", errors.New("503"))
	_, err = svc.Warm(ctx)
	require.NoError(t, err)
	r, _ = svc.Works(ctx)
	assert.Equal(t, SourceLive, r.Source)
	assert.Equal(t, 2, f.count(sheets.TableWorks))
}

func TestWarm_KeepsFallbackWhileSheetIsDown(t *testing.T) {
	f := newFakeFetcher()
	f.set(sheets.TableTexts, "", errors.New("timeout"))
	svc := NewContentService(f, zap.NewNop())

	for i := 0; i < 2; i++ {
		_, err := svc.Warm(context.Background())
		require.NoError(t, err)
	}
	r, err := svc.SiteTexts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceDefault, r.Source)
	assert.Equal(t, 2, f.count(sheets.TableTexts))
}

func TestInspect(t *testing.T) {
	f := newFakeFetcher()
	f.set(sheets.TableWorks, "id,title\n1,A\n,B\n", nil)
	svc := NewContentService(f, zap.NewNop())

	items, report, err := svc.Inspect(context.Background(), sheets.TableWorks)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, report.Kept)
	assert.Len(t, report.Dropped, 1)

	_, ok := svc.Cached()[sheets.TableWorks]
	assert.True(t, ok)
	assert.False(t, svc.Cached()[sheets.TableWorks])

	_, _, err = svc.Inspect(context.Background(), sheets.TableTools)
	assert.ErrorIs(t, err, sheets.ErrUnknownTable)
}
