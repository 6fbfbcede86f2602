package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"plotweaver/internal/domain/entity"
	"plotweaver/internal/domain/repository"
	apperrors "plotweaver/pkg/errors"
)

// worldState is the on-disk layout of the world bible file.
type worldState struct {
	Settings    []*entity.WorldSetting  `json:"settings"`
	Timeline    []*entity.TimelineEvent `json:"timeline"`
	Plots       []*entity.PlotThread    `json:"plot_threads"`
	LastUpdated time.Time               `json:"last_updated"`
}

// WorldStore persists settings, timeline events and plot threads in one JSON file.
type WorldStore struct {
	mu       sync.RWMutex
	path     string
	settings []*entity.WorldSetting
	timeline []*entity.TimelineEvent
	plots    []*entity.PlotThread
}

var _ repository.WorldRepository = (*WorldStore)(nil)

// NewWorldStore opens the store at path, creating the file when missing.
// A corrupt file yields an empty store plus a corruption error.
func NewWorldStore(path string) (*WorldStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodePersistenceFailed, "failed to create data directory").WithDetail(path)
	}

	s := &WorldStore{
		path:     path,
		settings: []*entity.WorldSetting{},
		timeline: []*entity.TimelineEvent{},
		plots:    []*entity.PlotThread{},
	}

	var st worldState
	err := readState(path, &st)
	switch {
	case err == nil:
		if st.Settings != nil {
			s.settings = st.Settings
		}
		if st.Timeline != nil {
			s.timeline = st.Timeline
		}
		if st.Plots != nil {
			s.plots = st.Plots
		}
		s.sortTimeline()
		return s, nil
	case os.IsNotExist(err):
		if werr := s.persist(); werr != nil {
			return s, werr
		}
		return s, nil
	default:
		return s, err
	}
}

func (s *WorldStore) sortTimeline() {
	sort.SliceStable(s.timeline, func(i, j int) bool {
		return s.timeline[i].Before(s.timeline[j])
	})
}

// persist rewrites the state file. The caller must hold the write lock.
func (s *WorldStore) persist() error {
	st := worldState{
		Settings:    s.settings,
		Timeline:    s.timeline,
		Plots:       s.plots,
		LastUpdated: time.Now(),
	}
	return writeState("world", s.path, &st)
}

func (s *WorldStore) AddSetting(ctx context.Context, ws *entity.WorldSetting) error {
	_, span := tracer.Start(ctx, "file.WorldStore.AddSetting")
	defer span.End()

	if ws == nil || ws.Name == "" {
		return apperrors.New(apperrors.CodeInvalidParam, "setting name is required")
	}
	if !ws.Type.Valid() {
		return apperrors.New(apperrors.CodeInvalidParam, "unknown setting type").WithDetail(string(ws.Type))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = append(s.settings, ws.Clone())

	if err := s.persist(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (s *WorldStore) ListSettings(ctx context.Context, t entity.SettingType) ([]*entity.WorldSetting, error) {
	_, span := tracer.Start(ctx, "file.WorldStore.ListSettings")
	defer span.End()

	if t != "" && !t.Valid() {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "unknown setting type").WithDetail(string(t))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entity.WorldSetting
	for _, ws := range s.settings {
		if t != "" && ws.Type != t {
			continue
		}
		out = append(out, ws.Clone())
	}
	return out, nil
}

func (s *WorldStore) AddEvent(ctx context.Context, ev *entity.TimelineEvent) error {
	_, span := tracer.Start(ctx, "file.WorldStore.AddEvent")
	defer span.End()

	if ev == nil || ev.Title == "" {
		return apperrors.New(apperrors.CodeInvalidParam, "event title is required")
	}
	if ev.Importance < 1 || ev.Importance > 5 {
		return apperrors.New(apperrors.CodeInvalidParam, fmt.Sprintf("importance must be 1..5, got %d", ev.Importance))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.timeline = append(s.timeline, ev.Clone())
	s.sortTimeline()

	if err := s.persist(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (s *WorldStore) ListEvents(ctx context.Context, limit int) ([]*entity.TimelineEvent, error) {
	_, span := tracer.Start(ctx, "file.WorldStore.ListEvents")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.timeline)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*entity.TimelineEvent, 0, n)
	for _, ev := range s.timeline[:n] {
		out = append(out, ev.Clone())
	}
	return out, nil
}

func (s *WorldStore) AddThread(ctx context.Context, th *entity.PlotThread) error {
	_, span := tracer.Start(ctx, "file.WorldStore.AddThread")
	defer span.End()

	if th == nil || th.Title == "" {
		return apperrors.New(apperrors.CodeInvalidParam, "thread title is required")
	}
	if !th.Status.Valid() {
		return apperrors.New(apperrors.CodeInvalidParam, "unknown plot status").WithDetail(string(th.Status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.plots = append(s.plots, th.Clone())

	if err := s.persist(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (s *WorldStore) ListThreads(ctx context.Context, status entity.PlotStatus) ([]*entity.PlotThread, error) {
	_, span := tracer.Start(ctx, "file.WorldStore.ListThreads")
	defer span.End()

	if status != "" && !status.Valid() {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "unknown plot status").WithDetail(string(status))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entity.PlotThread
	for _, th := range s.plots {
		if status != "" && th.Status != status {
			continue
		}
		out = append(out, th.Clone())
	}
	return out, nil
}

func (s *WorldStore) ResolveThread(ctx context.Context, id string, payoffEvents []string) (*entity.PlotThread, error) {
	_, span := tracer.Start(ctx, "file.WorldStore.ResolveThread")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, th := range s.plots {
		if th.ID != id {
			continue
		}
		th.Status = entity.PlotResolved
		th.PayoffEvents = append(th.PayoffEvents, payoffEvents...)
		th.UpdatedAt = time.Now()

		if err := s.persist(); err != nil {
			span.RecordError(err)
			return nil, err
		}
		return th.Clone(), nil
	}
	return nil, apperrors.New(apperrors.CodePlotThreadNotFound, "plot thread not found").WithDetail(id)
}

// CheckConsistency reports unresolved threads and timeline events that
// reference characters missing from the known set.
func (s *WorldStore) CheckConsistency(ctx context.Context, knownCharacters map[string]bool) ([]string, error) {
	_, span := tracer.Start(ctx, "file.WorldStore.CheckConsistency")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var warnings []string
	for _, th := range s.plots {
		if th.Status == entity.PlotActive && len(th.PayoffEvents) == 0 {
			warnings = append(warnings, fmt.Sprintf("伏線「%s」が未回収です", th.Title))
		}
	}
	for _, ev := range s.timeline {
		for _, name := range ev.RelatedCharacters {
			if !knownCharacters[name] {
				warnings = append(warnings, fmt.Sprintf("年表イベント「%s」に未登録のキャラクター「%s」が登場します", ev.Title, name))
			}
		}
	}
	return warnings, nil
}
