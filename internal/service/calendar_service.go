package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sparklabs-au/ignite-api/internal/dto"
	"github.com/sparklabs-au/ignite-api/internal/models"
	"github.com/sparklabs-au/ignite-api/internal/timezone"
	appErrors "github.com/sparklabs-au/ignite-api/pkg/errors"
)

// View selects the projection applied to calendar output. Admin view exposes
// enrollment detail; public view is fully redacted.
type View string

const (
	ViewAdmin  View = "admin"
	ViewPublic View = "public"
)

// ParseView resolves the view query parameter, defaulting to public.
func ParseView(raw string) (View, error) {
	switch raw {
	case "", string(ViewPublic):
		return ViewPublic, nil
	case string(ViewAdmin):
		return ViewAdmin, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown view %q", raw))
	}
}

type sessionSource interface {
	List() []models.SessionDefinition
	Get(id string) (models.SessionDefinition, bool)
}

type rosterResolver interface {
	Resolve(ctx context.Context, sessions []models.SessionDefinition, from, to timezone.Date) (map[RosterKey][]models.Student, error)
}

// CalendarOptions carries the expansion settings.
type CalendarOptions struct {
	Location     *time.Location
	MaxRangeDays int
	CacheTTL     time.Duration
}

// CalendarService expands the configured sessions over a date range into
// concrete calendar events.
type CalendarService struct {
	sessions sessionSource
	roster   rosterResolver
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	opts     CalendarOptions
}

// NewCalendarService constructs a calendar service.
func NewCalendarService(sessions sessionSource, roster rosterResolver, cache *CacheService, metrics *MetricsService, opts CalendarOptions, logger *zap.Logger) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.MaxRangeDays <= 0 {
		opts.MaxRangeDays = 731
	}
	return &CalendarService{
		sessions: sessions,
		roster:   roster,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		opts:     opts,
	}
}

// ParseRange parses and validates the start/end query parameters.
func (s *CalendarService) ParseRange(startRaw, endRaw string) (timezone.Date, timezone.Date, error) {
	from, err := timezone.ParseDate(startRaw)
	if err != nil {
		return timezone.Date{}, timezone.Date{}, appErrors.Clone(appErrors.ErrInvalidRange, "start must be a yyyy-MM-dd date")
	}
	to, err := timezone.ParseDate(endRaw)
	if err != nil {
		return timezone.Date{}, timezone.Date{}, appErrors.Clone(appErrors.ErrInvalidRange, "end must be a yyyy-MM-dd date")
	}
	if err := s.validateRange(from, to); err != nil {
		return timezone.Date{}, timezone.Date{}, err
	}
	return from, to, nil
}

func (s *CalendarService) validateRange(from, to timezone.Date) error {
	if from.After(to) {
		return appErrors.Clone(appErrors.ErrInvalidRange, "start must not be after end")
	}
	if days := from.DaysUntil(to) + 1; days > s.opts.MaxRangeDays {
		return appErrors.Clone(appErrors.ErrInvalidRange,
			fmt.Sprintf("range spans %d days, maximum is %d", days, s.opts.MaxRangeDays))
	}
	return nil
}

// ListEvents returns the rendered calendar for the inclusive range, shaped
// for the given view. Results are cached per (view, range).
func (s *CalendarService) ListEvents(ctx context.Context, from, to timezone.Date, view View) ([]dto.CalendarEvent, error) {
	if err := s.validateRange(from, to); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("calendar:%s:%s:%s", view, from, to)
	var cached []dto.CalendarEvent
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, nil
	}

	occurrences, err := s.Occurrences(ctx, from, to)
	if err != nil {
		return nil, err
	}

	events := make([]dto.CalendarEvent, 0, len(occurrences))
	for _, occ := range occurrences {
		if view == ViewAdmin {
			events = append(events, dto.AdminEvent(occ))
		} else {
			events = append(events, dto.PublicEvent(occ))
		}
	}

	s.metrics.RecordEventsGenerated(len(events))
	_ = s.cache.Set(ctx, cacheKey, events, s.opts.CacheTTL)

	return events, nil
}

// Occurrences materializes the raw occurrence list for the inclusive range:
// date ascending, session declaration order within a date. Callers must apply
// a view projection before returning occurrences to API consumers.
func (s *CalendarService) Occurrences(ctx context.Context, from, to timezone.Date) ([]models.EventOccurrence, error) {
	if err := s.validateRange(from, to); err != nil {
		return nil, err
	}

	sessions := s.sessions.List()
	rosters, err := s.roster.Resolve(ctx, sessions, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve rosters")
	}

	var occurrences []models.EventOccurrence
	for d := from; !d.After(to); d = d.Next() {
		weekday := d.Weekday()
		for _, def := range sessions {
			if !def.OccursOn(weekday) {
				continue
			}
			occ, ok := s.materialize(def, d, rosters)
			if !ok {
				continue
			}
			occurrences = append(occurrences, occ)
		}
	}

	return occurrences, nil
}

// materialize builds one occurrence. A definition with an unparseable time
// slipped past registry validation is skipped with a warning so the rest of
// the calendar still renders.
func (s *CalendarService) materialize(def models.SessionDefinition, d timezone.Date, rosters map[RosterKey][]models.Student) (models.EventOccurrence, bool) {
	startH, startM, err := timezone.ParseClock(def.StartTime)
	if err != nil {
		s.logger.Warn("skipping session with invalid start time",
			zap.String("session_id", def.ID), zap.Error(err))
		return models.EventOccurrence{}, false
	}
	endH, endM, err := timezone.ParseClock(def.EndTime)
	if err != nil {
		s.logger.Warn("skipping session with invalid end time",
			zap.String("session_id", def.ID), zap.Error(err))
		return models.EventOccurrence{}, false
	}

	return models.EventOccurrence{
		SessionID:   def.ID,
		Date:        d,
		Start:       timezone.Resolve(d, startH, startM, s.opts.Location),
		End:         timezone.Resolve(d, endH, endM, s.opts.Location),
		Location:    def.Location,
		Address:     def.Address,
		ProgramType: def.ProgramType,
		Capacity:    def.Capacity,
		Students:    rosters[RosterKey{SessionID: def.ID, Date: d.String()}],
	}, true
}
