// Package registry loads and serves the configured recurring sessions. The
// session list is read-only at runtime: it is parsed once at startup and every
// calendar query reads from the same in-memory snapshot.
package registry

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sparklabs-au/ignite-api/internal/models"
	"github.com/sparklabs-au/ignite-api/internal/timezone"
)

// Registry is an immutable, ordered collection of session definitions.
type Registry struct {
	ordered []models.SessionDefinition
	byID    map[string]models.SessionDefinition
}

// Load reads session definitions from a YAML file and builds a registry.
// A missing or unreadable file is an error; individually malformed entries
// are not (see New).
func Load(path string, defaultCapacity int, logger *zap.Logger) (*Registry, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read sessions file %q: %w", path, err)
	}

	var defs []models.SessionDefinition
	if err := v.UnmarshalKey("sessions", &defs); err != nil {
		return nil, fmt.Errorf("parse sessions file %q: %w", path, err)
	}

	return New(defs, defaultCapacity, logger), nil
}

// New validates the given definitions and keeps the valid ones in declaration
// order. Invalid entries are skipped with a warning rather than failing the
// whole load, so one bad entry cannot take the calendar down.
func New(defs []models.SessionDefinition, defaultCapacity int, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Registry{byID: make(map[string]models.SessionDefinition, len(defs))}

	for i, def := range defs {
		if reason := validate(def, logger); reason != "" {
			logger.Warn("skipping invalid session definition",
				zap.Int("index", i),
				zap.String("id", def.ID),
				zap.String("reason", reason))
			continue
		}
		if _, dup := r.byID[def.ID]; dup {
			logger.Warn("skipping duplicate session id",
				zap.Int("index", i),
				zap.String("id", def.ID))
			continue
		}
		if def.Capacity <= 0 {
			def.Capacity = defaultCapacity
		}

		r.ordered = append(r.ordered, def)
		r.byID[def.ID] = def
	}

	return r
}

func validate(def models.SessionDefinition, logger *zap.Logger) string {
	if def.ID == "" {
		return "missing id"
	}
	if def.Location == "" {
		return "missing location"
	}

	startH, startM, err := timezone.ParseClock(def.StartTime)
	if err != nil {
		return fmt.Sprintf("invalid startTime %q", def.StartTime)
	}
	endH, endM, err := timezone.ParseClock(def.EndTime)
	if err != nil {
		return fmt.Sprintf("invalid endTime %q", def.EndTime)
	}
	if endH*60+endM <= startH*60+startM {
		return "endTime not after startTime"
	}

	validDays := 0
	for _, name := range def.DaysOfWeek {
		if _, ok := models.ParseWeekday(name); ok {
			validDays++
		} else {
			logger.Warn("ignoring unrecognized weekday",
				zap.String("id", def.ID),
				zap.String("day", name))
		}
	}
	if validDays == 0 {
		return "no recognizable days of week"
	}

	return ""
}

// List returns all sessions in declaration order. The returned slice is a
// copy; callers may not mutate registry state.
func (r *Registry) List() []models.SessionDefinition {
	out := make([]models.SessionDefinition, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Get returns the session with the given id.
func (r *Registry) Get(id string) (models.SessionDefinition, bool) {
	def, ok := r.byID[id]
	return def, ok
}

// Len returns the number of valid sessions held.
func (r *Registry) Len() int {
	return len(r.ordered)
}
