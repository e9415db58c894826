package memory

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/phrazzld/commander-api/internal/domain"
	"github.com/phrazzld/commander-api/internal/platform/logger"
	"github.com/phrazzld/commander-api/internal/store"
	"github.com/samber/mo"
)

// CommandStore keeps commands in a map guarded by a read/write mutex.
// IDs start at 1 and are never reused, even after a delete.
type CommandStore struct {
	mu       sync.RWMutex
	commands map[int64]domain.Command
	lastID   int64
	logger   *slog.Logger
}

// Ensure CommandStore implements store.CommandStore interface
var _ store.CommandStore = (*CommandStore)(nil)

// NewCommandStore creates an empty store.
// If logger is nil, a default logger will be used.
func NewCommandStore(log *slog.Logger) *CommandStore {
	if log == nil {
		log = slog.Default()
	}

	return &CommandStore{
		commands: make(map[int64]domain.Command),
		logger:   log.With(slog.String("component", "memory_command_store")),
	}
}

// Session opens a new unit of work.
func (s *CommandStore) Session() store.CommandSession {
	return &commandSession{store: s}
}

type commandSession struct {
	store.ChangeSet
	store *CommandStore
}

var _ store.CommandSession = (*commandSession)(nil)

func (cs *commandSession) ListAll(ctx context.Context) ([]*domain.Command, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cs.store.mu.RLock()
	defer cs.store.mu.RUnlock()

	ids := slices.Sorted(maps.Keys(cs.store.commands))
	commands := make([]*domain.Command, 0, len(ids))
	for _, id := range ids {
		cmd := cs.store.commands[id]
		commands = append(commands, &cmd)
	}

	return commands, nil
}

func (cs *commandSession) GetByID(ctx context.Context, id int64) (mo.Option[*domain.Command], error) {
	if err := ctx.Err(); err != nil {
		return mo.None[*domain.Command](), err
	}

	cs.store.mu.RLock()
	defer cs.store.mu.RUnlock()

	cmd, ok := cs.store.commands[id]
	if !ok {
		return mo.None[*domain.Command](), nil
	}

	return mo.Some(&cmd), nil
}

func (cs *commandSession) Create(_ context.Context, cmd *domain.Command) error {
	return cs.RecordCreate(cmd)
}

func (cs *commandSession) Update(_ context.Context, cmd *domain.Command) error {
	return cs.RecordUpdate(cmd)
}

func (cs *commandSession) Delete(_ context.Context, cmd *domain.Command) error {
	return cs.RecordDelete(cmd)
}

// SaveChanges applies the pending changes to a copy of the map and swaps it
// in only when every change succeeded.
func (cs *commandSession) SaveChanges(ctx context.Context) error {
	pending := cs.Pending()
	if len(pending) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	log := logger.FromContextOrDefault(ctx, cs.store.logger)

	cs.store.mu.Lock()
	defer cs.store.mu.Unlock()

	staged := maps.Clone(cs.store.commands)
	lastID := cs.store.lastID
	assigned := make(map[*domain.Command]int64)

	for _, change := range pending {
		switch change.Kind {
		case store.ChangeCreate:
			lastID++
			values := change.Values
			values.ID = lastID
			staged[lastID] = values
			assigned[change.Target] = lastID

		case store.ChangeUpdate:
			if _, ok := staged[change.Values.ID]; !ok {
				log.Debug("update target missing", slog.Int64("command_id", change.Values.ID))
				return store.NotFound(change)
			}
			staged[change.Values.ID] = change.Values

		case store.ChangeDelete:
			if _, ok := staged[change.Values.ID]; !ok {
				log.Debug("delete target missing", slog.Int64("command_id", change.Values.ID))
				return store.NotFound(change)
			}
			delete(staged, change.Values.ID)
		}
	}

	cs.store.commands = staged
	cs.store.lastID = lastID
	for target, id := range assigned {
		target.ID = id
	}

	log.Debug("saved command changes", slog.Int("changes", len(pending)))
	cs.Reset()

	return nil
}
