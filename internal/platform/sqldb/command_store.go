package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	"github.com/phrazzld/commander-api/internal/domain"
	"github.com/phrazzld/commander-api/internal/platform/logger"
	"github.com/phrazzld/commander-api/internal/store"
)

const (
	tableCommands  = "commands"
	colID          = "id"
	colHowTo       = "how_to"
	colPlatform    = "platform"
	colCommandLine = "command_line"
)

// Dialect describes the SQL flavour of a backend.
type Dialect struct {
	// Name is the goqu dialect name ("postgres", "sqlite3").
	Name string

	// Returning is true when INSERT ... RETURNING is available. Otherwise the
	// generated ID is read from sql.Result.LastInsertId.
	Returning bool

	// MapError translates driver errors into store errors. May be nil.
	MapError func(error) error
}

// CommandStore implements store.CommandStore for a SQL database.
type CommandStore struct {
	db      *sqlx.DB
	dialect Dialect
	builder goqu.DialectWrapper
	logger  *slog.Logger
}

// Ensure CommandStore implements store.CommandStore interface
var _ store.CommandStore = (*CommandStore)(nil)

// NewCommandStore creates a new SQL-backed command store.
// If logger is nil, a default logger will be used.
func NewCommandStore(db *sqlx.DB, dialect Dialect, log *slog.Logger) *CommandStore {
	if log == nil {
		log = slog.Default()
	}
	if dialect.MapError == nil {
		dialect.MapError = func(err error) error { return err }
	}

	return &CommandStore{
		db:      db,
		dialect: dialect,
		builder: goqu.Dialect(dialect.Name),
		logger: log.With(
			slog.String("component", "sql_command_store"),
			slog.String("dialect", dialect.Name),
		),
	}
}

// Session opens a new unit of work.
func (s *CommandStore) Session() store.CommandSession {
	return &commandSession{store: s}
}

func (s *CommandStore) selectCommands() *goqu.SelectDataset {
	return s.builder.From(tableCommands).
		Prepared(true).
		Select(colID, colHowTo, colPlatform, colCommandLine)
}

type commandSession struct {
	store.ChangeSet
	store *CommandStore
}

var _ store.CommandSession = (*commandSession)(nil)

func (cs *commandSession) ListAll(ctx context.Context) ([]*domain.Command, error) {
	log := logger.FromContextOrDefault(ctx, cs.store.logger)

	query, args, err := cs.store.selectCommands().
		Order(goqu.C(colID).Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	var rows []domain.Command
	if err := cs.store.db.SelectContext(ctx, &rows, query, args...); err != nil {
		log.Error("failed to list commands", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list commands: %w", cs.store.dialect.MapError(err))
	}

	commands := make([]*domain.Command, 0, len(rows))
	for i := range rows {
		commands = append(commands, &rows[i])
	}

	return commands, nil
}

func (cs *commandSession) GetByID(ctx context.Context, id int64) (mo.Option[*domain.Command], error) {
	log := logger.FromContextOrDefault(ctx, cs.store.logger)

	query, args, err := cs.store.selectCommands().
		Where(goqu.C(colID).Eq(id)).
		ToSQL()
	if err != nil {
		return mo.None[*domain.Command](), fmt.Errorf("failed to build get query: %w", err)
	}

	var cmd domain.Command
	if err := cs.store.db.GetContext(ctx, &cmd, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*domain.Command](), nil
		}
		log.Error("failed to get command",
			slog.Int64("command_id", id),
			slog.String("error", err.Error()))
		return mo.None[*domain.Command](), fmt.Errorf("failed to get command %d: %w", id, cs.store.dialect.MapError(err))
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

// SaveChanges writes every pending change inside one transaction.
// Generated IDs are copied into the created commands only after commit.
func (cs *commandSession) SaveChanges(ctx context.Context) error {
	pending := cs.Pending()
	if len(pending) == 0 {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, cs.store.logger)
	ctx = logger.WithLogger(ctx, log)

	assigned := make(map[*domain.Command]int64)
	err := RunInTransaction(ctx, cs.store.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, change := range pending {
			switch change.Kind {
			case store.ChangeCreate:
				id, err := cs.insert(ctx, tx, change.Values)
				if err != nil {
					return err
				}
				assigned[change.Target] = id

			case store.ChangeUpdate:
				if err := cs.update(ctx, tx, change); err != nil {
					return err
				}

			case store.ChangeDelete:
				if err := cs.delete(ctx, tx, change); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for target, id := range assigned {
		target.ID = id
	}

	log.Debug("saved command changes", slog.Int("changes", len(pending)))
	cs.Reset()

	return nil
}

func (cs *commandSession) insert(ctx context.Context, tx DBTX, values domain.Command) (int64, error) {
	insert := cs.store.builder.Insert(tableCommands).
		Prepared(true).
		Rows(goqu.Record{
			colHowTo:       values.HowTo,
			colPlatform:    values.Platform,
			colCommandLine: values.CommandLine,
		})

	if cs.store.dialect.Returning {
		query, args, err := insert.Returning(colID).ToSQL()
		if err != nil {
			return 0, fmt.Errorf("failed to build insert query: %w", err)
		}

		var id int64
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to insert command: %w", cs.store.dialect.MapError(err))
		}
		return id, nil
	}

	query, args, err := insert.ToSQL()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert command: %w", cs.store.dialect.MapError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read generated command id: %w", err)
	}

	return id, nil
}

func (cs *commandSession) update(ctx context.Context, tx DBTX, change store.Change) error {
	query, args, err := cs.store.builder.Update(tableCommands).
		Prepared(true).
		Set(goqu.Record{
			colHowTo:       change.Values.HowTo,
			colPlatform:    change.Values.Platform,
			colCommandLine: change.Values.CommandLine,
		}).
		Where(goqu.C(colID).Eq(change.Values.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update command %d: %w", change.Values.ID, cs.store.dialect.MapError(err))
	}

	return checkRowsAffected(result, change)
}

func (cs *commandSession) delete(ctx context.Context, tx DBTX, change store.Change) error {
	query, args, err := cs.store.builder.Delete(tableCommands).
		Prepared(true).
		Where(goqu.C(colID).Eq(change.Values.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete command %d: %w", change.Values.ID, cs.store.dialect.MapError(err))
	}

	return checkRowsAffected(result, change)
}

// checkRowsAffected reports store.ErrCommandNotFound when the targeted row
// no longer exists.
func checkRowsAffected(result sql.Result, change store.Change) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.NotFound(change)
	}
	return nil
}
