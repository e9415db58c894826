package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/commander-api/internal/api/dto"
	"github.com/phrazzld/commander-api/internal/api/shared"
	"github.com/phrazzld/commander-api/internal/domain"
	"github.com/phrazzld/commander-api/internal/mapper"
	"github.com/phrazzld/commander-api/internal/patch"
	"github.com/phrazzld/commander-api/internal/platform/logger"
	"github.com/phrazzld/commander-api/internal/store"
)

// CommandsPath is the route prefix of the commands resource.
const CommandsPath = "/api/commands"

// CommandHandler handles command-related HTTP requests.
// Every request works on its own store session; mutating requests record
// their change and then save the session.
type CommandHandler struct {
	store  store.CommandStore
	logger *slog.Logger
}

// NewCommandHandler creates a new CommandHandler
func NewCommandHandler(commandStore store.CommandStore, logger *slog.Logger) *CommandHandler {
	if commandStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("commandStore cannot be nil for CommandHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CommandHandler")
	}

	return &CommandHandler{
		store:  commandStore,
		logger: logger.With(slog.String("component", "command_handler")),
	}
}

// Routes registers the handler's endpoints, relative to CommandsPath.
func (h *CommandHandler) Routes(r chi.Router) {
	r.Get("/", h.ListCommands)
	r.Post("/", h.CreateCommand)
	r.Get("/{id}", h.GetCommand)
	r.Put("/{id}", h.UpdateCommand)
	r.Patch("/{id}", h.PatchCommand)
	r.Delete("/{id}", h.DeleteCommand)
}

// ListCommands handles GET /api/commands requests.
func (h *CommandHandler) ListCommands(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	commands, err := h.store.Session().ListAll(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	log.Debug("listed commands", slog.Int("count", len(commands)))
	shared.RespondWithJSON(w, r, http.StatusOK, mapper.ToReadResponses(commands))
}

// GetCommand handles GET /api/commands/{id} requests.
func (h *CommandHandler) GetCommand(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	cmd, err := h.find(r, h.store.Session(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, mapper.ToReadResponse(cmd))
}

// CreateCommand handles POST /api/commands requests.
// The new command is returned with its assigned ID and a Location header.
func (h *CommandHandler) CreateCommand(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req dto.CommandCreateRequest
	if err := decodeBody(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := validateBody(&req); err != nil {
		h.handleError(w, r, err)
		return
	}

	cmd := mapper.FromCreateRequest(req)
	session := h.store.Session()
	if err := session.Create(r.Context(), cmd); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := session.SaveChanges(r.Context()); err != nil {
		h.handleError(w, r, err)
		return
	}

	log.Info("command created", slog.Int64("command_id", cmd.ID))
	w.Header().Set("Location", resourceURL(r, CommandsPath+"/"+strconv.FormatInt(cmd.ID, 10)))
	shared.RespondWithJSON(w, r, http.StatusCreated, mapper.ToReadResponse(cmd))
}

// UpdateCommand handles PUT /api/commands/{id} requests.
// Every field of the stored command is replaced by the request body.
func (h *CommandHandler) UpdateCommand(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	session := h.store.Session()
	cmd, err := h.find(r, session, id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req dto.CommandUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := validateBody(&req); err != nil {
		h.handleError(w, r, err)
		return
	}

	mapper.ApplyUpdate(req, cmd)
	if err := h.save(r, session, cmd); err != nil {
		h.handleError(w, r, err)
		return
	}

	log.Info("command updated", slog.Int64("command_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// PatchCommand handles PATCH /api/commands/{id} requests.
//
// The stored command is projected into its update shape, the JSON Patch
// operations are applied to that document and the result is validated
// before anything is written back.
func (h *CommandHandler) PatchCommand(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	session := h.store.Session()
	cmd, err := h.find(r, session, id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var ops []patch.Operation
	if err := decodeBody(r, &ops); err != nil {
		h.handleError(w, r, err)
		return
	}

	candidate, err := patch.Apply(mapper.ToUpdateRequest(cmd), ops)
	if err != nil {
		var patchErr *patch.Error
		if errors.As(err, &patchErr) {
			err = PatchValidationError(patchErr)
		}
		h.handleError(w, r, err)
		return
	}
	if err := validateBody(&candidate); err != nil {
		h.handleError(w, r, err)
		return
	}

	mapper.ApplyUpdate(candidate, cmd)
	if err := h.save(r, session, cmd); err != nil {
		h.handleError(w, r, err)
		return
	}

	log.Info("command patched",
		slog.Int64("command_id", id),
		slog.Int("operations", len(ops)))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCommand handles DELETE /api/commands/{id} requests.
func (h *CommandHandler) DeleteCommand(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	session := h.store.Session()
	cmd, err := h.find(r, session, id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := session.Delete(r.Context(), cmd); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := session.SaveChanges(r.Context()); err != nil {
		h.handleError(w, r, err)
		return
	}

	log.Info("command deleted", slog.Int64("command_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// find loads a command, turning absence into store.ErrCommandNotFound.
func (h *CommandHandler) find(r *http.Request, session store.CommandSession, id int64) (*domain.Command, error) {
	found, err := session.GetByID(r.Context(), id)
	if err != nil {
		return nil, err
	}

	cmd, ok := found.Get()
	if !ok {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Debug("command not found", slog.Int64("command_id", id))
		return nil, store.ErrCommandNotFound
	}
	return cmd, nil
}

func (h *CommandHandler) save(r *http.Request, session store.CommandSession, cmd *domain.Command) error {
	if err := session.Update(r.Context(), cmd); err != nil {
		return err
	}
	return session.SaveChanges(r.Context())
}

// handleError writes the response for err. Missing commands get a bare 404
// and validation failures enumerate their violations.
func (h *CommandHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := MapErrorToStatusCode(err)

	switch statusCode {
	case http.StatusNotFound:
		w.WriteHeader(http.StatusNotFound)

	case http.StatusUnprocessableEntity:
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			shared.RespondWithValidationErrors(w, r, GetSafeErrorMessage(err), validationErr.Fields)
			return
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)

	default:
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
	}
}
