package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"dog-users-api/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"module": "users"})

	r.Route("/api/users", func(ur chi.Router) {
		ur.Get("/", listUsersHandler(svc, log))
		ur.Post("/", createUserHandler(svc, log))
		ur.Delete("/", deleteAllUsersHandler(svc, log))

		// antes de /{id} para que "search" no se tome como id
		ur.Get("/search", searchUserHandler(svc, log))

		ur.Get("/{id}", getUserHandler(svc, log))
		ur.Put("/{id}", updateUserHandler(svc, log))
		ur.Delete("/{id}", deleteUserHandler(svc, log))
	})
}

type userRequest struct {
	Name    string `json:"name" example:"Ana"`
	Email   string `json:"email" example:"ana@example.com"`
	Address string `json:"address" example:"Av. Siempre Viva 742"`
}

func (req userRequest) input() Input {
	return Input{Name: req.Name, Email: req.Email, Address: req.Address}
}

// listUsersHandler godoc
// @Summary Listar usuarios
// @Description Devuelve todos los usuarios ordenados por id. Sin contenido (204) si no hay ninguno.
// @Tags users
// @Produce json
// @Success 200 {array} User
// @Success 204 "sin usuarios"
// @Router /users [get]
func listUsersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		if len(items) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// getUserHandler godoc
// @Summary Obtener usuario
// @Tags users
// @Produce json
// @Param id path int true "ID del usuario"
// @Success 200 {object} User
// @Failure 400 "id inválido"
// @Failure 404 "no existe"
// @Router /users/{id} [get]
func getUserHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		u, err := svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// searchUserHandler godoc
// @Summary Buscar usuario por email
// @Tags users
// @Produce json
// @Param email query string true "Email exacto"
// @Success 200 {object} User
// @Failure 400 "email faltante"
// @Failure 404 "no existe"
// @Router /users/search [get]
func searchUserHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.FindByEmail(r.Context(), r.URL.Query().Get("email"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// createUserHandler godoc
// @Summary Crear usuario
// @Description El email debe ser único; si ya existe responde 409 y no modifica nada.
// @Tags users
// @Accept json
// @Produce json
// @Param body body userRequest true "Datos del usuario"
// @Success 201 {object} User
// @Failure 400 "payload inválido"
// @Failure 409 "email duplicado"
// @Router /users [post]
func createUserHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Create(r.Context(), req.input())
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		log.Info("user created", map[string]any{"user_id": u.ID})
		writeJSON(w, http.StatusCreated, u)
	}
}

// updateUserHandler godoc
// @Summary Actualizar usuario
// @Description Reemplaza name, email y address. Cambiar a un email usado por otro usuario responde 409.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "ID del usuario"
// @Param body body userRequest true "Datos del usuario"
// @Success 200 {object} User
// @Failure 400 "payload inválido"
// @Failure 404 "no existe"
// @Failure 409 "email duplicado"
// @Router /users/{id} [put]
func updateUserHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		var req userRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Update(r.Context(), id, req.input())
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// deleteUserHandler godoc
// @Summary Borrar usuario
// @Tags users
// @Param id path int true "ID del usuario"
// @Success 204 "borrado"
// @Failure 400 "id inválido"
// @Failure 404 "no existe"
// @Router /users/{id} [delete]
func deleteUserHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// deleteAllUsersHandler godoc
// @Summary Borrar todos los usuarios
// @Tags users
// @Success 204 "borrados"
// @Router /users [delete]
func deleteAllUsersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteAll(r.Context()); err != nil {
			writeError(w, r, log, err)
			return
		}
		log.Warn("all users deleted", nil)
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "id must be a positive integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, ErrEmailTaken):
		http.Error(w, "email already in use", http.StatusConflict)
	default:
		log.Error("internal error", map[string]any{"path": r.URL.Path, "error": err})
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
