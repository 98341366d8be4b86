package dogs

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
	log = log.With(map[string]any{"module": "dogs"})

	r.Route("/api/dogs", func(dr chi.Router) {
		dr.Get("/breeds", listBreedsHandler(svc, log))
		dr.Get("/random-image", randomImageHandler(svc, log))

		dr.Get("/{breed}/sub-breeds", listSubBreedsHandler(svc, log))
		dr.Get("/{breed}/images", breedImagesHandler(svc, log))
		dr.Get("/{breed}/images/random", randomBreedImagesHandler(svc, log))
	})
}

// listBreedsHandler godoc
// @Summary Listar razas
// @Description Devuelve los nombres de todas las razas conocidas por dog.ceo. Sin contenido (204) si la lista viene vacía.
// @Tags dogs
// @Produce json
// @Success 200 {array} string
// @Success 204 "sin razas"
// @Failure 503 "falla upstream"
// @Router /dogs/breeds [get]
func listBreedsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Breeds(r.Context())
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeList(w, items)
	}
}

// listSubBreedsHandler godoc
// @Summary Listar sub-razas
// @Description Devuelve las sub-razas de una raza. Una raza desconocida devuelve lista vacía (200).
// @Tags dogs
// @Produce json
// @Param breed path string true "Nombre de la raza"
// @Success 200 {array} string
// @Failure 503 "falla upstream"
// @Router /dogs/{breed}/sub-breeds [get]
func listSubBreedsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.SubBreeds(r.Context(), chi.URLParam(r, "breed"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		// acá la lista vacía es un resultado válido (200 + [])
		writeJSON(w, http.StatusOK, items)
	}
}

// randomImageHandler godoc
// @Summary Imágenes al azar
// @Description Sin count (o count=0) devuelve una sola imagen; con count=N devuelve N (máximo 50).
// @Tags dogs
// @Produce json
// @Param count query int false "Cantidad de imágenes (0-50)"
// @Success 200 {array} string
// @Success 204 "sin imágenes"
// @Failure 400 "count inválido"
// @Failure 503 "falla upstream"
// @Router /dogs/random-image [get]
func randomImageHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := parseCount(r)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		items, err := svc.RandomImages(r.Context(), count)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeList(w, items)
	}
}

// breedImagesHandler godoc
// @Summary Imágenes de una raza
// @Tags dogs
// @Produce json
// @Param breed path string true "Nombre de la raza"
// @Success 200 {array} string
// @Success 204 "sin imágenes"
// @Failure 503 "falla upstream"
// @Router /dogs/{breed}/images [get]
func breedImagesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.BreedImages(r.Context(), chi.URLParam(r, "breed"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeList(w, items)
	}
}

// randomBreedImagesHandler godoc
// @Summary Imágenes al azar de una raza
// @Tags dogs
// @Produce json
// @Param breed path string true "Nombre de la raza"
// @Param count query int false "Cantidad de imágenes (0-50)"
// @Success 200 {array} string
// @Success 204 "sin imágenes"
// @Failure 400 "count inválido"
// @Failure 503 "falla upstream"
// @Router /dogs/{breed}/images/random [get]
func randomBreedImagesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := parseCount(r)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		items, err := svc.RandomBreedImages(r.Context(), chi.URLParam(r, "breed"), count)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeList(w, items)
	}
}

// parseCount: ausente => 0. No numérico => ErrInvalidCount.
func parseCount(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("count"))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidCount
	}
	if err := ValidateCount(n); err != nil {
		return 0, err
	}
	return n, nil
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUpstream):
		log.Error("dog api unavailable", map[string]any{"path": r.URL.Path, "error": err})
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		log.Error("internal error", map[string]any{"path": r.URL.Path, "error": err})
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// writeList: lista vacía => 204.
func writeList(w http.ResponseWriter, items []string) {
	if len(items) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
