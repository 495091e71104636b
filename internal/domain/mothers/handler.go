package mothers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"breeding-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/mothers", func(mr chi.Router) {
		mr.Post("/", registerMotherHandler(svc))
		mr.Get("/", listMothersHandler(svc))
		mr.Get("/{motherID}", getMotherHandler(svc))

		// Borrado en cascada (camadas + crías)
		mr.Delete("/{motherID}", removeMotherHandler(svc))
	})
}

type registerMotherRequest struct {
	ID    string `json:"id"`
	Notes string `json:"notes"`
}

type motherResponse struct {
	ID                 string    `json:"id"`
	OwnerUserID        string    `json:"owner_user_id"`
	Notes              string    `json:"notes"`
	NextLitterSequence int64     `json:"next_litter_sequence"`
	CreatedAt          time.Time `json:"created_at"`
}

func registerMotherHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req registerMotherRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Register(r.Context(), claims.UserID, RegisterInput{
			ID:    req.ID,
			Notes: req.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrConflict):
				http.Error(w, "mother already exists", http.StatusConflict)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toMotherResponse(m))
	}
}

func listMothersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]motherResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMotherResponse(m))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getMotherHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		m, err := svc.Get(r.Context(), chi.URLParam(r, "motherID"))
		if err != nil {
			http.Error(w, "mother not found", http.StatusNotFound)
			return
		}

		// Filtro de ownership (fino, no un modelo de seguridad)
		if m.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toMotherResponse(m))
	}
}

func removeMotherHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		motherID := chi.URLParam(r, "motherID")
		m, err := svc.Get(r.Context(), motherID)
		if err != nil {
			http.Error(w, "mother not found", http.StatusNotFound)
			return
		}
		if m.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.Remove(r.Context(), motherID); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "mother not found", http.StatusNotFound)
				return
			}
			// Cascade parcial: el caller puede reintentar el DELETE.
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toMotherResponse(m Mother) motherResponse {
	return motherResponse{
		ID:                 m.ID,
		OwnerUserID:        m.OwnerUserID,
		Notes:              m.Notes,
		NextLitterSequence: m.NextLitterSequence,
		CreatedAt:          m.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
