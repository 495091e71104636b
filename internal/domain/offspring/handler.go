package offspring

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"breeding-records/internal/domain/litters"
	"breeding-records/internal/domain/mothers"
	"breeding-records/internal/middleware"
	"breeding-records/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, littersSvc *litters.Service, mothersSvc *mothers.Service, mts *metrics.Metrics) {
	r.Route("/litters/{litterID}/offspring", func(or chi.Router) {
		or.Post("/", recordOffspringHandler(svc, littersSvc, mothersSvc, mts))
		or.Get("/", listOffspringHandler(svc, littersSvc, mothersSvc))
	})

	r.Route("/offspring/{offspringID}", func(or chi.Router) {
		or.Get("/", getOffspringHandler(svc, littersSvc, mothersSvc))
		or.Patch("/", updateOffspringHandler(svc, littersSvc, mothersSvc))

		// Hitos de ciclo de vida
		or.Post("/weaning", recordWeaningHandler(svc, littersSvc, mothersSvc))
		or.Post("/death", recordDeathHandler(svc, littersSvc, mothersSvc))
	})
}

type recordOffspringRequest struct {
	ID    string `json:"id"`
	Sex   Sex    `json:"sex" enums:"male,female,unknown"`
	Notes string `json:"notes"`
}

type offspringResponse struct {
	ID                string    `json:"id"`
	LitterID          string    `json:"litter_id"`
	Sex               Sex       `json:"sex"`
	Notes             string    `json:"notes"`
	IsAlive           bool      `json:"is_alive"`
	SurvivedToWeaning bool      `json:"survived_to_weaning"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type updateOffspringRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	NewID    *string `json:"new_id"`
	LitterID *string `json:"litter_id"`
	Sex      *Sex    `json:"sex"`
	Notes    *string `json:"notes"`
}

func recordOffspringHandler(svc *Service, littersSvc *litters.Service, mothersSvc *mothers.Service, mts *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		litterID := chi.URLParam(r, "litterID")
		if st := authorizeLitter(r, littersSvc, mothersSvc, litterID, claims.UserID); st != 0 {
			writeStatus(w, st)
			return
		}

		var req recordOffspringRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := svc.Record(r.Context(), litterID, RecordInput{
			ID:    req.ID,
			Sex:   req.Sex,
			Notes: req.Notes,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		mts.IncOffspringRecorded()
		writeJSON(w, http.StatusCreated, toOffspringResponse(o))
	}
}

func listOffspringHandler(svc *Service, littersSvc *litters.Service, mothersSvc *mothers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		litterID := chi.URLParam(r, "litterID")
		if st := authorizeLitter(r, littersSvc, mothersSvc, litterID, claims.UserID); st != 0 {
			writeStatus(w, st)
			return
		}

		items, err := svc.ListByLitter(r.Context(), litterID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]offspringResponse, 0, len(items))
		for _, o := range items {
			out = append(out, toOffspringResponse(o))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getOffspringHandler(svc *Service, littersSvc *litters.Service, mothersSvc *mothers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, st := loadAuthorized(r, svc, littersSvc, mothersSvc)
		if st != 0 {
			writeStatus(w, st)
			return
		}
		writeJSON(w, http.StatusOK, toOffspringResponse(o))
	}
}

func updateOffspringHandler(svc *Service, littersSvc *litters.Service, mothersSvc *mothers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, st := loadAuthorized(r, svc, littersSvc, mothersSvc)
		if st != 0 {
			writeStatus(w, st)
			return
		}

		var req updateOffspringRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), o.ID, UpdateInput{
			NewID:    req.NewID,
			LitterID: req.LitterID,
			Sex:      req.Sex,
			Notes:    req.Notes,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toOffspringResponse(updated))
	}
}

func recordWeaningHandler(svc *Service, littersSvc *litters.Service, mothersSvc *mothers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, st := loadAuthorized(r, svc, littersSvc, mothersSvc)
		if st != 0 {
			writeStatus(w, st)
			return
		}

		updated, err := svc.RecordWeaning(r.Context(), o.ID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOffspringResponse(updated))
	}
}

func recordDeathHandler(svc *Service, littersSvc *litters.Service, mothersSvc *mothers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, st := loadAuthorized(r, svc, littersSvc, mothersSvc)
		if st != 0 {
			writeStatus(w, st)
			return
		}

		updated, err := svc.RecordDeath(r.Context(), o.ID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOffspringResponse(updated))
	}
}

// loadAuthorized resuelve claims + cría + ownership (cría -> camada -> madre).
// Devuelve 0 como status cuando todo está ok.
func loadAuthorized(r *http.Request, svc *Service, littersSvc *litters.Service, mothersSvc *mothers.Service) (Offspring, int) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		return Offspring{}, http.StatusUnauthorized
	}

	o, err := svc.Get(r.Context(), chi.URLParam(r, "offspringID"))
	if err != nil {
		return Offspring{}, http.StatusNotFound
	}

	if st := authorizeLitter(r, littersSvc, mothersSvc, o.LitterID, claims.UserID); st != 0 {
		return Offspring{}, st
	}
	return o, 0
}

func authorizeLitter(r *http.Request, littersSvc *litters.Service, mothersSvc *mothers.Service, litterID, userID string) int {
	l, err := littersSvc.Get(r.Context(), litterID)
	if err != nil {
		return http.StatusNotFound
	}
	m, err := mothersSvc.Get(r.Context(), l.MotherID)
	if err != nil {
		return http.StatusNotFound
	}
	if m.OwnerUserID != userID {
		return http.StatusForbidden
	}
	return 0
}

func writeStatus(w http.ResponseWriter, status int) {
	switch status {
	case http.StatusUnauthorized:
		http.Error(w, "unauthorized", status)
	case http.StatusForbidden:
		http.Error(w, "forbidden", status)
	case http.StatusNotFound:
		http.Error(w, "not found", status)
	default:
		http.Error(w, http.StatusText(status), status)
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidState):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toOffspringResponse(o Offspring) offspringResponse {
	return offspringResponse{
		ID:                o.ID,
		LitterID:          o.LitterID,
		Sex:               o.Sex,
		Notes:             o.Notes,
		IsAlive:           o.IsAlive,
		SurvivedToWeaning: o.SurvivedToWeaning,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
