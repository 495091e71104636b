package litters

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"breeding-records/internal/domain/mothers"
	"breeding-records/internal/middleware"
	"breeding-records/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, mothersSvc *mothers.Service, mts *metrics.Metrics) {
	r.Route("/mothers/{motherID}/litters", func(lr chi.Router) {
		lr.Post("/", recordLitterHandler(svc, mothersSvc, mts))
		lr.Get("/", listLittersHandler(svc, mothersSvc))
	})

	r.Route("/litters/{litterID}", func(lr chi.Router) {
		lr.Get("/", getLitterHandler(svc, mothersSvc))
		lr.Patch("/", updateLitterHandler(svc, mothersSvc))
	})
}

type recordLitterRequest struct {
	FatherID           *string `json:"father_id"` // opcional; null/omitido = no especificado
	BirthDate          string  `json:"birth_date"` // YYYY-MM-DD
	ReportedLitterSize int     `json:"reported_litter_size"`
	Notes              string  `json:"notes"`
}

type litterResponse struct {
	ID                 string    `json:"id"`
	MotherID           string    `json:"mother_id"`
	FatherID           *string   `json:"father_id,omitempty"`
	BirthDate          time.Time `json:"birth_date"`
	ReportedLitterSize int       `json:"reported_litter_size"`
	Notes              string    `json:"notes"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type updateLitterRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	MotherID           *string `json:"mother_id"`
	FatherID           *string `json:"father_id"`
	BirthDate          *string `json:"birth_date"` // YYYY-MM-DD o null
	ReportedLitterSize *int    `json:"reported_litter_size"`
	Notes              *string `json:"notes"`
}

// recordLitterHandler godoc
// @Summary Registrar camada
// @Description Registra una camada para la madre indicada. Si la madre no existe se crea implícitamente con el caller como dueño. El id de la camada se deriva de la secuencia por madre: `<motherID>-<N>`. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags litters
// @Accept json
// @Produce json
// @Param motherID path string true "ID de la madre"
// @Param payload body recordLitterRequest true "Datos de la camada; birth_date en formato YYYY-MM-DD"
// @Success 201 {object} litterResponse
// @Failure 400 {string} string "invalid json / birth_date inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "litter id already exists"
// @Router /mothers/{motherID}/litters [post]
func recordLitterHandler(svc *Service, mothersSvc *mothers.Service, mts *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		motherID := chi.URLParam(r, "motherID")

		// Si la madre ya existe, solo el dueño puede registrarle camadas.
		// Si no existe, Record la crea implícitamente a nombre del caller.
		if m, err := mothersSvc.Get(r.Context(), motherID); err == nil {
			if m.OwnerUserID != claims.UserID {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		var req recordLitterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		bd, err := time.Parse("2006-01-02", strings.TrimSpace(req.BirthDate))
		if err != nil {
			http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		l, err := svc.Record(r.Context(), claims.UserID, motherID, RecordInput{
			FatherID:           req.FatherID,
			BirthDate:          bd,
			ReportedLitterSize: req.ReportedLitterSize,
			Notes:              req.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrConflict):
				http.Error(w, "litter id already exists", http.StatusConflict)
			case errors.Is(err, ErrInvalidInput), errors.Is(err, mothers.ErrInvalidInput):
				http.Error(w, "invalid input", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		mts.IncLittersRecorded()
		writeJSON(w, http.StatusCreated, toLitterResponse(l))
	}
}

func listLittersHandler(svc *Service, mothersSvc *mothers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		motherID := chi.URLParam(r, "motherID")
		m, err := mothersSvc.Get(r.Context(), motherID)
		if err != nil {
			http.Error(w, "mother not found", http.StatusNotFound)
			return
		}
		if m.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		filter := ListFilter{}
		if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				http.Error(w, "from must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			filter.From = &t
		}
		if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				http.Error(w, "to must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			filter.To = &t
		}

		items, err := svc.ListByMother(r.Context(), motherID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]litterResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toLitterResponse(l))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getLitterHandler(svc *Service, mothersSvc *mothers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		l, err := svc.Get(r.Context(), chi.URLParam(r, "litterID"))
		if err != nil {
			http.Error(w, "litter not found", http.StatusNotFound)
			return
		}

		if !ownsLitter(r, mothersSvc, l, claims.UserID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toLitterResponse(l))
	}
}

func updateLitterHandler(svc *Service, mothersSvc *mothers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		litterID := chi.URLParam(r, "litterID")
		current, err := svc.Get(r.Context(), litterID)
		if err != nil {
			http.Error(w, "litter not found", http.StatusNotFound)
			return
		}
		if !ownsLitter(r, mothersSvc, current, claims.UserID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		// Para diferenciar "campo = null" (resetear) de "campo omitido"
		// (no tocar), decodificamos primero a un map y miramos presencia.
		var raw map[string]json.RawMessage
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updateLitterRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		in := UpdateInput{
			MotherID:           req.MotherID,
			ReportedLitterSize: req.ReportedLitterSize,
		}

		if _, present := raw["father_id"]; present {
			in.FatherID = Patch{Set: true, Value: req.FatherID}
		}
		if _, present := raw["notes"]; present {
			in.Notes = Patch{Set: true, Value: req.Notes}
		}
		if v, present := raw["birth_date"]; present {
			if string(v) == "null" {
				http.Error(w, "birth_date cannot be null", http.StatusBadRequest)
				return
			}
			t, err := time.Parse("2006-01-02", strings.TrimSpace(*req.BirthDate))
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.BirthDate = &t
		}

		updated, err := svc.Update(r.Context(), litterID, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrConflict):
				http.Error(w, "mother_id cannot be changed", http.StatusConflict)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "invalid input", http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "litter not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toLitterResponse(updated))
	}
}

// ownsLitter resuelve el dueño vía la madre de la camada.
func ownsLitter(r *http.Request, mothersSvc *mothers.Service, l Litter, userID string) bool {
	m, err := mothersSvc.Get(r.Context(), l.MotherID)
	if err != nil {
		return false
	}
	return m.OwnerUserID == userID
}

func toLitterResponse(l Litter) litterResponse {
	return litterResponse{
		ID:                 l.ID,
		MotherID:           l.MotherID,
		FatherID:           l.FatherID,
		BirthDate:          l.BirthDate,
		ReportedLitterSize: l.ReportedLitterSize,
		Notes:              l.Notes,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
