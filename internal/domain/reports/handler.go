package reports

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
	r.Route("/reports", func(rr chi.Router) {
		rr.Post("/generate", generateReportHandler(svc, mothersSvc, mts))

		rr.Get("/{reportName}", viewReportHandler(svc))
		rr.Delete("/{reportName}", deleteReportHandler(svc))
		rr.Post("/{reportName}/rename", renameReportHandler(svc))

		// Narrativa vía summarizer externo (cacheada en el reporte)
		rr.Post("/{reportName}/summary", summarizeReportHandler(svc))
	})
}

type generateReportRequest struct {
	MotherID string `json:"mother_id"`
	Start    string `json:"start"` // YYYY-MM-DD
	End      string `json:"end"`   // YYYY-MM-DD
	Name     string `json:"name"`
}

type reportResponse struct {
	Name          string    `json:"name"`
	GeneratedAt   time.Time `json:"generated_at"`
	TargetMothers []string  `json:"target_mothers"`
	Results       []string  `json:"results"`
	Summary       string    `json:"summary,omitempty"`
}

type renameReportRequest struct {
	NewName string `json:"new_name"`
}

// generateReportHandler godoc
// @Summary Generar/mergear reporte
// @Description Calcula el resumen de performance de una madre en la ventana [start, end] y lo mergea en el reporte nombrado (lo crea si no existe). Devuelve la lista completa de resultados. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags reports
// @Accept json
// @Produce json
// @Param payload body generateReportRequest true "Madre, ventana de fechas (YYYY-MM-DD) y nombre del reporte"
// @Success 200 {object} reportResponse
// @Failure 400 {string} string "invalid json / rango de fechas inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "mother not found"
// @Router /reports/generate [post]
func generateReportHandler(svc *Service, mothersSvc *mothers.Service, mts *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req generateReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		start, err := time.Parse("2006-01-02", strings.TrimSpace(req.Start))
		if err != nil {
			http.Error(w, "start must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		end, err := time.Parse("2006-01-02", strings.TrimSpace(req.End))
		if err != nil {
			http.Error(w, "end must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		m, err := mothersSvc.Get(r.Context(), req.MotherID)
		if err != nil {
			http.Error(w, "mother not found", http.StatusNotFound)
			return
		}
		if m.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		// Un reporte existente solo lo mergea su dueño.
		if rep, err := svc.Get(r.Context(), req.Name); err == nil {
			if rep.OwnerUserID != claims.UserID {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		if _, err := svc.Generate(r.Context(), claims.UserID, GenerateInput{
			MotherID: req.MotherID,
			Start:    start,
			End:      end,
			Name:     req.Name,
		}); err != nil {
			writeDomainError(w, err)
			return
		}

		// El response devuelve el reporte completo ya mergeado.
		rep, err := svc.Get(r.Context(), req.Name)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		mts.IncReportsGenerated()
		writeJSON(w, http.StatusOK, toReportResponse(rep))
	}
}

func viewReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, st := loadOwnedReport(r, svc)
		if st != 0 {
			http.Error(w, http.StatusText(st), st)
			return
		}
		writeJSON(w, http.StatusOK, rep.Results)
	}
}

func deleteReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, st := loadOwnedReport(r, svc)
		if st != 0 {
			http.Error(w, http.StatusText(st), st)
			return
		}

		if err := svc.Delete(r.Context(), rep.Name); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func renameReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, st := loadOwnedReport(r, svc)
		if st != 0 {
			http.Error(w, http.StatusText(st), st)
			return
		}

		var req renameReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := svc.Rename(r.Context(), rep.Name, req.NewName); err != nil {
			writeDomainError(w, err)
			return
		}

		renamed, err := svc.Get(r.Context(), strings.TrimSpace(req.NewName))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toReportResponse(renamed))
	}
}

func summarizeReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, st := loadOwnedReport(r, svc)
		if st != 0 {
			http.Error(w, http.StatusText(st), st)
			return
		}

		summarized, err := svc.Summarize(r.Context(), rep.Name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReportResponse(summarized))
	}
}

func loadOwnedReport(r *http.Request, svc *Service) (Report, int) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		return Report{}, http.StatusUnauthorized
	}

	rep, err := svc.Get(r.Context(), chi.URLParam(r, "reportName"))
	if err != nil {
		return Report{}, http.StatusNotFound
	}
	if rep.OwnerUserID != claims.UserID {
		return Report{}, http.StatusForbidden
	}
	return rep, 0
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrDependency):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toReportResponse(rep Report) reportResponse {
	return reportResponse{
		Name:          rep.Name,
		GeneratedAt:   rep.GeneratedAt,
		TargetMothers: rep.TargetMothers,
		Results:       rep.Results,
		Summary:       rep.Summary,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
