package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "breeding-records/internal/adapters/storage/memory"
	pg "breeding-records/internal/adapters/storage/postgres"
	"breeding-records/internal/adapters/summarizer/herdai"
	"breeding-records/internal/domain/litters"
	"breeding-records/internal/domain/mothers"
	"breeding-records/internal/domain/offspring"
	"breeding-records/internal/domain/reports"
	"breeding-records/internal/middleware"
	"breeding-records/internal/platform/metrics"
	"breeding-records/internal/ports/auth"
	"breeding-records/internal/ports/summarizer"

	_ "breeding-records/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: summarizer externo. Si es nil se intenta armar desde env
	// (HERDAI_BASE_URL / HERDAI_API_KEY); sin config, Summarize devuelve
	// dependency failure.
	Summarizer summarizer.Summarizer
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Registry propio para poder levantar varios routers en tests.
	reg := prometheus.NewRegistry()
	mts := metrics.New(reg)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	var (
		motherRepo    mothers.Repository
		litterRepo    litters.Repository
		offspringRepo offspring.Repository
		reportRepo    reports.Repository

		litterPurger    mothers.LitterPurger
		offspringPurger mothers.OffspringPurger
	)

	if db != nil {
		lr := pg.NewLittersRepo(db)
		or := pg.NewOffspringRepo(db)

		motherRepo = pg.NewMothersRepo(db)
		litterRepo = lr
		offspringRepo = or
		reportRepo = pg.NewReportsRepo(db)
		litterPurger = lr
		offspringPurger = or
	} else {
		lr := mem.NewLitterRepo()
		or := mem.NewOffspringRepo()

		motherRepo = mem.NewMotherRepo()
		litterRepo = lr
		offspringRepo = or
		reportRepo = mem.NewReportRepo()
		litterPurger = lr
		offspringPurger = or
	}

	sum := opts.Summarizer
	if sum == nil {
		if baseURL := os.Getenv("HERDAI_BASE_URL"); baseURL != "" {
			client, err := herdai.NewClient(herdai.Config{
				BaseURL: baseURL,
				APIKey:  os.Getenv("HERDAI_API_KEY"),
			})
			if err == nil {
				sum = herdai.NewSummarizer(client)
			}
		}
	}

	// Services por módulo
	mothersSvc := mothers.NewService(motherRepo, litterPurger, offspringPurger)
	littersSvc := litters.NewService(litterRepo, mothersSvc)
	offspringSvc := offspring.NewService(offspringRepo, littersSvc)
	reportsSvc := reports.NewService(reportRepo, mothersSvc, littersSvc, offspringSvc, sum)

	// Rutas por módulo
	mothers.RegisterRoutes(r, mothersSvc)
	litters.RegisterRoutes(r, littersSvc, mothersSvc, mts)
	offspring.RegisterRoutes(r, offspringSvc, littersSvc, mothersSvc, mts)
	reports.RegisterRoutes(r, reportsSvc, mothersSvc, mts)

	return r
}
