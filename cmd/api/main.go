package main

import (
	"net/http"
	"os"
	"time"

	"breeding-records/internal/platform/logger"
	"breeding-records/internal/router"
)

// @title Breeding Records API
// @version 1.0
// @description Registro de madres reproductoras, camadas, crías y reportes de performance.
func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r := router.NewRouter(router.Options{AuthVerifier: nil}) // sin verifier para modo dev

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
