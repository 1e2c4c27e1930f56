package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	appanalyses "github.com/veriview/veriview/internal/application/analyses"
	appinsight "github.com/veriview/veriview/internal/application/insight"
	"github.com/veriview/veriview/internal/config"
	domain "github.com/veriview/veriview/internal/domain/analyses"
	aiopenai "github.com/veriview/veriview/internal/infra/ai/openai"
	memoryp "github.com/veriview/veriview/internal/infra/db/memory"
	mysqlp "github.com/veriview/veriview/internal/infra/db/mysql"
	postgresp "github.com/veriview/veriview/internal/infra/db/postgres"
	"github.com/veriview/veriview/internal/infra/enrich/factcheck"
	"github.com/veriview/veriview/internal/infra/enrich/youtube"
	"github.com/veriview/veriview/internal/infra/httpserver"
	minioStore "github.com/veriview/veriview/internal/infra/storage"
	"github.com/veriview/veriview/internal/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// verdict store
	repo, closeDB, err := buildRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("store init error: %v", err)
	}
	defer closeDB()

	// enrichment clients, each gated on its credential
	var metadata domain.MetadataClient
	if cfg.Enrichment.YouTubeAPIKey != "" {
		metadata = youtube.NewClient(cfg.Enrichment.YouTubeAPIKey)
	} else {
		log.Println("YOUTUBE_API_KEY not set, metadata enrichment disabled")
	}

	var claims domain.ClaimSearcher
	if cfg.Enrichment.FactCheckAPIKey != "" {
		claims = factcheck.NewClient(cfg.Enrichment.FactCheckAPIKey)
	} else {
		log.Println("GOOGLE_FACT_CHECK_API_KEY not set, fact-check enrichment disabled")
	}

	// evidence archive
	var evidence domain.EvidenceStore
	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		evidence = store
	}

	svc := &appanalyses.Service{
		Repo:     repo,
		Metadata: metadata,
		Claims:   claims,
		Evidence: evidence,
		Clock:    appanalyses.SystemClock{},
	}

	var insightSvc *appinsight.Service
	if cfg.OpenAI.APIKey != "" {
		insightSvc = appinsight.NewService(aiopenai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model))
	}

	// cache TTL hook: verdicts live forever unless both knobs are set
	if stop, err := startPruneJob(cfg, svc); err != nil {
		log.Fatalf("prune job error: %v", err)
	} else if stop != nil {
		defer stop()
	}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestIDMiddleware)
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))
	mux.Mount("/", httpserver.NewRouter(svc, insightSvc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// buildRepository selects the verdict store from config. The returned
// closer is a no-op for the in-memory store.
func buildRepository(ctx context.Context, cfg *config.Config) (domain.Repository, func(), error) {
	switch cfg.Database.Driver {
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, err
		}
		return mysqlp.NewAnalysisRepository(db), func() { db.Close() }, nil
	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		return postgresp.NewAnalysisRepository(db), func() { db.Close() }, nil
	case "memory":
		return memoryp.NewAnalysisRepository(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
}

// startPruneJob schedules the verdict TTL sweep when configured.
func startPruneJob(cfg *config.Config, svc *appanalyses.Service) (func(), error) {
	ttl, err := cfg.CacheTTL()
	if err != nil {
		return nil, fmt.Errorf("parse cache ttl: %w", err)
	}
	if ttl <= 0 || cfg.Cache.SweepSchedule == "" {
		return nil, nil
	}

	c := cron.New()
	_, err = c.AddFunc(cfg.Cache.SweepSchedule, func() {
		n, err := svc.PruneExpired(context.Background(), ttl)
		if err != nil {
			log.Printf("prune expired analyses: %v", err)
			return
		}
		if n > 0 {
			log.Printf("pruned %d expired analyses", n)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule prune job: %w", err)
	}
	c.Start()
	log.Printf("verdict pruning enabled: ttl=%s schedule=%q", ttl, cfg.Cache.SweepSchedule)
	return func() { c.Stop() }, nil
}
