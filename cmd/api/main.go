package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/seoyeon-oh/maum-diary/backend/internal/config"
	"github.com/seoyeon-oh/maum-diary/backend/internal/handler"
	diaryHandler "github.com/seoyeon-oh/maum-diary/backend/internal/handler/diary"
	pagesHandler "github.com/seoyeon-oh/maum-diary/backend/internal/handler/pages"
	"github.com/seoyeon-oh/maum-diary/backend/internal/model/account"
	diarymodel "github.com/seoyeon-oh/maum-diary/backend/internal/model/diary"
	"github.com/seoyeon-oh/maum-diary/backend/internal/service/ai"
	"github.com/seoyeon-oh/maum-diary/backend/internal/service/analyzer"
	"github.com/seoyeon-oh/maum-diary/backend/internal/service/feed"
	"github.com/seoyeon-oh/maum-diary/backend/internal/store/memory"
	sheetsstore "github.com/seoyeon-oh/maum-diary/backend/internal/store/sheets"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// The model handle is created once at startup and never reloaded. A
	// failure here leaves the server in degraded mode: every analyze
	// request answers that the model is not loaded.
	var pipeline diaryHandler.Analyzer
	if cfg.AI.Enabled() {
		aiSvc, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without analysis - check the Ark model environment variables")
		} else {
			pipeline = analyzer.NewService(aiSvc, aiSvc)
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("Ark credentials not configured, analysis runs in degraded mode")
	}

	accounts, records := buildStores(ctx, cfg.Store)

	pages, err := pagesHandler.New()
	if err != nil {
		log.Fatalf("failed to parse page templates: %v", err)
	}

	router := handler.NewRouter(accounts, records, pipeline, feed.NewHub(), pages)

	startServer(ctx, cfg.Server, router)
}

func buildStores(ctx context.Context, cfg config.StoreConfig) (account.Store, diarymodel.RecordStore) {
	if cfg.Backend == config.StoreBackendMemory {
		log.Println("using in-memory store, data will not survive a restart")
		store := memory.NewStore()
		return store, store
	}

	store, err := sheetsstore.New(ctx, cfg.SpreadsheetID, cfg.CredentialsFile)
	if err != nil {
		log.Fatalf("failed to initialize sheets store: %v", err)
	}
	log.Printf("sheets store initialized for spreadsheet %s", cfg.SpreadsheetID)
	return store, store
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Maum Diary backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
