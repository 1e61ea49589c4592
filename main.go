package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/zonwering-data/fshade.report/internal/api"
	"github.com/zonwering-data/fshade.report/internal/config"
	"github.com/zonwering-data/fshade.report/internal/monitor"
	"github.com/zonwering-data/fshade.report/internal/shading"
	"github.com/zonwering-data/fshade.report/internal/shadingdb"
	"github.com/zonwering-data/fshade.report/internal/version"
)

var (
	listen      = flag.String("listen", ":8080", "Listen address")
	configPath  = flag.String("config", "", "Path to engine config JSON (optional)")
	dbPath      = flag.String("db", "", "Run database path (overrides config)")
	noPersist   = flag.Bool("no-persist", false, "Disable run persistence")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		log.Printf("fshade %s", version.String())
		return
	}
	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	cfg := config.EmptyEngineConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadEngineConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		log.Printf("loaded engine config from %s", *configPath)
	}

	classifier := shading.NewClassifier(cfg.EngineParams())

	var store *shadingdb.Store
	if cfg.GetPersistRuns() && !*noPersist {
		path := cfg.GetDBPath()
		if *dbPath != "" {
			path = *dbPath
		}
		var err error
		store, err = shadingdb.NewStore(path)
		if err != nil {
			log.Fatalf("failed to open run database: %v", err)
		}
		defer store.Close()
	} else {
		log.Print("run persistence disabled")
	}

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		mux := http.NewServeMux()

		apiMux := api.NewServer(classifier, store, cfg).ServeMux()
		mux.Handle("/", apiMux)

		// chart pages need the store; skip them when persistence is off
		if store != nil {
			monitor.NewCharts(store).RegisterRoutes(mux)
		}

		server := &http.Server{
			Addr:    *listen,
			Handler: api.LoggingMiddleware(mux),
		}

		go func() {
			log.Printf("fshade %s listening on %s", version.Version, *listen)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}

		log.Printf("HTTP server routine stopped")
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
