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

	"github.com/gin-gonic/gin"

	"moviehub/internal/auth"
	"moviehub/internal/movies"
	"moviehub/internal/scraper"
	"moviehub/pkg/config"
	"moviehub/pkg/database"
)

func main() {
	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	router := gin.Default()

	// Optional: avoid “trusted all proxies” warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "not_ready",
				"db_error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "db": "ok"})
	})

	// Auth (admin token for the scrape trigger)
	authCfg := config.LoadAuthConfig()
	tokenSvc := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}
	authHandler := auth.NewHandler(tokenSvc, authCfg.AdminKey)
	authHandler.RegisterRoutes(router.Group("/auth"))

	// Ingestion pipeline behind the fire-and-forget trigger
	scrapeCfg := config.LoadScraperConfig()
	pipeline := scraper.NewPipeline(
		scraper.NewIMDb(scrapeCfg),
		scraper.NewRottenTomatoes(scrapeCfg),
		scraper.NewStore(db),
		scrapeCfg.Delay,
	)
	runScrape := func(ctx context.Context) {
		stats, err := pipeline.Run(ctx)
		if err != nil {
			log.Printf("[scraper] batch stopped: %v", err)
		}
		log.Printf("[scraper] batch done: %d listed, %d saved, %d skipped",
			stats.Total, stats.Saved, stats.Skipped)
	}

	// Movies (public)
	movieRepo := movies.NewRepo(db)
	movieHandler := movies.NewHandler(movieRepo, runScrape)
	movieHandler.RegisterRoutes(router, auth.AdminOnly(tokenSvc))

	srvCfg := config.LoadServerConfig()
	httpSrv := &http.Server{
		Addr:    srvCfg.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP API server listening on %s", srvCfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	log.Println("server stopped")
}
