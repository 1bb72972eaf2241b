// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"enkai/internal/ai"
	"enkai/internal/config"
	httptransport "enkai/internal/http"
	"enkai/internal/infra"
	"enkai/internal/modules/choice"
	"enkai/internal/modules/recommend"
	"enkai/internal/places"
)

func main() {
	config.LoadEnvFiles(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := infra.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	placesClient, err := places.NewGoogleClient(cfg.Places.APIKey, cfg.Places.Language, cfg.Places.Region)
	if err != nil {
		log.Fatalf("places init: %v", err)
	}

	aiProvider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, ai.GeminiOptions{
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer aiProvider.Close()

	recommendStore := recommend.NewStore(redisClient, cfg.Recommend.CacheTTL)
	retriever := recommend.NewRetriever(placesClient, recommendStore, cfg.Recommend.MaxSearchResults, logger)
	recommendSvc := recommend.NewService(retriever, aiProvider, cfg.Recommend, cfg.AI, logger)

	choiceStore := choice.NewStore(dbPool, redisClient)
	choiceSvc := choice.NewService(choiceStore, logger)

	handler := httptransport.NewRouter(recommendSvc, choiceSvc, logger)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", cfg.HTTP.Addr).Msg("server starting")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
