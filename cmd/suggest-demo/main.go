// README: One-shot pipeline demo (no HTTP server, no cache, no database).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"enkai/internal/ai"
	"enkai/internal/config"
	"enkai/internal/infra"
	"enkai/internal/modules/recommend"
	"enkai/internal/places"
)

func main() {
	config.LoadEnvFiles(".env")

	location := flag.String("location", "渋谷", "search area")
	cuisine := flag.String("cuisine", "焼肉", "cuisine keyword")
	budget := flag.String("budget", "5,000円～8,000円", "budget band")
	flag.Parse()

	mapsKey := os.Getenv("MAPS_API_KEY")
	geminiKey := os.Getenv("GEMINI_API_KEY")
	if mapsKey == "" || geminiKey == "" {
		log.Fatal("MAPS_API_KEY and GEMINI_API_KEY environment variables are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := infra.NewLogger()
	ctx := context.Background()

	placesClient, err := places.NewGoogleClient(mapsKey, cfg.Places.Language, cfg.Places.Region)
	if err != nil {
		log.Fatalf("places init: %v", err)
	}

	provider, err := ai.NewGeminiProvider(ctx, geminiKey, ai.GeminiOptions{
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer provider.Close()

	retriever := recommend.NewRetriever(placesClient, nil, cfg.Recommend.MaxSearchResults, logger)
	svc := recommend.NewService(retriever, provider, cfg.Recommend, cfg.AI, logger)

	criteria := recommend.Criteria{
		Date:                 "2026-09-05",
		Time:                 "19:00",
		Budget:               *budget,
		Cuisine:              *cuisine,
		Location:             *location,
		PurposeOfUse:         recommend.PurposeBanquet,
		PrivateRoomRequested: true,
	}

	recs, err := svc.GetRestaurantSuggestion(ctx, criteria)
	if err != nil {
		log.Fatalf("pipeline error: %v", err)
	}
	if len(recs) == 0 {
		fmt.Println("No recommendation found for the given criteria.")
		return
	}

	for i, r := range recs {
		fmt.Printf("--- #%d %s ---\n", i+1, r.Suggestion.RestaurantName)
		fmt.Printf("Rationale : %s\n", r.Suggestion.RecommendationRationale)
		fmt.Printf("Sentiment : %s\n", r.Analysis.OverallSentiment)
		fmt.Printf("Group fit : %s\n", r.Analysis.GroupDiningExperience)
		fmt.Printf("Address   : %s (rating %.1f)\n", r.Address, r.Rating)
		if r.GoogleMapsURI != "" {
			fmt.Printf("Map       : %s\n", r.GoogleMapsURI)
		}
	}
}
