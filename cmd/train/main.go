package main

import (
	"context"
	"flag"
	"log"

	"github.com/easybuyhq/recommendation-service/internal/config"
	"github.com/easybuyhq/recommendation-service/internal/recommender"
	"github.com/easybuyhq/recommendation-service/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	contentWeight := flag.Float64("content-weight", 0.5, "Weight of the content similarity signal")
	collabWeight := flag.Float64("collab-weight", 0.5, "Weight of the collaborative similarity signal")
	path := flag.String("path", "", "Snapshot output path (overrides config)")
	configFile := flag.String("config", "", "Optional YAML training config file")
	flag.Parse()

	training := config.DefaultTrainingConfig()
	if *configFile != "" {
		loaded, err := config.LoadTrainingConfig(*configFile)
		if err != nil {
			log.Fatalf("failed to load training config: %v", err)
		}
		training = loaded
	}

	// explicit flags win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "content-weight":
			training.ContentWeight = *contentWeight
		case "collab-weight":
			training.CollabWeight = *collabWeight
		case "path":
			training.Path = *path
		}
	})

	weights := recommender.Weights{Content: training.ContentWeight, Collab: training.CollabWeight}
	if err := weights.Validate(); err != nil {
		log.Fatalf("invalid weights: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database %v", err)
	}
	defer pool.Close()

	repo := repository.New(pool)

	log.Printf("building recommender (content=%v collab=%v)", weights.Content, weights.Collab)

	catalog, err := repo.GetCatalogEntries(ctx)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	purchases, err := repo.GetCompletedPurchases(ctx)
	if err != nil {
		log.Fatalf("failed to load purchases: %v", err)
	}
	reviews, err := repo.GetReviewSignals(ctx)
	if err != nil {
		log.Fatalf("failed to load reviews: %v", err)
	}

	model, err := recommender.Train(recommender.TrainingData{
		Catalog:   catalog,
		Purchases: purchases,
		Reviews:   reviews,
	}, weights)
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}

	if err := recommender.SaveModel(model, training.Path); err != nil {
		log.Fatalf("failed to save model: %v", err)
	}

	log.Printf("saved recommender to %s (%d products, %d purchases, %d reviews)",
		training.Path, model.Similarity.Len(), len(purchases), len(reviews))
}
