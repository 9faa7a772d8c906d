package main

import (
	"context"
	"log"

	"github.com/JaybhanTomar/ats-pro-app/app"
	"github.com/JaybhanTomar/ats-pro-app/app/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := app.MustOpenDB(cfg)

	gen, err := app.NewGeminiGenerator(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("failed to initialize gemini client: %v", err)
	}

	api := app.NewAPI(db, cfg, gen)
	api.InitStripe()

	router, err := api.NewRouter()
	if err != nil {
		log.Fatalf("failed to initialize router: %v", err)
	}
	router.Run(cfg.HTTPAddr)
}
