package main

import (
	"context"
	"log"
	"os"

	"github.com/viralforge/publish-review-service/internal/app/bootstrap"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/default.yaml"
	}

	ctx := context.Background()
	rt, err := bootstrap.NewRuntime(ctx, configPath)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	if err := rt.RunAPI(ctx); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
