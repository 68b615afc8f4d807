package main

import (
	"log"
	"net/http"

	"weekboard/internal/config"
	"weekboard/internal/serverapp"
)

func main() {
	cfg, err := config.Load("weekboard.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.FromEnv()

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Logger: log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("weekboard listening on %s", cfg.Listen)
	log.Fatal(http.ListenAndServe(cfg.Listen, handler))
}
