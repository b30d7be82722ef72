package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/pokeatlas/pokedex-api/pkg/api"
	"github.com/pokeatlas/pokedex-api/pkg/api/handler"
	"github.com/pokeatlas/pokedex-api/pkg/api/services"
	"github.com/pokeatlas/pokedex-api/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: getEnv("LOG_PRETTY", "false") == "true",
		Output: os.Stderr,
	})

	version := getEnv("API_VERSION", "1.0.0")
	baseURL := getEnv("POKEAPI_BASE_URL", "https://pokeapi.co/api/v2/")
	port := getEnv("PORT", "3001")

	// Wire service and controller
	pokedex, err := services.NewPokedexService(baseURL)
	if err != nil {
		logger.Fatal().Err(err).Str("base_url", baseURL).Msg("invalid upstream base URL")
	}
	controller := handler.NewPokemonController(pokedex)
	router := api.NewRouter(version, controller)

	// Start server
	logger.Info().Str("port", port).Str("upstream", baseURL).Msg("pokedex API listening")
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
