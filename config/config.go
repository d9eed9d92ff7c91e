package config

import "os"

// Config struct holds application configuration
// This is a simple way to make config accessible globally.
// A more advanced approach might use dependency injection.
type Config struct {
	JWTSecret    string
	GeminiAPIKey string
	ModelPath    string
	Addr         string
}

// AppConfig holds the application-wide configuration
var AppConfig Config

// Load fills AppConfig from environment variables.
func Load() {
	AppConfig = Config{
		JWTSecret:    os.Getenv("JWT_SECRET"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		ModelPath:    getEnv("FORECAST_MODEL_PATH", "data/modelo_prediccion_ventas.json"),
		Addr:         getEnv("ADDR", ":3000"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
