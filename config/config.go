package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DatabaseURL       string
	MongoURI          string
	MongoDatabase     string
	ProblemDir        string
	OpenAIAPIKey      string
	AnthropicAPIKey   string
	PineconeAPIKey    string
	PineconeIndexName string
	SerperAPIKey      string
}

// Load reads configuration from a .env file when present, falling back to
// the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] No .env file found, using environment variables")
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DB_URL"),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDatabase:     getEnv("MONGO_DATABASE", "interviewcoach"),
		ProblemDir:        os.Getenv("PROBLEM_DIR"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		PineconeAPIKey:    os.Getenv("PINECONE_API_KEY"),
		PineconeIndexName: getEnv("PINECONE_INDEX_NAME", "interview-problems"),
		SerperAPIKey:      os.Getenv("SERPER_API_KEY"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
