package main

import (
	"fmt"
	"log"
	"net/http"

	"interviewcoach/config"
	"interviewcoach/db"
	"interviewcoach/handlers"
	"interviewcoach/services/career"
	"interviewcoach/services/catalog"
	"interviewcoach/services/conversation"
	"interviewcoach/services/problemindex"
	"interviewcoach/services/responder"
	"interviewcoach/services/session"

	"github.com/gorilla/mux"
	"github.com/tmc/langchaingo/llms/openai"
)

func main() {
	cfg := config.Load()

	if cfg.OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required")
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DB_URL environment variable is required")
	}

	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI environment variable is required")
	}

	userRepo, err := db.NewMongoUserRepository(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to initialize user database: %v", err)
	}
	defer userRepo.Close()

	historyRepo, err := db.NewPostgresHistoryRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize history database: %v", err)
	}
	defer historyRepo.Close()

	problemCatalog := catalog.NewService()
	if cfg.ProblemDir != "" {
		if err := problemCatalog.LoadFromDirectory(cfg.ProblemDir); err != nil {
			log.Printf("[WARN] Failed to load problems from %s: %v", cfg.ProblemDir, err)
		}
	}

	llm, err := openai.New(
		openai.WithModel("gpt-4o-mini"),
		openai.WithToken(cfg.OpenAIAPIKey),
	)
	if err != nil {
		log.Fatalf("Failed to create OpenAI client: %v", err)
	}

	responderService := responder.NewService(llm)
	conversationService := conversation.NewService(responderService, conversation.NewMemoryStore(), conversation.DefaultMaxHints)
	sessionService := session.NewService(conversationService, session.NewMemoryStore(), historyRepo)

	var indexService *problemindex.Service
	if cfg.PineconeAPIKey != "" {
		indexService, err = problemindex.NewService(cfg.PineconeAPIKey, cfg.OpenAIAPIKey, cfg.PineconeIndexName)
		if err != nil {
			log.Fatalf("Failed to initialize problem index service: %v", err)
		}
	} else {
		log.Printf("[WARN] PINECONE_API_KEY not set, similar problem search disabled")
	}

	var careerService *career.Service
	if cfg.AnthropicAPIKey != "" {
		careerService, err = career.NewService(cfg.AnthropicAPIKey, cfg.SerperAPIKey)
		if err != nil {
			log.Fatalf("Failed to initialize career guidance service: %v", err)
		}
	} else {
		log.Printf("[WARN] ANTHROPIC_API_KEY not set, career guidance disabled")
	}

	interviewHandler := handlers.NewInterviewHandler(sessionService, problemCatalog, userRepo, historyRepo)
	problemHandler := handlers.NewProblemHandler(problemCatalog, indexService)
	userHandler := handlers.NewUserHandler(userRepo)
	careerHandler := handlers.NewCareerHandler(careerService)

	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(jsonMiddleware)

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	interviewHandler.RegisterRoutes(router)
	problemHandler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router)
	careerHandler.RegisterRoutes(router)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	addr := ":" + cfg.Port
	fmt.Printf("Server starting on port %s\n", cfg.Port)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}
