package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kavr/tasktrack-be/internal/api/handlers"
	"github.com/kavr/tasktrack-be/internal/auth"
	"github.com/kavr/tasktrack-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	userService services.UserServiceProvider,
	taskService services.TaskServiceProvider,
	tokens *auth.TokenManager,
	allowedOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens)
	taskHandler := handlers.NewTaskHandler(taskService)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"API running"}`))
	})

	r.Post("/register", userHandler.Register)
	r.Post("/login", userHandler.Login)

	r.Route("/tasks", func(r chi.Router) {
		r.Use(auth.Middleware(tokens, userService))
		r.Post("/", taskHandler.Create)
		r.Get("/", taskHandler.List)
		r.Put("/{id}", taskHandler.Complete)
		r.Delete("/{id}", taskHandler.Delete)
	})

	return r
}
