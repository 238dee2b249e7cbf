package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	"github.com/unicontest/competition-system/handlers"
	"github.com/unicontest/competition-system/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	teamHandler *handlers.TeamHandler,
	competitionHandler *handlers.CompetitionHandler,
	rankingHandler *handlers.RankingHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Welcome to the University Competitions API"}`))
	})

	router.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/verify", authHandler.Verify)
		})
	})

	router.Route("/users", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/me", userHandler.Me)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/create", teamHandler.Create)
		r.Post("/join", teamHandler.Join)
		r.Delete("/delete", teamHandler.Delete)
		r.Get("/team/{code}", teamHandler.GetByCode)
		r.Post("/avatar", teamHandler.UploadAvatar)
	})

	router.Route("/competition", func(r chi.Router) {
		// Публичные маршруты для просмотра соревнований
		r.Post("/create", competitionHandler.Create)
		r.Get("/all", competitionHandler.GetAll)
		r.Post("/join", competitionHandler.Join)
		r.Get("/{competitionID}", competitionHandler.GetByID)

		// Защищённые маршруты
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/private/{competitionID}", competitionHandler.GetPrivate)
			r.Post("/submission/{competitionID}/{problemID}", competitionHandler.RecordSubmission)
		})
	})

	router.Get("/ranking/{competitionID}", rankingHandler.GetRanking)

	router.Get("/ws/competitions/{competitionID}", webSocketHandler.ServeWs)
}
