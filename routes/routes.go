package routes

import (
	"github.com/Dosada05/hackathon-system/handlers"
	"github.com/Dosada05/hackathon-system/middleware"
	"github.com/Dosada05/hackathon-system/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRoutes wires every endpoint onto the router. Each prefix holds
// its public routes first, then the groups gated by Authenticate and a
// role check.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Auth,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	collegeHandler *handlers.CollegeHandler,
	questionHandler *handlers.QuestionHandler,
	teamHandler *handlers.TeamHandler,
	hackathonHandler *handlers.HackathonHandler,
	evaluationHandler *handlers.EvaluationHandler,
	winnerHandler *handlers.WinnerHandler,
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

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Post("/register", authHandler.Register)
	router.Post("/login", authHandler.Login)
	router.Get("/states", collegeHandler.ListStates)

	// Live updates. The upgrade request carries no Authorization header
	// from browser websocket clients, so the endpoint stays public.
	router.Get("/ws/hackathons/{hackathonID}", webSocketHandler.Subscribe)

	router.Route("/users", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authorize(models.RoleAdmin))
			r.Get("/", userHandler.ListUsers)
			r.Put("/{userID}/role", userHandler.SetRole)
			r.Delete("/{userID}", userHandler.SuspendUser)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Authorize(models.RoleAdmin, models.RoleCoordinator))
			r.Get("/participants/available", userHandler.ListAvailableParticipants)
		})
	})

	router.Route("/colleges", func(r chi.Router) {
		// Registration needs the college list before any token exists.
		r.Get("/{state}", collegeHandler.ListByState)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(auth.Authorize(models.RoleAdmin))
			r.Post("/", collegeHandler.AddCollege)
		})
	})

	router.Route("/questions", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/", questionHandler.ListQuestions)
		r.Get("/{questionID}", questionHandler.GetQuestion)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authorize(models.RoleAdmin))
			r.Post("/", questionHandler.CreateQuestion)
			r.Put("/{questionID}", questionHandler.UpdateQuestion)
			r.Delete("/{questionID}", questionHandler.DeleteQuestion)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/", teamHandler.ListTeams)
		r.Get("/my-team/{userID}", teamHandler.GetMyTeam)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authorize(models.RoleAdmin, models.RoleCoordinator))
			r.Post("/", teamHandler.CreateTeam)
			r.Delete("/{teamID}", teamHandler.SuspendTeam)
			r.Post("/{teamID}/logo", teamHandler.UploadLogo)
		})
	})

	router.Route("/hackathons", func(r chi.Router) {
		r.Get("/active-or-upcoming", hackathonHandler.ActiveOrUpcoming)
		r.Get("/winners", hackathonHandler.Winners)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Get("/", hackathonHandler.ListHackathons)
			r.Get("/domains-and-questions", questionHandler.DomainsAndQuestions)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authorize(models.RoleAdmin))
				r.Post("/", hackathonHandler.CreateHackathon)
				r.Post("/{hackathonID}/banner", hackathonHandler.UploadBanner)
			})
		})
	})

	router.Route("/evaluations", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/", evaluationHandler.ListEvaluations)
		r.Get("/{evaluationID}", evaluationHandler.GetEvaluation)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authorize(models.RoleAdmin, models.RoleEvaluator))
			r.Post("/", evaluationHandler.SubmitEvaluation)
			r.Put("/{evaluationID}", evaluationHandler.UpdateEvaluation)
			r.Delete("/{evaluationID}", evaluationHandler.DeleteEvaluation)
		})
	})

	router.Route("/winners", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/", winnerHandler.ListWinners)
		r.Get("/{winnerID}", winnerHandler.GetWinner)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authorize(models.RoleAdmin))
			r.Post("/", winnerHandler.AnnounceWinner)
			r.Put("/{winnerID}", winnerHandler.UpdateWinner)
			r.Delete("/{winnerID}", winnerHandler.DeleteWinner)
		})
	})
}
