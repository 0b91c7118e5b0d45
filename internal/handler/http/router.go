package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/wforce/workforce-backend-go/internal/domain/user"
	"github.com/wforce/workforce-backend-go/internal/handler/http/middleware"
	"github.com/wforce/workforce-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	userHandler UserHandler,
	requestHandler RequestHandler,
	attendanceHandler AttendanceHandler,
	taskHandler TaskHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.GetEmployeeInfo)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/", userHandler.List)
					r.Post("/", userHandler.Create)
					r.Put("/{id}", userHandler.Update)
					r.Delete("/{id}", userHandler.Delete)
				})
			})

			r.Route("/managers", func(r chi.Router) {
				r.Use(middleware.RequireRole(user.RoleHR, user.RoleAdmin))
				r.Post("/", userHandler.CreateManager)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleHR, user.RoleAdmin))
					r.Post("/", userHandler.CreateEmployee)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleDepartmentManager, user.RoleAdmin))
					r.Get("/my", userHandler.GetMyEmployees)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", userHandler.ListDepartments)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Put("/{id}", userHandler.UpdateDepartment)
				})
			})

			r.Route("/requests", func(r chi.Router) {
				r.Post("/", requestHandler.Submit)
				r.Get("/my", requestHandler.GetMyRequests)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleDepartmentManager, user.RoleHR, user.RoleAdmin))
					r.Get("/pending", requestHandler.ListPending)
					r.Post("/{id}/resolve", requestHandler.Resolve)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/", requestHandler.ListAll)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/scan", attendanceHandler.Scan)
				r.Get("/my", attendanceHandler.GetMyAttendance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleHR, user.RoleAdmin))
					r.Get("/token", attendanceHandler.DailyToken)
					r.Get("/", attendanceHandler.ListByDate)
					r.Post("/initialize", attendanceHandler.Initialize)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/my", taskHandler.GetMyTasks)
				r.Post("/{id}/respond", taskHandler.Respond)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleDepartmentManager, user.RoleAdmin))
					r.Post("/", taskHandler.Assign)
					r.Get("/assigned", taskHandler.GetAssignedTasks)
				})
			})
		})
	})

	return r
}
