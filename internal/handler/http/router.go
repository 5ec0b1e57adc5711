package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	periodOverrideHandler PeriodOverrideHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", os.Getenv("APP_ENV")),
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Post("/", attendanceHandler.Create)
				r.Post("/recalculate", attendanceHandler.Recalculate)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Delete("/", attendanceHandler.DeleteByDateRange)
				})

				r.Route("/import", func(r chi.Router) {
					r.Post("/", attendanceHandler.ImportCSV)
					r.Post("/preview", attendanceHandler.PreviewImport)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", attendanceHandler.Get)
					r.Put("/overrides", attendanceHandler.UpdateOverrides)
					r.Post("/recalculate", attendanceHandler.RecalculateOne)
				})
			})

			r.Route("/period-overrides", func(r chi.Router) {
				r.Get("/", periodOverrideHandler.Get)
				r.Put("/", periodOverrideHandler.Save)
				r.Delete("/{id}", periodOverrideHandler.Delete)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/summary", reportHandler.GetSummaryReport)
				r.Get("/detailed", reportHandler.GetDetailedReport)
			})
		})
	})
	return r
}
