package http

import (
	"io"
	"log/slog"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	terminalHandler TerminalHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()

	allowedOrigins := opts.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelDebug,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", authHandler.Login)

		// Shared terminal, no account needed
		r.Route("/terminal", func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentType("application/json"))
			r.Get("/employees", terminalHandler.ListEmployees)
			r.Post("/clock", terminalHandler.Clock)
		})

		// SSE stream authenticates with a query token
		r.Get("/reports/hours/stream", reportHandler.Stream)

		// Requires an admin access token
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(middleware.AdminOnly)

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.ListEmployees)
				r.Post("/", employeeHandler.CreateEmployee)
				r.Delete("/{id}", employeeHandler.DeleteEmployee)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/hours", reportHandler.GetHoursReport)
				r.Get("/hours/export", reportHandler.ExportHoursReport)
				r.Post("/sse-token", reportHandler.GetSSEToken)
			})
		})
	})
	return r
}

// NewLogger returns the JSON logger used for requests and application logs.
func NewLogger(w io.Writer, level slog.Level, env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "development")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)
}
