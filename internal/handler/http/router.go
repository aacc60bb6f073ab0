package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/worklane-hq/worklane-backend-go/internal/handler/http/middleware"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	AllowedOrigins []string
	Environment    string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	sessionHandler SessionHandler,
	worksheetHandler WorksheetHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "worklane"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Environment),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
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

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Every route requires a verified access token; tokens are minted
		// by the external identity provider.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", sessionHandler.ClockIn)
				r.Post("/clock-out", sessionHandler.ClockOut)
				r.Post("/break/start", sessionHandler.StartBreak)
				r.Post("/break/end", sessionHandler.EndBreak)
				r.Get("/current", sessionHandler.GetCurrent)
				r.Get("/history", sessionHandler.GetHistory)
				r.Post("/screen-active-time", sessionHandler.UpdateScreenActive)

				r.Route("/break-settings", func(r chi.Router) {
					r.Get("/{teamID}", sessionHandler.GetBreakSettings)

					// Manager or admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireManager)
						r.Post("/", sessionHandler.CreateBreakSettings)
						r.Put("/{teamID}", sessionHandler.UpdateBreakSettings)
					})
				})
			})

			r.Route("/worksheets", func(r chi.Router) {
				r.Post("/", worksheetHandler.Create)
				r.Get("/", worksheetHandler.List)

				// Fixed paths before the id wildcard
				r.Get("/my", worksheetHandler.GetMy)
				r.With(middleware.RequireTeamLead).Get("/pending-verification", worksheetHandler.PendingVerification)
				r.With(middleware.RequireManager).Get("/pending-approval", worksheetHandler.PendingApproval)
				r.With(middleware.RequireManager).Post("/bulk-approve", worksheetHandler.BulkApprove)

				r.Route("/{worksheetID}", func(r chi.Router) {
					r.Get("/", worksheetHandler.Get)
					r.Put("/", worksheetHandler.Update)
					r.Post("/submit", worksheetHandler.Submit)
					r.With(middleware.RequireTeamLead).Post("/verify", worksheetHandler.Verify)
					r.With(middleware.RequireManager).Post("/approve", worksheetHandler.Approve)
					r.With(middleware.RequireReviewer).Post("/reject", worksheetHandler.Reject)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Post("/mark-read", notificationHandler.MarkAsRead)
				r.Post("/mark-all-read", notificationHandler.MarkAllAsRead)
				r.Delete("/{notificationID}", notificationHandler.Delete)
			})
		})
	})
	return r
}
