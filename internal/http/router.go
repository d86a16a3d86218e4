package http

import (
	"context"
	"net/http"

	"fireboot/internal/config"
	"fireboot/internal/firebase"
	"fireboot/internal/handlers"
	"fireboot/internal/httpjson"
	"fireboot/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Cfg     config.Config
	Handles *firebase.Handles
	Status  handlers.StatusSource
	Uploads *handlers.Uploads
	Log     *zap.Logger
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.CORS(d.Cfg.AllowedOrigins, d.Log))

	status := handlers.NewStatus(d.Status, d.Handles)
	r.Get("/healthz", status.Healthz)
	r.Get("/v1/status", status.Handles)

	uploads := d.Uploads
	if uploads == nil {
		uploads = handlers.NewUploads(context.Background(), config.Config{}, d.Handles, d.Log)
	}
	admin := handlers.NewAdmin(d.Handles, d.Log)

	// The verifier stays a nil interface when the auth handle is absent.
	var verifier middleware.TokenVerifier
	if c, err := d.Handles.AuthClient(); err == nil {
		verifier = c
	} else {
		d.Log.Warn("protected routes disabled", zap.Error(err))
	}

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.WithAuth(verifier))

		pr.Get("/v1/me", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			httpjson.Write(w, http.StatusOK, map[string]any{
				"uid":    au.UID,
				"email":  au.Email,
				"claims": au.Claims,
			})
		})

		pr.Get("/v1/storage/bucket", uploads.Bucket)
		pr.Post("/v1/uploads/signed-url", uploads.CreateSignedUploadURL)

		pr.Group(func(ar chi.Router) {
			ar.Use(middleware.RequireAdmin)
			ar.Get("/v1/admin/collections", admin.ListCollections)
			ar.Post("/v1/admin/users/{uid}/claims", admin.SetClaims)
		})
	})

	return r
}
