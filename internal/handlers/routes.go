package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Page is the server-rendered registration form.
type Page interface {
	Routes(r chi.Router)
}

func RegisterRoutes(r *chi.Mux, log *zap.SugaredLogger, formHandler *FormHandler, page Page) huma.API {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	// Access lines go to the service log rather than stderr.
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  zap.NewStdLog(log.Desugar().Named("access")),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Photo Shoot Registration API", "1.0.0")
	config.DocsPath = "/api/docs"
	config.OpenAPIPath = "/api/openapi"
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Form session routes
	huma.Post(api, "/api/forms", formHandler.HandleCreate, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
		o.Summary = "Start a registration form"
	})
	huma.Get(api, "/api/forms/{id}", formHandler.HandleGet)
	huma.Patch(api, "/api/forms/{id}", formHandler.HandleUpdate)
	huma.Post(api, "/api/forms/{id}/emails", formHandler.HandleAddEmail)
	huma.Put(api, "/api/forms/{id}/emails/{index}", formHandler.HandleUpdateEmail)
	huma.Delete(api, "/api/forms/{id}/emails/{index}", formHandler.HandleRemoveEmail)
	huma.Post(api, "/api/forms/{id}/submit", formHandler.HandleSubmit)
	huma.Post(api, "/api/forms/{id}/reset", formHandler.HandleReset, func(o *huma.Operation) {
		o.Summary = "Register another session"
	})

	if page != nil {
		page.Routes(r)
	}

	return api
}
