package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "cinecatalog/docs" // registra a descrição da API servida em /swagger/

	"cinecatalog/internal/api/actor"
	"cinecatalog/internal/api/admin"
	"cinecatalog/internal/api/movie"
	"cinecatalog/internal/api/person"
	"cinecatalog/internal/api/response"
	"cinecatalog/internal/api/search"
	"cinecatalog/internal/api/user"
	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/cache"
	"cinecatalog/internal/pkg/logger"
	"cinecatalog/internal/pkg/metrics"
	"cinecatalog/internal/pkg/middleware"
	"cinecatalog/internal/pkg/sentry"
)

// Handlers reúne os Handlers já inicializados por injeção de dependências.
type Handlers struct {
	Movie  *movie.Handler
	Actor  *actor.Handler
	Search *search.Handler
	User   *user.Handler
	Person *person.Handler
	Admin  *admin.Handler
}

// Options configura os middlewares do roteador.
type Options struct {
	Auth   middleware.Authorizer
	Logger logger.Logger
	// Health verifica o armazenamento em /healthz.
	Health func(ctx context.Context) error
	// RateLimitCache nil desliga o limite de /login e /register.
	RateLimitCache  cache.Client
	RateLimitMax    int
	RateLimitPeriod time.Duration
	AllowOrigins    []string
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(h Handlers, opts Options) http.Handler {
	metrics.Init()
	resp := response.New(opts.Logger)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		resp.Error(w, req, apperror.NewNotFoundError("Route not found"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		resp.JSON(w, req, http.StatusMethodNotAllowed, map[string]interface{}{
			"code":     http.StatusMethodNotAllowed,
			"category": "METHOD_NOT_ALLOWED",
			"message":  "Method not allowed",
		})
	})
	r.Use(middleware.RequestID, middleware.Observe(opts.Logger))

	adminOnly := middleware.NewAuthMiddleware(opts.Auth, resp.Error)
	protect := func(fn http.HandlerFunc) http.Handler { return adminOnly(fn) }

	limit := func(fn http.HandlerFunc) http.Handler { return fn }
	if opts.RateLimitCache != nil {
		limiter := middleware.RateLimiter(opts.RateLimitCache, opts.RateLimitMax, opts.RateLimitPeriod, resp.Error)
		limit = func(fn http.HandlerFunc) http.Handler { return limiter(fn) }
	}

	// --- 1. Rotas operacionais ---
	r.HandleFunc("/", PingHandler).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthHandler(resp, opts.Health)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// --- 2. Filmes ---
	r.HandleFunc("/movies", h.Movie.ListMoviesHandler).Methods(http.MethodGet)
	r.HandleFunc("/movies/{id}", h.Movie.GetMovieHandler).Methods(http.MethodGet)
	r.Handle("/movies", protect(h.Movie.CreateMovieHandler)).Methods(http.MethodPost)
	r.Handle("/movies/{id}", protect(h.Movie.UpdateMovieHandler)).Methods(http.MethodPatch)
	r.Handle("/movies/{id}", protect(h.Movie.DeleteMovieHandler)).Methods(http.MethodDelete)

	// --- 3. Atores ---
	r.HandleFunc("/actors", h.Actor.ListActorsHandler).Methods(http.MethodGet)
	r.HandleFunc("/actors/{id}", h.Actor.GetActorHandler).Methods(http.MethodGet)
	r.Handle("/actors", protect(h.Actor.CreateActorHandler)).Methods(http.MethodPost)
	r.Handle("/actors/{id}", protect(h.Actor.UpdateActorHandler)).Methods(http.MethodPatch)
	r.Handle("/actors/{id}", protect(h.Actor.DeleteActorHandler)).Methods(http.MethodDelete)

	// --- 4. Busca ---
	r.HandleFunc("/search", h.Search.SearchHandler).Methods(http.MethodGet)

	// --- 5. Usuários ---
	r.Handle("/register", limit(h.User.RegisterUserHandler)).Methods(http.MethodPost)
	r.Handle("/login", limit(h.User.LoginUserHandler)).Methods(http.MethodPost)

	r.Handle("/persons", protect(h.Person.ListPersonsHandler)).Methods(http.MethodGet)
	r.Handle("/persons", protect(h.Person.CreatePersonHandler)).Methods(http.MethodPost)
	r.Handle("/persons/{id}", protect(h.Person.GetPersonHandler)).Methods(http.MethodGet)
	r.Handle("/persons/{id}", protect(h.Person.UpdatePersonHandler)).Methods(http.MethodPatch)
	r.Handle("/persons/{id}", protect(h.Person.DeletePersonHandler)).Methods(http.MethodDelete)

	// --- 6. Carga em lote ---
	r.Handle("/initialize", protect(h.Admin.InitializeHandler)).Methods(http.MethodPost)
	r.Handle("/deinitialize", protect(h.Admin.DeinitializeHandler)).Methods(http.MethodPost)

	// CORS fica por fora para responder também aos preflights sem rota.
	return middleware.CORS(opts.AllowOrigins)(sentry.Middleware(r))
}

// PingHandler responde ao ping da raiz.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message":"Server ping response"}` + "\n"))
}

func healthHandler(resp *response.Responder, check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				resp.Error(w, r, apperror.NewInternalError("Storage unavailable", err))
				return
			}
		}
		resp.JSON(w, r, http.StatusOK, map[string]string{
			"status":  http.StatusText(http.StatusOK),
			"message": "Service is up and running",
		})
	}
}
