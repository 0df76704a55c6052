package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cinecatalog/config"
	"cinecatalog/internal/pkg/cache"
	"cinecatalog/internal/pkg/logger"
	"cinecatalog/internal/pkg/sentry"
	"cinecatalog/internal/pkg/token"

	"cinecatalog/internal/api/actor"
	"cinecatalog/internal/api/admin"
	"cinecatalog/internal/api/movie"
	"cinecatalog/internal/api/person"
	"cinecatalog/internal/api/request"
	"cinecatalog/internal/api/router"
	"cinecatalog/internal/api/search"
	"cinecatalog/internal/api/user"
	"cinecatalog/internal/domain"
	"cinecatalog/internal/repository/sessionrepo"
	"cinecatalog/internal/service/actorservice"
	"cinecatalog/internal/service/authservice"
	"cinecatalog/internal/service/movieservice"
	"cinecatalog/internal/service/relationservice"
	"cinecatalog/internal/service/searchservice"
	"cinecatalog/internal/service/seedservice"
	"cinecatalog/internal/service/userservice"
)

// @title CineCatalog API
// @version 1.0
// @description Catálogo de filmes e atores com busca filtrada e escrita restrita a administradores.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Configuração e Inicialização
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Falha ao carregar configurações.", err)
	}

	log := logger.NewLogger(cfg.LogLevel)
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer zl.Sync()
	}
	log.Info("Configurações carregadas.", map[string]interface{}{"driver": cfg.StoreDriver, "env": cfg.Environment})

	if err := sentry.Init(cfg.SentryDSN, cfg.Environment); err != nil {
		log.Fatal("Falha ao iniciar o Sentry.", err)
	}
	defer sentry.Flush()

	// 2. Conexão com Recursos de Infraestrutura
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	st, err := openStores(startCtx, cfg, log)
	cancelStart()
	if err != nil {
		log.Fatal("Falha ao conectar ao armazenamento.", err)
	}
	defer st.close()

	// Redis é opcional: sem ele as sessões ficam no registro do usuário
	// (sem TTL) e o /login não tem limite de tentativas.
	var (
		sessions  domain.SessionStore
		rateCache cache.Client
	)
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			log.Fatal("Falha ao conectar ao Redis.", err)
		}
		defer redisClient.Close()
		sessions = sessionrepo.NewCacheStore(redisClient, cfg.SessionTTL, log)
		rateCache = redisClient
		log.Info("Conexão Redis estabelecida.", nil)
	} else {
		if cfg.SessionTTL > 0 {
			log.Warn("SESSION_TTL ignorado: sem REDIS_ADDR as sessões não expiram.", nil)
		}
		sessions = sessionrepo.NewRecordStore(st.users)
		log.Warn("REDIS_ADDR não definido; sessões no registro do usuário e /login sem rate limit.", nil)
	}

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler
	tokenSvc := token.NewService(cfg.TokenSecret, cfg.SessionTTL)
	authSvc := authservice.NewService(st.users, sessions, tokenSvc, log)

	relations := relationservice.NewResolver(st.actors, st.movies, log)
	movieSvc := movieservice.NewService(st.movies, relations, log)
	actorSvc := actorservice.NewService(st.actors, relations, log)
	searchSvc := searchservice.NewService(st.movies, st.actors, log)
	userSvc := userservice.NewService(st.users, log)
	seedSvc := seedservice.NewService(st.actors, st.movies, log)

	v := request.NewValidator()
	handlers := router.Handlers{
		Movie:  movie.NewHandler(movieSvc, v, log),
		Actor:  actor.NewHandler(actorSvc, v, log),
		Search: search.NewHandler(searchSvc, log),
		User:   user.NewHandler(userSvc, authSvc, v, log),
		Person: person.NewHandler(userSvc, v, log),
		Admin:  admin.NewHandler(seedSvc, log),
	}
	log.Debug("Handlers inicializados.", nil)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(handlers, router.Options{
		Auth:            authSvc,
		Logger:          log,
		Health:          st.ping,
		RateLimitCache:  rateCache,
		RateLimitMax:    cfg.RateLimitMaxRequests,
		RateLimitPeriod: cfg.RateLimitPeriod,
		AllowOrigins:    cfg.Origins(),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor CineCatalog ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
