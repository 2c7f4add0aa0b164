package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	appcontent "annia/internal/application/content"
	"annia/internal/application/intake/usecases"
	domain "annia/internal/domain/content"
	"annia/internal/infrastructure/config"
	"annia/internal/infrastructure/email"
	"annia/internal/infrastructure/preference"
	"annia/internal/infrastructure/ratelimit"
	contentHandlers "annia/internal/interfaces/http/handlers/content"
	intakeHandlers "annia/internal/interfaces/http/handlers/intake"
	"annia/internal/interfaces/http/middleware"
	"annia/internal/shared/logger"
	"annia/internal/shared/utils"
)

// Router represents the HTTP router configuration
type Router struct {
	engine         *gin.Engine
	cfg            *config.Config
	log            logger.Interface
	intakeHandler  *intakeHandlers.Handler
	contentHandler *contentHandlers.Handler
	rateLimit      gin.HandlerFunc
	metrics        *middleware.HTTPMetrics
	registry       *prometheus.Registry
}

// RouterDeps are the process-wide components the router is built from.
// Redis is optional; without it preferences live in memory and rate
// limiting is off. Mailers and Registry default to SMTP delivery and a
// fresh metrics registry.
type RouterDeps struct {
	Config   *config.Config
	Catalog  *domain.Catalog
	Redis    *redis.Client
	Logger   logger.Interface
	Mailers  usecases.MailerFactory
	Registry *prometheus.Registry
}

func NewRouter(deps RouterDeps) *Router {
	log := deps.Logger
	cfg := deps.Config

	mailers := deps.Mailers
	if mailers == nil {
		mailers = email.SMTPMailerFactory{}
	}

	settings := &mailSettingsAdapter{current: func() *config.Config { return cfg }}
	submitUC := usecases.NewSubmitQuickRequestUseCase(settings, mailers, log.Named("intake"))

	var store appcontent.PreferenceStore
	if deps.Redis != nil {
		store = preference.NewRedisStore(deps.Redis, cfg.Preference.TTL())
	} else {
		store = preference.NewMemoryStore()
	}
	languages := appcontent.NewLanguageService(deps.Catalog, store, log.Named("content"))

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	r := &Router{
		engine:         gin.New(),
		cfg:            cfg,
		log:            log,
		intakeHandler:  intakeHandlers.NewHandler(submitUC, log.Named("intake")),
		contentHandler: contentHandlers.NewHandler(languages, cfg.Cookie, log.Named("content")),
		metrics:        middleware.NewHTTPMetrics(registry),
		registry:       registry,
	}

	if cfg.RateLimit.Enabled {
		if deps.Redis == nil {
			log.Warnw("rate limit enabled but redis is disabled, skipping rate limit")
		} else {
			limiter := ratelimit.NewFixedWindowLimiter(deps.Redis, cfg.RateLimit.Limit, cfg.RateLimit.Window())
			r.rateLimit = middleware.RateLimit(limiter, log)
		}
	}

	return r
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CustomLogger(r.log))
	r.engine.Use(r.metrics.Handler())
	r.engine.Use(middleware.ErrorHandler(r.log))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, http.StatusOK, gin.H{"status": "ok"})
	})

	r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})))

	api := r.engine.Group("/api")
	{
		quickRequest := []gin.HandlerFunc{r.intakeHandler.DecodeBody(), r.intakeHandler.QuickRequest}
		if r.rateLimit != nil {
			quickRequest = append([]gin.HandlerFunc{r.rateLimit}, quickRequest...)
		}
		// Every method reaches the handler, which answers 405 for anything
		// but POST.
		api.Any("/quick-request", quickRequest...)

		i18n := api.Group("/i18n")
		{
			i18n.GET("", r.contentHandler.GetCurrent)
			i18n.PUT("/language", r.contentHandler.SwitchLanguage)
			i18n.GET("/:lang", r.contentHandler.GetDictionary)
		}
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
