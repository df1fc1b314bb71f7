package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/talenthub/account-service/internal/application/auth"
	"github.com/talenthub/account-service/internal/application/signup"
	"github.com/talenthub/account-service/internal/config"
	"github.com/talenthub/account-service/internal/domain"
	"github.com/talenthub/account-service/internal/infrastructure/db/postgres"
	"github.com/talenthub/account-service/internal/infrastructure/memory"
	rabbitmq_pub "github.com/talenthub/account-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/talenthub/account-service/internal/infrastructure/redis"
	"github.com/talenthub/account-service/internal/infrastructure/security"
	"github.com/talenthub/account-service/internal/logger"
	http_handlers "github.com/talenthub/account-service/internal/transport/http/handlers"
	"github.com/talenthub/account-service/internal/transport/http/middleware"
	"github.com/talenthub/account-service/internal/transport/http/response"
	"github.com/talenthub/account-service/internal/transport/http/router"
)

// NewServer wires the production dependency set.
func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps lets tests swap any infrastructure edge.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

// Deps are the constructors newServer calls for everything that touches
// the outside world. Production uses defaultDeps; tests substitute fakes
// per edge.
type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string, debug bool) (DBCloser, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewPublisher func(rabbitURL string) (Publisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

type Publisher interface{}

// newServer builds the full object graph: config, storage, stores,
// publisher, services, handlers, middleware, router, HTTP server. Every
// resource opened along the way lands in cleanupFns so a failure part-way
// through releases what came before it.
func newServer(deps Deps) (*http.Server, func(), error) {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	db, err := deps.NewDB(cfg.DBAddr, cfg.Env == "dev")
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}
	fail := func(err error) (*http.Server, func(), error) {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	sqlDB, ok := db.(*sql.DB)
	if !ok {
		return fail(errors.New("bootstrap: NewDB did not return *sql.DB"))
	}

	userRepo := postgres.NewUserRepo(sqlDB)
	profileRepo := postgres.NewProfileRepo(sqlDB)

	// Redis is best-effort: without it the memory stores keep dev bootable,
	// at the cost of sessions not surviving a restart.
	var redisCli RedisClient
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; falling back to in-memory stores")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	var sessionStore auth.SessionStore
	var ottStore auth.OneTimeTokenStore
	var wizardStore signup.StateStore
	var fwLimiter *redis.FixedWindowLimiter

	if redisCli != nil {
		rc, ok := redisCli.(*redis.Client)
		if !ok {
			return fail(errors.New("bootstrap: NewRedis did not return *redis.Client"))
		}
		sessionStore = redis.NewSessionStore(rc)
		ottStore = redis.NewOneTimeTokenStore(rc)
		wizardStore = redis.NewWizardStore(rc)
		fwLimiter = redis.NewFixedWindowLimiter(rc)
	} else {
		sessionStore = memory.NewSessionStore()
		ottStore = memory.NewOneTimeTokenStore()
		wizardStore = memory.NewWizardStore()
	}

	// The mail pipeline needs rabbit in prod; dev degrades to a noop
	// publisher so signup still works on a laptop.
	var pub Publisher
	if deps.NewPublisher != nil && cfg.RabbitURL != "" {
		pub, err = deps.NewPublisher(cfg.RabbitURL)
	} else {
		pub, err = nil, errors.New("rabbitmq not configured")
	}
	if err != nil {
		if cfg.Env != "dev" {
			return fail(err)
		}
		logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
		pub = memory.NewNoopPublisher()
	}

	if c, ok := pub.(interface{ Close() error }); ok {
		cleanupFns = append(cleanupFns, func() { _ = c.Close() })
	}

	eventPub, ok := pub.(auth.EventPublisher)
	if !ok {
		return fail(errors.New("bootstrap: publisher does not implement auth.EventPublisher"))
	}

	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt signer")
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	if cfg.Env == "dev" {
		postgres.SeedUsers(context.Background(), userRepo, hasher)
	}

	authSvc := auth.NewService(
		userRepo,
		hasher,
		signer,
		sessionStore,
		ottStore,
		eventPub,
		auth.Config{
			AccessTTL:             cfg.AccessTokenTTL,
			RefreshTTL:            cfg.RefreshTokenTTL,
			PasswordResetBaseURL:  cfg.PasswordResetBaseURL,
			PasswordResetTokenTTL: cfg.PasswordResetTokenTTL,
		},
	)

	signupSvc, err := signup.NewService(signup.Config{
		Store:      wizardStore,
		Handler:    signup.NewRegistrar(authSvc, profileRepo),
		SessionTTL: cfg.SignupSessionTTL,
	})
	if err != nil {
		return fail(err)
	}

	// Cookies carry the refresh and wizard tokens; Secure everywhere but dev.
	secureCookies := cfg.Env != "dev"

	authH := http_handlers.NewAuthHandler(authSvc, cfg.RefreshTokenTTL, secureCookies)
	signupH := http_handlers.NewSignupHandler(signupSvc, cfg.SignupSessionTTL, cfg.RefreshTokenTTL, secureCookies)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	authMW := middleware.Auth(signer, response.WriteError)
	adminMW := middleware.RequireAtLeast(string(domain.RoleAdmin), response.WriteError)

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = middleware.DefaultAllowedOrigins()
	}
	csrfMW := middleware.CSRFProtection(allowedOrigins, response.WriteError)

	// Rate limits ride redis; without it rl hands the router a nil
	// middleware and the routes run unthrottled.
	rl := func(key string, limit int, window time.Duration) func(http.Handler) http.Handler {
		if fwLimiter == nil {
			return nil
		}
		return middleware.RateLimitFixedWindow(
			fwLimiter,
			middleware.FixedWindowConfig{
				RouteKey: key,
				Limit:    limit,
				Window:   window,
			},
			response.WriteError,
		)
	}

	mux, err := deps.NewRouter(router.Deps{
		Health: healthH,
		Auth:   authH,
		Signup: signupH,

		AuthMW:  authMW,
		AdminMW: adminMW,
		CSRFMW:  csrfMW,

		LoginLimitMW:  rl("auth.login", 5, time.Minute),
		ResetLimitMW:  rl("auth.password_reset.request", 3, 10*time.Minute),
		SignupLimitMW: rl("signup.session.start", 10, time.Minute),
	})
	if err != nil {
		return fail(err)
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return srv, func() { runCleanup(cleanupFns) }, nil
}

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string, debug bool) (DBCloser, error) {
			return config.NewDB(addr, debug)
		},
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewPublisher: func(url string) (Publisher, error) {
			return rabbitmq_pub.NewPublisher(url)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

// runCleanup releases resources in reverse acquisition order.
func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
