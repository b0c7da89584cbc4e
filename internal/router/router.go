package router

import (
	"database/sql"
	"net/http"
	"time"

	"pet-adoption/internal/adapters/auth/bearer"
	"pet-adoption/internal/adapters/media/cloudinary"
	"pet-adoption/internal/adapters/notify/logsink"
	"pet-adoption/internal/adapters/oauth"
	mem "pet-adoption/internal/adapters/storage/memory"
	pg "pet-adoption/internal/adapters/storage/postgres"
	rds "pet-adoption/internal/adapters/storage/redis"
	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/lostpets"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/sessions"
	"pet-adoption/internal/domain/social"
	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/config"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/platform/telemetry"
	"pet-adoption/internal/ports/media"
	"pet-adoption/internal/ports/notify"

	_ "pet-adoption/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// nil => config.Default() (solo defaults, útil en tests).
	Config *config.Config
	Logger logger.Logger

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
	// Opcional: sesiones en Redis (tiene prioridad sobre DB para sesiones).
	Redis goredis.UniversalClient

	// nil => Cloudinary si CLOUDINARY_URL está seteado; si no, uploads deshabilitados.
	Uploader media.Uploader
	// nil => log sink (el correo de reset queda en el log).
	Notifier notify.Notifier
	// nil => proveedores configurados por env.
	OAuthProviders []social.Provider
}

type stores struct {
	users    users.Repository
	resets   users.ResetTokenRepository
	sessions sessions.Store
	pets     pets.Repository
	lostPets lostpets.Repository
	adopts   adoptions.Repository
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	r.Use(telemetry.Middleware(cfg.AppName))
	r.Use(metrics.HTTP)
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.MethodOverride)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	st := openStores(opts, cfg, log)

	// Services por módulo
	sessionsSvc := sessions.NewService(st.sessions, cfg.SessionLifetime)
	tokens := bearer.NewTokens(cfg.TokenSecret, cfg.AppName)
	web := &sessions.Web{
		Sessions: sessionsSvc,
		Tokens:   tokens,
		Cookie:   sessions.CookieConfig{Name: cfg.SessionCookie, Secure: cfg.SecureCookies},
	}

	usersSvc := users.NewService(st.users, cfg.BcryptCost)
	notifier := opts.Notifier
	if notifier == nil {
		notifier = logsink.New(log)
	}
	resets := users.NewPasswordResets(usersSvc, st.resets, notifier, sessionsSvc, cfg.FrontendURL, cfg.PasswordResetTTL)

	uploader := opts.Uploader
	if uploader == nil {
		uploader = newUploader(cfg, log)
	}
	petsSvc := pets.NewService(st.pets, uploader)
	lostSvc := lostpets.NewService(st.lostPets, uploader)
	adoptSvc := adoptions.NewService(st.adopts, petsSvc)
	petsSvc.OnDelete(adoptSvc.PurgePet)

	providers := opts.OAuthProviders
	if providers == nil {
		providers = oauth.FromConfig(*cfg)
	}
	socialSvc := social.NewService(usersSvc, providers...)

	// Rutas por módulo
	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.AuthContext(middleware.AuthOptions{
			Verifier:   bearer.NewVerifier(tokens, sessionsSvc),
			Sessions:   sessionsSvc,
			CookieName: cfg.SessionCookie,
			DevHeader:  cfg.DevAuthHeader,
		}))
		api.Use(middleware.CSRF(log))

		users.RegisterRoutes(api, usersSvc, resets, web, middleware.RateLimit(cfg.AuthRatePerMinute, time.Minute))
		social.RegisterRoutes(api, socialSvc, web)
		pets.RegisterRoutes(api, petsSvc, usersSvc)
		lostpets.RegisterRoutes(api, lostSvc, usersSvc)
		adoptions.RegisterRoutes(api, adoptSvc, petsSvc)
	})

	return r
}

func openStores(opts Options, cfg *config.Config, log logger.Logger) stores {
	// Si no te pasan DB explícita, intenta por config (para dev/handoff)
	db := opts.DB
	if db == nil && cfg.DBDSN != "" {
		opened, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Warn("postgres unavailable, using in-memory repos", map[string]any{"error": err})
		} else {
			db = opened
		}
	}

	var st stores
	if db != nil {
		st = stores{
			users:    pg.NewUsersRepo(db),
			resets:   pg.NewResetTokensRepo(db),
			sessions: pg.NewSessionStore(db),
			pets:     pg.NewPetsRepo(db),
			lostPets: pg.NewLostPetsRepo(db),
			adopts:   pg.NewAdoptionsRepo(db),
		}
	} else {
		st = stores{
			users:    mem.NewUserRepo(),
			resets:   mem.NewResetTokenRepo(),
			sessions: mem.NewSessionStore(),
			pets:     mem.NewPetRepo(),
			lostPets: mem.NewLostPetRepo(),
			adopts:   mem.NewAdoptionsRepo(),
		}
	}

	if opts.Redis != nil {
		st.sessions = rds.NewSessionStore(opts.Redis)
	}
	return st
}

func newUploader(cfg *config.Config, log logger.Logger) media.Uploader {
	if cfg.CloudinaryURL == "" {
		return media.Disabled{}
	}
	u, err := cloudinary.New(cfg.CloudinaryURL)
	if err != nil {
		log.Error("cloudinary config invalid, uploads disabled", map[string]any{"error": err})
		return media.Disabled{}
	}
	return u
}
