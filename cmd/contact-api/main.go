// Package main runs the contact API for the Meridian Advisors marketing
// site: email verification links, consultation requests and confirmation
// mails, plus the embedded contact page itself.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/meridianadvisors/contact-api/pkg/contact"
	contactapi "github.com/meridianadvisors/contact-api/pkg/contact/api"
	"github.com/meridianadvisors/contact-api/pkg/emailverification"
	emailverificationapi "github.com/meridianadvisors/contact-api/pkg/emailverification/api"
	"github.com/meridianadvisors/contact-api/pkg/health"
	"github.com/meridianadvisors/contact-api/pkg/i18n"
	"github.com/meridianadvisors/contact-api/pkg/notification"
	"github.com/meridianadvisors/contact-api/pkg/ratelimit"
	"github.com/meridianadvisors/contact-api/web"
)

const maxBodyBytes = 10 << 20

type ServerConfig struct {
	Port          uint16 `env:"PORT" env-default:"3001"`
	BaseURL       string `env:"BASE_URL" env-default:"http://localhost:3001"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" env-default:"http://localhost:3000"`
	// Comma-separated list of origins allowed to call the API.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" env-default:"http://localhost:3000,http://localhost:5173"`
}

type EmailConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" env-default:"587"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	From     string `env:"SMTP_FROM"`
	TLS      bool   `env:"SMTP_TLS" env-default:"true"`
}

type ContactConfig struct {
	ContactEmail     string `env:"CONTACT_EMAIL" env-default:"contact@meridianadvisors.eu"`
	MaxMessageLength int    `env:"MAX_MESSAGE_LENGTH" env-default:"1000"`
}

type VerificationConfig struct {
	TokenTTL      time.Duration `env:"VERIFICATION_TOKEN_TTL" env-default:"15m"`
	SweepInterval time.Duration `env:"TOKEN_SWEEP_INTERVAL" env-default:"5m"`
}

type RateLimitConfig struct {
	GlobalLimit  int           `env:"RATE_LIMIT_GLOBAL" env-default:"100"`
	GlobalWindow time.Duration `env:"RATE_LIMIT_GLOBAL_WINDOW" env-default:"15m"`
	MailLimit    int           `env:"RATE_LIMIT_MAIL" env-default:"5"`
	MailWindow   time.Duration `env:"RATE_LIMIT_MAIL_WINDOW" env-default:"1m"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"`
}

type Config struct {
	Server       ServerConfig
	Email        EmailConfig
	Contact      ContactConfig
	Verification VerificationConfig
	RateLimit    RateLimitConfig
	Log          LogConfig
}

func setupLogger(config LogConfig) {
	var level slog.Level
	switch strings.ToLower(config.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if strings.ToLower(config.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stdout, &tint.Options{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded configuration from .env file")
	}

	config := Config{}
	if err := cleanenv.ReadEnv(&config); err != nil {
		slog.Error("Failed reading configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(config.Log)

	if err := i18n.Init(); err != nil {
		slog.Error("Failed loading translations", "error", err)
		os.Exit(1)
	}

	sender, err := notification.NewSender(notification.SMTPConfig{
		Host:     config.Email.Host,
		Port:     config.Email.Port,
		TLS:      config.Email.TLS,
		Username: config.Email.Username,
		Password: config.Email.Password,
		From:     config.Email.From,
	})
	if err != nil {
		slog.Error("Failed creating mail sender", "error", err)
		os.Exit(1)
	}

	mailer, err := notification.NewManager(sender, notification.WithDefaultTemplates())
	if err != nil {
		slog.Error("Failed creating notification manager", "error", err)
		os.Exit(1)
	}

	tokenRepo := emailverification.NewInMemoryTokenRepository()
	verificationService := emailverification.NewService(
		tokenRepo,
		mailer,
		config.Server.BaseURL,
		config.Server.PublicBaseURL,
		emailverification.WithTokenExpiry(config.Verification.TokenTTL),
	)
	contactService := contact.NewService(
		mailer,
		config.Contact.ContactEmail,
		contact.WithMaxMessageLength(config.Contact.MaxMessageLength),
	)

	verificationHandler := emailverificationapi.NewHandler(verificationService)
	contactHandler := contactapi.NewHandler(contactService)
	healthHandler := health.NewHandler()

	limiter := ratelimit.NewMiddleware(ratelimit.Config{
		GlobalLimit:    config.RateLimit.GlobalLimit,
		GlobalWindow:   config.RateLimit.GlobalWindow,
		MailLimit:      config.RateLimit.MailLimit,
		MailWindow:     config.RateLimit.MailWindow,
		BucketTTL:      time.Hour,
		IncludeHeaders: true,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(maxBodyBytes))
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(limiter.Global)

	r.Route("/api/email", func(r chi.Router) {
		r.Use(limiter.Mail)
		r.Post("/verification", verificationHandler.RequestVerification)
		r.Get("/verify/{token}", verificationHandler.Redeem)
		r.Post("/consultation", contactHandler.Consultation)
		r.Post("/confirmation", contactHandler.Confirmation)
	})
	r.Get("/api/health", healthHandler.Check)
	r.Get("/verify", verificationHandler.RedeemRedirect)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/*", web.FileServer())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	verificationService.StartSweeper(ctx, config.Verification.SweepInterval)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Contact API listening", "addr", server.Addr, "base_url", config.Server.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
