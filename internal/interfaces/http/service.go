package httpinterface

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/heirvault/heirvault-daemon/internal/core/application"
	"github.com/heirvault/heirvault-daemon/internal/core/ports"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 5 * time.Second
)

// ServiceOpts groups everything the REST interface needs to start.
type ServiceOpts struct {
	Port         int
	VaultService application.VaultService
	// PubSub is optional; without it the webhook endpoints report the
	// feature as disabled.
	PubSub ports.SecurePubSub
	// AuthSecret verifies bearer tokens when set. When empty, tokens are
	// only parsed for their subject claim.
	AuthSecret string
}

func (o ServiceOpts) validate() error {
	if o.Port <= 0 || o.Port > 65535 {
		return fmt.Errorf("port must be in range [1, 65535]")
	}
	if o.VaultService == nil {
		return fmt.Errorf("missing vault service")
	}
	return nil
}

// Service is the daemon's REST interface.
type Service struct {
	opts   ServiceOpts
	server *http.Server
}

func NewService(opts ServiceOpts) (*Service, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid service opts: %s", err)
	}

	return &Service{
		opts: opts,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", opts.Port),
			Handler:      router(opts),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
	}, nil
}

// Start blocks serving requests until Stop is called.
func (s *Service) Start() error {
	log.Infof("interface listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("interface did not shut down cleanly")
	}
	log.Debug("interface stopped")
}

func router(opts ServiceOpts) http.Handler {
	handler := newVaultHandler(opts.VaultService, opts.PubSub)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/v1", func(r chi.Router) {
		r.Use(authenticator(opts.AuthSecret))

		r.Route("/vaults", func(r chi.Router) {
			r.Post("/", handler.createVault)
			r.Get("/", handler.listVaults)

			r.Route("/{vaultID}", func(r chi.Router) {
				r.Get("/", handler.getVault)
				r.Post("/heartbeat", handler.heartbeat)
				r.Post("/deposits", handler.deposit)
				r.Post("/withdrawals", handler.withdraw)
				r.Post("/beneficiaries", handler.addBeneficiary)
				r.Delete("/beneficiaries/{beneficiary}", handler.removeBeneficiary)
				r.Post("/resign", handler.resign)
				r.Post("/settlements", handler.settle)
				r.Get("/deposits", handler.listDeposits)
				r.Get("/withdrawals", handler.listWithdrawals)
				r.Get("/settlements", handler.listSettlements)
			})
		})

		r.Route("/webhooks", func(r chi.Router) {
			r.Post("/", handler.subscribe)
			r.Delete("/{id}", handler.unsubscribe)
		})
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		log.WithFields(log.Fields{
			"status":  ww.Status(),
			"elapsed": time.Since(start).String(),
		}).Debugf("%s %s", r.Method, r.URL.Path)
	})
}
