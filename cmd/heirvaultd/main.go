package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/heirvault/heirvault-daemon/internal/config"
	"github.com/heirvault/heirvault-daemon/internal/core/application"
	"github.com/heirvault/heirvault-daemon/internal/core/ports"
	"github.com/heirvault/heirvault-daemon/internal/infrastructure/assets"
	webhookpubsub "github.com/heirvault/heirvault-daemon/internal/infrastructure/pubsub/webhook"
	dbbadger "github.com/heirvault/heirvault-daemon/internal/infrastructure/storage/db/badger"
	httpinterface "github.com/heirvault/heirvault-daemon/internal/interfaces/http"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)

	repoManager, err := dbbadger.NewRepoManager(dbDir, log.StandardLogger())
	if err != nil {
		log.WithError(err).Fatal("error while opening db")
	}

	assetMover, err := assets.NewService(
		config.GetString(config.AssetServiceAddrKey),
		config.GetString(config.CustodyAccountKey),
		time.Duration(config.GetInt(config.TransferTimeoutKey))*time.Second,
	)
	if err != nil {
		log.WithError(err).Fatal("error while setting up asset service")
	}

	var pubsub ports.SecurePubSub
	if !config.GetBool(config.NoWebhooksKey) {
		pubsub, err = webhookpubsub.NewService(dbDir, log.StandardLogger())
		if err != nil {
			log.WithError(err).Fatal("error while setting up webhook service")
		}
	}

	vaultService := application.NewVaultService(repoManager, assetMover, pubsub)

	restService, err := httpinterface.NewService(httpinterface.ServiceOpts{
		Port:         config.GetInt(config.ListeningPortKey),
		VaultService: vaultService,
		PubSub:       pubsub,
		AuthSecret:   config.GetString(config.AuthSecretKey),
	})
	if err != nil {
		log.WithError(err).Fatal("error while setting up interface")
	}

	log.Debug("starting daemon")
	go func() {
		if err := restService.Start(); err != nil {
			log.WithError(err).Fatal("error listening on interface")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Debug("shutting down daemon")

	restService.Stop()
	if pubsub != nil {
		if err := pubsub.Close(); err != nil {
			log.WithError(err).Warn("error while closing webhook service")
		}
	}
	repoManager.Close()

	log.Debug("exiting")
}
