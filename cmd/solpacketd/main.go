package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/NikhilRaikwar/solpacket-daemon/config"
	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/application"
	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/ports"
	"github.com/NikhilRaikwar/solpacket-daemon/internal/infrastructure/index"
	"github.com/NikhilRaikwar/solpacket-daemon/internal/infrastructure/pubsub"
	"github.com/NikhilRaikwar/solpacket-daemon/internal/infrastructure/pubsub/webhook"
	dbbadger "github.com/NikhilRaikwar/solpacket-daemon/internal/infrastructure/storage/db/badger"
	httpinterface "github.com/NikhilRaikwar/solpacket-daemon/internal/interfaces/http"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
	config.Validate()

	repoManager, err := dbbadger.NewRepoManager(config.GetDbDir(), nil)
	if err != nil {
		log.WithError(err).Panic("error while opening escrow db")
	}
	defer repoManager.Close()

	giftIndex, err := index.NewBadgerGiftIndex(config.GetIndexDir(), nil)
	if err != nil {
		log.WithError(err).Panic("error while opening gift index db")
	}
	defer giftIndex.Close()

	eventHub := httpinterface.NewEventHub()
	publishers := []ports.Publisher{eventHub}
	if endpoint := config.GetString(config.WebhookEndpointKey); endpoint != "" {
		webhookPublisher, err := webhook.NewPublisher(endpoint)
		if err != nil {
			log.WithError(err).Panic("error while setting up webhook publisher")
		}
		publishers = append(publishers, webhookPublisher)
	}

	asset := config.GetString(config.AssetKey)
	escrowSvc := application.NewEscrowService(
		repoManager,
		giftIndex,
		pubsub.NewMultiPublisher(publishers...),
		config.GetProgramID(),
		asset,
		int64(config.GetInt(config.GiftExpiryDurationKey)),
		config.GetString(config.BaseURLKey),
	)
	accountSvc := application.NewAccountService(repoManager, asset)

	router := httpinterface.NewRouter(httpinterface.RouterOpts{
		EscrowService:  escrowSvc,
		AccountService: accountSvc,
		EventHub:       eventHub,
		NoAuth:         config.GetBool(config.NoAuthKey),
	})

	address := fmt.Sprintf(":%d", config.GetInt(config.HTTPPortKey))
	server := &http.Server{Addr: address, Handler: router}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Panic("error listening on http interface")
		}
	}()
	log.Infof("http interface is listening on %s", address)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Debug("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("error while shutting down http interface")
	}

	log.Debug("exiting")
}
