package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger := logrus.WithField("app", "compostwatch")

	cfg := mustConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	app, err := newApp(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("mongo connect error")
	}
	defer app.close(context.Background())

	feedCtx, stopFeed := context.WithCancel(context.Background())
	defer stopFeed()
	if cfg.MQTTBroker != "" {
		client, err := app.startFeed()
		if err != nil {
			logger.WithError(err).Fatal("mqtt connect error")
		}
		defer client.Disconnect(250)
	} else {
		app.startSimulator(feedCtx)
	}

	snapshots, err := app.startSnapshots()
	if err != nil {
		logger.WithError(err).Fatal("bad snapshot schedule")
	}
	defer snapshots.Stop()

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           app.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("CompostWatch API listening on :" + port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(err)
	}
}
