package main

import (
	"context"
	"net/http"

	"github.com/nothingbut/bookshelf/pkg/server"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
	"github.com/urfave/cli/v2"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the read API",
		Action: func(c *cli.Context) error {
			log := logger.New()

			cfg, db, err := openDatabase(c)
			if err != nil {
				return err
			}

			srv, err := server.New(cfg, db)
			if err != nil {
				db.Close()
				return err
			}

			graceful := signals.Setup()

			go func() {
				log.Info("server started", logger.Data{"addr": srv.Addr})
				err := srv.ListenAndServe()
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Err(err).Fatal("server stopped")
				}
				log.Info("server stopped")
			}()

			<-graceful
			log.Info("starting graceful shutdown")

			if err := srv.Shutdown(context.Background()); err != nil {
				log.Err(err).Error("server shutdown error")
			}

			if err := db.Close(); err != nil {
				log.Err(err).Error("database close error")
			}
			log.Info("database closed")

			return nil
		},
	}
}
