package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"time"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/firodj/mipsword/internal"
)

func serveCommand(a *app) *ffcli.Command {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":1357", "listen address")

	return &ffcli.Command{
		Name:       "serve",
		ShortUsage: "serve [-addr host:port]",
		ShortHelp:  "HTTP API for encode / decode / convert / history",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			repo, err := a.openRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			e := internal.NewServer(repo, a.logger)

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := e.Shutdown(shutdownCtx); err != nil {
					a.logger.Error(err)
				}
			}()

			a.logger.Infof("listening on %s", *addr)
			if err := e.Start(*addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}
