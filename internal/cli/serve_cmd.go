package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/piwi3910/uldsolve/internal/api"
	"github.com/piwi3910/uldsolve/internal/cache"
	"github.com/piwi3910/uldsolve/internal/model"
)

type serveFlags struct {
	addr     string
	mongoURI string
	mongoDB  string
}

func newServeCmd() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the uldsolve HTTP API",
		Long:  "Start the HTTP server exposing the solve, request-lookup, and metrics endpoints.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.addr, "addr", ":8080", "address to listen on")
	f.StringVar(&flags.mongoURI, "mongo-uri", "", "MongoDB connection URI; in-memory store is used when empty")
	f.StringVar(&flags.mongoDB, "mongo-db", "uldsolve", "MongoDB database name")

	return cmd
}

func runServe(cmd *cobra.Command, flags *serveFlags) error {
	logger := loggerFromContext(cmd.Context())

	store, closeStore, err := buildStore(cmd.Context(), flags)
	if err != nil {
		return err
	}
	defer closeStore()

	server := api.NewServer(store, model.DefaultSolverConfig(), logger)

	logger.Info("listening", "addr", flags.addr)
	httpServer := &http.Server{Addr: flags.addr, Handler: server.Routes()}
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func buildStore(ctx context.Context, flags *serveFlags) (cache.Store, func(), error) {
	if flags.mongoURI == "" {
		store := cache.NewMemStore()
		return store, func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(flags.mongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongo: %w", err)
	}

	store, err := cache.NewMongoStore(connectCtx, client.Database(flags.mongoDB))
	if err != nil {
		return nil, nil, fmt.Errorf("init mongo store: %w", err)
	}

	closeFn := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.Close(closeCtx)
	}
	return store, closeFn, nil
}
