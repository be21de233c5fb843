package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"querry/api"
	"querry/config"
	"querry/logger"
	"querry/models"
	"querry/viewmodel"

	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local JSON API and event stream for the web front-end",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		port := servePort
		if port == "" {
			port = config.AppConfig.Server.Port
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := trackSidebar(ctx); err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              "127.0.0.1:" + port,
			Handler:           api.NewServerHandler(current.svc),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("Server Command: Listening on http://%s/api", srv.Addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Could not start server: %v", err)
				return err
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("Server Command: Shutting down")
		// Closing the bus first ends every open event stream.
		current.bus.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown: %v", err)
			return err
		}
		logger.Info("Server shutdown gracefully")
		return nil
	},
}

// trackSidebar keeps an in-process copy of the collection list in sync with the bus so
// the log shows what a connected front-end should be displaying.
func trackSidebar(ctx context.Context) error {
	// Subscribe before the snapshot so no mutation falls between the two.
	sub := current.bus.Subscribe()
	collections, err := current.svc.ListCollections(ctx, "")
	if err != nil {
		sub.Close()
		return err
	}
	sidebar := viewmodel.NewCollectionList(collections)
	sidebar.OnChange(viewmodel.FieldItems, func() {
		logger.Debug("Sidebar now shows %d collection(s)", len(sidebar.Items()))
	})
	refresher := viewmodel.NewCollectionRefresher(sidebar, func(id string) (models.Collection, error) {
		return current.svc.GetCollection(ctx, id)
	})
	go func() {
		defer sub.Close()
		if err := viewmodel.Run(ctx, sub, refresher); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Sidebar tracking stopped: %v", err)
		}
	}()
	return nil
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "port to listen on (default from config, 8779)")
	rootCmd.AddCommand(serveCmd)
}
