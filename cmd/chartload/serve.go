package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-chartload/pkg/config"
	"github.com/goliatone/go-chartload/pkg/preview"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		basePath   string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve configured charts as HTML previews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			router, route := newRouter(cfg, basePath)

			log.Printf("Preview server starting on %s", addr)
			log.Printf("  GET  %s", route)
			for _, name := range cfg.Names() {
				log.Printf("  GET  %s/%s", route, name)
			}
			if err := http.ListenAndServe(addr, router); err != nil {
				log.Fatalf("Server failed to start: %v", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "chartload.yaml", "YAML configuration file")
	cmd.Flags().StringVar(&addr, "addr", ":8081", "Listen address")
	cmd.Flags().StringVar(&basePath, "base", "/", "Base path the preview routes mount under")
	return cmd
}

func newRouter(cfg *config.Config, basePath string) (*mux.Router, string) {
	route := preview.MountPath(basePath)
	router := mux.NewRouter()
	router.PathPrefix(route).Handler(preview.NewHandler(
		preview.WithConfig(cfg),
		preview.WithRoutePath(route),
	))
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	}).Methods(http.MethodGet)
	return router, route
}
