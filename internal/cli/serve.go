package cli

import (
	"fmt"
	"log"

	"task-tracker-api/internal/config"
	"task-tracker-api/internal/handlers"
	"task-tracker-api/internal/realtime"
	"task-tracker-api/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("config", "", "Path to a YAML config file")
	serveCmd.Flags().Int("port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().String("storage", "", "Storage backend: memory, csv or sqlite (overrides config)")
	serveCmd.Flags().String("path", "", "Snapshot file for the csv and sqlite backends (overrides config)")
}

// serveConfig loads the config file and applies flags that were set
func serveConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("storage") {
		cfg.Storage.Backend, _ = cmd.Flags().GetString("storage")
	}
	if cmd.Flags().Changed("path") {
		cfg.Storage.Path, _ = cmd.Flags().GetString("path")
	}
	return cfg, cfg.Validate()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := serveConfig(cmd)
	if err != nil {
		return err
	}
	gin.SetMode(cfg.Server.Mode)

	taskManager, closeStore, err := buildManager(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer closeStore()

	ginRoutes := routes.SetupRoutes(handlers.New(taskManager, realtime.NewHub()))

	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server starting on port %s (storage: %s)", port, cfg.Storage.Backend)
	log.Println("API endpoints:")
	for _, endpoint := range routes.Endpoints {
		log.Println("  " + endpoint)
	}

	if err := ginRoutes.Run(port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
