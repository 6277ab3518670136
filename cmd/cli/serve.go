package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/flowbaker/copysmith/internal/initialization"
	"github.com/flowbaker/copysmith/internal/server"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve batch processing over HTTP",
		Long:  `Start an HTTP server accepting multipart uploads on POST /batches and answering with the processed artifact.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	cmd.Flags().String("address", "", "Listen address (default from config, :8080)")

	return cmd
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	if address, _ := cmd.Flags().GetString("address"); address != "" {
		cfg.HTTPAddress = address
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	container, err := initialization.NewContainer(ctx, initialization.ContainerOptions{Config: cfg})
	if err != nil {
		return err
	}
	defer container.Close()

	app := server.NewHTTPServer(server.HTTPServerDependencies{
		BatchController: container.NewBatchController(),
		MaxUploadSize:   cfg.MaxUploadSize,
		APIToken:        cfg.APIToken,
	})

	log.Info().Str("address", cfg.HTTPAddress).Msg("Starting HTTP server")

	if err := app.Listen(cfg.HTTPAddress, fiber.ListenConfig{
		GracefulContext:       ctx,
		DisableStartupMessage: true,
	}); err != nil {
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}

	log.Info().Msg("HTTP server stopped")
	return nil
}
