package initialization

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/flowbaker/copysmith/internal/config"
	"github.com/flowbaker/copysmith/internal/controllers"
	"github.com/flowbaker/copysmith/internal/notifier"
	"github.com/flowbaker/copysmith/internal/observers"
	"github.com/flowbaker/copysmith/internal/services"
	"github.com/flowbaker/copysmith/internal/sinks"
	"github.com/flowbaker/copysmith/pkg/aggregate"
	"github.com/flowbaker/copysmith/pkg/ai-sdk/provider"
	"github.com/flowbaker/copysmith/pkg/ai-sdk/provider/factory"
	"github.com/flowbaker/copysmith/pkg/batch"
	"github.com/flowbaker/copysmith/pkg/domain"
	"github.com/flowbaker/copysmith/pkg/generation"
	"github.com/flowbaker/copysmith/pkg/language"
	"github.com/flowbaker/copysmith/pkg/prompt"
	"github.com/flowbaker/copysmith/pkg/tables"
	"github.com/flowbaker/copysmith/pkg/validation"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type ContainerOptions struct {
	Config *config.Config

	// Model replaces the provider built from Config.
	Model provider.LanguageModel
	// Pacer replaces the fixed inter-row pause.
	Pacer batch.Pacer
	// Fs backs the local sink. Defaults to the OS filesystem.
	Fs afero.Fs
	// OutputDir enables the local sink when set, overriding Config.OutputDir.
	OutputDir string
	// ProgressOut receives console progress lines when set.
	ProgressOut io.Writer
	// S3Client replaces the client built from Config.S3Region.
	S3Client s3iface.S3API
	// RedisClient replaces the client built from Config.RedisAddress.
	RedisClient observers.Publisher
}

// Container owns every long-lived component of a run.
type Container struct {
	config       *config.Config
	registry     *tables.Registry
	observer     *domain.ProgressObserver
	batchService *services.BatchService
	sinks        []sinks.ArtifactSink
	redisClient  *redis.Client
}

func NewContainer(ctx context.Context, opts ContainerOptions) (*Container, error) {
	log.Info().Msg("Building dependencies")
	logger := log.Logger
	cfg := opts.Config

	model := opts.Model
	if model == nil {
		var err error

		model, err = factory.New(ctx, factory.Config{
			Provider: provider.Name(cfg.Provider),
			APIKey:   cfg.APIKey(),
			Model:    cfg.Model,
			BaseURL:  cfg.BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create language model: %w", err)
		}
	}

	container := &Container{
		config:   cfg,
		registry: tables.NewDefaultRegistry(),
		observer: domain.NewProgressObserver(),
	}

	if opts.ProgressOut != nil {
		container.observer.Subscribe(observers.NewConsoleProgressHandler(opts.ProgressOut))
	}

	container.setupProgressPublisher(opts)

	if err := container.setupSinks(opts); err != nil {
		return nil, err
	}

	client := generation.NewClient(model, generation.ClientOptions{
		Timeout:           cfg.RequestTimeout,
		RequestsPerMinute: cfg.RequestsPerMinute,
		Logger:            &logger,
	})

	pacer := opts.Pacer
	if pacer == nil {
		pacer = batch.NewFixedPacer()
	}

	orchestrator := batch.NewOrchestrator(batch.OrchestratorDependencies{
		Resolver: language.NewResolver(language.ResolverOptions{
			MinConfidence: cfg.MinDetectionConfidence,
			Logger:        &logger,
		}),
		Builder:   prompt.NewBuilder(),
		Generator: client,
		Validator: validation.NewValidator(),
		Pacer:     pacer,
		Observer:  container.observer,
		Logger:    &logger,
	})

	aggregator := aggregate.NewAggregator(aggregate.AggregatorDependencies{
		Runner:   orchestrator,
		Observer: container.observer,
		Logger:   &logger,
	})

	serviceDeps := services.BatchServiceDependencies{
		Decoder:  container.registry,
		Runner:   aggregator,
		Packager: aggregate.NewPackager(container.registry),
		Sinks:    container.sinks,
		Logger:   &logger,
	}

	if cfg.SlackWebhookURL != "" {
		serviceDeps.Notifier = notifier.NewSlackNotifier(notifier.SlackNotifierDependencies{
			WebhookURL: cfg.SlackWebhookURL,
		})
	}

	container.batchService = services.NewBatchService(serviceDeps)

	log.Info().
		Str("model", client.ModelID()).
		Int("sinks", len(container.sinks)).
		Bool("slack", cfg.SlackWebhookURL != "").
		Msg("Dependencies built successfully")

	return container, nil
}

func (c *Container) setupProgressPublisher(opts ContainerOptions) {
	publisher := opts.RedisClient

	if publisher == nil && c.config.RedisAddress != "" {
		c.redisClient = observers.NewRedisClient(c.config.RedisAddress, c.config.RedisPassword, c.config.RedisDB)
		publisher = c.redisClient
	}

	if publisher == nil {
		return
	}

	c.observer.Subscribe(observers.NewRedisProgressPublisher(observers.RedisProgressPublisherDependencies{
		Client:  publisher,
		Channel: c.config.RedisChannel,
	}))
}

func (c *Container) setupSinks(opts ContainerOptions) error {
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = c.config.OutputDir
	}

	if outputDir != "" {
		fs := opts.Fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		c.sinks = append(c.sinks, sinks.NewLocalSink(fs, outputDir))
	}

	if c.config.S3Bucket == "" {
		return nil
	}

	client := opts.S3Client
	if client == nil {
		s3Client, err := sinks.NewS3Client(c.config.S3Region)
		if err != nil {
			return fmt.Errorf("failed to create s3 client: %w", err)
		}
		client = s3Client
	}

	c.sinks = append(c.sinks, sinks.NewS3Sink(sinks.S3SinkDependencies{
		Client: client,
		Bucket: c.config.S3Bucket,
		Prefix: c.config.S3Prefix,
	}))

	return nil
}

func (c *Container) GetBatchService() *services.BatchService {
	return c.batchService
}

func (c *Container) GetObserver() *domain.ProgressObserver {
	return c.observer
}

func (c *Container) GetSinks() []sinks.ArtifactSink {
	return c.sinks
}

func (c *Container) NewBatchController() *controllers.BatchController {
	return controllers.NewBatchController(controllers.BatchControllerDependencies{
		BatchService: c.batchService,
		DefaultStyle: c.config.Style,
	})
}

// Close releases the connections the container opened itself.
func (c *Container) Close() error {
	if c.redisClient != nil {
		return c.redisClient.Close()
	}
	return nil
}
