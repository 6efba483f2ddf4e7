package container

import (
	"context"
	"fmt"

	"structdetect/adapters/detector"
	"structdetect/adapters/excel"
	"structdetect/adapters/memory"
	"structdetect/adapters/postgres"
	"structdetect/adapters/profile"
	"structdetect/app"
	"structdetect/internal"
	"structdetect/internal/config"
	"structdetect/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Adapters
	Detector    ports.StructuredDetector
	Profiler    ports.ProfilerPort
	Reader      ports.TabularReaderPort
	HistoryRepo ports.DetectionHistoryRepository

	// Services
	DetectionService *app.DetectionService
}

// New creates a new dependency injection container backed by in-memory history
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}
	c.initAdapters()
	c.HistoryRepo = memory.NewDetectionHistory(cfg.Detection.HistoryCapacity)
	c.initServices()

	return c, nil
}

// InitWithDatabase switches history to postgres
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	// Test database connection
	if err := db.PingContext(context.Background()); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	c.DB = db
	c.HistoryRepo = postgres.NewDetectionRepository(db)
	c.initServices()

	c.Logger.Info("[Container] Detection history stored in postgres")
	return nil
}

// initAdapters creates the stateless adapters
func (c *Container) initAdapters() {
	c.Detector = detector.New()

	profileConfig := profile.DefaultConfig()
	profileConfig.SampleSize = c.Config.Detection.ProfileSampleSize
	c.Profiler = profile.NewProfiler(profileConfig)

	c.Reader = excel.NewDataReader(excel.Config{
		Sheet:    c.Config.Upload.Sheet,
		MaxBytes: c.Config.Upload.MaxFileBytes,
	}, c.Logger)
}

// initServices (re)builds services over the current adapters
func (c *Container) initServices() {
	c.DetectionService = app.NewDetectionService(
		c.Detector,
		c.Profiler,
		c.Reader,
		c.HistoryRepo,
		c.Config.Detection,
		c.Logger,
	)
}

// Close releases resources held by the container
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
