// Package bootstrap wires the configured backends into the use cases shared
// by the api and worker binaries.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/officemate/office-mate/internal/config"
	"github.com/officemate/office-mate/internal/core/ports"
	"github.com/officemate/office-mate/internal/core/usecase"
	"github.com/officemate/office-mate/internal/infrastructure/classifier/keyword"
	"github.com/officemate/office-mate/internal/infrastructure/extractor"
	"github.com/officemate/office-mate/internal/infrastructure/queue/nats"
	memoryrepo "github.com/officemate/office-mate/internal/infrastructure/repository/memory"
	"github.com/officemate/office-mate/internal/infrastructure/repository/postgres"
	"github.com/officemate/office-mate/internal/infrastructure/resilience"
	"github.com/officemate/office-mate/internal/infrastructure/storage/localfs"
	miniostorage "github.com/officemate/office-mate/internal/infrastructure/storage/minio"
)

type App struct {
	Config config.Config

	Queue ports.MessageQueue

	IngestUC    ports.DocumentIngestor
	ProcessUC   ports.DocumentProcessor
	FinderUC    ports.DocumentFinder
	TasksUC     ports.TaskManager
	DashboardUC ports.DashboardReader

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	var (
		docRepo  ports.DocumentRepository
		taskRepo ports.TaskRepository
		closeFn  = func() {}
	)

	switch cfg.StoreBackend {
	case "postgres":
		db, err := postgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		repo := postgres.NewDocumentRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		docRepo = repo
		taskRepo = postgres.NewTaskRepository(db)
		closeFn = func() { _ = db.Close() }
	case "memory", "":
		docRepo = memoryrepo.NewDocumentRepository()
		taskRepo = memoryrepo.NewTaskRepository()
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	storage, err := newStorage(ctx, cfg)
	if err != nil {
		closeFn()
		return nil, err
	}

	executor := resilience.NewExecutor(resilience.DefaultPolicy())
	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject, nats.Options{Executor: executor})
	if err != nil {
		closeFn()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	classifier := keyword.New(cfg.SummaryMaxChars, cfg.TagLimit)
	textExtractor := extractor.New(storage)

	ingestUC := usecase.NewIngestDocumentUseCase(docRepo, storage, queue, classifier)
	processUC := usecase.NewProcessDocumentUseCase(docRepo, textExtractor, classifier)
	finderUC := usecase.NewDocumentSearchService(docRepo, taskRepo)
	tasksUC := usecase.NewTaskService(taskRepo, docRepo, nil)
	dashboardUC := usecase.NewDashboardService(docRepo, taskRepo, usecase.DashboardOptions{
		DueSoonWindowDays: cfg.DueSoonWindowDays,
		UrgentTaskLimit:   cfg.UrgentTaskLimit,
		RecentDocLimit:    cfg.RecentDocLimit,
	}, nil)

	queueClose := closeFn
	return &App{
		Config: cfg,
		Queue:  queue,

		IngestUC:    ingestUC,
		ProcessUC:   processUC,
		FinderUC:    finderUC,
		TasksUC:     tasksUC,
		DashboardUC: dashboardUC,

		closeFn: func() {
			queue.Close()
			queueClose()
		},
	}, nil
}

func newStorage(ctx context.Context, cfg config.Config) (ports.ObjectStorage, error) {
	switch cfg.StorageBackend {
	case "minio":
		store, err := miniostorage.New(miniostorage.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			Region:    cfg.MinioRegion,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("init minio storage: %w", err)
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("ensure bucket: %w", err)
		}
		return store, nil
	case "local", "":
		store, err := localfs.New(cfg.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("init local storage: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
