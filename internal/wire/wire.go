// Package wire provides dependency injection for the twodo application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/twodo/internal/adapters/cli"
	"github.com/example/twodo/internal/adapters/geo"
	"github.com/example/twodo/internal/adapters/httpstore"
	"github.com/example/twodo/internal/adapters/identity"
	"github.com/example/twodo/internal/adapters/sqlite"
	"github.com/example/twodo/internal/app"
	"github.com/example/twodo/internal/config"
	"github.com/example/twodo/internal/db"
	"github.com/example/twodo/internal/ports/primary"
	"github.com/example/twodo/internal/ports/secondary"
)

var (
	syncService     primary.TaskSyncService
	scheduleService primary.ScheduleService
	taskStore       secondary.RemoteTaskStore
	once            sync.Once
)

// SyncService returns the singleton TaskSyncService instance.
func SyncService() primary.TaskSyncService {
	once.Do(initServices)
	return syncService
}

// ScheduleService returns the singleton ScheduleService instance.
func ScheduleService() primary.ScheduleService {
	once.Do(initServices)
	return scheduleService
}

// TaskStore returns the singleton store instance. The serve command hosts
// it over HTTP; everything else should go through the services.
func TaskStore() secondary.RemoteTaskStore {
	once.Do(initServices)
	return taskStore
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	// Missing config behaves like a logged-out session; commands that
	// need identity report that through the services.
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to resolve working directory: %v", err)
	}
	cfg, _ := config.LoadConfig(cwd)

	// The schedule history always lives in the local database; the task
	// store is remote only when a store URL is configured.
	dbPath := ""
	if cfg != nil {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		dbPath, err = db.DefaultPath()
		if err != nil {
			log.Fatalf("failed to resolve database path: %v", err)
		}
	}
	database, err := db.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if cfg != nil && cfg.StoreURL != "" {
		taskStore = httpstore.NewClient(cfg.StoreURL)
	} else {
		taskStore = sqlite.NewTaskStore(database)
	}
	scheduleRepo := sqlite.NewScheduleRepository(database)

	account := identity.NewConfigAccountService(cfg)
	position := geo.NewPinProvider(cfg)

	// Create services (primary ports implementation)
	syncService = app.NewSyncService(taskStore, account, position)
	scheduleService = app.NewScheduleService(scheduleRepo, account)
}

// TaskAdapter returns a new TaskAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func TaskAdapter() *cliadapter.TaskAdapter {
	return TaskAdapterWithOutput(os.Stdout)
}

// TaskAdapterWithOutput returns a new TaskAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func TaskAdapterWithOutput(out io.Writer) *cliadapter.TaskAdapter {
	once.Do(initServices)
	return cliadapter.NewTaskAdapter(syncService, out)
}

// ScheduleAdapter returns a new ScheduleAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ScheduleAdapter() *cliadapter.ScheduleAdapter {
	return ScheduleAdapterWithOutput(os.Stdout)
}

// ScheduleAdapterWithOutput returns a new ScheduleAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func ScheduleAdapterWithOutput(out io.Writer) *cliadapter.ScheduleAdapter {
	once.Do(initServices)
	return cliadapter.NewScheduleAdapter(scheduleService, out)
}
