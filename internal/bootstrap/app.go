package bootstrap

import (
	"DMR_Link/config"
	"DMR_Link/internal/repo"
	"DMR_Link/internal/service"
	"DMR_Link/internal/storage"
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// SweepLockKey guards sweeps across processes sharing one Redis.
const SweepLockKey = "lock:link-sweep"

// App holds the services shared by the binaries.
type App struct {
	Mongo    *repo.MongoDB
	Redis    *redis.Client
	Files    storage.FileStore
	Tracker  *service.Tracker
	Resolver *service.Resolver
	DMR      *service.DMRService
}

// Init loads configuration and connects every backend.
func Init() *App {
	config.InitConfig()
	return Connect()
}

// Connect builds the services from the loaded configuration. Connection
// failures are fatal.
func Connect() *App {
	app := &App{
		Mongo: repo.InitMongo(),
		Redis: repo.InitRedis(),
		Files: storage.InitFileStore(),
	}

	opts := []service.TrackerOption{service.WithDeleteRate(config.AppConfig.SweepDeleteRate)}
	if app.Redis != nil {
		opts = append(opts,
			service.WithExpiryNotifier(repo.NewRedisExpiryNotifier(app.Redis)),
			service.WithSweepLock(repo.NewRedisLock(app.Redis, SweepLockKey, config.AppConfig.SweepLockTTL)),
		)
	}
	app.Tracker = service.NewTracker(app.Mongo.Tracker(), app.Files, opts...)

	records := app.Mongo.Records()
	links := service.NewLinkFactory(app.Files, app.Tracker, config.AppConfig.PublicPortStrip)
	app.Resolver = service.NewResolver(records)
	app.DMR = service.NewDMRService(records, links, config.Folders, config.AppConfig.LinkTTL, config.AppConfig.DMRLinkTTL)
	return app
}

// ListenExpiry feeds Redis expiry events for tracked links into onExpired.
// It blocks until subscribed and returns immediately without Redis.
func (a *App) ListenExpiry(ctx context.Context, onExpired func(linkID string)) {
	if a.Redis == nil {
		return
	}
	if err := repo.EnableKeyspaceNotifications(ctx, a.Redis); err != nil {
		log.Printf("enable redis keyspace notifications failed: %v", err)
		return
	}
	ready := make(chan struct{})
	go repo.ListenRedisExpired(ctx, a.Redis, ready, onExpired)
	<-ready
}

// Close releases the backend connections.
func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := storage.Close(ctx, a.Files); err != nil {
		log.Printf("close file store: %v", err)
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			log.Printf("close redis: %v", err)
		}
	}
	if err := a.Mongo.Close(); err != nil {
		log.Printf("close mongo: %v", err)
	}
}
