// Package main runs the overload MCP server over stdio, for local MCP clients.
// The same server is mounted on the backend at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"net"
	"os"

	"github.com/2beens/overload/internal/config"
	"github.com/2beens/overload/internal/db"
	"github.com/2beens/overload/internal/logging"
	"github.com/2beens/overload/internal/overload"
	"github.com/2beens/overload/internal/overload/catalog"
	overloadmcp "github.com/2beens/overload/internal/overload/mcp"
	"github.com/2beens/overload/internal/overload/progression"
	"github.com/2beens/overload/internal/overload/strength"

	"github.com/go-redis/redis/v8"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development | test | testing]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// stdout carries the protocol, logs go to stderr or the log file
	logging.Setup(logging.LoggerSetupParams{
		LogFileName: cfg.LogsPath,
		LogLevel:    cfg.LogLevel,
		Environment: cfg.Environment,
	})
	if cfg.LogsPath == "" {
		log.SetOutput(os.Stderr)
	}

	ctx := context.Background()
	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()

	components := overload.Wire(
		store,
		catalog.New(cfg.Engine.CatalogOptions()...),
		cfg.Engine.Progression(),
		overload.Config{
			DefaultStrategy:  progression.Strategy(cfg.DefaultStrategy),
			VolumeWindowDays: cfg.VolumeWindowDays,
		},
	)
	server := overloadmcp.NewServer(components.Engine, components.Catalog, nil)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}

func newStore(ctx context.Context, cfg *config.Config) (strength.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost: cfg.PostgresHost,
			DBPort: cfg.PostgresPort,
			DBName: cfg.PostgresDBName,
		})
		if err != nil {
			return nil, nil, err
		}
		return strength.NewPostgresStore(dbPool), dbPool.Close, nil
	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: os.Getenv("OVERLOAD_REDIS_PASS"),
		})
		return strength.NewRedisStore(rdb), func() { _ = rdb.Close() }, nil
	default:
		log.Warnln("memory store: records are lost when the process exits")
		return strength.NewMemoryStore(), func() {}, nil
	}
}
