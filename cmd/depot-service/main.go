package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/icemanjeux64/FOFterminal-sub000/internal/api"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/common/config"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/common/discovery"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/common/logger"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/common/middleware"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/common/server"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/common/tracing"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/depot"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/roster"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/squad"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/store"
)

var (
	configPath = flag.String("config", "configs/depot-service.json", "配置文件路径")
	consulKey  = flag.String("consul-config-key", "", "从 Consul KV 读取配置的 key（优先于 -config）")
)

func main() {
	flag.Parse()

	// 加载配置
	var cfg *config.Config
	var err error
	if *consulKey != "" {
		boot := config.GetConfig()
		cfg, err = config.LoadConfigFromConsulKV(boot.Consul.Host, boot.Consul.Port, *consulKey)
	} else {
		cfg, err = config.LoadConfig(*configPath)
	}
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 初始化日志
	log, err := logger.NewLogger(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	// 初始化链路追踪
	tracer, closer, err := tracing.InitTracer(
		cfg.Server.Name,
		cfg.Jaeger.Endpoint,
		cfg.Jaeger.Sampler,
	)
	if err != nil {
		log.Warnf("failed to init tracer: %v", err)
	} else {
		defer closer.Close()
	}
	_ = tracer

	// 初始化持久化存储（失败降级为内存运行）
	kv := newStore(cfg, log)

	// 组装车库引擎
	svc := depot.NewService(depot.Options{
		Log:              log,
		Store:            kv,
		Directory:        squad.NewDirectory(kv),
		Archive:          squad.NewArchive(kv),
		RosterDirectory:  roster.NewDirectory(kv),
		SquadName:        cfg.Depot.SquadName,
		DefaultFrequency: cfg.Depot.DefaultFrequency,
		JournalCapacity:  cfg.Depot.JournalCapacity,
	})
	if err := svc.Load(context.Background()); err != nil {
		log.Fatalf("failed to load depot state: %v", err)
	}

	// HTTP 中间件链（按顺序执行）
	handler := server.Chain(
		api.NewHandler(svc, log),
		server.Recovery(log),                        // 异常恢复，避免服务崩溃
		server.Tracing(cfg.Server.Name),             // 链路追踪
		server.AccessLog(log),                       // 访问日志
		server.RateLimit(middleware.NewTokenBucket(200, 100)),
		server.SessionAuth(cfg.Auth, log),           // 会话身份
	)

	if err := server.RunServer(cfg, log, handler); err != nil {
		log.Fatalf("depot-service exited with error: %v", err)
	}
}

// newStore 按配置选择存储后端。mysql / consul 初始化失败时降级为内存存储。
func newStore(cfg *config.Config, log logger.Logger) store.Store {
	switch cfg.Depot.StoreBackend {
	case "memory":
		log.Warn("using in-memory store, state will not survive restarts")
		return store.NewMemoryStore()
	case "consul":
		client, err := discovery.NewConsulClient(cfg.Consul.Host, cfg.Consul.Port)
		if err == nil {
			s, cerr := store.NewConsulStore(client, "fof/")
			if cerr == nil {
				return s
			}
			err = cerr
		}
		log.Warnf("consul store unavailable, falling back to memory: %v", err)
		return store.NewMemoryStore()
	default:
		db, err := store.NewMySQL(
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Database,
			cfg.Database.MaxIdle,
			cfg.Database.MaxOpen,
		)
		if err == nil {
			s, serr := store.NewMySQLStore(db)
			if serr == nil {
				return s
			}
			err = serr
		}
		log.Warnf("mysql store unavailable, falling back to memory: %v", err)
		return store.NewMemoryStore()
	}
}
