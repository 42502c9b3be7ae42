package main

import (
	"flag"
	"fmt"

	"github.com/DrOldGuy/builder-pattern/internal/catalog"
	"github.com/DrOldGuy/builder-pattern/internal/common/config"
	"github.com/DrOldGuy/builder-pattern/internal/common/db"
	"github.com/DrOldGuy/builder-pattern/internal/common/logger"
	"github.com/DrOldGuy/builder-pattern/internal/common/server"
	"github.com/DrOldGuy/builder-pattern/internal/common/tracing"
	"github.com/gorilla/mux"
)

var (
	configPath = flag.String("config", "configs/dealer-service.json", "配置文件路径")
	consulKey  = flag.String("consul-kv", "", "可选：从 Consul KV 加载配置的 key（优先于本地文件）")
)

func main() {
	flag.Parse()

	// 加载配置（优先 Consul KV，失败或未配置时用本地文件/默认值）
	var cfg *config.Config
	var err error
	if *consulKey != "" {
		fileCfg := config.GetConfig()
		cfg, err = config.LoadConfigFromConsulKV(fileCfg.Consul.Host, fileCfg.Consul.Port, *consulKey)
	}
	if cfg == nil {
		cfg, err = config.LoadConfig(*configPath)
	}
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 初始化日志
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.Path)
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

	// 初始化数据库
	gormDB, err := db.NewMySQL(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Database,
		cfg.Database.MaxIdle,
		cfg.Database.MaxOpen,
	)
	if err != nil {
		log.Fatalf("failed to init mysql: %v", err)
	}
	if err := gormDB.AutoMigrate(&catalog.Listing{}); err != nil {
		log.Fatalf("failed to migrate mysql schema: %v", err)
	}

	// 组装目录服务与路由
	svc := catalog.NewService(catalog.NewRepo(gormDB))
	router := mux.NewRouter()
	catalog.NewHTTPHandler(svc, log).RegisterRoutes(router)

	var metrics *server.Metrics
	if cfg.Metrics.Enabled {
		metrics = server.NewMetrics(cfg.Server.Name)
	}

	// gRPC 端点只跑 health/reflection（业务 proto 就绪前供 Consul 探测）
	go func() {
		if err := server.RunGRPCServer(cfg, log, nil); err != nil {
			log.Errorf("grpc endpoint exited: %v", err)
		}
	}()

	if err := server.RunHTTPServer(cfg, log, router, server.WithHTTPMetrics(metrics)); err != nil {
		log.Fatalf("dealer-service exited with error: %v", err)
	}
}
