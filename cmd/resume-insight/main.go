package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"

	"resume-insight-go/internal/agent"
	"resume-insight-go/internal/api/handler"
	"resume-insight-go/internal/api/router"
	"resume-insight-go/internal/config"
	"resume-insight-go/internal/enhancer"
	"resume-insight-go/internal/logger"
	"resume-insight-go/internal/outbox"
	"resume-insight-go/internal/processor"
	"resume-insight-go/internal/storage"
	"resume-insight-go/internal/tracing"
)

var (
	version     = "1.0.0"          //nolint:gochecknoglobals
	serviceName = "resume-insight" //nolint:gochecknoglobals
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置失败")
	}

	initLogger(cfg)
	logger.Info().Str("version", version).Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.InitTracerProvider(ctx, serviceName, &cfg.Tracing)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化链路追踪失败")
	}
	defer func() {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("关闭链路追踪失败")
		}
	}()

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化存储失败")
	}
	defer storageManager.Close()
	logger.Info().Msg("存储服务初始化成功")

	messageRelay := outbox.NewMessageRelay(storageManager.MySQL.DB(), storageManager.RabbitMQ, logger.Logger)
	messageRelay.Start()
	logger.Info().Msg("消息中继服务已启动")

	resumeParser, err := buildResumeParser(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化简历解析器失败")
	}

	resumeHandler := handler.NewResumeHandler(cfg, storageManager, resumeParser)

	go func() {
		if err := resumeHandler.StartParseJobsConsumer(ctx); err != nil {
			logger.Fatal().Err(err).Msg("启动解析任务消费者失败")
		}
	}()

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, cfg, resumeHandler)
	logger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器启动中")

	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出...")

	messageRelay.Stop()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
	}
	logger.Info().Msg("优雅退出完成")
}

// initLogger 初始化zerolog并接管hertz内部日志
func initLogger(cfg *config.Config) {
	logger.Init(cfg.Logger)
	logger.Logger = logger.Logger.With().
		Str("app", serviceName).
		Str("version", version).
		Logger()

	glog.SetLogger(hertzadapter.From(logger.Logger))
}

// buildResumeParser 组装解析管线
// 增强层始终启用；配置了LLM密钥时附加模型抽取，否则仅做规则分析
func buildResumeParser(ctx context.Context, cfg *config.Config) (*processor.ResumeParser, error) {
	var llmModel model.ToolCallingChatModel
	if cfg.LLM.APIKey != "" {
		qwenModel, err := agent.NewQwenChatModel(&cfg.LLM, logger.Logger)
		if err != nil {
			logger.Warn().Err(err).Msg("初始化LLM模型失败，增强层降级为纯规则分析")
		} else {
			llmModel = qwenModel
			logger.Info().Str("model", cfg.LLM.Model).Msg("增强层LLM已启用")
		}
	}

	return processor.NewResumeParser(ctx,
		processor.WithWorkers(cfg.Parser.Workers),
		processor.WithEnhancer(enhancer.New(llmModel)),
	)
}
