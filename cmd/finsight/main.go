package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"finsight/internal/config"
	"finsight/internal/server"
)

var (
	port    = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode = flag.Bool("dev", false, "开发模式")
	dataDir = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Finsight - 财务报表智能分析引擎")
	fmt.Println("==========================================")

	logger := newLogger(*devMode)

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		logger.Warn().Err(err).Msg("加载配置失败，使用默认配置")
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("服务初始化失败")
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("服务启动中")
		if err := srv.Run(addr); err != nil {
			logger.Fatal().Err(err).Msg("服务启动失败")
		}
	}()

	fmt.Printf("请访问 http://localhost:%d\n", cfg.Server.Port)
	fmt.Println("按 Ctrl+C 停止服务...")

	// 等待信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
	if err := srv.Close(); err != nil {
		logger.Error().Err(err).Msg("关闭存储失败")
	}
}

// newLogger 开发模式输出易读控制台格式，否则输出 JSON
func newLogger(dev bool) zerolog.Logger {
	if dev {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
