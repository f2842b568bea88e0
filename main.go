package main

import (
	"flag"
	"log"
	"path/filepath"

	"canvas_calendar_backend/internal/app"
	"canvas_calendar_backend/internal/config"
	"canvas_calendar_backend/pkg/configwatcher"
	"canvas_calendar_backend/pkg/logger"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件目录")
	refreshOnStart := flag.Bool("refresh", false, "启动后立即执行一次完整刷新")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	go configwatcher.WatchConfig(filepath.Join(*configDir, "config.yaml"), application.ApplyConfig)

	if *refreshOnStart {
		go func() {
			if _, err := application.RefreshNow(); err != nil {
				log.Printf("initial refresh failed: %v", err)
			}
		}()
	}

	application.Run()
}
