// diagkitd 是疾病预测服务的守护进程：加载配置、初始化引擎、
// 启动 HTTP 服务并优雅退出。
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rushteam/diagkit/config"
	"github.com/rushteam/diagkit/core"
	"github.com/rushteam/diagkit/engine"
	"github.com/rushteam/diagkit/history"
	"github.com/rushteam/diagkit/server"
	"github.com/rushteam/diagkit/store"
)

func main() {
	_ = godotenv.Load()
	gin.SetMode(getEnv("GIN_MODE", "release"))

	cfgPath := getEnv("DIAGKIT_CONFIG", "config.yaml")
	cfg, err := config.LoadFromFile(cfgPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatalf("engine init failed: %v", err)
	}
	log.Printf("engine ready: strategy=%s rows=%d vocabulary=%d holdout_acc=%.3f",
		eng.Strategy(), eng.RowCount(), eng.VocabularySize(), eng.HoldoutAccuracy())

	kv, err := openStore(cfg)
	if err != nil {
		log.Fatalf("store init failed: %v", err)
	}
	defer kv.Close()

	srv := &server.Server{
		Engine:       eng,
		Recorder:     history.NewRecorder(kv, time.Duration(cfg.Server.HistoryTTL)*time.Second),
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	log.Printf("server listening on :%d (store=%s)", cfg.Server.Port, kv.Name())
	waitForShutdown(httpServer)
}

// openStore 按配置选择历史存储：有 redis 地址用 redis，否则用进程内存。
func openStore(cfg *config.Config) (core.KeyValueStore, error) {
	if cfg.Server.RedisAddr != "" {
		return store.NewRedisStore(cfg.Server.RedisAddr, cfg.Server.RedisDB)
	}
	return store.NewMemoryStore(), nil
}

func waitForShutdown(srv *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
	log.Println("server stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
