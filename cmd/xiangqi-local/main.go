package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"xiangqi/internal/config"
	"xiangqi/internal/logging"
	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/xiangqi"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 不阻塞，不关心错误（某些服务器环境可能无图形界面）
}

func rulesFrom(c config.Config) xiangqi.Rules {
	return xiangqi.Rules{
		StrictCheckSafety: c.Rules.StrictCheckSafety,
		EnforceTurnOrder:  c.Rules.EnforceTurnOrder,
	}
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	addr := flag.String("addr", "", "listen address (empty to use config)")
	webDir := flag.String("web", "", "directory with index.html / js / svg (empty to use config)")
	env := flag.String("env", os.Getenv("APP_ENV"), "environment overlay, loads config.<env>.yaml")
	noBrowser := flag.Bool("no-browser", false, "do not open the default browser")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}
	cfg := config.Get()
	if *addr == "" {
		*addr = cfg.Server.Addr
	}
	if *webDir == "" {
		*webDir = cfg.Server.WebDir
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	games := game.NewManager(game.Options{
		MaxGames: cfg.Server.MaxGames,
		Rules:    rulesFrom(cfg),
		Logger:   log.Logger,
	})

	if path := config.ConfigFilePath(); path != "" {
		config.WatchConfig(func(c config.Config) {
			logging.SetLevel(c.Log.Level)
			games.SetRules(rulesFrom(c))
			log.Info().Str("file", path).Str("log_level", c.Log.Level).Msg("Config reloaded")
		}, func(err error) {
			log.Warn().Err(err).Msg("Ignoring invalid config change")
		})
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           httpserver.NewServer(games, *webDir, log.Logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().
		Str("addr", *addr).
		Str("web_dir", *webDir).
		Int("max_games", cfg.Server.MaxGames).
		Bool("strict_check_safety", cfg.Rules.StrictCheckSafety).
		Bool("enforce_turn_order", cfg.Rules.EnforceTurnOrder).
		Msg("Listening")

	if !*noBrowser {
		// 延迟 100ms 打开默认浏览器，否则可能服务器未启动完成
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + *addr)
		}()
	}

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
