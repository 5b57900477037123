// Package mobile 给 gomobile 绑定用的入口：在本机起 HTTP 服务，界面用 WebView 打开。
// 导出函数只用 string / error，方便 gomobile 生成绑定。
package mobile

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"xiangqi/internal/config"
	"xiangqi/internal/logging"
	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/xiangqi"
)

var (
	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
)

// StartServer starts the local HTTP server on 127.0.0.1:port in the background.
// webDir: physical path to the extracted web assets
// port: e.g. "2888"; "0" picks a free port (see Addr)
func StartServer(webDir string, port string) error {
	mu.Lock()
	defer mu.Unlock()
	if srv != nil {
		return errors.New("server already running")
	}

	cfg := config.Get()
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	games := game.NewManager(game.Options{
		MaxGames: cfg.Server.MaxGames,
		Rules: xiangqi.Rules{
			StrictCheckSafety: cfg.Rules.StrictCheckSafety,
			EnforceTurnOrder:  cfg.Rules.EnforceTurnOrder,
		},
		Logger: log.Logger,
	})

	ln, err := net.Listen("tcp", "127.0.0.1:"+port)
	if err != nil {
		return err
	}
	s := &http.Server{
		Handler:           httpserver.NewServer(games, webDir, log.Logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv, listener = s, ln

	// 后台跑，不能阻塞 Android UI 线程
	go func() {
		if err := s.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server error")
		}
	}()
	log.Info().Str("addr", ln.Addr().String()).Str("web_dir", webDir).Msg("Mobile server started")
	return nil
}

// Addr 当前监听地址；没启动时为空
func Addr() string {
	mu.Lock()
	defer mu.Unlock()
	if listener == nil {
		return ""
	}
	return listener.Addr().String()
}

// StopServer 停止服务，可以再次 StartServer
func StopServer() error {
	mu.Lock()
	s := srv
	srv, listener = nil, nil
	mu.Unlock()
	if s == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}
