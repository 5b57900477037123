package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"xiangqi/internal/config"
	"xiangqi/internal/logging"
	"xiangqi/internal/xiangqi"
)

type Report struct {
	Games    int           `json:"games"`
	MaxPlies int           `json:"max_plies"`
	Rules    xiangqi.Rules `json:"rules"`
	Elapsed  string        `json:"elapsed"`
	Results  []GameResult  `json:"results"`
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	games := flag.Int("games", -1, "number of games (-1 to use config)")
	maxPlies := flag.Int("max-plies", -1, "max plies per game (-1 to use config)")
	workers := flag.Int("workers", -1, "concurrent games (-1 to use config)")
	seed := flag.Int64("seed", -1, "base seed (-1 to use config)")
	out := flag.String("out", "randomplay.json", "output JSON file (- for stdout)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()
	if *games == -1 {
		*games = cfg.RandomPlay.Games
	}
	if *maxPlies == -1 {
		*maxPlies = cfg.RandomPlay.MaxPlies
	}
	if *workers == -1 {
		*workers = cfg.RandomPlay.Workers
	}
	if *seed == -1 {
		*seed = cfg.RandomPlay.Seed
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	rules := xiangqi.Rules{
		StrictCheckSafety: cfg.Rules.StrictCheckSafety,
		EnforceTurnOrder:  cfg.Rules.EnforceTurnOrder,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := runAll(ctx, *games, *workers, *maxPlies, *seed, rules)
	if err != nil {
		log.Fatal().Err(err).Msg("Random play failed")
	}

	report := Report{
		Games:    *games,
		MaxPlies: *maxPlies,
		Rules:    rules,
		Elapsed:  time.Since(start).String(),
		Results:  results,
	}
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode report")
	}
	if *out == "-" {
		_, _ = os.Stdout.Write(append(b, '\n'))
	} else if err := os.WriteFile(*out, b, 0644); err != nil {
		log.Fatal().Err(err).Msg("Failed to write report")
	}

	log.Info().
		Int("games", *games).
		Str("elapsed", report.Elapsed).
		Str("out", *out).
		Msg("Random play finished, all invariants held")
}

// runAll 并发跑 n 局；任意一局出错就取消其余的
func runAll(ctx context.Context, n, workers, maxPlies int, seed int64, rules xiangqi.Rules) ([]GameResult, error) {
	results := make([]GameResult, n)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			logger := log.Logger.With().Int("game", i).Logger()
			res, err := playGame(ctx, i, seed+int64(i), maxPlies, rules, logger)
			if err != nil {
				return err
			}
			results[i] = res
			logger.Debug().Int("plies", res.Plies).Str("state", res.State).Msg("Game finished")
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
