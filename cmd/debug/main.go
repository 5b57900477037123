package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"xiangqi/internal/fixture"
	"xiangqi/internal/logging"
	"xiangqi/internal/xiangqi"
)

func main() {
	setup := flag.String("setup", "", "YAML setup file (empty = standard layout)")
	moves := flag.String("moves", "", "comma separated moves, e.g. e9:d9,d1:e1")
	strict := flag.Bool("strict", false, "forbid moves that leave the own general exposed")
	turns := flag.Bool("turns", false, "enforce alternating turns, red first")
	dump := flag.String("dump", "", "write the final position as a YAML setup to this file")
	level := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	logging.Setup(*level, "console")

	placements := xiangqi.StandardPlacements()
	if *setup != "" {
		var err error
		placements, err = fixture.Load(*setup)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load setup")
		}
	}

	g, err := xiangqi.NewGameFromPlacements(xiangqi.GameConfig{
		Rules:  xiangqi.Rules{StrictCheckSafety: *strict, EnforceTurnOrder: *turns},
		Logger: log.Logger,
	}, placements)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid setup")
	}

	if *moves != "" {
		for _, mv := range strings.Split(*moves, ",") {
			from, to, ok := strings.Cut(strings.TrimSpace(mv), ":")
			if !ok {
				log.Fatal().Str("move", mv).Msg("Move must look like from:to")
			}
			from, to = strings.TrimSpace(from), strings.TrimSpace(to)
			fromSq, okFrom := xiangqi.ParseSquare(from)
			toSq, okTo := xiangqi.ParseSquare(to)
			if !okFrom || !okTo {
				fmt.Printf("%s -> %s: rejected (%v)\n", from, to, xiangqi.ErrOffBoard)
				continue
			}
			if err := g.Move(fromSq, toSq); err != nil {
				fmt.Printf("%s -> %s: rejected (%v)\n", from, to, err)
				continue
			}
			fmt.Printf("%s -> %s: ok\n", from, to)
		}
		fmt.Println()
	}

	fmt.Print(g.String())
	fmt.Printf("state: %s  to move: %s  hash: %016x\n", g.State(), g.SideToMove(), g.Hash())
	fmt.Printf("in check: red=%v black=%v\n\n", g.IsInCheck(xiangqi.Red), g.IsInCheck(xiangqi.Black))

	total := [2]int{}
	for _, p := range g.Snapshot() {
		total[p.Side] += len(p.Moves)
		sqs := make([]string, len(p.Moves))
		for i, sq := range p.Moves {
			sqs[i] = sq.String()
		}
		fmt.Printf("%-5s %-8s %-3s -> %s\n", p.Side, p.Archetype, p.Position, strings.Join(sqs, " "))
	}
	fmt.Printf("\nlegal moves: red=%d black=%d\n", total[xiangqi.Red], total[xiangqi.Black])

	if *dump != "" {
		out := make([]xiangqi.Placement, 0, len(g.Snapshot()))
		for _, p := range g.Snapshot() {
			out = append(out, xiangqi.Placement{Side: p.Side, Archetype: p.Archetype, At: p.Position})
		}
		b, err := fixture.Marshal("dumped by cmd/debug", out)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to encode setup")
		}
		if err := os.WriteFile(*dump, b, 0644); err != nil {
			log.Fatal().Err(err).Msg("Failed to write setup")
		}
		fmt.Printf("wrote %s\n", *dump)
	}
}
