// replay steps a game transcript move by move, printing the FEN of the
// resulting position after every action. It takes a starting FEN and a list
// of UCI moves, builds a variation.Variation from them, and walks it with a
// variation.Familiar rather than computing the final position directly, so
// it exercises the same cursor machinery a GUI move-list view would use.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"

	"github.com/kestrelchess/hazel/pkg/board"
	"github.com/kestrelchess/hazel/pkg/board/fen"
	"github.com/kestrelchess/hazel/pkg/variation"
)

var version = build.NewVersion(0, 1, 0)

var (
	position = flag.String("fen", "", "Start position (default to standard)")
	seed     = flag.Int64("seed", 1, "Zobrist table seed")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: replay [options] <uci move> ...

replay applies a sequence of UCI moves to a starting position and prints the
FEN after each one, using the same action log and cursor that drive game
storage and review.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	ctx := context.Background()
	flag.Parse()
	logw.Infof(ctx, "replay %v", version)

	if *position == "" {
		*position = fen.Initial
	}

	zobrist := board.NewZobristTable(*seed)
	cache := board.NewPositionCache(false)

	v := variation.New()
	v.NewGameRecord().SetupRecord(*position)

	probe, err := fen.Decode(zobrist, board.NewPositionCache(false), *position)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen %q: %v", *position, err)
	}

	for _, arg := range flag.Args() {
		uci, err := board.ParseUCI(arg)
		if err != nil {
			logw.Exitf(ctx, "Invalid UCI move %q: %v", arg, err)
		}

		m, err := uci.Disambiguate(probe)
		if err != nil {
			logw.Exitf(ctx, "Cannot disambiguate %q: %v", arg, err)
		}
		if err := probe.Make(ctx, m); err != nil {
			logw.Exitf(ctx, "Illegal move %q: %v", arg, err)
		}

		v.MakeRecord(m)
	}
	v.Commit()

	f := variation.NewFamiliar(v, zobrist, cache)
	for !f.AtEnd() {
		if contextx.IsCancelled(ctx) {
			logw.Infof(ctx, "Replay cancelled at action %v", f.Position())
			break
		}
		if err := f.StepForward(ctx); err != nil {
			logw.Exitf(ctx, "Replay failed: %v", err)
		}

		record, err := f.FEN()
		if err != nil {
			continue // no position established yet (no NewGame or Setup applied)
		}
		logw.Infof(ctx, "%v: %v", f.Position(), record)
	}
}
