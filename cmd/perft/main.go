// perft is a movegen debugging tool. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"

	"github.com/kestrelchess/hazel/pkg/board"
	"github.com/kestrelchess/hazel/pkg/board/fen"
)

var version = build.NewVersion(0, 1, 0)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("fen", "", "Start position (default to standard)")
	divide   = flag.Bool("divide", false, "Divide counts by initial move")
	seed     = flag.Int64("seed", 1, "Zobrist table seed")
	debug    = flag.Bool("debug_cache", false, "Verify every position cache hit against a recomputed hash")
	timeout  = flag.Duration("timeout", 0, "Abort the run after this long (zero for no limit)")
)

func main() {
	ctx := context.Background()
	flag.Parse()
	logw.Infof(ctx, "perft %v", version)

	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	if *position == "" {
		*position = fen.Initial
	}

	zobrist := board.NewZobristTable(*seed)
	cache := board.NewPositionCache(*debug)

	pos, err := fen.Decode(zobrist, cache, *position)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen %q: %v", *position, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := search(ctx, pos, i, *divide && i == *depth)
		duration := time.Since(start)

		logw.Infof(ctx, "perft,%v,%v,%v,%v", *position, i, nodes, duration.Microseconds())
	}
}

func search(ctx context.Context, pos *board.Position, depth int, d bool) int64 {
	if depth == 0 {
		return 1
	}
	if contextx.IsCancelled(ctx) {
		return 0
	}

	var nodes int64
	for _, m := range pos.PseudoLegalMoves() {
		if err := pos.Make(ctx, m); err != nil {
			continue
		}

		mover := pos.Metadata().SideToMove.Opponent()
		if !pos.InCheck(mover) {
			count := search(ctx, pos, depth-1, false)
			if d {
				logw.Infof(ctx, "%v: %v", m, count)
			}
			nodes += count
		}

		if err := pos.Unmake(); err != nil {
			logw.Exitf(ctx, "Unmake failed after %v: %v", m, err)
		}
	}
	return nodes
}
