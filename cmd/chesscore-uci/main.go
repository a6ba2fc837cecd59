// Command chesscore-uci runs the search engine behind a minimal Universal
// Chess Interface front end.
package main

import (
	"flag"
	"os"
	"runtime/pprof"

	"github.com/op/go-logging"

	"github.com/nullmove-dev/chesscore/internal/config"
	"github.com/nullmove-dev/chesscore/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	configPath = flag.String("config", "", "path to a TOML config file (default settings if empty)")
)

func main() {
	flag.Parse()
	logging.SetBackend(logging.NewLogBackend(os.Stderr, "", 0))

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			logging.MustGetLogger("main").Fatalf("could not create CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			logging.MustGetLogger("main").Fatalf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logging.MustGetLogger("main").Fatalf("could not load config %s: %v", *configPath, err)
		}
		cfg = loaded
	}

	handler := uci.New(cfg.Engine.HashSizeMB)
	handler.SetThreads(cfg.Engine.Threads)
	handler.Run()
}
