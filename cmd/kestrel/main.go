package main

import (
	"log"
	"os"
	"runtime"

	"github.com/kestrelchess/kestrel/eval"
	"github.com/kestrelchess/kestrel/engine"
	"github.com/kestrelchess/kestrel/uci"
)

const (
	name   = "Kestrel"
	author = "Kestrel contributors"
)

func main() {
	var logger = log.New(os.Stderr, "", log.LstdFlags)

	logger.Println(name, "RuntimeVersion", runtime.Version(), "GOARCH", runtime.GOARCH, "GOOS", runtime.GOOS, "NumCPU", runtime.NumCPU())

	var eng = engine.NewEngine(eval.Evaluate, eval.Quiesce)
	var protocol = uci.New(eng, name, author)

	protocol.Run(os.Stdin, os.Stdout, logger)
}
