// Package uci implements the universal chess interface driver: command
// parsing, option handling, time-management input translation, and
// stdout line emission. Algorithmic search design is out of scope here —
// this package only translates between text commands and engine calls.
package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/kestrelchess/kestrel/board"
	"github.com/kestrelchess/kestrel/engine"
)

// Protocol reads UCI commands from r and writes responses to w, driving
// one *engine.Engine. It is the engine's only I/O surface.
type Protocol struct {
	engine *engine.Engine
	name   string
	author string
	out    io.Writer

	mu      sync.Mutex
	pos     board.Position
	history []uint64

	cancel   func()
	searchWg sync.WaitGroup
}

// New builds a Protocol around e, reporting name/author on the `uci`
// handshake.
func New(e *engine.Engine, name, author string) *Protocol {
	var p = &Protocol{engine: e, name: name, author: author}
	p.pos, _ = board.NewPositionFromFEN(board.InitialPositionFEN)
	e.OnInfo = p.onInfo
	e.Options.UCIMode = true
	return p
}

// Run reads commands from r until `quit` or r is exhausted, logging
// malformed input via logger rather than failing the loop.
func (p *Protocol) Run(r io.Reader, w io.Writer, logger *log.Logger) {
	p.out = w
	var scanner = bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1<<20), 1<<20)
	for scanner.Scan() {
		if !p.handle(strings.TrimSpace(scanner.Text()), logger) {
			break
		}
	}
	p.searchWg.Wait()
}

func (p *Protocol) handle(line string, logger *log.Logger) bool {
	if line == "" {
		return true
	}
	var fields = strings.Fields(line)
	switch fields[0] {
	case "uci":
		p.uciCommand()
	case "isready":
		fmt.Fprintln(p.out, "readyok")
	case "setoption":
		p.setOptionCommand(fields[1:], logger)
	case "ucinewgame":
		p.engine.Clear()
		p.mu.Lock()
		p.pos, _ = board.NewPositionFromFEN(board.InitialPositionFEN)
		p.history = nil
		p.mu.Unlock()
	case "position":
		if err := p.positionCommand(fields[1:]); err != nil {
			logger.Printf("uci: position command: %v", err)
		}
	case "go":
		p.goCommand(fields[1:])
	case "stop":
		p.stopCommand()
	case "ponderhit":
		p.engine.Ponderhit()
	case "quit":
		p.engine.Goodbye()
		p.stopCommand()
		return false
	default:
		logger.Printf("uci: unrecognized command %q", line)
	}
	return true
}

func (p *Protocol) uciCommand() {
	fmt.Fprintf(p.out, "id name %s\n", p.name)
	fmt.Fprintf(p.out, "id author %s\n", p.author)
	fmt.Fprintf(p.out, "option name Hash type spin default %d min 1 max 4096\n", p.engine.Options.Hash)
	fmt.Fprintf(p.out, "option name Threads type spin default %d min 1 max 64\n", p.engine.Options.Threads)
	fmt.Fprintln(p.out, "uciok")
}

func (p *Protocol) setOptionCommand(fields []string, logger *log.Logger) {
	var name, value string
	var inValue bool
	for _, f := range fields {
		switch {
		case f == "name":
		case f == "value":
			inValue = true
		case inValue:
			value = strings.TrimSpace(value + " " + f)
		default:
			name = strings.TrimSpace(name + " " + f)
		}
	}

	switch name {
	case "Hash":
		if n, err := strconv.Atoi(value); err == nil {
			p.engine.Options.Hash = n
			p.engine.Prepare()
		}
	case "Threads":
		if n, err := strconv.Atoi(value); err == nil {
			p.engine.Options.Threads = n
		}
	default:
		logger.Printf("uci: unknown option %q", name)
	}
}

func (p *Protocol) positionCommand(fields []string) error {
	if len(fields) == 0 {
		return fmt.Errorf("missing position spec")
	}

	var movesIdx = -1
	for i, f := range fields {
		if f == "moves" {
			movesIdx = i
			break
		}
	}

	var specFields = fields
	if movesIdx >= 0 {
		specFields = fields[:movesIdx]
	}

	var pos board.Position
	var err error
	switch {
	case specFields[0] == "startpos":
		pos, err = board.NewPositionFromFEN(board.InitialPositionFEN)
	case specFields[0] == "fen":
		pos, err = board.NewPositionFromFEN(strings.Join(specFields[1:], " "))
	default:
		return fmt.Errorf("unrecognized position spec %q", specFields[0])
	}
	if err != nil {
		return err
	}

	var history []uint64
	if movesIdx >= 0 {
		for _, lan := range fields[movesIdx+1:] {
			history = append(history, pos.HashKey())
			var next, ok = pos.MakeMoveLAN(lan)
			if !ok {
				return fmt.Errorf("illegal move %q", lan)
			}
			pos = next
		}
	}

	p.mu.Lock()
	p.pos, p.history = pos, history
	p.mu.Unlock()
	return nil
}

func (p *Protocol) goCommand(fields []string) {
	var limits = parseLimits(fields)

	p.mu.Lock()
	var pos = p.pos
	var history = append([]uint64(nil), p.history...)
	p.mu.Unlock()

	p.stopCommand()
	p.searchWg.Wait()

	var ctx, cancel = deadlineContext(limits, pos.WhiteMove)
	p.cancel = cancel

	p.searchWg.Add(1)
	go func() {
		defer p.searchWg.Done()
		defer cancel()
		var result = p.engine.Think(ctx, pos, history, limits)
		if !p.engine.SaidGoodbye() {
			fmt.Fprintln(p.out, formatBestMove(result))
		}
	}()
}

func (p *Protocol) stopCommand() {
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *Protocol) onInfo(info engine.SearchInfo) {
	fmt.Fprintln(p.out, formatInfo(info))
}

func deadlineContext(limits board.LimitsType, whiteToMove bool) (context.Context, context.CancelFunc) {
	return newDeadlineContext(limits, whiteToMove)
}
