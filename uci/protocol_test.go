package uci

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/kestrelchess/kestrel/board"
	"github.com/kestrelchess/kestrel/engine"
	"github.com/kestrelchess/kestrel/eval"
)

func newTestProtocol() *Protocol {
	var e = engine.NewEngine(eval.Evaluate, eval.Quiesce)
	e.Options.Threads = 1
	return New(e, "Testbird", "nobody")
}

func discardLogger() *log.Logger {
	return log.New(bytes.NewBuffer(nil), "", 0)
}

func TestPositionCommandStartposWithMoves(t *testing.T) {
	var p = newTestProtocol()
	if err := p.positionCommand(strings.Fields("startpos moves e2e4 e7e5")); err != nil {
		t.Fatal(err)
	}

	if !p.pos.WhiteMove {
		t.Error("after a full move pair (e2e4 e7e5), white should be to move again")
	}
	if len(p.history) != 2 {
		t.Errorf("history length = %d, want 2 (one hash key recorded before each move)", len(p.history))
	}
}

func TestPositionCommandFEN(t *testing.T) {
	var p = newTestProtocol()
	var fen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	if err := p.positionCommand(strings.Fields("fen " + fen)); err != nil {
		t.Fatal(err)
	}

	var want, err = board.NewPositionFromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	if p.pos != want {
		t.Errorf("position after `position fen ...` does not match the parsed FEN")
	}
	if len(p.history) != 0 {
		t.Errorf("history length = %d, want 0 with no moves appended", len(p.history))
	}
}

func TestPositionCommandIllegalMove(t *testing.T) {
	var p = newTestProtocol()
	var err = p.positionCommand(strings.Fields("startpos moves e2e5"))
	if err == nil {
		t.Fatal("expected an error for an illegal move, got nil")
	}
}

func TestPositionCommandMissingSpec(t *testing.T) {
	var p = newTestProtocol()
	if err := p.positionCommand(nil); err == nil {
		t.Fatal("expected an error for a position command with no spec")
	}
}

func TestPositionCommandUnrecognizedSpec(t *testing.T) {
	var p = newTestProtocol()
	if err := p.positionCommand([]string{"bogus"}); err == nil {
		t.Fatal("expected an error for an unrecognized position spec")
	}
}

func TestUCICommandAnnouncesIdentityAndOptions(t *testing.T) {
	var p = newTestProtocol()
	var out bytes.Buffer
	p.out = &out

	p.uciCommand()

	var text = out.String()
	for _, want := range []string{"id name Testbird", "id author nobody", "option name Hash", "option name Threads", "uciok"} {
		if !strings.Contains(text, want) {
			t.Errorf("uci output missing %q, got:\n%s", want, text)
		}
	}
}

func TestSetOptionCommandHash(t *testing.T) {
	var p = newTestProtocol()
	p.setOptionCommand(strings.Fields("name Hash value 128"), discardLogger())
	if p.engine.Options.Hash != 128 {
		t.Errorf("Hash = %d, want 128", p.engine.Options.Hash)
	}
}

func TestSetOptionCommandThreads(t *testing.T) {
	var p = newTestProtocol()
	p.setOptionCommand(strings.Fields("name Threads value 4"), discardLogger())
	if p.engine.Options.Threads != 4 {
		t.Errorf("Threads = %d, want 4", p.engine.Options.Threads)
	}
}

func TestSetOptionCommandUnknownOptionIsIgnored(t *testing.T) {
	var p = newTestProtocol()
	var before = p.engine.Options
	p.setOptionCommand(strings.Fields("name MultiPV value 3"), discardLogger())
	if p.engine.Options != before {
		t.Error("an unrecognized option must not change any engine option")
	}
}

// Run end to end against a mate-in-one position: uci/isready/position/go
// must produce a bestmove line naming the only mating move, and the end of
// input must terminate the loop without hanging.
func TestRunEndToEndFindsMate(t *testing.T) {
	var p = newTestProtocol()
	var in = strings.NewReader("uci\nisready\nposition fen k7/8/2K5/8/8/8/8/1Q6 w - - 0 1\ngo depth 3\n")
	var out bytes.Buffer

	p.Run(in, &out, discardLogger())

	var text = out.String()
	if !strings.Contains(text, "uciok") {
		t.Error("missing uciok")
	}
	if !strings.Contains(text, "readyok") {
		t.Error("missing readyok")
	}
	if !strings.Contains(text, "bestmove b1b7") {
		t.Errorf("missing the mating bestmove, got:\n%s", text)
	}
}

// A goodbye latched before the search goroutine finishes must suppress
// its bestmove write.
func TestQuitSuppressesBestmove(t *testing.T) {
	var p = newTestProtocol()
	var in = strings.NewReader("position startpos\ngo infinite\nquit\n")
	var out bytes.Buffer

	p.Run(in, &out, discardLogger())

	if strings.Contains(out.String(), "bestmove") {
		t.Errorf("quit during an infinite search must suppress bestmove, got:\n%s", out.String())
	}
}

func TestUCINewGameResetsPositionAndHistory(t *testing.T) {
	var p = newTestProtocol()
	if err := p.positionCommand(strings.Fields("startpos moves e2e4")); err != nil {
		t.Fatal(err)
	}

	if !p.handle("ucinewgame", discardLogger()) {
		t.Fatal("ucinewgame must not terminate the loop")
	}

	var want, _ = board.NewPositionFromFEN(board.InitialPositionFEN)
	if p.pos != want {
		t.Error("ucinewgame did not reset the tracked position to the starting position")
	}
	if p.history != nil {
		t.Errorf("ucinewgame did not clear move history, got %v", p.history)
	}
}
