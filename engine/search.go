package engine

import "github.com/kestrelchess/kestrel/board"

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (t *thread) quiesce(alpha, beta, ply int) int {
	return t.engine.quies(&t.pos, alpha, beta, ply, &t.nodes)
}

// search is the fail-soft negamax alpha-beta kernel: the returned score
// may lie outside [alpha, beta], letting the caller reason about how far
// beyond the bound the true value lies.
func (t *thread) search(alpha, beta, depth, ply int, wasNull bool, lastMove board.Move, lastCaptSq int) int {
	if depth <= 0 {
		return t.quiesce(alpha, beta, ply)
	}

	t.incNode()
	if t.engine.coord.abort() && t.rootDepth > 1 {
		return 0
	}

	var isPv = beta-alpha > 1

	t.keys[ply] = t.pos.HashKey()
	t.stack[ply].pv.clear()
	if ply > 0 {
		if t.pos.IsDraw() || t.isRepetition(ply) {
			return t.pos.DrawScore()
		}

		if beta > Mate-ply {
			beta = Mate - ply
			if alpha >= beta {
				return alpha
			}
		}
		if alpha < -Mate+ply {
			alpha = -Mate + ply
			if alpha >= beta {
				return beta
			}
		}
	}

	var key = t.pos.HashKey()
	var ttMove board.Move
	if m, score, bound, storedDepth, ok := t.engine.tt.Probe(key, ply); ok {
		ttMove = board.Move(m)
		if storedDepth >= depth {
			var usable = bound == boundExact ||
				(bound == boundLower && score >= beta) ||
				(bound == boundUpper && score <= alpha)
			if usable {
				if score >= beta && ttMove != board.MoveEmpty && ttMove.Captured() == board.Empty {
					t.history.raise(ttMove.Piece(), ttMove.To(), depth)
				}
				if !isPv {
					return score
				}
			}
		}
	}

	if ply >= MaxPly-1 {
		return t.engine.eval(&t.pos)
	}

	var flCheck = t.pos.IsCheck()
	var flPrunable = !flCheck && !isPv && alpha > -MaxEval && beta < MaxEval

	var staticEval int
	if flPrunable && (!wasNull || depth <= mscSelectiveDepth) {
		staticEval = t.engine.eval(&t.pos)
	}

	if t.engine.Options.StaticNull && flPrunable && depth <= mscSnpDepth && !wasNull {
		if margin := staticEval - 120*depth; margin > beta {
			return margin
		}
	}

	var refSq = board.SquareNone
	var didNull bool

	if t.engine.Options.NullMove && depth > 1 && !wasNull && flPrunable && t.pos.MayNull() && staticEval >= beta {
		var newDepth = depth - ((823 + 67*depth) / 256) - min(3, (staticEval-beta)/200)

		var skip bool
		if _, score, _, storedDepth, ok := t.engine.tt.Probe(key, ply); ok {
			if storedDepth >= newDepth && score < beta {
				skip = true
			}
		}

		if !skip {
			didNull = true
			t.pos.DoNull(&t.undo[ply])
			var nullKey = t.pos.HashKey()
			var score int
			if newDepth <= 0 {
				score = -t.quiesce(-beta, -beta+1, ply+1)
			} else {
				score = -t.search(-beta, -beta+1, newDepth, ply+1, true, board.MoveEmpty, board.SquareNone)
			}
			t.pos.UndoNull(&t.undo[ply])

			if score < beta {
				if refMove, ok := t.engine.tt.MoveOnly(nullKey); ok {
					refSq = board.Move(refMove).To()
				}
			}
			if score >= MaxEval {
				score = beta
			}
			if score >= beta {
				if newDepth > 6 {
					var verify = t.search(beta-1, beta, newDepth-5, ply, true, lastMove, lastCaptSq)
					if verify >= beta {
						return score
					}
				} else {
					return score
				}
			}
		}
	}

	if t.engine.Options.Razoring && flPrunable && ttMove == board.MoveEmpty && !wasNull && depth <= mscRazorDepth {
		var sideToMovePawns = t.pos.PawnsOf(t.pos.Side())
		var farRank = board.Rank7Mask
		if !t.pos.Side() {
			farRank = board.Rank2Mask
		}
		if sideToMovePawns&farRank == 0 {
			var threshold = beta - mscRazorMargin[depth]
			if staticEval < threshold {
				var qscore = t.quiesce(threshold-1, threshold, ply)
				if qscore < threshold {
					return qscore
				}
			}
		}
	}

	if t.engine.Options.IID && isPv && !flCheck && ttMove == board.MoveEmpty && depth > 6 {
		t.search(alpha, beta, depth-2, ply, false, lastMove, lastCaptSq)
		if m, ok := t.engine.tt.MoveOnly(key); ok {
			ttMove = board.Move(m)
		}
	}

	var best = -Infinite
	var buf [MaxMoves]board.OrderedMove
	var n = board.GenerateMoves(&t.pos, buf[:])
	scoreMoves(&t.pos, buf[:n], ttMove, &t.stack[ply].killers, refSq, &t.history)

	var mvTried, quietTried int
	var flFutility, futilityArmed, sherwinFlag bool
	var triedQuiets []board.Move

	for i := 0; i < n; i++ {
		var move = pickNext(buf[:n], i)

		var isBadCapture bool
		if move.Captured() != board.Empty {
			isBadCapture = !board.SeeGEZero(&t.pos, move)
		}
		var kind = move.Kind(isBadCapture)
		var isQuiet = kind == board.MoveNormal

		if !futilityArmed && isQuiet && flPrunable && depth <= mscFutDepth {
			flFutility = staticEval+mscFutMargin[depth] < beta
			futilityArmed = true
		}

		var mvHist = t.history.get(move.Piece(), move.To())
		var childLastCaptSq = board.SquareNone
		if move.Captured() != board.Empty {
			childLastCaptSq = move.To()
		}

		t.pos.DoMove(move, &t.undo[ply])
		if t.pos.Illegal() {
			t.pos.UndoMove(move, &t.undo[ply])
			continue
		}

		mvTried++
		if ply == 0 && mvTried > 1 {
			t.flRootChoice = true
		}
		if isQuiet {
			quietTried++
		}
		if ply == 0 {
			t.reportCurrMove(move, mvTried)
		}

		var givesCheck = t.pos.IsCheck()
		var newDepth = depth - 1

		if t.engine.Options.Extensions {
			if givesCheck && (isPv || depth < 8) {
				newDepth++
			} else if isPv && move.To() == lastCaptSq {
				newDepth++
			} else if isPv && depth < 6 && move.Piece() == board.Pawn &&
				(board.Rank(move.To()) == board.Rank2 || board.Rank(move.To()) == board.Rank7) {
				newDepth++
			}
		}

		if t.engine.Options.Futility && flFutility && !givesCheck && mvHist < histLimit && kind == board.MoveNormal && mvTried > 1 {
			t.pos.UndoMove(move, &t.undo[ply])
			continue
		}

		if t.engine.Options.LateMovePrn && flPrunable && depth <= 3 && quietTried > 3*depth && !givesCheck && mvHist < histLimit && kind == board.MoveNormal {
			t.pos.UndoMove(move, &t.undo[ply])
			continue
		}

		if didNull && depth > 2 && !givesCheck {
			var qs = t.quiesce(-beta, -beta+1, ply+1)
			if -qs >= beta {
				sherwinFlag = true
			}
		}

		var reduction int
		if t.engine.Options.LMR && depth > 2 && mvTried > 3 && !flCheck && !givesCheck &&
			kind == board.MoveNormal && mvHist < histLimit && !move.IsCastle() {
			if r := lmrReduction(isPv, depth, mvTried); r > 0 {
				reduction = r
				if sherwinFlag && newDepth-reduction >= 2 {
					reduction++
				}
				if mvHist < 0 && newDepth-reduction >= 2 {
					reduction++
				}
				newDepth -= reduction
			}
		} else if t.engine.Options.LMR && depth > 2 && mvTried > 6 && !flCheck && !givesCheck &&
			kind == board.MoveBadCapture && !isPv && alpha > -MaxEval && beta < MaxEval {
			reduction = 1
			newDepth--
		}

		var doPVS = func(d int) int {
			if best == -Infinite {
				return -t.search(-beta, -alpha, d, ply+1, false, move, childLastCaptSq)
			}
			var score = -t.search(-alpha-1, -alpha, d, ply+1, false, move, childLastCaptSq)
			if score > alpha && score < beta && !t.engine.coord.abort() {
				score = -t.search(-beta, -alpha, d, ply+1, false, move, childLastCaptSq)
			}
			return score
		}

		var score = doPVS(newDepth)
		if score > alpha && reduction > 0 {
			newDepth += reduction
			reduction = 0
			score = doPVS(newDepth)
		}

		t.pos.UndoMove(move, &t.undo[ply])

		if t.engine.coord.abort() && t.rootDepth > 1 {
			return 0
		}

		if isQuiet {
			triedQuiets = append(triedQuiets, move)
		}

		if score >= beta {
			if !flCheck && isQuiet {
				t.history.raise(move.Piece(), move.To(), depth)
				t.stack[ply].killers.update(move)
				for _, prior := range triedQuiets[:len(triedQuiets)-1] {
					t.history.lower(prior.Piece(), prior.To(), depth)
				}
			}
			t.engine.tt.Store(key, int32(move), score, boundLower, depth, ply)
			if ply == 0 {
				t.rootPV.assign(move, &t.stack[ply+1].pv)
				t.rootScore = score
				t.reportPV()
			}
			return score
		}

		if score > best {
			best = score
			if score > alpha {
				alpha = score
				t.stack[ply].pv.assign(move, &t.stack[ply+1].pv)
				if ply == 0 {
					t.rootPV = t.stack[ply].pv
					t.rootScore = score
					t.reportPV()
				}
			}
		}
	}

	if mvTried == 0 {
		if flCheck {
			return -Mate + ply
		}
		return t.pos.DrawScore()
	}

	if t.stack[ply].pv.n > 0 {
		t.engine.tt.Store(key, int32(t.stack[ply].pv.moves[0]), best, boundExact, depth, ply)
	} else {
		t.engine.tt.Store(key, 0, best, boundUpper, depth, ply)
	}
	return best
}
