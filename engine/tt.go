package engine

import "sync/atomic"

// boundKind is the transposition entry's score-bound classification.
type boundKind uint8

const (
	boundNone boundKind = iota
	boundExact
	boundLower
	boundUpper
)

// ttEntry packs move/score/depth/bound/generation into one 64-bit word and
// stores it XORed with the hash key. Multiple workers write the same slot
// without synchronization; a torn read manifests as a key mismatch on
// retrieval, never as a usable-but-wrong entry, because the key can only be
// recovered by XORing a payload written atomically alongside it.
type ttEntry struct {
	keyXorData uint64
	data       uint64
}

func packData(move int32, score int16, depth int8, bound boundKind, generation uint8) uint64 {
	return uint64(uint32(move)) |
		uint64(uint16(score))<<32 |
		uint64(uint8(depth))<<48 |
		uint64(bound)<<56 |
		uint64(generation)<<58
}

func unpackData(data uint64) (move int32, score int16, depth int8, bound boundKind, generation uint8) {
	move = int32(uint32(data))
	score = int16(uint16(data >> 32))
	depth = int8(uint8(data >> 48))
	bound = boundKind((data >> 56) & 0x3)
	generation = uint8((data >> 58) & 0x3f)
	return
}

// transTable is the shared, racy-tolerant hash table described in the
// concurrency model: reads and writes from any worker goroutine without
// locks.
type transTable struct {
	entries    []ttEntry
	mask       uint64
	generation uint32
}

func newTransTable(sizeMB int) *transTable {
	var size = roundPowerOfTwo((sizeMB * 1024 * 1024) / 16)
	if size < 1 {
		size = 1
	}
	return &transTable{entries: make([]ttEntry, size), mask: uint64(size - 1)}
}

func roundPowerOfTwo(size int) int {
	var result = 1
	for result < size {
		result <<= 1
	}
	return result
}

func (tt *transTable) IncGeneration() {
	atomic.AddUint32(&tt.generation, 1)
}

func (tt *transTable) Clear() {
	tt.entries = make([]ttEntry, len(tt.entries))
	atomic.StoreUint32(&tt.generation, 0)
}

func valueToTT(v, ply int) int {
	switch {
	case v >= MaxEval:
		return v + ply
	case v <= -MaxEval:
		return v - ply
	default:
		return v
	}
}

func valueFromTT(v, ply int) int {
	switch {
	case v >= MaxEval:
		return v - ply
	case v <= -MaxEval:
		return v + ply
	default:
		return v
	}
}

// Store persists a search result, mate-adjusting the score relative to the
// root so it survives being retrieved from a different ply later.
func (tt *transTable) Store(key uint64, move int32, score int, bound boundKind, depth, ply int) {
	var idx = key & tt.mask
	var generation = uint8(atomic.LoadUint32(&tt.generation))
	var adjusted = valueToTT(score, ply)
	var data = packData(move, int16(adjusted), int8(depth), bound, generation)
	tt.entries[idx] = ttEntry{keyXorData: key ^ data, data: data}
}

// Probe returns the stored move/score/bound/depth for key, and whether the
// slot's key matched (a torn or empty entry reports ok=false).
func (tt *transTable) Probe(key uint64, ply int) (move int32, score int, bound boundKind, depth int, ok bool) {
	var idx = key & tt.mask
	var entry = tt.entries[idx]
	if entry.keyXorData^entry.data != key {
		return 0, 0, boundNone, 0, false
	}
	var m, s, d, b, _ = unpackData(entry.data)
	if b == boundNone {
		return 0, 0, boundNone, 0, false
	}
	return m, valueFromTT(int(s), ply), b, int(d), true
}

// MoveOnly is the IID-time probe that only cares about the hash move,
// ignoring depth/bound sufficiency.
func (tt *transTable) MoveOnly(key uint64) (move int32, ok bool) {
	var idx = key & tt.mask
	var entry = tt.entries[idx]
	if entry.keyXorData^entry.data != key {
		return 0, false
	}
	var m, _, _, b, _ = unpackData(entry.data)
	return m, b != boundNone
}
