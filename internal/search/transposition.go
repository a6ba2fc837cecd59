// Package search implements the concurrent Lazy-SMP search engine: a
// lock-free-read transposition table, per-worker job state, and the
// JobRunner that coordinates workers through a shared stop signal.
package search

import (
	"sync"
	"sync/atomic"

	"github.com/nullmove-dev/chesscore/internal/board"
)

// Bound indicates which side of the search window a stored score bounds.
type Bound uint8

const (
	BoundExact Bound = iota
	BoundLower
	BoundUpper
)

// Entry is the decoded contents of a transposition table slot.
type Entry struct {
	Key      uint64
	BestMove board.Move
	Score    int16
	Depth    int8
	Bound    Bound
	Epoch    uint8
}

// The packed payload word layout, low bit first:
//
//	bits 0-16:  move (17 bits: from 6, to 6, promo 2, kind 3)
//	bits 17-32: score, stored as uint16 bias-shifted to stay unsigned
//	bits 33-40: depth
//	bits 41-42: bound
//	bits 43-50: epoch
const (
	moveBits  = 17
	scoreBits = 16
	depthBits = 8
	boundBits = 2
	epochBits = 8

	moveShift  = 0
	scoreShift = moveShift + moveBits
	depthShift = scoreShift + scoreBits
	boundShift = depthShift + depthBits
	epochShift = boundShift + boundBits

	moveMask  = uint64(1)<<moveBits - 1
	scoreMask = uint64(1)<<scoreBits - 1
	depthMask = uint64(1)<<depthBits - 1
	boundMask = uint64(1)<<boundBits - 1
	epochMask = uint64(1)<<epochBits - 1

	scoreBias = 1 << 15 // recenters int16 into an unsigned 16-bit field
)

func packPayload(e Entry) uint64 {
	var p uint64
	p |= uint64(e.BestMove) & moveMask << moveShift
	p |= (uint64(int32(e.Score)+scoreBias) & scoreMask) << scoreShift
	p |= (uint64(uint8(e.Depth)) & depthMask) << depthShift
	p |= (uint64(e.Bound) & boundMask) << boundShift
	p |= (uint64(e.Epoch) & epochMask) << epochShift
	return p
}

func unpackPayload(key uint64, p uint64) Entry {
	return Entry{
		Key:      key,
		BestMove: board.Move((p >> moveShift) & moveMask),
		Score:    int16(int32((p>>scoreShift)&scoreMask) - scoreBias),
		Depth:    int8((p >> depthShift) & depthMask),
		Bound:    Bound((p >> boundShift) & boundMask),
		Epoch:    uint8((p >> epochShift) & epochMask),
	}
}

// slot is a single lock-free table cell. The stored "check" word is the XOR
// of the real key and the payload, the classic Lazy-SMP verification scheme:
// a torn concurrent read/write desyncs the XOR and the probe reports a miss
// instead of a hybrid, invalid-looking hit.
type slot struct {
	check   atomic.Uint64
	payload atomic.Uint64
}

func (s *slot) load() (Entry, bool) {
	payload := s.payload.Load()
	check := s.check.Load()
	key := check ^ payload
	if payload == 0 && check == 0 {
		return Entry{}, false
	}
	entry := unpackPayload(key, payload)
	return entry, true
}

func (s *slot) store(key uint64, e Entry) {
	payload := packPayload(e)
	s.payload.Store(payload)
	s.check.Store(key ^ payload)
}

// bucket holds two slots per position hash: a depth-preferred slot that
// resists overwrite within an epoch, and an always-replace slot.
type bucket struct {
	depthPreferred slot
	alwaysReplace  slot
}

// TranspositionTable is the fixed-capacity, power-of-two-bucketed, lock-free
// concurrent hash table shared by every search worker.
type TranspositionTable struct {
	mu      sync.Mutex // guards resize/clear; never held during a probe/store
	buckets []bucket
	mask    uint64
	epoch   atomic.Uint32

	probes atomic.Uint64
	hits   atomic.Uint64
}

const bucketSize = 32 // two slots * (8 + 8) bytes

// NewTranspositionTable builds a table sized to the largest power of two
// fitting in sizeMB megabytes.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	tt := &TranspositionTable{}
	tt.resizeLocked(sizeMB)
	return tt
}

func (tt *TranspositionTable) resizeLocked(sizeMB int) {
	numBuckets := roundDownToPowerOf2(uint64(sizeMB) * 1024 * 1024 / bucketSize)
	if numBuckets == 0 {
		numBuckets = 1
	}
	tt.buckets = make([]bucket, numBuckets)
	tt.mask = numBuckets - 1
}

func roundDownToPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up key, returning the decoded entry and whether it was found
// with a verified (non-torn, matching-key) check word. Any number of
// concurrent readers and writers may call Probe/Store simultaneously.
func (tt *TranspositionTable) Probe(key uint64) (Entry, bool) {
	tt.probes.Add(1)
	idx := key & tt.mask
	b := &tt.buckets[idx]

	if e, ok := b.depthPreferred.load(); ok && e.Key == key {
		tt.hits.Add(1)
		return e, true
	}
	if e, ok := b.alwaysReplace.load(); ok && e.Key == key {
		tt.hits.Add(1)
		return e, true
	}
	return Entry{}, false
}

// Store writes an entry for key. The depth-preferred slot is overwritten only
// if the new entry is from a different epoch than the one stored there, or is
// at least as deep; the always-replace slot is overwritten unconditionally.
func (tt *TranspositionTable) Store(key uint64, bestMove board.Move, depth int, score int, bound Bound) {
	idx := key & tt.mask
	b := &tt.buckets[idx]
	epoch := uint8(tt.epoch.Load())

	entry := Entry{
		Key:      key,
		BestMove: bestMove,
		Score:    int16(score),
		Depth:    int8(depth),
		Bound:    bound,
		Epoch:    epoch,
	}

	if existing, ok := b.depthPreferred.load(); !ok || existing.Epoch != epoch || entry.Depth >= existing.Depth {
		b.depthPreferred.store(key, entry)
	}
	b.alwaysReplace.store(key, entry)
}

// NextEpoch bumps the generation counter; entries tagged with a stale epoch
// become eligible for depth-preferred replacement regardless of depth.
func (tt *TranspositionTable) NextEpoch() {
	tt.epoch.Add(1)
}

// Epoch returns the table's current generation.
func (tt *TranspositionTable) Epoch() uint8 {
	return uint8(tt.epoch.Load())
}

// Clear zeroes every slot. Callers must ensure no search is in flight.
func (tt *TranspositionTable) Clear() {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	for i := range tt.buckets {
		tt.buckets[i] = bucket{}
	}
	tt.probes.Store(0)
	tt.hits.Store(0)
}

// Resize rebuilds the table at sizeMB megabytes, always discarding every old
// entry. Callers must ensure no search is in flight.
func (tt *TranspositionTable) Resize(sizeMB int) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.resizeLocked(sizeMB)
}

// Lock/Unlock expose the table's resize/clear mutex to callers. JobRunner
// does not use them; it buffers deferred resize/clear requests under its own
// mutex.
func (tt *TranspositionTable) Lock()   { tt.mu.Lock() }
func (tt *TranspositionTable) Unlock() { tt.mu.Unlock() }

// Size returns the number of buckets (each holding two slots).
func (tt *TranspositionTable) Size() uint64 {
	return uint64(len(tt.buckets))
}

// HashFull returns the permille of the table that holds a current-epoch
// depth-preferred entry, sampled over the first 1000 buckets.
func (tt *TranspositionTable) HashFull() int {
	epoch := uint8(tt.epoch.Load())
	sample := 1000
	if uint64(sample) > tt.Size() {
		sample = int(tt.Size())
	}
	used := 0
	for i := 0; i < sample; i++ {
		if e, ok := tt.buckets[i].depthPreferred.load(); ok && e.Epoch == epoch {
			used++
		}
	}
	if sample == 0 {
		return 0
	}
	return used * 1000 / sample
}

// HitRate returns the cumulative probe hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	probes := tt.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(tt.hits.Load()) / float64(probes) * 100
}

// Probes returns the cumulative probe count (used for aggregated stats).
func (tt *TranspositionTable) Probes() uint64 { return tt.probes.Load() }

// Hits returns the cumulative hit count (used for aggregated stats).
func (tt *TranspositionTable) Hits() uint64 { return tt.hits.Load() }

// MateScore is the sentinel magnitude for a forced mate, per the
// position-cost moves-to-mate encoding: a positive score means the side to
// move delivers mate, a negative score means it is the side getting mated.
// Both count down from the sentinel by one per ply of depth (see
// AdjustScoreToTT/AdjustScoreFromTT).
const MateScore = 32000

// MaxPly bounds the distance adjustment applied to mate scores crossing a
// TT probe/store boundary.
const MaxPly = 128

// AdjustScoreFromTT converts a stored mate score (distance from the TT node)
// into a mate score relative to the search root (distance ply away).
func AdjustScoreFromTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT converts a root-relative mate score into one stored
// relative to the TT node, undoing AdjustScoreFromTT.
func AdjustScoreToTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}
