package search

import (
	"math/rand"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nullmove-dev/chesscore/internal/board"
	"github.com/nullmove-dev/chesscore/internal/protocol"
)

const (
	// ThreadTickInterval is the control loop's polling period.
	ThreadTickInterval = 30 * time.Millisecond
	// StatsUpdateInterval is how often aggregated stats reach the protocol.
	StatsUpdateInterval = 3 * time.Second
)

// Limits bounds one JobRunner.Start call. Depth 0, Nodes 0, and a zero Time
// each mean "unlimited on this axis"; Infinite disables both the Nodes and
// the Time check.
type Limits struct {
	Depth    int
	Nodes    uint64
	Time     time.Duration
	Infinite bool
}

// JobRunner is the search's main-thread lifecycle: it owns the table and
// communicator, spawns one Job per worker, runs the control loop that
// aggregates their JobResults and enforces limits, and reports the final
// choice to the Protocol.
type JobRunner struct {
	tt   *TranspositionTable
	comm *JobCommunicator
	proto protocol.Protocol

	mu      sync.Mutex // guards deferred resize/clear, mirrors tt.Lock's contract
	running bool
	wg      sync.WaitGroup

	pendingResizeMB int
	pendingClear    bool
	canChangeHash   bool
}

// NewJobRunner wires a runner to an existing table and protocol adapter.
func NewJobRunner(tt *TranspositionTable, proto protocol.Protocol) *JobRunner {
	if proto == nil {
		proto = protocol.NewLoggingProtocol()
	}
	return &JobRunner{
		tt:            tt,
		comm:          NewJobCommunicator(),
		proto:         proto,
		canChangeHash: true,
	}
}

// Go joins any previous search and launches a new one on a background
// goroutine, returning immediately; callers that want a synchronous search
// call Start directly instead.
func (r *JobRunner) Go(root *board.Position, history []uint64, limits Limits, numWorkers int) {
	r.Join()
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.Start(root, history, limits, numWorkers)
	}()
}

// Start resets the communicator, bumps the TT epoch, spawns numWorkers jobs (0 or negative picks GOMAXPROCS), and runs
// the control loop to completion before returning. Start does not wait for a
// search already in flight; Go joins the previous search before calling it.
// Callers that want the search to run in the background should call Go
// instead.
func (r *JobRunner) Start(root *board.Position, history []uint64, limits Limits, numWorkers int) {
	r.mu.Lock()
	r.running = true
	r.canChangeHash = false
	r.mu.Unlock()

	r.comm.Reset()
	r.tt.NextEpoch()

	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	if root.GenerateLegalMoves().Len() == 0 {
		r.proto.FinishSearch(board.NullMove)
		r.mu.Lock()
		r.running = false
		r.canChangeHash = true
		r.mu.Unlock()
		r.applyDeferred()
		return
	}

	jobs := make([]*Job, numWorkers)
	for i := range jobs {
		jobs[i] = NewJob(i, root, history, r.tt, r.comm)
	}

	var g errgroup.Group
	start := time.Now()
	for i, job := range jobs {
		job := job
		isMain := i == 0
		g.Go(func() error {
			job.Run(limits.Depth, func(depth, score int, move board.Move, pv []board.Move) {
				if isMain {
					r.proto.SendResult(protocol.SearchResult{
						Move:  move,
						Score: score,
						PV:    pv,
						Depth: depth,
						Nodes: r.totalNodes(jobs),
					})
				}
			})
			return nil
		})
	}

	// A depth- or node-bounded job can finish before any control-loop limit
	// fires; wake the loop once every worker is done so it isn't left
	// polling a stop signal nothing would otherwise send.
	allDone := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(allDone)
		r.comm.Stop()
	}()

	r.controlLoop(jobs, limits, start)
	<-allDone

	best := r.chooseBest(root, jobs)
	r.proto.FinishSearch(best)

	r.mu.Lock()
	r.running = false
	r.canChangeHash = true
	r.mu.Unlock()
	r.applyDeferred()
}

// controlLoop polls every ThreadTickInterval, signaling stop once a limit is
// exceeded, and publishes aggregated stats every StatsUpdateInterval.
func (r *JobRunner) controlLoop(jobs []*Job, limits Limits, start time.Time) {
	lastStats := start
	for {
		stopped := r.comm.Wait(ThreadTickInterval)
		elapsed := time.Since(start)

		if !limits.Infinite {
			if limits.Nodes > 0 && r.totalNodes(jobs) > limits.Nodes {
				r.comm.Stop()
			}
			if limits.Time > 0 && elapsed > limits.Time {
				r.comm.Stop()
			}
		}

		if time.Since(lastStats) >= StatsUpdateInterval {
			r.proto.SendNodeCount(r.totalNodes(jobs))
			r.proto.SendHashHits(r.totalHits(jobs))
			lastStats = time.Now()
		}

		if r.comm.IsStopped() || stopped {
			r.comm.Stop() // ensure workers observe it even if we stopped locally above
			break
		}
	}
}

func (r *JobRunner) totalNodes(jobs []*Job) uint64 {
	var total uint64
	for _, j := range jobs {
		total += j.Results.snapshotNodes()
	}
	return total
}

func (r *JobRunner) totalHits(jobs []*Job) uint64 {
	var total uint64
	for _, j := range jobs {
		total += j.Results.snapshotTTHits()
	}
	return total
}

// chooseBest picks the job with the highest completed depth, breaking ties
// by job id. If every job completed zero depth, fall back to a uniformly
// random legal move, or the null move if none exists.
func (r *JobRunner) chooseBest(root *board.Position, jobs []*Job) board.Move {
	bestIdx := -1
	bestDepth := -1
	for i, j := range jobs {
		d := j.Results.snapshotDepth()
		if d > bestDepth {
			bestDepth = d
			bestIdx = i
		}
	}

	if bestIdx >= 0 && bestDepth > 0 {
		return jobs[bestIdx].Results.snapshotMove()
	}

	moves := root.GenerateLegalMoves()
	if moves.Len() == 0 {
		return board.NullMove
	}
	return moves.Get(rand.Intn(moves.Len()))
}

// Join blocks until any in-flight search has returned.
func (r *JobRunner) Join() {
	r.wg.Wait()
}

// Stop requests the in-flight search to halt at the next poll.
func (r *JobRunner) Stop() {
	r.comm.Stop()
}

// RequestHashResize asks the table to be resized to sizeMB once no search is
// in flight, applying immediately if one isn't.
func (r *JobRunner) RequestHashResize(sizeMB int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.canChangeHash {
		r.tt.Resize(sizeMB)
		return
	}
	r.pendingResizeMB = sizeMB
}

// RequestHashClear asks the table to be cleared once no search is in
// flight, applying immediately if one isn't.
func (r *JobRunner) RequestHashClear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.canChangeHash {
		r.tt.Clear()
		return
	}
	r.pendingClear = true
}

func (r *JobRunner) applyDeferred() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pendingResizeMB > 0 {
		r.tt.Resize(r.pendingResizeMB)
		r.pendingResizeMB = 0
	}
	if r.pendingClear {
		r.tt.Clear()
		r.pendingClear = false
	}
}
