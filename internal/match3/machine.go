package match3

import (
	"fmt"
	"math/rand"
	"time"
)

// Outcome is the engine's answer to player input.
type Outcome int

const (
	// OutcomeIgnored means input arrived while a pass was running, the
	// session was over or no moves were left.
	OutcomeIgnored Outcome = iota
	// OutcomeSelected means a tile is now selected and waits for a partner.
	OutcomeSelected
	// OutcomeRejected means the target tile cannot be selected at all.
	OutcomeRejected
	// OutcomeInvalid means the swap was refused; no move was consumed.
	OutcomeInvalid
	// OutcomeAccepted means the swap was committed and a pass started.
	OutcomeAccepted
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeSelected:
		return "selected"
	case OutcomeRejected:
		return "rejected"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeAccepted:
		return "accepted"
	default:
		return "unknown"
	}
}

// Status is a read-only view of the session counters.
type Status struct {
	Phase    Phase
	Score    int
	Moves    int
	Chain    int
	Paused   bool
	Speed    float64
	Selected *Position
	Result   *Result
}

// Option configures a Machine.
type Option func(*Machine)

// WithTrace records decisions to tr.
func WithTrace(tr *Trace) Option {
	return func(m *Machine) { m.trace = tr }
}

// WithLayout makes generated boards follow layout: explicit kinds stay,
// KindRandom cells are drawn. Used when no board is passed to NewMachine and
// on Restart(nil).
func WithLayout(layout [][]Kind) Option {
	return func(m *Machine) { m.layout = layout }
}

// WithPhaseListener is called on every phase change.
func WithPhaseListener(fn func(from, to Phase)) Option {
	return func(m *Machine) { m.onPhase = fn }
}

// WithChangeListener is called with a fresh snapshot after every board
// mutation.
func WithChangeListener(fn func(Snapshot)) Option {
	return func(m *Machine) { m.onChange = fn }
}

// Machine owns a board and sequences resolution passes on its scheduler.
// It is not safe for concurrent use; drive it from one goroutine.
type Machine struct {
	settings Settings
	board    *Board
	gen      *Generator
	rng      *rand.Rand
	sched    *Scheduler
	trace    *Trace
	layout   [][]Kind

	phase    Phase
	score    int
	moves    int
	chain    int
	selected *Position
	result   *Result

	// Work carried between the steps of one pass.
	seeds   []Activation
	pending *DestroySet

	// inMove is set while a player move's trace group is open.
	inMove bool

	// epoch changes on restart; callbacks from an older epoch do nothing.
	epoch int

	onPhase  func(from, to Phase)
	onChange func(Snapshot)
}

// NewMachine validates settings and creates a session in PhaseReady.
// If board is nil a random board is generated.
func NewMachine(settings Settings, board *Board, opts ...Option) (*Machine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(settings.Seed))
	m := &Machine{
		settings: settings,
		rng:      rng,
		gen:      NewGenerator(settings.Generation, rng),
		sched:    NewScheduler(settings.Timing.Speed),
		moves:    settings.Moves,
	}
	for _, opt := range opts {
		opt(m)
	}
	if board == nil {
		board = m.gen.Build(settings.Width, settings.Height, m.layout)
	}
	if err := m.checkBoard(board); err != nil {
		return nil, err
	}
	m.board = board
	return m, nil
}

// checkBoard accepts only complete, consistent boards of the session size.
func (m *Machine) checkBoard(b *Board) error {
	if b.Width != m.settings.Width || b.Height != m.settings.Height {
		return fmt.Errorf("match3: board is %dx%d, session wants %dx%d", b.Width, b.Height, m.settings.Width, m.settings.Height)
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if !b.Full() {
		return fmt.Errorf("match3: board %dx%d has empty cells", b.Width, b.Height)
	}
	return nil
}

// Start leaves PhaseReady. Matches already on the board resolve without
// consuming a move. Returns false if the machine was not ready.
func (m *Machine) Start() bool {
	if m.phase != PhaseReady {
		return false
	}
	m.setPhase(PhaseIdle)
	if HasMatches(m.board) {
		m.trace.Logf("Board has matches at start. Resolving.")
		m.beginPass(0)
	}
	return true
}

func (m *Machine) acceptsInput() bool {
	return m.phase == PhaseIdle && m.moves > 0
}

// Select applies click semantics: the first click selects, a click on an
// adjacent tile swaps, any other click moves the selection.
func (m *Machine) Select(p Position) Outcome {
	if !m.acceptsInput() {
		return OutcomeIgnored
	}
	t := m.board.At(p)
	if t == nil || !t.Kind.Swappable() {
		m.trace.Logf("Click at %s rejected", p)
		return OutcomeRejected
	}
	if m.selected == nil || *m.selected == p || !m.selected.Adjacent(p) {
		m.selected = &p
		m.trace.Logf("Tile selected at %s", p)
		return OutcomeSelected
	}
	from := *m.selected
	m.selected = nil
	return m.Swap(from, p)
}

// Swap tries to exchange the tiles at a and c.
func (m *Machine) Swap(a, c Position) Outcome {
	if !m.acceptsInput() {
		return OutcomeIgnored
	}
	m.selected = nil
	m.trace.Group(fmt.Sprintf("Player Move: swap %s <-> %s", a, c))

	plan := PlanSwap(m.board, a, c)
	switch plan.Verdict {
	case VerdictOK:
	case VerdictUnswappable:
		m.trace.Logf("Swap rejected: %s", plan.Verdict)
		m.trace.End()
		return OutcomeRejected
	default:
		m.trace.Logf("Swap is invalid: %s", plan.Verdict)
		m.trace.End()
		return OutcomeInvalid
	}

	m.trace.Logf("Swap is valid. Found %d matched tiles. Specials triggered: %d", plan.Matches, len(plan.Seeds))
	if plan.Exchange {
		m.board.exchange(plan.A, plan.B)
	}
	m.moves--
	m.trace.Logf("Decrementing moves. New count: %d", m.moves)
	m.changed()

	m.seeds = plan.Seeds
	m.inMove = true
	m.beginPass(m.settings.Timing.SwapDelay)
	return OutcomeAccepted
}

func (m *Machine) beginPass(delay time.Duration) {
	m.chain = 0
	m.setPhase(PhaseMatching)
	m.schedule(delay, m.runMatching)
}

// schedule runs fn after d unless the session is restarted first.
func (m *Machine) schedule(d time.Duration, fn func()) {
	epoch := m.epoch
	m.sched.After(d, func() {
		if m.epoch != epoch {
			return
		}
		fn()
	})
}

func (m *Machine) runMatching() {
	m.setPhase(PhaseMatching)
	m.trace.Group(fmt.Sprintf("Chain %d", m.chain+1))
	m.trace.Logf("Phase: MATCHING. Searching for matches in board of %d tiles.", m.board.Len())

	matches := FindMatches(m.board)
	set := Resolve(m.board, matches, m.seeds, m.rng, m.trace)
	m.seeds = nil
	if set.Len() == 0 {
		m.trace.Logf("No matches or specials to process.")
		m.trace.End()
		m.finishPass()
		return
	}
	m.chain++
	m.pending = set
	m.schedule(0, m.runRemoving)
}

func (m *Machine) runRemoving() {
	m.setPhase(PhaseRemoving)
	set := m.pending
	ApplyArmor(m.board, set, m.trace)

	delta := ScoreDelta(set.Len(), m.chain)
	m.score += delta
	m.trace.Logf("Phase: REMOVING. Destroying %d tiles for %d points (chain %d).", set.Len(), delta, m.chain)
	for _, t := range set.Tiles() {
		t.Matched = true
	}
	m.changed()

	if m.settings.Mode == ModeTarget && m.score >= m.settings.FinishScore {
		m.trace.Logf("WIN CONDITION MET: score %d >= finish score %d", m.score, m.settings.FinishScore)
		m.schedule(m.settings.Timing.MatchDelay, func() {
			m.trace.End()
			m.finish(Result{Phase: PhaseWin, Score: m.score, Stars: m.settings.Thresholds.Stars(m.score)})
		})
		return
	}
	m.schedule(m.settings.Timing.MatchDelay, m.commitRemoval)
}

func (m *Machine) commitRemoval() {
	m.board.Remove(m.pending.IDs())
	m.pending = nil

	m.setPhase(PhaseGravity)
	m.trace.Logf("Phase: GRAVITY. Applying gravity to remaining tiles.")
	Compact(m.board, m.trace)
	m.changed()
	m.schedule(m.settings.Timing.FallDelay, m.runRefill)
}

func (m *Machine) runRefill() {
	m.setPhase(PhaseRefilling)
	m.gen.Refill(m.board, m.trace)
	m.changed()
	m.schedule(SettleDelay, m.settleRefill)
}

func (m *Machine) settleRefill() {
	SettleNew(m.board)
	if err := m.board.Validate(); err != nil {
		panic(err)
	}
	m.changed()
	m.schedule(m.settings.Timing.FallDelay, m.afterRefill)
}

func (m *Machine) afterRefill() {
	m.trace.End()
	m.runMatching()
}

func (m *Machine) finishPass() {
	m.chain = 0
	m.setPhase(PhaseIdle)
	res, done := Evaluate(m.settings.Mode, m.score, m.moves, m.settings.Thresholds, m.settings.FinishScore)
	if !done {
		m.trace.Logf("Pass finished. Setting phase to IDLE.")
		m.endMove()
		return
	}
	m.finish(res)
}

// endMove closes the trace group a player move opened. Passes run at start
// have none.
func (m *Machine) endMove() {
	if m.inMove {
		m.inMove = false
		m.trace.End()
	}
}

func (m *Machine) finish(res Result) {
	m.sched.CancelAll()
	m.pending = nil
	m.seeds = nil
	m.result = &res
	if res.Won() {
		m.trace.Logf("WIN: score %d, %d stars", res.Score, res.Stars)
	} else {
		m.trace.Logf("GAME OVER: score %d, no moves left", res.Score)
	}
	m.endMove()
	m.setPhase(res.Phase)
}

// Restart cancels everything in flight and resets the session. If board is
// nil a new board is generated from the session layout.
func (m *Machine) Restart(board *Board) error {
	custom := board != nil
	if !custom {
		board = m.gen.Build(m.settings.Width, m.settings.Height, m.layout)
	}
	if err := m.checkBoard(board); err != nil {
		return err
	}
	m.sched.CancelAll()
	m.epoch++
	m.trace.Reset()
	m.inMove = false
	m.trace.Logf("Restarting game. Custom board provided: %t", custom)

	m.board = board
	m.score = 0
	m.moves = m.settings.Moves
	m.chain = 0
	m.selected = nil
	m.result = nil
	m.seeds = nil
	m.pending = nil
	m.setPhase(PhaseReady)
	m.changed()
	return nil
}

// Advance moves the session clock forward by dt.
func (m *Machine) Advance(dt time.Duration) int {
	return m.sched.Advance(dt)
}

// Pause freezes every pending transition.
func (m *Machine) Pause() {
	m.sched.Pause()
}

// Resume continues after Pause.
func (m *Machine) Resume() {
	m.sched.Resume()
}

// Step fires exactly one pending transition while paused.
func (m *Machine) Step() bool {
	return m.sched.Step()
}

// Drain runs pending transitions without waiting, at most limit of them
// (limit <= 0 means until the pass settles).
func (m *Machine) Drain(limit int) int {
	return m.sched.Drain(limit)
}

// SetSpeed changes the game speed for transitions scheduled from now on.
func (m *Machine) SetSpeed(speed float64) error {
	if err := m.sched.SetSpeed(speed); err != nil {
		return err
	}
	m.settings.Timing.Speed = speed
	return nil
}

// Busy reports whether a resolution pass is in flight.
func (m *Machine) Busy() bool {
	return m.sched.Pending() > 0
}

// Snapshot returns a copy of the board.
func (m *Machine) Snapshot() Snapshot {
	return m.board.Snapshot()
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Score returns the running score.
func (m *Machine) Score() int {
	return m.score
}

// Moves returns the remaining moves.
func (m *Machine) Moves() int {
	return m.moves
}

// Result returns the final result once the session is over.
func (m *Machine) Result() (Result, bool) {
	if m.result == nil {
		return Result{}, false
	}
	return *m.result, true
}

// Trace returns the decision trace, possibly nil.
func (m *Machine) Trace() *Trace {
	return m.trace
}

// Settings returns the session settings.
func (m *Machine) Settings() Settings {
	return m.settings
}

// Status returns the session counters.
func (m *Machine) Status() Status {
	st := Status{
		Phase:  m.phase,
		Score:  m.score,
		Moves:  m.moves,
		Chain:  m.chain,
		Paused: m.sched.Paused(),
		Speed:  m.sched.Speed(),
	}
	if m.selected != nil {
		p := *m.selected
		st.Selected = &p
	}
	if m.result != nil {
		r := *m.result
		st.Result = &r
	}
	return st
}

func (m *Machine) setPhase(p Phase) {
	if m.phase == p {
		return
	}
	from := m.phase
	m.phase = p
	if m.onPhase != nil {
		m.onPhase(from, p)
	}
}

func (m *Machine) changed() {
	if m.onChange != nil {
		m.onChange(m.board.Snapshot())
	}
}
