package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jakecoffman/cp/v2"

	"github.com/san-kum/tokensort/internal/catalog"
	"github.com/san-kum/tokensort/internal/config"
	"github.com/san-kum/tokensort/internal/geom"
	"github.com/san-kum/tokensort/internal/session"
	"github.com/san-kum/tokensort/internal/storage"
	"github.com/san-kum/tokensort/internal/world"
)

// Handle is a stable index into the engine's token arena. Handles are
// assigned once per item at session start and stay valid for the whole
// session, sorted or not.
type Handle int

const NoHandle Handle = -1

// MeasureFunc reports an item's rendered footprint in play-area units.
type MeasureFunc func(catalog.Item) (w, h float64)

func defaultMeasure(it catalog.Item) (float64, float64) {
	return float64(len(it.Label)) + 2, 2
}

type Options struct {
	Tuning  *config.Tuning
	Catalog *catalog.Catalog
	Ledger  *storage.Ledger // optional; nil keeps the best time in memory only
	Measure MeasureFunc     // optional; defaults to label-width sizing
	Now     func() time.Time
}

type Bucket struct {
	Category catalog.Category
	Rect     geom.Rect
	Items    []catalog.Item
}

type slot struct {
	item catalog.Item
	tok  *world.Token // nil once the item is sorted
}

type pendingLayout struct {
	bounds  geom.Rect
	buckets []geom.Rect
}

type Engine struct {
	tuning  *config.Tuning
	cat     *catalog.Catalog
	ledger  *storage.Ledger
	measure MeasureFunc
	rng     *rand.Rand

	world   *world.World
	bounds  geom.Rect
	region  geom.Rect // playable region: bounds minus edge guards and bucket row
	floorY  float64
	buckets []*Bucket

	slots  []*slot
	byItem map[string]Handle

	dragged    Handle
	mouseBody  *cp.Body
	dragJoint  *cp.Constraint
	dragTarget cp.Vector

	deferred *pendingLayout

	timer     *session.Timer
	sorted    int
	bestMs    int64
	hasBest   bool
	isNewBest bool
	done      bool
}

func New(opts Options) (*Engine, error) {
	if opts.Tuning == nil {
		opts.Tuning = config.Default()
	}
	if err := opts.Tuning.Validate(); err != nil {
		return nil, err
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Measure == nil {
		opts.Measure = defaultMeasure
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	seed := opts.Tuning.Seed
	if seed == 0 {
		seed = now().UnixNano()
	}

	e := &Engine{
		tuning:  opts.Tuning,
		cat:     opts.Catalog,
		ledger:  opts.Ledger,
		measure: opts.Measure,
		rng:     rand.New(rand.NewSource(seed)),
		dragged: NoHandle,
		timer:   session.NewTimerAt(now),
	}
	if e.ledger != nil {
		e.bestMs, e.hasBest = e.ledger.Best()
	}
	return e, nil
}

// Start measures the container, builds the world, and spawns every catalog
// item as a live token. bucketRects must line up with the catalog's
// category order; that order is also the hit-test priority.
func (e *Engine) Start(bounds geom.Rect, bucketRects []geom.Rect) error {
	if len(bucketRects) != len(e.cat.Categories) {
		return fmt.Errorf("expected %d bucket rects, got %d", len(e.cat.Categories), len(bucketRects))
	}
	if bounds.Empty() {
		return fmt.Errorf("container bounds are empty")
	}

	e.computeGeometry(bounds, bucketRects)
	e.world = world.New(e.tuning, e.bounds, e.floorY, e.rng)
	e.mouseBody = cp.NewKinematicBody()

	e.buckets = make([]*Bucket, len(e.cat.Categories))
	for i, cat := range e.cat.Categories {
		e.buckets[i] = &Bucket{Category: cat, Rect: bucketRects[i]}
	}

	e.slots = make([]*slot, 0, len(e.cat.Items))
	e.byItem = make(map[string]Handle, len(e.cat.Items))
	spawned := make([]*world.Token, 0, len(e.cat.Items))
	for i, it := range e.cat.Items {
		w, h := e.measure(it)
		pos := e.spawnPosition(i, len(e.cat.Items))
		tok := e.world.Spawn(it.ID, w, h, pos)
		e.slots = append(e.slots, &slot{item: it, tok: tok})
		e.byItem[it.ID] = Handle(len(e.slots) - 1)
		spawned = append(spawned, tok)
	}
	e.world.Scatter(spawned)

	e.dragged = NoHandle
	e.dragJoint = nil
	e.deferred = nil
	e.sorted = 0
	e.done = false
	e.isNewBest = false
	e.timer.Start()
	return nil
}

// Reset clears every bucket, respawns all items, and restarts the timer.
// The persisted best-time ledger is left untouched.
func (e *Engine) Reset() error {
	return e.Start(e.bounds, e.bucketRects())
}

// Resize recomputes boundary geometry and the display clamp for a new
// container size. A resize arriving mid-drag is deferred until the current
// drag ends.
func (e *Engine) Resize(bounds geom.Rect, bucketRects []geom.Rect) {
	if len(bucketRects) != len(e.buckets) || bounds.Empty() {
		return
	}
	if e.dragged != NoHandle {
		e.deferred = &pendingLayout{bounds: bounds, buckets: bucketRects}
		return
	}
	e.applyLayout(bounds, bucketRects)
}

func (e *Engine) applyLayout(bounds geom.Rect, bucketRects []geom.Rect) {
	e.computeGeometry(bounds, bucketRects)
	for i, r := range bucketRects {
		e.buckets[i].Rect = r
	}
	e.world.SetBounds(e.bounds, e.floorY)
}

// computeGeometry derives the floor line and the playable region from the
// container bounds and the bucket row. The floor sits just above the
// highest bucket; the playable region is the container inset by the edge
// guard with its bottom raised to the floor.
func (e *Engine) computeGeometry(bounds geom.Rect, bucketRects []geom.Rect) {
	bucketTop := bounds.Bottom()
	for _, r := range bucketRects {
		if r.Y < bucketTop {
			bucketTop = r.Y
		}
	}
	e.bounds = bounds
	e.floorY = bucketTop - e.tuning.FloorGap

	guard := e.tuning.EdgeGuard
	e.region = geom.Rect{
		X: bounds.X + guard,
		Y: bounds.Y + guard,
		W: bounds.W - 2*guard,
		H: e.floorY - (bounds.Y + guard),
	}
	if e.region.Empty() {
		// Degenerate containers still need a usable region.
		e.region = bounds
	}
}

func (e *Engine) bucketRects() []geom.Rect {
	rects := make([]geom.Rect, len(e.buckets))
	for i, b := range e.buckets {
		rects[i] = b.Rect
	}
	return rects
}

func (e *Engine) spawnPosition(i, n int) cp.Vector {
	step := e.region.W / float64(n)
	x := e.region.X + (float64(i)+0.5)*step
	y := e.region.Y + e.region.H*0.25 + e.rng.Float64()*e.region.H*0.25
	return cp.Vector{X: x, Y: y}
}

// Step advances the session one simulation tick: elastic mouse follow,
// physics, grace countdowns, rescue, and the derived completion check, in
// that order. There is exactly one stepping authority; the render loop
// calls this and nothing else does.
func (e *Engine) Step() {
	if e.world == nil {
		return
	}
	e.stepMouse()
	e.world.Step()
	e.tickGrace()
	e.rescueTick()
	e.maybeFinish()
}

func (e *Engine) tickGrace() {
	for _, s := range e.slots {
		if s.tok == nil || s.tok.Phase != world.PhaseGrace {
			continue
		}
		s.tok.GraceTicks--
		if s.tok.GraceTicks <= 0 {
			s.tok.GraceTicks = 0
			s.tok.Phase = world.PhaseIdle
		}
	}
}

// maybeFinish evaluates completion as a pure derived condition rather than
// a special-cased event, and stops the timer exactly once.
func (e *Engine) maybeFinish() {
	if e.done || e.sorted != len(e.slots) || len(e.slots) == 0 {
		return
	}
	e.done = true
	e.timer.Stop()
	elapsed := e.timer.ElapsedMs()

	if e.ledger != nil {
		e.isNewBest = e.ledger.RecordCompletion(elapsed)
	} else {
		e.isNewBest = !e.hasBest || elapsed < e.bestMs
	}
	if e.isNewBest {
		e.bestMs = elapsed
		e.hasBest = true
	}
}

func (e *Engine) SortedCount() int { return e.sorted }
func (e *Engine) TotalCount() int  { return len(e.slots) }
func (e *Engine) Done() bool       { return e.done }

// LiveCount reports the number of tokens still in play. The conservation
// invariant live + sorted == total holds after every operation.
func (e *Engine) LiveCount() int {
	if e.world == nil {
		return 0
	}
	return e.world.LiveCount()
}

func (e *Engine) Buckets() []*Bucket { return e.buckets }

// DraggedItem reports the item currently captured by the pointer. The
// pointer may have grabbed a neighbor of the token the caller aimed at, so
// scripted drivers read this instead of assuming.
func (e *Engine) DraggedItem() (catalog.Item, bool) {
	if e.dragged == NoHandle {
		return catalog.Item{}, false
	}
	return e.slots[e.dragged].item, true
}

func (e *Engine) ElapsedMs() int64 { return e.timer.ElapsedMs() }

func (e *Engine) Best() (int64, bool) { return e.bestMs, e.hasBest }
