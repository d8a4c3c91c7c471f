package game

import (
	"math/rand"
	"sort"
	"sync"
	"time"
)

// World is the single aggregate owning all live tanks and projectiles.
// Every mutation, gateway intents and the simulation tick alike, goes
// through its mutex, so a tick always sees whole entities.
type World struct {
	mu          sync.Mutex
	cfg         Config
	tanks       map[string]*Tank
	projectiles []*Projectile
	rng         *rand.Rand
}

func NewWorld(cfg Config) *World {
	return &World{
		cfg:   cfg,
		tanks: make(map[string]*Tank),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewWorldWithSeed builds a world with a deterministic spawn sequence.
func NewWorldWithSeed(cfg Config, seed int64) *World {
	w := NewWorld(cfg)
	w.rng = rand.New(rand.NewSource(seed))
	return w
}

func (w *World) Config() Config {
	return w.cfg
}

// AddTank creates a tank for a new session at a random safe spawn.
func (w *World) AddTank(id, name string) *Tank {
	w.mu.Lock()
	defer w.mu.Unlock()

	t := NewTank(id, name, w.cfg, w.rng)
	w.tanks[id] = t
	return t
}

// RemoveTank drops the tank and, because all cooldown bookkeeping lives on
// the Tank itself, every trace of the session in one step.
func (w *World) RemoveTank(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.tanks, id)
}

func (w *World) NumTanks() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.tanks)
}

func (w *World) NumProjectiles() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.projectiles)
}

// ApplyIntent forwards a movement intent to the session's tank.
// Unknown ids are a silent no-op.
func (w *World) ApplyIntent(id string, in Intent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.tanks[id]; ok {
		t.ApplyIntent(in)
	}
}

// Fire attempts a shot for the session's tank. On success the projectile is
// registered and returned so the caller can emit the shot event.
func (w *World) Fire(id string, now time.Time) *Projectile {
	w.mu.Lock()
	defer w.mu.Unlock()

	t, ok := w.tanks[id]
	if !ok {
		return nil
	}
	p := t.Fire(now)
	if p != nil {
		w.projectiles = append(w.projectiles, p)
	}
	return p
}

// Repair attempts a repair for the session's tank, returning the resulting
// hp and whether the repair was granted.
func (w *World) Repair(id string, now time.Time) (int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	t, ok := w.tanks[id]
	if !ok {
		return 0, false
	}
	if !t.Repair(now) {
		return t.HP, false
	}
	return t.HP, true
}

// Tank returns the live tank for id, or nil.
func (w *World) Tank(id string) *Tank {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tanks[id]
}

// sortedTanks returns tanks in ascending id order so that anything
// order-sensitive (hit tie-breaks, pair enumeration) is deterministic.
// Callers must hold w.mu.
func (w *World) sortedTanks() []*Tank {
	ids := make([]string, 0, len(w.tanks))
	for id := range w.tanks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*Tank, 0, len(ids))
	for _, id := range ids {
		out = append(out, w.tanks[id])
	}
	return out
}

// TickReport is everything one tick produced that the loop must translate
// into outbound events.
type TickReport struct {
	Respawned []string // session ids that came back to life this tick
	Hits      []HitOutcome
	Snapshot  WorldSnapshot
}

// Advance runs one full simulation step: tank integration and respawns,
// projectile integration and expiry, projectile-vs-tank combat, tank-vs-tank
// separation, then snapshot capture, all under one lock so the snapshot is
// coherent. A trailing age sweep catches projectiles that crossed their
// lifetime while the tick ran.
func (w *World) Advance(now time.Time, dt float64) TickReport {
	w.mu.Lock()
	defer w.mu.Unlock()

	var report TickReport

	tanks := w.sortedTanks()
	for _, t := range tanks {
		if t.Tick(now, dt, w.rng) {
			report.Respawned = append(report.Respawned, t.ID)
		}
	}

	live := w.projectiles[:0]
	for _, p := range w.projectiles {
		if p.Tick(now, dt) {
			live = append(live, p)
		}
	}
	w.projectiles = live

	report.Hits = resolveHits(w, tanks, now)
	resolveOverlaps(w.cfg, tanks)

	report.Snapshot = w.snapshotLocked(now)

	live = w.projectiles[:0]
	for _, p := range w.projectiles {
		if !p.Expired(now) {
			live = append(live, p)
		}
	}
	w.projectiles = live

	return report
}

// Snapshot captures the world state outside of a tick, e.g. for the stats
// endpoint or an initial send.
func (w *World) Snapshot(now time.Time) WorldSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked(now)
}

func (w *World) snapshotLocked(now time.Time) WorldSnapshot {
	snap := WorldSnapshot{
		Players:   make(map[string]TankSnapshot, len(w.tanks)),
		Bullets:   make([]ProjectileSnapshot, 0, len(w.projectiles)),
		Timestamp: now.UnixMilli(),
	}
	for id, t := range w.tanks {
		snap.Players[id] = t.Snapshot()
	}
	for _, p := range w.projectiles {
		snap.Bullets = append(snap.Bullets, p.Snapshot())
	}
	return snap
}
