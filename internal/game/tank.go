package game

import (
	"math"
	"math/rand"
	"time"
)

type TankState uint8

const (
	StateAlive TankState = iota
	StateDead  // waiting for respawnAt to elapse
)

func (s TankState) String() string {
	switch s {
	case StateAlive:
		return "alive"

	case StateDead:
		return "dead"

	default:
		return "unknown"
	}
}

// Intent is a client-supplied desired action, applied before or at the next tick.
// DX/DY are a normalized direction in [-1,1]; the zero vector means "no
// directional input" and leaves velocity to friction alone.
type Intent struct {
	DX, DY float64
	Boost  bool
}

// DamageResult reports what a TakeDamage call did, so the loop can translate
// it into outbound events without the entity knowing about transport.
type DamageResult struct {
	Applied  bool // false when the tank was already dead
	Died     bool
	Attacker string
}

type Tank struct {
	ID   string
	Name string

	X, Y          float64
	VX, VY        float64
	Heading       float64 // radians
	TargetHeading float64

	HP    int
	Score int

	state      TankState
	respawnAt  time.Time // valid only while state == StateDead
	lastShot   time.Time
	lastRepair time.Time

	cfg Config
}

// NewTank spawns a tank at a random safe position inside the arena margin.
func NewTank(id, name string, cfg Config, rng *rand.Rand) *Tank {
	t := &Tank{
		ID:    id,
		Name:  name,
		HP:    cfg.MaxHealth,
		state: StateAlive,
		cfg:   cfg,
	}
	t.X, t.Y = randomSpawn(cfg, rng)
	return t
}

func randomSpawn(cfg Config, rng *rand.Rand) (float64, float64) {
	span := cfg.ArenaSize - 2*cfg.SpawnMargin
	return cfg.SpawnMargin + rng.Float64()*span, cfg.SpawnMargin + rng.Float64()*span
}

func (t *Tank) Alive() bool {
	return t.state == StateAlive
}

// RespawnAt returns the scheduled respawn time; meaningful only while dead.
func (t *Tank) RespawnAt() time.Time {
	return t.respawnAt
}

// ApplyIntent sets velocity and target heading from a movement intent.
// Ignored while dead. A zero direction vector is not a stop command, so
// deceleration only ever comes from friction.
func (t *Tank) ApplyIntent(in Intent) {
	if t.state != StateAlive {
		return
	}

	mag := math.Hypot(in.DX, in.DY)
	if mag == 0 {
		return
	}

	nx := in.DX / mag
	ny := in.DY / mag
	speed := t.cfg.TankSpeed
	if in.Boost {
		speed *= t.cfg.BoostMultiplier
	}
	t.VX = nx * speed
	t.VY = ny * speed
	t.TargetHeading = math.Atan2(ny, nx)
}

// Tick advances the tank by dt seconds. While dead it only checks the respawn
// timer; the return value reports whether a respawn happened this tick.
func (t *Tank) Tick(now time.Time, dt float64, rng *rand.Rand) (respawned bool) {
	if t.state == StateDead {
		if !now.Before(t.respawnAt) {
			t.respawn(rng)
			return true
		}
		return false
	}

	// Friction is a flat per-tick decay, not scaled by dt
	t.VX *= t.cfg.Friction
	t.VY *= t.cfg.Friction

	t.X += t.VX * dt
	t.Y += t.VY * dt

	t.Heading += shortestAngleDiff(t.TargetHeading, t.Heading) * t.cfg.HeadingLerp

	t.X = clamp(t.X, t.cfg.TankRadius, t.cfg.ArenaSize-t.cfg.TankRadius)
	t.Y = clamp(t.Y, t.cfg.TankRadius, t.cfg.ArenaSize-t.cfg.TankRadius)
	return false
}

// Fire returns a new projectile, or nil while dead or still on cooldown.
func (t *Tank) Fire(now time.Time) *Projectile {
	if t.state != StateAlive {
		return nil
	}
	if now.Sub(t.lastShot) < t.cfg.ShootCooldown {
		return nil
	}
	t.lastShot = now

	dirX := math.Cos(t.Heading)
	dirY := math.Sin(t.Heading)
	return &Projectile{
		X:       t.X + dirX*t.cfg.CannonLength,
		Y:       t.Y + dirY*t.cfg.CannonLength,
		VX:      dirX * t.cfg.BulletSpeed,
		VY:      dirY * t.cfg.BulletSpeed,
		OwnerID: t.ID,
		bornAt:  now,
		cfg:     t.cfg,
	}
}

// TakeDamage subtracts hp and handles the death transition. Hitting an
// already-dead tank is a no-op. Kill score is credited by the World since the
// attacker may have disconnected.
func (t *Tank) TakeDamage(amount int, attackerID string, now time.Time) DamageResult {
	if t.state != StateAlive {
		return DamageResult{}
	}

	t.HP -= amount
	if t.HP > 0 {
		return DamageResult{Applied: true, Attacker: attackerID}
	}

	t.HP = 0
	t.state = StateDead
	t.respawnAt = now.Add(t.cfg.RespawnTime)
	t.VX, t.VY = 0, 0
	return DamageResult{Applied: true, Died: true, Attacker: attackerID}
}

// Repair grants RepairAmount hp, capped at MaxHealth, at most once per
// RepairCooldown. Returns false while dead or on cooldown.
func (t *Tank) Repair(now time.Time) bool {
	if t.state != StateAlive {
		return false
	}
	if now.Sub(t.lastRepair) < t.cfg.RepairCooldown {
		return false
	}

	t.lastRepair = now
	t.HP += t.cfg.RepairAmount
	if t.HP > t.cfg.MaxHealth {
		t.HP = t.cfg.MaxHealth
	}
	return true
}

func (t *Tank) respawn(rng *rand.Rand) {
	t.state = StateAlive
	t.HP = t.cfg.MaxHealth
	t.X, t.Y = randomSpawn(t.cfg, rng)
	t.VX, t.VY = 0, 0
	t.Heading = 0
	t.TargetHeading = 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// shortestAngleDiff returns the signed angular difference target-current
// normalized into (-pi, pi].
func shortestAngleDiff(target, current float64) float64 {
	d := math.Mod(target-current, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
