package game

import (
	"math"
	"time"
)

// Projectile is a single fired shot. Heading is always derived from the
// velocity vector so the two can never drift apart.
type Projectile struct {
	X, Y    float64
	VX, VY  float64
	OwnerID string

	bornAt time.Time
	cfg    Config
}

// Tick integrates the projectile by dt seconds and reports whether it is
// still live. Expiry happens when the projectile leaves the arena expanded by
// BulletBoundsMargin on any side, or when its age exceeds BulletLifetime.
func (p *Projectile) Tick(now time.Time, dt float64) bool {
	p.X += p.VX * dt
	p.Y += p.VY * dt

	m := p.cfg.BulletBoundsMargin
	if p.X < -m || p.X > p.cfg.ArenaSize+m || p.Y < -m || p.Y > p.cfg.ArenaSize+m {
		return false
	}
	return !p.Expired(now)
}

// Expired reports whether the projectile has outlived BulletLifetime.
func (p *Projectile) Expired(now time.Time) bool {
	return now.Sub(p.bornAt) > p.cfg.BulletLifetime
}

// Heading returns the travel angle in radians.
func (p *Projectile) Heading() float64 {
	return math.Atan2(p.VY, p.VX)
}
