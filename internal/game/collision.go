package game

import (
	"math"
	"time"
)

// HitOutcome records one projectile strike for the loop to turn into events.
type HitOutcome struct {
	VictimID   string
	VictimName string
	AttackerID string
	Damage     int
	Died       bool
}

// resolveHits runs projectile-vs-tank combat. Each projectile hits at most
// one tank per tick: tanks are scanned in sorted id order and the scan stops
// at the first qualifying hit, which makes tie-breaks deterministic. A hit
// removes the projectile, applies BulletDamage, and (on a kill) credits the
// attacker's score if the attacker is still connected.
// Callers must hold w.mu; tanks is the sorted view of w.tanks.
func resolveHits(w *World, tanks []*Tank, now time.Time) []HitOutcome {
	var outcomes []HitOutcome
	hitRange := w.cfg.TankRadius + w.cfg.BulletRadius

	live := w.projectiles[:0]
	for _, p := range w.projectiles {
		hit := false
		for _, t := range tanks {
			if !t.Alive() || t.ID == p.OwnerID {
				continue
			}
			if math.Hypot(t.X-p.X, t.Y-p.Y) >= hitRange {
				continue
			}

			res := t.TakeDamage(w.cfg.BulletDamage, p.OwnerID, now)
			if res.Died {
				if attacker, ok := w.tanks[p.OwnerID]; ok {
					attacker.Score += w.cfg.KillScore
				}
			}
			outcomes = append(outcomes, HitOutcome{
				VictimID:   t.ID,
				VictimName: t.Name,
				AttackerID: p.OwnerID,
				Damage:     w.cfg.BulletDamage,
				Died:       res.Died,
			})
			hit = true
			break
		}
		if !hit {
			live = append(live, p)
		}
	}
	w.projectiles = live
	return outcomes
}

// resolveOverlaps applies the soft tank-vs-tank separation: overlapping pairs
// are pushed apart by half the overlap each along the line between centers,
// and their velocities nudged toward separation by PushVelocityFactor of the
// positional correction. The push on one tank is the exact negation of the
// push on the other, so results do not depend on pair enumeration order.
func resolveOverlaps(cfg Config, tanks []*Tank) {
	minDist := 2 * cfg.TankRadius

	for i := 0; i < len(tanks); i++ {
		for j := i + 1; j < len(tanks); j++ {
			a, b := tanks[i], tanks[j]
			if !a.Alive() || !b.Alive() {
				continue
			}

			dx := a.X - b.X
			dy := a.Y - b.Y
			dist := math.Hypot(dx, dy)
			if dist >= minDist {
				continue
			}

			// Exactly coincident centers have no separation axis; pick one.
			angle := 0.0
			if dist > 0 {
				angle = math.Atan2(dy, dx)
			}

			overlap := minDist - dist
			pushX := math.Cos(angle) * overlap / 2
			pushY := math.Sin(angle) * overlap / 2

			a.X += pushX
			a.Y += pushY
			b.X -= pushX
			b.Y -= pushY

			a.VX += pushX * cfg.PushVelocityFactor
			a.VY += pushY * cfg.PushVelocityFactor
			b.VX -= pushX * cfg.PushVelocityFactor
			b.VY -= pushY * cfg.PushVelocityFactor

			// Pushes near a wall must not break the bounds invariant.
			a.X = clamp(a.X, cfg.TankRadius, cfg.ArenaSize-cfg.TankRadius)
			a.Y = clamp(a.Y, cfg.TankRadius, cfg.ArenaSize-cfg.TankRadius)
			b.X = clamp(b.X, cfg.TankRadius, cfg.ArenaSize-cfg.TankRadius)
			b.Y = clamp(b.Y, cfg.TankRadius, cfg.ArenaSize-cfg.TankRadius)
		}
	}
}
