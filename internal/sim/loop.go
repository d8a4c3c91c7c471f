// Package sim drives the fixed-rate simulation loop and translates tick
// outcomes into outbound session events. It is the single logical owner of
// the world: ticks run as indivisible units on one goroutine.
package sim

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vivekx11/tankgame/internal/game"
	"github.com/vivekx11/tankgame/internal/protocol"
)

// EventSink delivers encoded frames to sessions. Implementations must never
// block the caller; a slow recipient is the sink's problem, not the loop's.
type EventSink interface {
	Broadcast(msg []byte)
	BroadcastExcept(id string, msg []byte)
	Send(id string, msg []byte)
}

// Loop owns the world and the tick schedule.
type Loop struct {
	world *game.World
	sink  EventSink
	now   func() time.Time
}

func NewLoop(w *game.World, sink EventSink) *Loop {
	return &Loop{
		world: w,
		sink:  sink,
		now:   time.Now,
	}
}

// Run ticks the world at the configured rate until ctx is cancelled. dt is
// the actual elapsed wall time between fires, so the integration tolerates
// timer jitter; time.Time's monotonic reading keeps the cooldown and respawn
// comparisons safe against clock adjustments. The single consuming goroutine
// is the guard against overlapping ticks.
func (l *Loop) Run(ctx context.Context) {
	interval := time.Second / time.Duration(l.world.Config().TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("simulation loop started", "tickRate", l.world.Config().TickRate)

	last := l.now()
	for {
		select {
		case <-ctx.Done():
			log.Info("simulation loop stopped")
			return
		case <-ticker.C:
			now := l.now()
			dt := now.Sub(last).Seconds()
			last = now
			l.RunTick(now, dt)
		}
	}
}

// RunTick executes one simulation step and emits the resulting events:
// respawn notices first, then combat results, then the state broadcast.
func (l *Loop) RunTick(now time.Time, dt float64) {
	report := l.world.Advance(now, dt)

	for _, id := range report.Respawned {
		l.sink.Send(id, protocol.MustEncode(protocol.MsgRespawned, protocol.Respawned{}))
	}

	for _, hit := range report.Hits {
		l.sink.Send(hit.VictimID, protocol.MustEncode(protocol.MsgHit, protocol.Hit{
			Damage:   hit.Damage,
			Attacker: hit.AttackerID,
		}))
		if !hit.Died {
			continue
		}
		l.sink.Broadcast(protocol.MustEncode(protocol.MsgPlayerDied, protocol.PlayerDied{
			PlayerID: hit.VictimID,
			KillerID: hit.AttackerID,
		}))
		l.sink.Send(hit.VictimID, protocol.MustEncode(protocol.MsgDied, protocol.Died{}))
		l.sink.Send(hit.AttackerID, protocol.MustEncode(protocol.MsgKill, protocol.Kill{
			Victim: hit.VictimName,
		}))
	}

	l.sink.Broadcast(protocol.MustEncode(protocol.MsgState, report.Snapshot))
}

// Connect registers a tank for a new session and returns the encoded init
// payload carrying the session's own id and the full config.
func (l *Loop) Connect(id, name string) []byte {
	l.world.AddTank(id, name)
	return protocol.MustEncode(protocol.MsgInit, protocol.Init{
		ID:     id,
		Config: l.world.Config(),
	})
}

// Disconnect removes the session's tank and with it all of its cooldown
// state, atomically with respect to ticks.
func (l *Loop) Disconnect(id string) {
	l.world.RemoveTank(id)
}

// Move applies a movement intent for the session.
func (l *Loop) Move(id string, dx, dy float64, boost bool) {
	l.world.ApplyIntent(id, game.Intent{DX: dx, DY: dy, Boost: boost})
}

// Shoot attempts to fire. On success everyone except the shooter hears it.
func (l *Loop) Shoot(id string) {
	p := l.world.Fire(id, l.now())
	if p == nil {
		return
	}
	l.sink.BroadcastExcept(id, protocol.MustEncode(protocol.MsgShootSound, protocol.ShootSound{
		X: p.X,
		Y: p.Y,
	}))
}

// Repair attempts a repair; the requester alone is told the new hp.
func (l *Loop) Repair(id string) {
	hp, ok := l.world.Repair(id, l.now())
	if !ok {
		return
	}
	l.sink.Send(id, protocol.MustEncode(protocol.MsgRepaired, protocol.Repaired{HP: hp}))
}
