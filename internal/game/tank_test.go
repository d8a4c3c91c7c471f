package game

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func newTestTank(id string) *Tank {
	return NewTank(id, "tank-"+id, DefaultConfig(), testRand())
}

func TestApplyIntentSetsVelocityAndTargetHeading(t *testing.T) {
	tk := newTestTank("a")
	tk.ApplyIntent(Intent{DX: 1, DY: 0})

	if tk.VX != tk.cfg.TankSpeed || tk.VY != 0 {
		t.Fatalf("velocity = (%f, %f), want (%f, 0)", tk.VX, tk.VY, tk.cfg.TankSpeed)
	}
	if tk.TargetHeading != 0 {
		t.Fatalf("target heading = %f, want 0", tk.TargetHeading)
	}
}

func TestApplyIntentNormalizesDirection(t *testing.T) {
	tk := newTestTank("a")
	tk.ApplyIntent(Intent{DX: 1, DY: 1})

	speed := math.Hypot(tk.VX, tk.VY)
	if math.Abs(speed-tk.cfg.TankSpeed) > 1e-9 {
		t.Fatalf("speed = %f, want %f", speed, tk.cfg.TankSpeed)
	}
	want := math.Pi / 4
	if math.Abs(tk.TargetHeading-want) > 1e-9 {
		t.Fatalf("target heading = %f, want %f", tk.TargetHeading, want)
	}
}

func TestApplyIntentBoostMultipliesSpeed(t *testing.T) {
	tk := newTestTank("a")
	tk.ApplyIntent(Intent{DX: 0, DY: 1, Boost: true})

	want := tk.cfg.TankSpeed * tk.cfg.BoostMultiplier
	if math.Abs(math.Hypot(tk.VX, tk.VY)-want) > 1e-9 {
		t.Fatalf("boosted speed = %f, want %f", math.Hypot(tk.VX, tk.VY), want)
	}
}

func TestApplyIntentZeroVectorLeavesVelocity(t *testing.T) {
	tk := newTestTank("a")
	tk.VX, tk.VY = 42, -17

	tk.ApplyIntent(Intent{})
	if tk.VX != 42 || tk.VY != -17 {
		t.Fatalf("zero intent changed velocity to (%f, %f)", tk.VX, tk.VY)
	}
}

func TestApplyIntentIgnoredWhileDead(t *testing.T) {
	tk := newTestTank("a")
	now := time.Now()
	tk.TakeDamage(tk.cfg.MaxHealth, "b", now)

	tk.ApplyIntent(Intent{DX: 1, DY: 0})
	if tk.VX != 0 || tk.VY != 0 {
		t.Fatalf("dead tank accepted intent, velocity (%f, %f)", tk.VX, tk.VY)
	}
}

func TestTickAppliesFrictionOncePerTick(t *testing.T) {
	tk := newTestTank("a")
	tk.VX = 100
	now := time.Now()

	tk.Tick(now, 1.0/120, testRand())
	if math.Abs(tk.VX-100*tk.cfg.Friction) > 1e-9 {
		t.Fatalf("vx after tick = %f, want %f", tk.VX, 100*tk.cfg.Friction)
	}

	// Friction does not scale with dt: a tiny dt decays just as much.
	tk2 := newTestTank("b")
	tk2.VX = 100
	tk2.Tick(now, 1e-6, testRand())
	if math.Abs(tk2.VX-100*tk2.cfg.Friction) > 1e-9 {
		t.Fatalf("friction scaled with dt: vx = %f", tk2.VX)
	}
}

func TestTickClampsPositionToArena(t *testing.T) {
	cfg := DefaultConfig()
	tk := newTestTank("a")
	tk.X, tk.Y = cfg.ArenaSize-cfg.TankRadius-1, cfg.TankRadius+1
	tk.VX, tk.VY = 10000, -10000
	now := time.Now()

	for i := 0; i < 50; i++ {
		tk.Tick(now, 1.0/120, testRand())
		if tk.X < cfg.TankRadius || tk.X > cfg.ArenaSize-cfg.TankRadius ||
			tk.Y < cfg.TankRadius || tk.Y > cfg.ArenaSize-cfg.TankRadius {
			t.Fatalf("position (%f, %f) escaped bounds on tick %d", tk.X, tk.Y, i)
		}
	}
}

func TestTickSmoothsHeadingAlongShortestArc(t *testing.T) {
	tk := newTestTank("a")
	tk.Heading = 3.0
	tk.TargetHeading = -3.0 // shortest path crosses pi, not zero
	now := time.Now()

	tk.Tick(now, 1.0/120, testRand())
	if tk.Heading <= 3.0 {
		t.Fatalf("heading moved the long way: %f", tk.Heading)
	}

	// Repeated ticks converge onto the target angle (mod 2pi).
	for i := 0; i < 200; i++ {
		tk.Tick(now, 1.0/120, testRand())
	}
	if d := math.Abs(shortestAngleDiff(tk.TargetHeading, tk.Heading)); d > 1e-3 {
		t.Fatalf("heading did not converge, residual diff %f", d)
	}
}

func TestFireCooldown(t *testing.T) {
	tk := newTestTank("a")
	now := time.Now()

	if tk.Fire(now) == nil {
		t.Fatalf("first shot should succeed")
	}
	if tk.Fire(now.Add(tk.cfg.ShootCooldown/2)) != nil {
		t.Fatalf("shot inside cooldown should fail")
	}
	if tk.Fire(now.Add(tk.cfg.ShootCooldown)) == nil {
		t.Fatalf("shot after cooldown should succeed")
	}
}

func TestFireSpawnsAtCannonTip(t *testing.T) {
	tk := newTestTank("a")
	tk.X, tk.Y = 100, 100
	tk.Heading = math.Pi / 2

	p := tk.Fire(time.Now())
	if p == nil {
		t.Fatalf("expected projectile")
	}
	if math.Abs(p.X-100) > 1e-9 || math.Abs(p.Y-(100+tk.cfg.CannonLength)) > 1e-9 {
		t.Fatalf("spawn at (%f, %f), want (100, %f)", p.X, p.Y, 100+tk.cfg.CannonLength)
	}
	if math.Abs(math.Hypot(p.VX, p.VY)-tk.cfg.BulletSpeed) > 1e-9 {
		t.Fatalf("projectile speed = %f, want %f", math.Hypot(p.VX, p.VY), tk.cfg.BulletSpeed)
	}
	if p.OwnerID != tk.ID {
		t.Fatalf("owner = %q, want %q", p.OwnerID, tk.ID)
	}
}

func TestFireWhileDeadReturnsNil(t *testing.T) {
	tk := newTestTank("a")
	now := time.Now()
	tk.TakeDamage(tk.cfg.MaxHealth, "b", now)

	if tk.Fire(now.Add(time.Hour)) != nil {
		t.Fatalf("dead tank fired")
	}
}

func TestTakeDamageFourHitsKill(t *testing.T) {
	tk := newTestTank("a")
	now := time.Now()

	for i := 0; i < 3; i++ {
		res := tk.TakeDamage(25, "b", now)
		if res.Died {
			t.Fatalf("died after %d hits", i+1)
		}
	}
	if tk.HP != 25 {
		t.Fatalf("hp after 3 hits = %d, want 25", tk.HP)
	}

	hit4 := now.Add(time.Second)
	res := tk.TakeDamage(25, "b", hit4)
	if !res.Died {
		t.Fatalf("fourth hit should kill")
	}
	if tk.Alive() || tk.HP != 0 {
		t.Fatalf("after death: alive=%v hp=%d", tk.Alive(), tk.HP)
	}
	if !tk.RespawnAt().Equal(hit4.Add(tk.cfg.RespawnTime)) {
		t.Fatalf("respawnAt = %v, want %v", tk.RespawnAt(), hit4.Add(tk.cfg.RespawnTime))
	}
	if tk.VX != 0 || tk.VY != 0 {
		t.Fatalf("velocity not zeroed on death: (%f, %f)", tk.VX, tk.VY)
	}
}

func TestTakeDamageOnDeadTankIsNoop(t *testing.T) {
	tk := newTestTank("a")
	now := time.Now()
	tk.TakeDamage(tk.cfg.MaxHealth, "b", now)
	respawnAt := tk.RespawnAt()

	res := tk.TakeDamage(25, "c", now.Add(time.Second))
	if res.Applied || res.Died {
		t.Fatalf("damage applied to dead tank: %+v", res)
	}
	if tk.HP != 0 || tk.Alive() {
		t.Fatalf("dead tank state changed: hp=%d alive=%v", tk.HP, tk.Alive())
	}
	if !tk.RespawnAt().Equal(respawnAt) {
		t.Fatalf("respawn time moved by hit on dead tank")
	}
}

func TestRespawnRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	tk := newTestTank("a")
	now := time.Now()
	tk.TakeDamage(cfg.MaxHealth, "b", now)

	// Strictly before the deadline: still dead.
	if tk.Tick(now.Add(cfg.RespawnTime-time.Millisecond), 1.0/120, testRand()) {
		t.Fatalf("respawned before deadline")
	}
	if tk.Alive() {
		t.Fatalf("alive before respawn deadline")
	}

	if !tk.Tick(now.Add(cfg.RespawnTime), 1.0/120, testRand()) {
		t.Fatalf("did not respawn at deadline")
	}
	if !tk.Alive() || tk.HP != cfg.MaxHealth {
		t.Fatalf("after respawn: alive=%v hp=%d", tk.Alive(), tk.HP)
	}
	if tk.X < cfg.SpawnMargin || tk.X > cfg.ArenaSize-cfg.SpawnMargin ||
		tk.Y < cfg.SpawnMargin || tk.Y > cfg.ArenaSize-cfg.SpawnMargin {
		t.Fatalf("respawn position (%f, %f) outside safe margin", tk.X, tk.Y)
	}
	if tk.Heading != 0 || tk.TargetHeading != 0 || tk.VX != 0 || tk.VY != 0 {
		t.Fatalf("respawn did not reset kinematics")
	}
}

func TestRepairCooldownAndCap(t *testing.T) {
	cfg := DefaultConfig()
	tk := newTestTank("a")
	now := time.Now()
	tk.HP = 90

	if !tk.Repair(now) {
		t.Fatalf("first repair should succeed")
	}
	if tk.HP != cfg.MaxHealth {
		t.Fatalf("hp = %d, want capped at %d", tk.HP, cfg.MaxHealth)
	}
	if tk.Repair(now.Add(cfg.RepairCooldown / 2)) {
		t.Fatalf("repair inside cooldown should fail")
	}
	if tk.HP != cfg.MaxHealth {
		t.Fatalf("failed repair changed hp to %d", tk.HP)
	}
	if !tk.Repair(now.Add(cfg.RepairCooldown)) {
		t.Fatalf("repair after cooldown should succeed")
	}
}

func TestRepairWhileDeadFails(t *testing.T) {
	tk := newTestTank("a")
	now := time.Now()
	tk.TakeDamage(tk.cfg.MaxHealth, "b", now)

	if tk.Repair(now.Add(time.Hour)) {
		t.Fatalf("dead tank repaired")
	}
}

func TestHPStaysInRange(t *testing.T) {
	cfg := DefaultConfig()
	tk := newTestTank("a")
	now := time.Now()

	tk.TakeDamage(9999, "b", now)
	if tk.HP < 0 {
		t.Fatalf("hp went negative: %d", tk.HP)
	}
	tk.Tick(now.Add(cfg.RespawnTime), 1.0/120, testRand())
	for i := 0; i < 10; i++ {
		tk.Repair(now.Add(cfg.RespawnTime + time.Duration(i+1)*cfg.RepairCooldown))
	}
	if tk.HP > cfg.MaxHealth {
		t.Fatalf("hp exceeded max: %d", tk.HP)
	}
}
