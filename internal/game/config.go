package game

import "time"

// Config holds every tunable constant of the simulation. It is built once at
// startup and sent verbatim to each client in the init payload, so clients
// render with the exact values the server enforces.
type Config struct {
	ArenaSize       float64 `json:"arenaSize"` // square arena, world units
	TankRadius      float64 `json:"tankRadius"`
	TankSpeed       float64 `json:"tankSpeed"` // units/s
	BoostMultiplier float64 `json:"boostMultiplier"`
	Friction        float64 `json:"friction"`    // velocity decay per tick
	HeadingLerp     float64 `json:"headingLerp"` // fraction of angular diff applied per tick
	CannonLength    float64 `json:"cannonLength"`

	MaxHealth    int     `json:"maxHealth"`
	BulletSpeed  float64 `json:"bulletSpeed"` // units/s
	BulletRadius float64 `json:"bulletRadius"`
	BulletDamage int     `json:"bulletDamage"`

	BulletLifetime     time.Duration `json:"bulletLifetime"`     // ns on the wire
	BulletBoundsMargin float64       `json:"bulletBoundsMargin"` // expiry margin outside the arena
	ShootCooldown      time.Duration `json:"shootCooldown"`
	RespawnTime        time.Duration `json:"respawnTime"`
	RepairCooldown     time.Duration `json:"repairCooldown"`
	RepairAmount       int           `json:"repairAmount"`
	KillScore          int           `json:"killScore"`

	SpawnMargin        float64 `json:"spawnMargin"` // safe interior margin for spawns
	PushVelocityFactor float64 `json:"pushVelocityFactor"`
	TickRate           int     `json:"tickRate"` // simulation Hz
}

// DefaultConfig returns the authoritative constants.
func DefaultConfig() Config {
	return Config{
		ArenaSize:       1000,
		TankRadius:      20,
		TankSpeed:       200,
		BoostMultiplier: 1.5,
		Friction:        0.95,
		HeadingLerp:     0.2,
		CannonLength:    25,

		MaxHealth:    100,
		BulletSpeed:  500,
		BulletRadius: 5,
		BulletDamage: 25,

		BulletLifetime:     3 * time.Second,
		BulletBoundsMargin: 50,
		ShootCooldown:      500 * time.Millisecond,
		RespawnTime:        3 * time.Second,
		RepairCooldown:     time.Second,
		RepairAmount:       25,
		KillScore:          100,

		SpawnMargin:        50,
		PushVelocityFactor: 0.1,
		TickRate:           120,
	}
}
