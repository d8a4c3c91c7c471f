package protocol

import "github.com/vivekx11/tankgame/internal/game"

// Init is sent once per session right after the websocket upgrade. The config
// is the server's authoritative constant set, verbatim.
type Init struct {
	ID     string      `json:"id"`
	Config game.Config `json:"config"`
}

// State is the canonical world snapshot broadcast every tick.
type State = game.WorldSnapshot

// Hit goes to the struck session only.
type Hit struct {
	Damage   int    `json:"damage"`
	Attacker string `json:"attacker"`
}

// PlayerDied is broadcast to everyone on a kill.
type PlayerDied struct {
	PlayerID string `json:"playerId"`
	KillerID string `json:"killerId"`
}

// Kill goes to the attacker's session on a kill.
type Kill struct {
	Victim string `json:"victim"`
}

// ShootSound is broadcast to all sessions except the shooter.
type ShootSound struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Repaired goes to the requesting session after a granted repair.
type Repaired struct {
	HP int `json:"hp"`
}

// Died and Respawned carry no payload beyond the event itself.
type Died struct{}

type Respawned struct{}
