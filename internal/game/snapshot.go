package game

// Wire-facing views of the entities, broadcast to every client each tick.

type TankSnapshot struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Heading float64 `json:"heading"`
	HP      int     `json:"hp"`
	Score   int     `json:"score"`
	Alive   bool    `json:"alive"`
}

type ProjectileSnapshot struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Heading float64 `json:"heading"`
	Owner   string  `json:"owner"`
}

type WorldSnapshot struct {
	Players   map[string]TankSnapshot `json:"players"`
	Bullets   []ProjectileSnapshot    `json:"bullets"`
	Timestamp int64                   `json:"timestamp"`
}

func (t *Tank) Snapshot() TankSnapshot {
	return TankSnapshot{
		ID:      t.ID,
		Name:    t.Name,
		X:       t.X,
		Y:       t.Y,
		VX:      t.VX,
		VY:      t.VY,
		Heading: t.Heading,
		HP:      t.HP,
		Score:   t.Score,
		Alive:   t.Alive(),
	}
}

func (p *Projectile) Snapshot() ProjectileSnapshot {
	return ProjectileSnapshot{
		X:       p.X,
		Y:       p.Y,
		VX:      p.VX,
		VY:      p.VY,
		Heading: p.Heading(),
		Owner:   p.OwnerID,
	}
}
