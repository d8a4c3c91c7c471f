package protocol

import "encoding/json"

// Inbound client actions, carried as flat {"action": ...} objects.
const (
	ActionMove   = "move"
	ActionShoot  = "shoot"
	ActionRepair = "repair"
)

// Outbound event names.
const (
	MsgInit       = "init"
	MsgState      = "state"
	MsgHit        = "hit"
	MsgPlayerDied = "playerDied"
	MsgDied       = "died"
	MsgRespawned  = "respawned"
	MsgKill       = "kill"
	MsgShootSound = "shootSound"
	MsgRepaired   = "repaired"
)

// Envelope wraps every outbound message.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}
