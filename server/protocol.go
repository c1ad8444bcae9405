package main

import "gridsnake/game"

// Protocol uses single-character keys to minimize wire size.
// Coordinates are grid cells, not pixels.
//
// Message type constants (value of "t" field):
//   Client → Server:
//     "j" = join    {"t":"j","n":"Name","w":1280,"h":720,"a":0}  (w,h = viewport px, a=1 autopilot)
//     "i" = input   {"t":"i","d":"u"}                            (d = u/d/l/r)
//     "p" = pointer {"t":"p","x":10,"y":600,"w":1280,"h":720}    (touch location + viewport)
//     "r" = reset   {"t":"r"}                                    (only honoured after game over)
//   Server → Client:
//     "w" = welcome {"t":"w","i":"id","gw":41,"gh":33,"k":75,"x":1,"c":"json","cl":"#hex"}
//     "s" = state   {"t":"s","s":[[x,y],...],"f":[x,y],"p":12,"e":3,"o":"running","k":"","v":["eat"]}
//     "l" = leaderboard {"t":"l","l":[{"i":"id","n":"name","p":42}]}
//     "e" = error   {"t":"e","m":"Server full"}
//
// State frames go through the configured codec (JSON text or msgpack
// binary); every other message is JSON text.

// Message type identifiers, single-char for a compact protocol
const (
	MsgJoin        = "j"
	MsgInput       = "i"
	MsgPointer     = "p"
	MsgReset       = "r"
	MsgWelcome     = "w"
	MsgState       = "s"
	MsgLeaderboard = "l"
	MsgError       = "e"
)

// State events, reported once on the frame where they happened
const (
	EventEat  = "eat"
	EventOver = "over"
	EventFull = "full"
)

// ClientMessage is the base incoming message from the browser
type ClientMessage struct {
	Type string  `json:"t"`
	Name string  `json:"n,omitempty"`
	Dir  string  `json:"d,omitempty"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
	W    float64 `json:"w,omitempty"`
	H    float64 `json:"h,omitempty"`
	Auto int     `json:"a,omitempty"` // 0 or 1
}

// WelcomeMsg is sent once a join has created the session
type WelcomeMsg struct {
	Type   string `json:"t"`
	ID     string `json:"i"`
	Width  int    `json:"gw"`
	Height int    `json:"gh"`
	TickMS int    `json:"k"`
	Wrap   int    `json:"x"` // 0 or 1
	Codec  string `json:"c"`
	Color  string `json:"cl"`
}

// StateMsg is the per-change state frame. Segments run tail to head.
type StateMsg struct {
	Type     string   `json:"t" msgpack:"t"`
	Segments [][2]int `json:"s" msgpack:"s"`
	Food     *[2]int  `json:"f,omitempty" msgpack:"f,omitempty"`
	Score    int      `json:"p" msgpack:"p"`
	Eaten    int      `json:"e" msgpack:"e"`
	Status   string   `json:"o" msgpack:"o"`
	Cause    string   `json:"k,omitempty" msgpack:"k,omitempty"`
	Events   []string `json:"v,omitempty" msgpack:"v,omitempty"`
}

// LeaderboardEntry is a single leaderboard row.
// {"i":"id","n":"name","p":score}
type LeaderboardEntry struct {
	ID    string `json:"i"`
	Name  string `json:"n"`
	Score int    `json:"p"`
}

// LeaderboardMsg carries the top sessions by score
type LeaderboardMsg struct {
	Type    string             `json:"t"`
	Entries []LeaderboardEntry `json:"l"`
}

// ErrorMsg is sent right before the server closes a connection
type ErrorMsg struct {
	Type    string `json:"t"`
	Message string `json:"m"`
}

// newStateMsg converts a projected frame into its wire form
func newStateMsg(f game.Frame, res game.StepResult) StateMsg {
	segs := make([][2]int, len(f.Segments))
	for i, s := range f.Segments {
		segs[i] = [2]int{s.Cell.X, s.Cell.Y}
	}
	msg := StateMsg{
		Type:     MsgState,
		Segments: segs,
		Score:    f.Score,
		Eaten:    f.Eaten,
		Status:   f.Status.String(),
		Cause:    f.Cause.String(),
	}
	if f.HasFood {
		msg.Food = &[2]int{f.Food.X, f.Food.Y}
	}
	if res.Ate {
		msg.Events = append(msg.Events, EventEat)
	}
	if res.Died {
		msg.Events = append(msg.Events, EventOver)
	}
	if res.Filled {
		msg.Events = append(msg.Events, EventFull)
	}
	return msg
}
