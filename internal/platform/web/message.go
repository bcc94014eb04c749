package web

import "encoding/json"

// Message is a WebSocket frame with type-based routing.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Outbound message types, one per renderer call.
const (
	TypeWelcome        = "welcome"
	TypeObstacleAdd    = "obstacle_add"
	TypeObstacleRemove = "obstacle_remove"
	TypePlayer         = "player"
	TypeGoal           = "goal"
	TypeVisibility     = "visibility"
	TypeSpriteScale    = "sprite_scale"
	TypeScreen         = "screen"
	TypeLabel          = "label"
	TypeLevelStats     = "level_stats"
	TypeGameComplete   = "game_complete"
	TypeError          = "error"
)

// Inbound message types.
const (
	TypeResize = "resize"
	TypeKey    = "key"
	TypeStart  = "start"
	TypeNext   = "next"
)

// WelcomeMessage is sent once a session is ready.
type WelcomeMessage struct {
	Pack   string  `json:"pack"`
	Title  string  `json:"title"`
	Levels int     `json:"levels"`
	Best   int     `json:"best"`
	Width  float64 `json:"width"`  // design arena width
	Height float64 `json:"height"` // design arena height
	Size   float64 `json:"size"`   // design sprite size
}

// ObstacleMessage describes a materialized obstacle in rendered pixels.
type ObstacleMessage struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	W  float64 `json:"w"`
	H  float64 `json:"h"`
}

// RemoveMessage drops an obstacle.
type RemoveMessage struct {
	ID int `json:"id"`
}

// PointMessage is a sprite position in rendered pixels.
type PointMessage struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// VisibilityMessage toggles the player or goal sprite.
type VisibilityMessage struct {
	Sprite  string `json:"sprite"` // "player" or "goal"
	Visible bool   `json:"visible"`
}

// ScaleMessage carries the sprite scale.
type ScaleMessage struct {
	Scale float64 `json:"scale"`
}

// ScreenMessage shows or hides an overlay.
type ScreenMessage struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
}

// LabelMessage updates a HUD label: "level", "score" or "time".
type LabelMessage struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// StatsMessage fills the level-complete overlay.
type StatsMessage struct {
	Score   int `json:"score"`
	Seconds int `json:"seconds"`
}

// CompleteMessage announces the final score.
type CompleteMessage struct {
	Score int `json:"score"`
}

// ResizeMessage reports the browser viewport.
type ResizeMessage struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// KeyMessage carries a direction: "up", "down", "left", "right" or an
// ArrowX key name.
type KeyMessage struct {
	Direction string `json:"direction"`
}

// ErrorMessage is sent when a frame cannot be handled.
type ErrorMessage struct {
	Message string `json:"message"`
}

// NewErrorMessage creates a Message with an error payload.
func NewErrorMessage(msg string) Message {
	data, _ := json.Marshal(ErrorMessage{Message: msg})
	return Message{Type: TypeError, Data: data}
}

// NewMessage creates a Message with a typed payload.
func NewMessage(msgType string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Data: data}, nil
}
