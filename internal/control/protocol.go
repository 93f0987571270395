// Package control runs the websocket control channel between a browser
// client and the board.
package control

import (
	"encoding/json"

	"github.com/frudas24/flexbox/internal/board"
	"github.com/frudas24/flexbox/internal/box"
)

// Inbound message types.
const (
	MsgDown          = "down"
	MsgMove          = "move"
	MsgUp            = "up"
	MsgSetProp       = "setProp"
	MsgAddBox        = "addBox"
	MsgRemoveBox     = "removeBox"
	MsgResizeSurface = "resizeSurface"
	MsgSaveLayout    = "saveLayout"
	MsgSnapshot      = "snapshot"
	MsgInputEnabled  = "inputEnabled"
)

// Outbound message types.
const (
	ReplyEvent    = "event"
	ReplySnapshot = "snapshot"
	ReplyAdded    = "added"
	ReplySaved    = "saved"
	ReplyError    = "error"
)

// Message is a control websocket payload sent by the client. Pointer
// coordinates are normalised to the surface, 0..1 on both axes.
type Message struct {
	T       string          `json:"t"`
	ID      int             `json:"id,omitempty"`
	Src     string          `json:"src,omitempty"`
	X       float64         `json:"x,omitempty"`
	Y       float64         `json:"y,omitempty"`
	Target  string          `json:"target,omitempty"`
	Box     string          `json:"box,omitempty"`
	Name    string          `json:"name,omitempty"`
	Value   json.RawMessage `json:"value,omitempty"`
	Options json.RawMessage `json:"options,omitempty"`
	W       float64         `json:"w,omitempty"`
	H       float64         `json:"h,omitempty"`
	Enabled *bool           `json:"enabled,omitempty"`
}

// Reply is a control websocket payload sent to the client.
type Reply struct {
	T     string          `json:"t"`
	Box   string          `json:"box,omitempty"`
	Event box.EventType   `json:"event,omitempty"`
	Value any             `json:"value,omitempty"`
	Board *board.Snapshot `json:"board,omitempty"`
	Text  string          `json:"text,omitempty"`
}

// eventReply wraps a box notification.
func eventReply(ev box.Event) Reply {
	return Reply{T: ReplyEvent, Box: ev.Box, Event: ev.Type, Value: ev.Value}
}

// decodeOptions decodes box options on top of the defaults.
func decodeOptions(raw json.RawMessage) (box.Options, error) {
	opts := box.DefaultOptions()
	if len(raw) == 0 {
		return opts, nil
	}
	if err := json.Unmarshal(raw, &opts); err != nil {
		return box.Options{}, err
	}
	return opts, nil
}

// decodeValue decodes a prop value into a bool, number or string.
func decodeValue(raw json.RawMessage) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
