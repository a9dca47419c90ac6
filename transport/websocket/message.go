package websocket

import "encoding/json"

const actionState = "game:state"

type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func newStateMessage(state any) ([]byte, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Message{Action: actionState, Payload: payload})
}
