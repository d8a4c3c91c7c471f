package protocol

import (
	"encoding/json"
	"fmt"
)

// Encode marshals a payload into an enveloped wire frame.
func Encode(event string, payload any) ([]byte, error) {
	if event == "" {
		return nil, fmt.Errorf("encode: empty event name")
	}
	if payload == nil {
		return nil, fmt.Errorf("encode %q: nil payload", event)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}

// MustEncode is Encode for payloads that cannot fail to marshal; it panics on
// error and is only used with the fixed message structs in this package.
func MustEncode(event string, payload any) []byte {
	b, err := Encode(event, payload)
	if err != nil {
		panic(err)
	}
	return b
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decode: empty frame")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, err
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.Data) == 0 {
		return out, fmt.Errorf("empty payload for event %q", env.Event)
	}
	err := json.Unmarshal(env.Data, &out)
	return out, err
}
