package conversation

import (
	"encoding/json"
	"fmt"
)

// LogVersion is the current message log encoding version. Bump it when the
// envelope changes shape so stale blobs fail decoding instead of misparsing.
const LogVersion = 1

// ErrMalformedLog wraps all decode failures so callers can treat them as data
// corruption rather than transient faults.
type ErrMalformedLog struct {
	Reason string
}

func (e *ErrMalformedLog) Error() string {
	return "malformed message log: " + e.Reason
}

type logEnvelope struct {
	Version  int       `json:"version"`
	Messages []Message `json:"messages"`
}

// EncodeLog serializes a message sequence into the versioned text blob stored
// per conversation. Encoding is deterministic: the same sequence always
// produces a byte-identical blob.
func EncodeLog(messages []Message) (string, error) {
	if messages == nil {
		messages = []Message{}
	}
	blob, err := json.Marshal(logEnvelope{
		Version:  LogVersion,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("encode message log: %w", err)
	}
	return string(blob), nil
}

// DecodeLog is the inverse of EncodeLog. It returns *ErrMalformedLog on
// malformed input, unknown versions, or invalid role tags; it never drops or
// reorders messages.
func DecodeLog(blob string) ([]Message, error) {
	var envelope logEnvelope
	if err := json.Unmarshal([]byte(blob), &envelope); err != nil {
		return nil, &ErrMalformedLog{Reason: err.Error()}
	}
	if envelope.Version != LogVersion {
		return nil, &ErrMalformedLog{Reason: fmt.Sprintf("unsupported log version %d", envelope.Version)}
	}
	for i, msg := range envelope.Messages {
		if !msg.Role.Valid() {
			return nil, &ErrMalformedLog{Reason: fmt.Sprintf("invalid role %q at index %d", msg.Role, i)}
		}
	}
	if envelope.Messages == nil {
		return []Message{}, nil
	}
	return envelope.Messages, nil
}
