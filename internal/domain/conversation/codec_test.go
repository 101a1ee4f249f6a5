package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeLogRoundTrip(t *testing.T) {
	messages := []Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
		{Role: RoleUser, Content: "how are you?"},
		{Role: RoleAssistant, Content: ""},
	}

	blob, err := EncodeLog(messages)
	require.NoError(t, err)

	decoded, err := DecodeLog(blob)
	require.NoError(t, err)
	assert.Equal(t, messages, decoded)
}

func TestEncodeLogEmptySequence(t *testing.T) {
	blob, err := EncodeLog(nil)
	require.NoError(t, err)

	decoded, err := DecodeLog(blob)
	require.NoError(t, err)
	assert.NotNil(t, decoded)
	assert.Empty(t, decoded)
}

func TestEncodeLogDeterministic(t *testing.T) {
	messages := []Message{
		{Role: RoleUser, Content: "same input"},
		{Role: RoleAssistant, Content: "same output"},
	}

	first, err := EncodeLog(messages)
	require.NoError(t, err)
	second, err := EncodeLog(messages)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDecodeLogPreservesOrder(t *testing.T) {
	messages := make([]Message, 0, 20)
	for i := 0; i < 10; i++ {
		messages = append(messages,
			Message{Role: RoleUser, Content: string(rune('a' + i))},
			Message{Role: RoleAssistant, Content: string(rune('A' + i))},
		)
	}

	blob, err := EncodeLog(messages)
	require.NoError(t, err)
	decoded, err := DecodeLog(blob)
	require.NoError(t, err)

	assert.Equal(t, messages, decoded)
}

func TestDecodeLogMalformedInput(t *testing.T) {
	cases := map[string]string{
		"empty blob":      "",
		"not json":        "this is not json",
		"wrong shape":     `[{"role":"user","content":"hi"}]`,
		"missing version": `{"messages":[]}`,
		"future version":  `{"version":99,"messages":[]}`,
		"invalid role":    `{"version":1,"messages":[{"role":"wizard","content":"hi"}]}`,
	}

	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeLog(blob)
			require.Error(t, err)

			var malformed *ErrMalformedLog
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestDecodeLogUnversionedEnvelopeRejected(t *testing.T) {
	// Logs written without the version envelope must fail loudly instead of
	// being silently misparsed.
	_, err := DecodeLog(`{"version":0,"messages":[{"role":"user","content":"hi"}]}`)
	require.Error(t, err)
}
