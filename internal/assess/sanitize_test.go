package assess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeReplyStripsFence(t *testing.T) {
	payload := `{"criteria": [{"score": 2}], "overallComment": "Good"}`

	fenced := "```json\n" + payload + "\n```"
	require.Equal(t, payload, SanitizeReply(fenced))

	noLanguage := "```\n" + payload + "\n```"
	require.Equal(t, payload, SanitizeReply(noLanguage))
}

func TestSanitizeReplyExtractsSpanFromProse(t *testing.T) {
	payload := `{"score": 3, "comment": "uses \"quoted\" words and a } inside a string"}`
	wrapped := "Here is my assessment:\n" + payload + "\nLet me know if you need more."

	require.Equal(t, payload, SanitizeReply(wrapped))
}

func TestSanitizeReplyNestedBraces(t *testing.T) {
	payload := `{"outer": {"inner": {"deep": [1, 2, {"x": "}"}]}}}`
	require.Equal(t, payload, SanitizeReply("prefix "+payload+" suffix"))
}

func TestSanitizeReplyArrayPayload(t *testing.T) {
	payload := `[{"score": 1}, {"score": 2}]`
	require.Equal(t, payload, SanitizeReply("Sure: "+payload))
}

func TestSanitizeReplyNoJSONUnchanged(t *testing.T) {
	raw := "  I cannot assist with that.  "
	require.Equal(t, "I cannot assist with that.", SanitizeReply(raw))
}

func TestSanitizeReplyTruncatedSpanReturnedToEnd(t *testing.T) {
	truncated := `{"criteria": [{"score": 2`
	require.Equal(t, truncated, SanitizeReply("reply: "+truncated))
}

func TestSanitizeReplyEmpty(t *testing.T) {
	require.Equal(t, "", SanitizeReply("   \n  "))
}
