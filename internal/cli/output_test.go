package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/orderly/internal/event"
	"github.com/dshills/orderly/internal/seq"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(&ExitError{Code: ExitCommandError, Message: "bad"}))

	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitCommandError, "load", errors.New("missing")))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.Equal(t, "outer: load: missing", wrapped.Error())
}

func TestWriteResultText(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"entry", entry{Key: "a", Value: "1"}, "a\t1\n"},
		{"entries", []entry{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, "a\t1\nb\t2\n"},
		{"strings", []string{"a", "b"}, "a\nb\n"},
		{"int", 7, "7\n"},
		{"rank", rankResult{Rank: 2}, "2 (absent)\n"},
		{"found rank", rankResult{Rank: 2, Found: true}, "2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			require.NoError(t, writeResult(buf, "text", tt.in))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteResultStructured(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, writeResult(buf, "json", []entry{{Key: "a", Value: "1"}}))
	assert.JSONEq(t, `[{"key": "a", "value": "1"}]`, buf.String())

	buf.Reset()
	require.NoError(t, writeResult(buf, "yaml", rankResult{Rank: 3, Found: true}))
	assert.Equal(t, "rank: 3\nfound: true\n", buf.String())
}

func TestWriteChange(t *testing.T) {
	was := seq.Of(entry{Key: "a", Value: "1"})
	now := seq.Of(entry{Key: "a", Value: "9"})

	buf := &bytes.Buffer{}
	require.NoError(t, writeChange(buf, "text", event.Replace[entry](was, now, 0)))
	assert.Equal(t, "removed=1@0 added=1@0\n- a=1\n+ a=9\n", buf.String())

	buf.Reset()
	require.NoError(t, writeChange(buf, "text", event.Cleared[entry](4)))
	assert.Equal(t, "cleared=4\n", buf.String())

	buf.Reset()
	require.NoError(t, writeChange(buf, "json", event.ClearAndAdd[entry](2, now)))
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, float64(2), rec["cleared"])
	assert.Nil(t, rec["removed"])
	assert.Equal(t, "cleared=2 added=1@0", rec["summary"])
}
