package notify

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roehl/interlog/internal/ledger"
)

func TestJSONLSink_AppendsOneLinePerEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notify.jsonl")
	sink := NewJSONLSink(path)

	first := NewEvent(ledger.Interaction{Actor: "alice", Timestamp: 1, Action: "One"})
	second := NewEvent(ledger.Interaction{Actor: "bob", Timestamp: 2, Action: "Two"})
	require.NoError(t, sink.Emit(first))
	require.NoError(t, sink.Emit(second))
	require.NoError(t, sink.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var got []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		got = append(got, ev)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, got, 2)
	assert.Equal(t, first, got[0])
	assert.Equal(t, second, got[1])
}

func TestJSONLSink_AppendsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notify.jsonl")

	s1 := NewJSONLSink(path)
	require.NoError(t, s1.Emit(NewEvent(ledger.Interaction{Actor: "alice", Action: "One"})))
	require.NoError(t, s1.Close())

	s2 := NewJSONLSink(path)
	require.NoError(t, s2.Emit(NewEvent(ledger.Interaction{Actor: "alice", Action: "Two"})))
	require.NoError(t, s2.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "One")
	assert.Contains(t, string(data), "Two")
}

func TestJSONLSink_CloseWithoutEmit(t *testing.T) {
	sink := NewJSONLSink(filepath.Join(t.TempDir(), "never.jsonl"))
	assert.NoError(t, sink.Close())
}
