package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litewallet/wallet-bridge/registry"
)

// recordingEngine captures the last Execute call.
type recordingEngine struct {
	verb string
	args []string
	resp string
}

func (e *recordingEngine) Execute(verb string, args []string) string {
	e.verb = verb
	e.args = args
	if e.resp == "" {
		return `{"result": "ok"}`
	}
	return e.resp
}

func (e *recordingEngine) Send(ctx context.Context, dest string, amount uint64, memo *string) (string, error) {
	return "", nil
}

func (e *recordingEngine) StartMempoolWatcher() {}

func (e *recordingEngine) Close() error { return nil }

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		verb string
		raw  string
		want []string
	}{
		{
			name: "empty args yield zero tokens",
			verb: "balance",
			raw:  "",
			want: nil,
		},
		{
			name: "single token",
			verb: "new",
			raw:  "z",
			want: []string{"z"},
		},
		{
			name: "whitespace split",
			verb: "import",
			raw:  "key  birthday 12345",
			want: []string{"key", "birthday", "12345"},
		},
		{
			name: "send with structured payload stays one token",
			verb: "send",
			raw:  `[{"address":"z1...","amount":5}]`,
			want: []string{`[{"address":"z1...","amount":5}]`},
		},
		{
			name: "send with plain args still splits",
			verb: "send",
			raw:  "z1abc 5000",
			want: []string{"z1abc", "5000"},
		},
		{
			name: "non-send verb with bracket still splits",
			verb: "import",
			raw:  "[a b]",
			want: []string{"[a", "b]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.verb, tt.raw))
		})
	}
}

func TestDispatch_Uninitialized(t *testing.T) {
	d := New(registry.New(nil), nil)

	got := d.Dispatch("balance", "")
	assert.Equal(t, ErrNotInitialized, got)
}

func TestDispatch_ForwardsVerbAndTokens(t *testing.T) {
	reg := registry.New(nil)
	eng := &recordingEngine{}
	reg.Set(registry.NewHandle(eng))

	d := New(reg, nil)

	got := d.Dispatch("new", "z")
	require.Equal(t, `{"result": "ok"}`, got)
	assert.Equal(t, "new", eng.verb)
	assert.Equal(t, []string{"z"}, eng.args)

	d.Dispatch("balance", "")
	assert.Equal(t, "balance", eng.verb)
	assert.Nil(t, eng.args)
}

func TestDispatch_ResultPassedThroughUnchanged(t *testing.T) {
	reg := registry.New(nil)
	eng := &recordingEngine{resp: `{"error": "unknown command"}`}
	reg.Set(registry.NewHandle(eng))

	d := New(reg, nil)

	// Unknown verbs are the engine's to reject; the dispatcher does not
	// interpret the payload.
	assert.Equal(t, `{"error": "unknown command"}`, d.Dispatch("frobnicate", ""))
}

func TestErrorResult(t *testing.T) {
	assert.Equal(t, `{"error": "boom"}`, ErrorResult("boom"))
	assert.Equal(t, `{"error": "bad \"addr\""}`, ErrorResult(`bad "addr"`))
	assert.Equal(t, `{"error": "path \\tmp"}`, ErrorResult(`path \tmp`))
}
