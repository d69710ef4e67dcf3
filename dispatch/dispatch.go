package dispatch

import (
	"strings"

	"go.uber.org/zap"

	"github.com/litewallet/wallet-bridge/registry"
)

// ErrNotInitialized is the exact result body returned when no engine is
// registered. Callers and tests rely on this shape.
const ErrNotInitialized = `{"error": "Wallet not initialized"}`

// VerbSend is the value-transfer verb with special tokenization.
const VerbSend = "send"

// Tokenize splits raw into argument tokens. Whitespace separated, except the
// send verb with a structured-array payload, which stays one opaque token.
func Tokenize(verb, raw string) []string {
	if raw == "" {
		return nil
	}
	if verb == VerbSend && strings.HasPrefix(raw, "[") {
		return []string{raw}
	}
	return strings.Fields(raw)
}

// ErrorResult shapes msg into the conventional JSON error body. Embedded
// backslashes and quotes are escaped so the enclosing JSON stays well-formed.
func ErrorResult(msg string) string {
	msg = strings.ReplaceAll(msg, `\`, `\\`)
	msg = strings.ReplaceAll(msg, `"`, `\"`)
	return `{"error": "` + msg + `"}`
}

// Dispatcher forwards commands to the engine held in a registry.
type Dispatcher struct {
	reg *registry.Registry
	log *zap.Logger
}

// New creates a dispatcher over reg. A nil logger disables logging.
func New(reg *registry.Registry, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{reg: reg, log: log}
}

// Dispatch tokenizes raw and forwards (verb, tokens) to the current engine,
// returning its textual result unchanged. Verb names are not validated here;
// unknown verbs are the engine's responsibility to reject.
func (d *Dispatcher) Dispatch(verb, raw string) string {
	h, ok := d.reg.Get()
	if !ok {
		d.log.Debug("dispatch without engine", zap.String("verb", verb))
		return ErrNotInitialized
	}
	defer h.Release()

	return h.Engine().Execute(verb, Tokenize(verb, raw))
}
