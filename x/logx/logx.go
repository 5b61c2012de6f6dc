// Package logx is a tagged line logger that avoids fmt so it stays cheap on
// MCU builds. Lines look like "[loop] mode changed border=thick override=false".
//
// Never call it from interrupt context.
package logx

import (
	"io"
	"os"
	"sync"
	"time"

	"joytracker/x/conv"
)

var (
	outMu sync.Mutex
	out   io.Writer = os.Stdout
)

// SetOutput redirects every logger, e.g. to a UART on MCU builds.
func SetOutput(w io.Writer) {
	outMu.Lock()
	out = w
	outMu.Unlock()
}

type Stringer interface{ String() string }

// Logger prefixes every line with its tag.
type Logger struct {
	tag string
}

func New(tag string) Logger { return Logger{tag: tag} }

// Log writes msg followed by key=value pairs. Keys must be strings; values
// may be string, bool, signed or unsigned integers, time.Duration, error or
// anything with a String method.
func (l Logger) Log(msg string, kv ...any) {
	buf := make([]byte, 0, 64)
	buf = append(buf, '[')
	buf = append(buf, l.tag...)
	buf = append(buf, "] "...)
	buf = append(buf, msg...)
	for i := 0; i+1 < len(kv); i += 2 {
		k, _ := kv[i].(string)
		buf = append(buf, ' ')
		buf = append(buf, k...)
		buf = append(buf, '=')
		buf = appendValue(buf, kv[i+1])
	}
	buf = append(buf, '\n')

	outMu.Lock()
	_, _ = out.Write(buf)
	outMu.Unlock()
}

func appendValue(buf []byte, v any) []byte {
	switch x := v.(type) {
	case string:
		return append(buf, x...)
	case bool:
		if x {
			return append(buf, "true"...)
		}
		return append(buf, "false"...)
	case int:
		return conv.AppendInt(buf, int64(x))
	case int16:
		return conv.AppendInt(buf, int64(x))
	case int32:
		return conv.AppendInt(buf, int64(x))
	case int64:
		return conv.AppendInt(buf, x)
	case uint:
		return conv.AppendUint(buf, uint64(x))
	case uint8:
		return conv.AppendUint(buf, uint64(x))
	case uint16:
		return conv.AppendUint(buf, uint64(x))
	case uint32:
		return conv.AppendUint(buf, uint64(x))
	case uint64:
		return conv.AppendUint(buf, x)
	case time.Duration:
		return conv.AppendDurationMs(buf, int64(x))
	case error:
		if x == nil {
			return append(buf, "<nil>"...)
		}
		return append(buf, x.Error()...)
	case Stringer:
		return append(buf, x.String()...)
	case nil:
		return append(buf, "<nil>"...)
	default:
		return append(buf, "<unk>"...)
	}
}
