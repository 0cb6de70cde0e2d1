package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// Host plugin log protocol: SOH, a level letter, STX, then the message.
const (
	pluginStart = '\x01'
	pluginMid   = '\x02'
)

type pluginHandler struct {
	mu     *sync.Mutex
	writer io.Writer
	level  *slog.LevelVar
	attrs  []slog.Attr
	groups []string
}

func newPluginHandler(w io.Writer, lvl *slog.LevelVar) slog.Handler {
	return &pluginHandler{mu: &sync.Mutex{}, writer: w, level: lvl}
}

func (h *pluginHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *pluginHandler) Handle(_ context.Context, record slog.Record) error {
	if record.Level < h.level.Level() {
		return nil
	}

	kvs := collectKVs(h.groups, h.attrs, record)
	component, kvs := extractComponent(kvs)

	var buf bytes.Buffer
	buf.WriteByte(pluginStart)
	buf.WriteByte(pluginLevelLetter(record.Level))
	buf.WriteByte(pluginMid)
	if component != "" {
		buf.WriteString(component)
		buf.WriteString(": ")
	}
	// The host splits on newlines, so embedded ones would orphan the tail.
	buf.WriteString(strings.ReplaceAll(strings.TrimSpace(record.Message), "\n", " "))
	writeKVs(&buf, kvs)
	buf.WriteByte('\n')

	return h.write(buf.Bytes())
}

func (h *pluginHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	clone.attrs = append(clone.attrs, attrs...)
	return clone
}

func (h *pluginHandler) WithGroup(name string) slog.Handler {
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *pluginHandler) clone() *pluginHandler {
	return &pluginHandler{
		mu:     h.mu,
		writer: h.writer,
		level:  h.level,
		attrs:  append([]slog.Attr(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
	}
}

func (h *pluginHandler) write(p []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(p)
	return err
}

func pluginLevelLetter(level slog.Level) byte {
	switch {
	case level >= slog.LevelError:
		return 'e'
	case level >= slog.LevelWarn:
		return 'w'
	case level >= slog.LevelInfo:
		return 'i'
	case level >= slog.LevelDebug:
		return 'd'
	default:
		return 't'
	}
}

// WritePluginProgress emits a progress line in the host protocol. Fractions
// outside [0, 1] are clamped.
func WritePluginProgress(w io.Writer, fraction float64) error {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	_, err := fmt.Fprintf(w, "%cp%c%s\n", pluginStart, pluginMid, strconv.FormatFloat(fraction, 'f', -1, 64))
	return err
}
