package logging

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// CompactHandler writes one line per record for console output:
//
//	[LEVEL] HH:MM:SS message | key=value key=value
//
// Content node ids logged under the "node" key read as node=#12.
type CompactHandler struct {
	level  slog.Leveler
	mu     *sync.Mutex
	out    io.Writer
	bound  []byte // pre-rendered attributes from WithAttrs
	prefix string // group path from WithGroup, ending in "."
}

// NewCompactHandler creates a handler writing to w. A nil opts or level
// means info.
func NewCompactHandler(w io.Writer, opts *slog.HandlerOptions) *CompactHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &CompactHandler{level: level, mu: &sync.Mutex{}, out: w}
}

func (h *CompactHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *CompactHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)
	buf = append(buf, levelLabel(r.Level)...)
	if !r.Time.IsZero() {
		buf = r.Time.AppendFormat(buf, "15:04:05")
		buf = append(buf, ' ')
	}
	buf = append(buf, r.Message...)

	attrs := h.bound
	r.Attrs(func(a slog.Attr) bool {
		attrs = appendAttr(attrs, h.prefix, a)
		return true
	})
	if len(attrs) > 0 {
		buf = append(buf, " |"...)
		buf = append(buf, attrs...)
	}
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf)
	return err
}

func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := append([]byte(nil), h.bound...)
	for _, a := range attrs {
		bound = appendAttr(bound, h.prefix, a)
	}
	clone := *h
	clone.bound = bound
	return &clone
}

func (h *CompactHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func levelLabel(l slog.Level) string {
	switch {
	case l < slog.LevelDebug:
		return "[TRACE] "
	case l < slog.LevelInfo:
		return "[DEBUG] "
	case l < slog.LevelWarn:
		return "[INFO]  "
	case l < slog.LevelError:
		return "[WARN]  "
	default:
		return "[ERROR] "
	}
}

// appendAttr renders " key=value", flattening groups into dotted keys.
func appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	v := a.Value.Resolve()
	if a.Key == "" && v.Kind() != slog.KindGroup {
		return buf
	}
	if v.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range v.Group() {
			buf = appendAttr(buf, prefix, ga)
		}
		return buf
	}

	buf = append(buf, ' ')
	buf = append(buf, prefix...)
	buf = append(buf, a.Key...)
	buf = append(buf, '=')

	switch v.Kind() {
	case slog.KindUint64, slog.KindInt64:
		if a.Key == "node" && prefix == "" {
			buf = append(buf, '#')
		}
		return append(buf, v.String()...)
	default:
		return appendText(buf, v.String())
	}
}

func appendText(buf []byte, s string) []byte {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}
