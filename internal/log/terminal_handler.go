package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const (
	ansiReset  = "\033[0m"
	ansiDim    = "\033[2m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// terminalHandler formats log records as coloured terminal output:
//
//	15:04:05 INF ingest complete campus=UP inserted=42
type terminalHandler struct {
	writer io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
	mu     *sync.Mutex
}

func newTerminalHandler(w io.Writer, opts *slog.HandlerOptions) *terminalHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &terminalHandler{
		writer: w,
		level:  level,
		mu:     &sync.Mutex{},
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *terminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats a log record and writes it.
func (h *terminalHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	fmt.Fprintf(&buf, "%s%s%s ", ansiDim, ts.Format("15:04:05"), ansiReset)

	color, label := levelStyle(r.Level)
	fmt.Fprintf(&buf, "%s%s%s ", color, label, ansiReset)
	fmt.Fprintf(&buf, "%s%s%s", ansiBold, r.Message, ansiReset)

	for _, a := range h.attrs {
		h.writeAttr(&buf, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, a)
		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

// WithAttrs returns a handler that includes the given attributes on every record.
func (h *terminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &terminalHandler{
		writer: h.writer,
		level:  h.level,
		attrs:  merged,
		prefix: h.prefix,
		mu:     h.mu,
	}
}

// WithGroup returns a handler that prefixes subsequent attribute keys.
func (h *terminalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &terminalHandler{
		writer: h.writer,
		level:  h.level,
		attrs:  h.attrs,
		prefix: h.prefix + name + ".",
		mu:     h.mu,
	}
}

func (h *terminalHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			if a.Key != "" {
				ga.Key = a.Key + "." + ga.Key
			}
			h.writeAttr(buf, ga)
		}
		return
	}

	fmt.Fprintf(buf, " %s%s%s=%s%s",
		ansiDim, h.prefix, a.Key, ansiReset, formatAttrValue(a.Value))
}

func formatAttrValue(v slog.Value) string {
	if v.Kind() == slog.KindString {
		s := v.String()
		if strings.ContainsAny(s, " \t\n\"\\") {
			return fmt.Sprintf("%q", s)
		}
		return s
	}
	return v.String()
}

func levelStyle(level slog.Level) (string, string) {
	switch {
	case level < slog.LevelInfo:
		return ansiCyan, "DBG"
	case level < slog.LevelWarn:
		return ansiGreen, "INF"
	case level < slog.LevelError:
		return ansiYellow, "WRN"
	default:
		return ansiRed, "ERR"
	}
}
