package executor

import (
	"bytes"
	"unicode/utf8"
)

// boundedBuffer keeps at most limit bytes and silently discards the rest,
// so a chatty process never blocks on a full pipe. The cut is moved back to
// a rune boundary, so output may end a few bytes short of limit.
type boundedBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func newBoundedBuffer(limit int) *boundedBuffer {
	return &boundedBuffer{limit: limit}
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	if b.truncated {
		return len(p), nil
	}
	remaining := b.limit - b.buf.Len()
	if remaining <= 0 {
		if len(p) > 0 {
			b.truncated = true
		}
		return len(p), nil
	}
	if len(p) > remaining {
		b.buf.Write(p[:runeBoundary(p, remaining)])
		b.truncated = true
		return len(p), nil
	}
	b.buf.Write(p)
	return len(p), nil
}

func (b *boundedBuffer) String() string {
	return b.buf.String()
}

func (b *boundedBuffer) Truncated() bool {
	return b.truncated
}

// runeBoundary backs cut up to the start of the rune that p[cut] belongs to.
// Non-UTF-8 data moves it by at most utf8.UTFMax-1 bytes.
func runeBoundary(p []byte, cut int) int {
	for i := 0; i < utf8.UTFMax-1 && cut > 0 && !utf8.RuneStart(p[cut]); i++ {
		cut--
	}
	return cut
}
