package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidSpan = errors.New("model: invalid span")

// SpanResolution is the smallest step a Span keeps. Anything finer is truncated.
const SpanResolution = time.Millisecond

// MaxSpanHours is the largest hour field that still fits with 59:59.999 added.
const MaxSpanHours = int(math.MaxInt64/int64(time.Hour)) - 1

// Span is a length of time formatted as HH:MM:SS.mmm.
type Span time.Duration

func NewSpan(d time.Duration) Span {
	return Span(d.Truncate(SpanResolution))
}

func SpanOf(hours, minutes, seconds, millis int) Span {
	return NewSpan(time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond)
}

func (s Span) Duration() time.Duration { return time.Duration(s) }

func (s Span) Sub(d time.Duration) Span {
	return NewSpan(time.Duration(s) - d)
}

// Exhausted reports whether nothing is left of the span.
func (s Span) Exhausted() bool { return time.Duration(s) <= 0 }

func (s Span) String() string {
	d := time.Duration(s)
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	sec := d / time.Second
	d -= sec * time.Second
	ms := d / time.Millisecond
	return fmt.Sprintf("%s%02d:%02d:%02d.%03d", sign, h, m, sec, ms)
}

// Short drops the millisecond part, for display.
func (s Span) Short() string {
	full := s.String()
	return full[:len(full)-4]
}

// Equal compares spans by their formatted value.
func (s Span) Equal(other Span) bool {
	return s.String() == other.String()
}

// EqualSpans treats two absent spans as equal.
func EqualSpans(a, b *Span) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func (s *Span) Clone() *Span {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}

func (s Span) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Span) UnmarshalText(text []byte) error {
	parsed, err := ParseSpan(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSpan accepts HH:MM, HH:MM:SS and HH:MM:SS.f with up to three fraction digits.
func ParseSpan(raw string) (Span, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidSpan)
	}
	fraction := ""
	if dot := strings.IndexByte(value, '.'); dot >= 0 {
		fraction = value[dot+1:]
		value = value[:dot]
		if fraction == "" || len(fraction) > 3 || !allDigits(fraction) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSpan, raw)
		}
	}
	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSpan, raw)
	}
	if len(parts) == 2 && fraction != "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSpan, raw)
	}
	nums := make([]int, 3)
	for i, part := range parts {
		if part == "" || !allDigits(part) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSpan, raw)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSpan, raw)
		}
		if i == 0 && n > MaxSpanHours {
			return 0, fmt.Errorf("%w: %q out of range", ErrInvalidSpan, raw)
		}
		if i > 0 && n > 59 {
			return 0, fmt.Errorf("%w: %q out of range", ErrInvalidSpan, raw)
		}
		nums[i] = n
	}
	millis := 0
	if fraction != "" {
		for len(fraction) < 3 {
			fraction += "0"
		}
		millis, _ = strconv.Atoi(fraction)
	}
	return SpanOf(nums[0], nums[1], nums[2], millis), nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
