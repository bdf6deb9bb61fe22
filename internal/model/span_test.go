package model

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"
)

func TestParseSpanFormats(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12:00", "12:00:00.000"},
		{"01:30:30", "01:30:30.000"},
		{"01:30:30.500", "01:30:30.500"},
		{"00:00:00.5", "00:00:00.500"},
		{"100:05:07.007", "100:05:07.007"},
	}
	for _, tc := range cases {
		got, err := ParseSpan(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if got.String() != tc.want {
			t.Fatalf("parse %q = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseSpanRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "12", "aa:bb", "01:60", "01:00:61", "01:00:00.", "01:00:00.1234", "00:10.5", "1::2", "3000000:00", "6000000:00", "99999999999999999999:00"} {
		if _, err := ParseSpan(in); !errors.Is(err, ErrInvalidSpan) {
			t.Fatalf("parse %q: expected ErrInvalidSpan, got %v", in, err)
		}
	}
}

func TestParseSpanAcceptsLargestHours(t *testing.T) {
	raw := strconv.Itoa(MaxSpanHours) + ":59:59.999"
	s, err := ParseSpan(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	if s.String() != raw || s.Exhausted() {
		t.Fatalf("expected %s, got %s", raw, s)
	}
	if _, err := ParseSpan(strconv.Itoa(MaxSpanHours+1) + ":00"); !errors.Is(err, ErrInvalidSpan) {
		t.Fatalf("expected ErrInvalidSpan past the largest hour, got %v", err)
	}
}

func TestSpanSubAndExhausted(t *testing.T) {
	s := SpanOf(0, 0, 0, 100)
	left := s.Sub(100 * time.Millisecond)
	if !left.Exhausted() {
		t.Fatalf("expected exhausted span, got %s", left)
	}
	if s.Sub(50 * time.Millisecond).Exhausted() {
		t.Fatal("expected 50ms to remain")
	}
	if got := SpanOf(0, 0, 0, 0).Sub(time.Second).String(); got != "-00:00:01.000" {
		t.Fatalf("unexpected negative format: %s", got)
	}
}

func TestNewSpanTruncatesToMillisecond(t *testing.T) {
	s := NewSpan(1500*time.Microsecond + 999*time.Nanosecond)
	if s.Duration() != time.Millisecond {
		t.Fatalf("expected truncation to 1ms, got %v", s.Duration())
	}
}

func TestEqualSpans(t *testing.T) {
	a := SpanOf(1, 0, 0, 0)
	b, _ := ParseSpan("01:00")
	if !EqualSpans(&a, &b) {
		t.Fatal("expected equal spans")
	}
	if EqualSpans(&a, nil) || !EqualSpans(nil, nil) {
		t.Fatal("unexpected nil comparison result")
	}
}

func TestSpanJSON(t *testing.T) {
	type wrapper struct {
		D *Span `json:"d"`
	}
	s := SpanOf(1, 30, 30, 500)
	raw, err := json.Marshal(wrapper{D: &s})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"d":"01:30:30.500"}` {
		t.Fatalf("unexpected json: %s", raw)
	}
	var back wrapper
	if err := json.Unmarshal([]byte(`{"d":"nope"}`), &back); err == nil {
		t.Fatal("expected error for malformed span")
	}
}
