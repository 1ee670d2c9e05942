package parse

import (
	"testing"
	"time"
)

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"42", true},
		{"-3.5", true},
		{" 1e3 ", true},
		{"", false},
		{"abc", false},
		{"12px", false},
		{"Inf", false},
		{"NaN", false},
	}
	for _, tt := range tests {
		if got := IsNumeric(tt.in); got != tt.want {
			t.Errorf("IsNumeric(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDateTime_InterpretsUTC(t *testing.T) {
	got := ParseDateTime("2020-01-01 10:00:00")
	want := time.Date(2020, time.January, 1, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseDateTime = %v, want %v", got, want)
	}
	if got.Location() != time.Local {
		t.Fatalf("location = %v, want Local", got.Location())
	}
}

func TestParseDateTime_MalformedFallsBackToNow(t *testing.T) {
	for _, in := range []string{"garbage", "2020-01-01", "2020-01-01 10:00:00:00", "2020--01 10:00:00", ""} {
		before := time.Now()
		got := ParseDateTime(in)
		after := time.Now()
		if got.Before(before) || got.After(after) {
			t.Errorf("ParseDateTime(%q) = %v, want now (%v..%v)", in, got, before, after)
		}
	}
}

func TestParseDateTimeStrict_ReportsErrors(t *testing.T) {
	if _, err := ParseDateTimeStrict("garbage"); err == nil {
		t.Fatal("ParseDateTimeStrict(garbage) returned nil error")
	}
	if _, err := ParseDateTimeStrict("2020-aa-01 10:00:00"); err == nil {
		t.Fatal("ParseDateTimeStrict with non-numeric field returned nil error")
	}
	if _, err := ParseDateTimeStrict("2020-01-01 10:00:00"); err != nil {
		t.Fatalf("ParseDateTimeStrict returned error: %v", err)
	}
}

func TestDateDiff(t *testing.T) {
	if d := DateDiff("2020-01-01 10:00:00", "2020-01-01 10:00:00"); d != 0 {
		t.Fatalf("DateDiff(same) = %v, want 0", d)
	}
	if d := DateDiff("2020-01-01 10:00:00", "2020-01-01 11:30:15"); d != 90*time.Minute+15*time.Second {
		t.Fatalf("DateDiff = %v, want 1h30m15s", d)
	}
	if d := DateDiff("2020-01-02 00:00:00", "2020-01-01 00:00:00"); d != -24*time.Hour {
		t.Fatalf("DateDiff reversed = %v, want -24h", d)
	}
}

func TestDateDiff_EmptyEndpointIsNow(t *testing.T) {
	start := FormatDateTime(time.Now().Add(-time.Hour))
	d := DateDiff(start, "")
	if d < time.Hour-time.Second || d > time.Hour+2*time.Second {
		t.Fatalf("DateDiff(start, now) = %v, want about 1h", d)
	}
	if d := DateDiff("", ""); d < 0 || d > time.Second {
		t.Fatalf("DateDiff(now, now) = %v, want about 0", d)
	}
}

func TestFormatDateTime_RoundTrips(t *testing.T) {
	in := "2023-06-15 08:09:10"
	if got := FormatDateTime(ParseDateTime(in)); got != in {
		t.Fatalf("FormatDateTime(ParseDateTime(%q)) = %q", in, got)
	}
}

func TestDateDiff_EmptyEndpointsNeverNegative(t *testing.T) {
	for i := 0; i < 200; i++ {
		if d := DateDiff("", ""); d < 0 {
			t.Fatalf("DateDiff(now, now) = %v, want >= 0", d)
		}
	}
}

func withLocal(t *testing.T, loc *time.Location) {
	t.Helper()
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })
}

func TestToUTC_ShiftsByLocalOffset(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	withLocal(t, zone)

	noon := time.Date(2024, 3, 1, 12, 0, 0, 0, zone)
	got := ToUTC(noon)
	if want := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("ToUTC(%v) = %v, want instant %v", noon, got.UTC(), want)
	}
	if h := got.Hour(); h != noon.UTC().Hour() {
		t.Fatalf("ToUTC wall clock hour = %d, want %d", h, noon.UTC().Hour())
	}

	back := FromUTC(got)
	if !back.Equal(noon) {
		t.Fatalf("FromUTC(%v) = %v, want %v", got, back, noon)
	}
	if want := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC); !FromUTC(noon).Equal(want) {
		t.Fatalf("FromUTC(%v) = %v, want instant %v", noon, FromUTC(noon).UTC(), want)
	}
}

func TestToUTCFromUTC_RoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	if got := FromUTC(ToUTC(now)); !got.Equal(now) {
		t.Fatalf("FromUTC(ToUTC(%v)) = %v", now, got)
	}
}
