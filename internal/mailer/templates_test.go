package mailer

import (
	"strings"
	"testing"
	"time"
)

func TestTopicRevealedTemplate(t *testing.T) {
	body, err := TopicRevealed(TopicRevealedData{
		UserName:         "Alice",
		TopicTitle:       "This house would ban homework",
		TopicDescription: "A classic motion about education policy.",
		Date:             time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Time:             "09:00",
		Location:         "Auditorium A",
	})
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	for _, want := range []string{
		"Alice",
		"This house would ban homework",
		"A classic motion about education policy.",
		"Saturday, March 15, 2025",
		"9:00 AM IST",
		"Auditorium A",
		"DebateHub",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("rendered body missing %q", want)
		}
	}
}

func TestDebateJoinedTemplate(t *testing.T) {
	body, err := DebateJoined(DebateJoinedData{
		UserName: "Bob",
		Date:     time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Time:     "18:30",
		Location: "Room 42",
	})
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	for _, want := range []string{"Bob", "Wednesday, December 31, 2025", "6:30 PM IST", "Room 42"} {
		if !strings.Contains(body, want) {
			t.Errorf("rendered body missing %q", want)
		}
	}
}

func TestFormatTimeIST(t *testing.T) {
	tests := []struct {
		clock string
		want  string
	}{
		{"00:15", "12:15 AM IST"},
		{"09:00", "9:00 AM IST"},
		{"12:00", "12:00 PM IST"},
		{"18:30", "6:30 PM IST"},
		{"23:05", "11:05 PM IST"},
		{"bogus", "bogus"}, // 解析不了就原樣回傳
	}

	for _, tt := range tests {
		if got := FormatTimeIST(tt.clock); got != tt.want {
			t.Errorf("FormatTimeIST(%q) = %q, want %q", tt.clock, got, tt.want)
		}
	}
}
