package domain

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Vovarama1992/deepflow/internal/models"
)

func contents(segs []models.Segment) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.Content
	}
	return out
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		want     []string
	}{
		{
			name:     "everything fits",
			text:     "a\nb\nc",
			maxChars: 10,
			want:     []string{"a\nb\nc\n"},
		},
		{
			name:     "each paragraph alone",
			text:     "aaaaa\nbbbbb\nccccc",
			maxChars: 6,
			want:     []string{"aaaaa\n", "bbbbb\n", "ccccc\n"},
		},
		{
			name:     "hard overflow split",
			text:     strings.Repeat("x", 20),
			maxChars: 5,
			want:     []string{"xxxxx", "xxxxx", "xxxxx", "xxxxx"},
		},
		{
			name:     "paragraph equal to limit is hard split",
			text:     "abcde",
			maxChars: 5,
			want:     []string{"abcde"},
		},
		{
			name:     "short tail after hard split",
			text:     "abcdefg",
			maxChars: 5,
			want:     []string{"abcde", "fg"},
		},
		{
			name:     "accumulator flushed before oversized paragraph",
			text:     "ab\n" + strings.Repeat("z", 7) + "\ncd",
			maxChars: 5,
			want:     []string{"ab\n", "zzzzz", "zz", "cd\n"},
		},
		{
			name:     "blank lines kept",
			text:     "a\n\nb",
			maxChars: 10,
			want:     []string{"a\n\nb\n"},
		},
		{
			name:     "only newlines",
			text:     "\n",
			maxChars: 1,
			want:     []string{"\n", "\n"},
		},
		{
			name:     "multibyte counted as runes",
			text:     "你好世界\n再见",
			maxChars: 5,
			want:     []string{"你好世界\n", "再见\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.text, tt.maxChars)
			if err != nil {
				t.Fatalf("Split() error = %v", err)
			}
			if !reflect.DeepEqual(contents(got), tt.want) {
				t.Errorf("Split() = %q, want %q", contents(got), tt.want)
			}
			for i, s := range got {
				if s.Index != i {
					t.Errorf("segment %d has index %d", i, s.Index)
				}
			}
		})
	}
}

func TestSplitEmptyText(t *testing.T) {
	got, err := Split("", 10)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Split(\"\") = %q, want none", contents(got))
	}
}

func TestSplitInvalidMaxChars(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := Split("abc", n); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Split(maxChars=%d) error = %v, want ErrInvalidArgument", n, err)
		}
	}
}

func TestSplitProperties(t *testing.T) {
	text := strings.Join([]string{
		"First paragraph of a lecture transcript.",
		"",
		strings.Repeat("一段很长的没有换行的中文文本", 8),
		"short",
		"another line that is somewhat longer than the others",
		"",
		"",
		"end",
	}, "\n")

	for _, maxChars := range []int{1, 7, 16, 40, 500} {
		first, err := Split(text, maxChars)
		if err != nil {
			t.Fatalf("Split(%d) error = %v", maxChars, err)
		}
		second, _ := Split(text, maxChars)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Split(%d) is not deterministic", maxChars)
		}

		runes := []rune(text)
		for _, s := range first {
			if s.Content == "" {
				t.Errorf("maxChars=%d: empty segment %d", maxChars, s.Index)
			}
			if n := utf8.RuneCountInString(s.Content); n > maxChars {
				t.Errorf("maxChars=%d: segment %d has %d runes", maxChars, s.Index, n)
			}

			body := []rune(strings.TrimSuffix(s.Content, "\n"))
			if s.Offset+len(body) > len(runes) || string(runes[s.Offset:s.Offset+len(body)]) != string(body) {
				t.Errorf("maxChars=%d: segment %d offset %d does not point at its text", maxChars, s.Index, s.Offset)
			}
		}
	}
}
