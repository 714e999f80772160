package slug

import (
	"reflect"
	"testing"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"han", "中国", []string{"zhong", "guo"}},
		{"mixed", "Hello中国123", []string{"H", "e", "l", "l", "o", "zhong", "guo", "1", "2", "3"}},
		{"latin", "Hello123", []string{"H", "e", "l", "l", "o", "1", "2", "3"}},
		{"punctuation", "Hello, 中国!", []string{"H", "e", "l", "l", "o", " ", "zhong", "guo"}},
		{"empty", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokens(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokens(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokens_NonASCIIPunctuationKept(t *testing.T) {
	// Full-width punctuation has no reading and is not ASCII, so it survives.
	got := Tokens("你好，")
	want := []string{"ni", "hao", "，"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestAnchor(t *testing.T) {
	if got := Anchor("安装 Go"); got != "an-zhuang- -G-o" {
		t.Errorf("unexpected anchor %q", got)
	}
	if got := Anchor("v1.2"); got != "v-1-2" {
		t.Errorf("unexpected anchor %q", got)
	}
}

func TestAnchor_Deterministic(t *testing.T) {
	first := Anchor("缓存与刷新")
	for i := 0; i < 10; i++ {
		if got := Anchor("缓存与刷新"); got != first {
			t.Fatalf("run %d: expected %q, got %q", i, first, got)
		}
	}
}
