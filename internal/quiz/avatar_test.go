package quiz

import (
	"strings"
	"testing"
)

func TestTeamAvatarURLIsStable(t *testing.T) {
	a := TeamAvatarURL("Alpha")
	b := TeamAvatarURL("Alpha")
	if a != b {
		t.Fatalf("same name produced different URLs: %q vs %q", a, b)
	}
	if TeamAvatarURL("Beta") == a {
		t.Error("different names produced the same URL")
	}
	if !strings.HasPrefix(a, "https://api.dicebear.com/7.x/adventurer/svg?seed=") {
		t.Errorf("unexpected URL shape: %q", a)
	}
}

func TestTeamAvatarURLHandlesUnicode(t *testing.T) {
	url := TeamAvatarURL("Команда Альфа")
	if !strings.Contains(url, "seed=") {
		t.Errorf("unexpected URL: %q", url)
	}
}
