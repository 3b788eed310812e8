package output

import (
	"strings"
	"testing"
)

func TestColorToggle(t *testing.T) {
	ForceColor()
	defer NoColor()

	colored := Success.Sprint("done")
	if !strings.Contains(colored, "\x1b[32m") {
		t.Errorf("forced color output %q lacks the green ANSI code", colored)
	}
	if !strings.Contains(colored, "done") {
		t.Errorf("colored output %q lost the text", colored)
	}

	NoColor()
	plain := Success.Sprint("done")
	if strings.Contains(plain, "\x1b[") {
		t.Errorf("NoColor output %q still contains ANSI codes", plain)
	}
}

func TestSourceColorsAreDistinct(t *testing.T) {
	ForceColor()
	defer NoColor()

	pacman := Pacman.Sprint("x")
	aur := Aur.Sprint("x")
	devel := Devel.Sprint("x")

	if pacman == aur || aur == devel || pacman == devel {
		t.Errorf("source colors must differ: %q %q %q", pacman, aur, devel)
	}
}
