package model

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "
	ansiReset    = "\x1b[0m"

	macosClearCmd = "clear"
)

// ansi foreground per color id: neutral white, then red, green, blue
var colorCodes = [NumColors]string{"\x1b[37m", "\x1b[31m", "\x1b[32m", "\x1b[34m"}

// TerminalRenderer draws snapshots as colored blocks
type TerminalRenderer struct {
	Out io.Writer
}

func (r *TerminalRenderer) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// Display renders the snapshot to the terminal
func (r *TerminalRenderer) Display(snap Snapshot) {
	w := r.out()
	for _, row := range snap {
		for _, c := range row {
			if c.Alive && c.Color.Valid() {
				fmt.Fprint(w, colorCodes[c.Color], gridPosBlock, ansiReset)
			} else {
				fmt.Fprint(w, gridPosEmpty)
			}
		}
		fmt.Fprintln(w)
	}
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(macosClearCmd)
	cmd.Stdout = r.out()
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(r.out(), "Error clearing terminal:", err)
	}
}
