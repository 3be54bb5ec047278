// Package share turns the rendered roster rows into a plain-text block and
// hands it off: to a native share handler when the platform has one, and to
// the clipboard otherwise.
package share

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"

	"kintrack/pkg/roster"
)

// Package-level variables to allow mocking in tests.
var (
	clipboardWriteAll = clipboard.WriteAll
	lookPath          = exec.LookPath
	runShareCommand   = defaultRunShareCommand
)

// shareCommands are native share-sheet handlers probed in order. Most
// desktop terminals have none, in which case the clipboard is the handoff.
var shareCommands = []string{"termux-share", "wl-copy-share"}

// Method describes which handoff mechanism succeeded.
type Method string

const (
	MethodShareSheet Method = "share-sheet"
	MethodClipboard  Method = "clipboard"
)

// Render serializes the already-rendered rows into the shareable text
// block: one line per visible row, in display order, with name, date of
// birth, whole-year age, and day count. It never re-queries the member list
// or re-runs the pipeline; what was drawn is what is shared.
func Render(rows []roster.Row) string {
	var b strings.Builder
	b.WriteString("Family Members\n")

	if len(rows) == 0 {
		b.WriteString("No members to show.\n")
		return b.String()
	}

	for _, row := range rows {
		fmt.Fprintf(&b, "%s | %s | %d years | %s days\n",
			row.Name, row.DOB, row.Age, humanize.Comma(row.Days))
	}
	return b.String()
}

// Share hands the text off. It attempts a native share handler first when
// one is installed, then falls back to the clipboard. Both failing collapses
// into one error for the caller to surface; there is no retry.
func Share(text string) (Method, error) {
	for _, name := range shareCommands {
		path, err := lookPath(name)
		if err != nil {
			continue
		}
		if err := runShareCommand(path, text); err == nil {
			return MethodShareSheet, nil
		}
		// A present but failing handler falls through to the clipboard
		break
	}

	if err := clipboardWriteAll(text); err != nil {
		return "", fmt.Errorf("sharing failed: %w", err)
	}
	return MethodClipboard, nil
}

func defaultRunShareCommand(path, text string) error {
	cmd := exec.Command(path)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
