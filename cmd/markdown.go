package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders a markdown document to the terminal, falling back
// to the raw text when rendering is not possible.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprintln(os.Stderr, "markdown rendering failed:", err)
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
