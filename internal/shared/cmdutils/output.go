package cmdutils

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abureyko/shipping-agent/internal/schema"
)

const logo = "📦"

func PrintResponse(text string) {
	if text == "" {
		return
	}

	fmt.Printf("\n%s shipping-agent\n%s\n\n", logo, text)
}

// PrintJSON writes v to stdout as indented JSON.
func PrintJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintError writes err to stderr as {"code","message"} JSON.
func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, schema.AsToolError(err).JSON())
}
