// Package display resolves how command results are rendered: JSON when the
// caller asked for it, human-readable text otherwise.
package display

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ShouldOutputJSON reports whether a command should emit JSON, checking the
// command's own --json flag before falling back to the global one.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	if cmd.Flags().Changed("json") {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}
	globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json")
	return globalFlag
}

// OutputJSON marshals and prints v using display.MarshalJSON.
func OutputJSON(v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
