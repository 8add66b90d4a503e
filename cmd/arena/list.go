package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes",
	Long: `Display all game modes with their IDs and descriptions.

Examples:
  arena list`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Game modes:")
	fmt.Println()

	idW, titleW := len("ID"), len("Title")
	for _, m := range modes {
		idW = max(idW, len(m.ID))
		titleW = max(titleW, len(m.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", idW, "ID", titleW, "Title", "Description")
	fmt.Printf("  %-*s  %-*s  %s\n", idW, "--", titleW, "-----", "-----------")
	for _, m := range modes {
		fmt.Printf("  %-*s  %-*s  %s\n", idW, m.ID, titleW, m.Title, m.Description)
	}

	fmt.Println()
	fmt.Println("Run 'arena play <id>' to play a mode.")
}
