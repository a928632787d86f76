package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/split-horizon/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the campaign levels",
	Long:  `Shows the levels registered in the campaign, in play order.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	levels := registry.List()

	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Campaign:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-3s  %-*s  %s\n", "#", maxIDLen, "ID", "Title")
	fmt.Printf("  %-3s  %-*s  %s\n", "-", maxIDLen, "--", "-----")

	for i, l := range levels {
		fmt.Printf("  %-3d  %-*s  %s\n", i+1, maxIDLen, l.ID, l.Title)
	}

	fmt.Println()
	fmt.Println("Run 'horizon play <id>' to play a level.")
}
