package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pevans/recipenote/library"
)

// printEntriesTable prints library entries in human-readable table format
func printEntriesTable(entries []library.Entry) {
	if len(entries) == 0 {
		fmt.Println("No recipes saved.")
		return
	}

	fmt.Printf("%-36s %-16s %-40s %s\n", "ID", "SAVED", "TITLE", "SOURCE")
	fmt.Println("----------------------------------------------------------------------------------------------------")

	for _, entry := range entries {
		// Truncate title and source if too long
		title := entry.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		source := entry.SourceURL
		if len(source) > 50 {
			source = source[:47] + "..."
		}

		fmt.Printf("%-36s %-16s %-40s %s\n",
			entry.RecipeID.String(),
			entry.SavedAt.Local().Format("2006-01-02 15:04"),
			title,
			source,
		)
	}
}

// printEntriesJSON prints library entries in JSON format
func printEntriesJSON(entries []library.Entry) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to encode JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
