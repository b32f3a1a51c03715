// Package main is the entry point for the trisarira terminal RPG.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trisarira",
	Short: "A turn-based terminal RPG",
	Long:  `Trisarira is a turn-based RPG played in the terminal: explore zones, fight in rounds, recruit companions and follow quests.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(validateCmd)
}
