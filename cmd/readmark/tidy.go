package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/readmark"
)

var tidyCmd = &cobra.Command{
	Use:   "tidy [file]",
	Short: "Tidy a Markdown file (reads stdin when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		fmt.Fprintln(os.Stdout, readmark.TidyMarkdown(string(data)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tidyCmd)
}
