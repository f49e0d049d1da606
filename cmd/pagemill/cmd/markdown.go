package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagemill/pagemill/internal/markdown"
)

var markdownCmd = &cobra.Command{
	Use:   "markdown <pages-dir>",
	Short: "Convert a directory of page HTML files to one markdown document",
	Long: `Markdown reads the numbered page files an extraction run produced and
emits a single markdown document: pages in numeric order, separated by
horizontal rules, with tables rendered as pipe tables.`,
	Args: cobra.ExactArgs(1),
	RunE: runMarkdown,
}

func init() {
	rootCmd.AddCommand(markdownCmd)

	markdownCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
}

func runMarkdown(cmd *cobra.Command, args []string) error {
	doc, err := markdown.ConvertDirectory(args[0])
	if err != nil {
		return fmt.Errorf("converting pages: %w", err)
	}

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), doc)
		return err
	}
	if err := os.WriteFile(out, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	return nil
}
