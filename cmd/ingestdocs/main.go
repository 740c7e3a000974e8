// Command ingestdocs bulk-loads a local docs directory into the
// rag-search index via the service's HTTP ingest endpoint.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/RajputKashish/endee-rag-search/internal/loader"
)

func main() {
	var (
		docsDir string
		apiBase string
	)

	cmd := &cobra.Command{
		Use:           "ingestdocs",
		Short:         "Ingest documents from a local directory into the rag-search index",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, docsDir, apiBase)
		},
	}
	cmd.Flags().StringVar(&docsDir, "docs-dir", "data/docs", "directory containing .md/.txt/.rst files")
	cmd.Flags().StringVar(&apiBase, "api-base", "http://localhost:8000", "base URL of the rag-search API")

	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, docsDir, apiBase string) error {
	docs, skipped, err := loader.Scan(docsDir)
	if err != nil {
		return err
	}
	for _, name := range skipped {
		fmt.Fprintf(os.Stderr, "Skipping empty file %s\n", name)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents found to ingest in %s", docsDir)
	}

	ingested, err := loader.Submit(cmd.Context(), apiBase, docs)
	if err != nil {
		if errors.Is(err, loader.ErrConnection) {
			return fmt.Errorf("%w: is the backend running at %s?", err, apiBase)
		}
		return err
	}

	fmt.Printf("Ingested %d documents.\n", ingested)
	return nil
}
