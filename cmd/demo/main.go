// cmd/demo/main.go
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/spf13/cobra"

	"shelfmate/internal/assistant"
	"shelfmate/internal/embedded"
)

var dbPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "demo",
		Short: "Interactive library assistant over an embedded sample catalog",
		RunE:  run,
	}
	rootCmd.Flags().StringVar(&dbPath, "db", ":memory:", "path to the catalog database")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := embedded.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer store.Close()

	if err := store.Seed(ctx); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	titles, err := store.Titles(ctx)
	if err != nil {
		return fmt.Errorf("load titles: %w", err)
	}

	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return fmt.Errorf("load lemmatizer: %w", err)
	}

	extractor := assistant.NewLemmaExtractor(lemmatizer, titles)
	resolver := assistant.NewResolver(store)

	fmt.Println("Library assistant demo. Ask about books, e.g.:")
	fmt.Println(`  Is "The Great Gatsby" available?`)
	fmt.Println("Type 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" {
			break
		}

		parsed := extractor.Extract(line)
		books, err := resolver.Resolve(ctx, parsed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		fmt.Println(assistant.Format(books, parsed.Intent))
		for _, book := range books {
			fmt.Printf("  [%s] %s by %s: %d/%d available at %s\n",
				book.BookID, book.Title, book.Author, book.Available, book.Quantity, book.Location)
		}
	}
	return scanner.Err()
}
