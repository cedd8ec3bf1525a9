package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/goliatone/go-newsreader/pkg/feed"
)

func main() {
	source := flag.String("articles", "articles.yaml", "path to a YAML article collection")
	query := flag.String("q", "", "filter query matched against title, summary and tags")
	sortBy := flag.String("sort", "date", "sort key: date, title or readTime")
	flag.Parse()

	key, err := parseSortKey(*sortBy)
	if err != nil {
		log.Fatalf("invalid sort key: %v", err)
	}

	file, err := os.Open(*source)
	if err != nil {
		log.Fatalf("Failed to open articles: %v", err)
	}
	defer func() { _ = file.Close() }()

	articles, err := feed.LoadArticles(file)
	if err != nil {
		log.Fatalf("Failed to load articles: %v", err)
	}
	articles = feed.NewSanitizer().Articles(articles)

	visible := feed.Derive(articles, feed.Params{Query: *query, SortBy: key})
	if len(visible) == 0 {
		fmt.Println("No articles match.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Title", "Author", "Published", "Read", "Tags"})
	for _, a := range visible {
		t.AppendRow(table.Row{
			a.ID,
			a.Title,
			a.Author,
			a.PublishedAt.Format("2006-01-02"),
			fmt.Sprintf("%dm", a.ReadTimeMinutes),
			strings.Join(a.Tags, ", "),
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func parseSortKey(raw string) (feed.SortKey, error) {
	switch feed.SortKey(strings.TrimSpace(raw)) {
	case feed.SortByDate:
		return feed.SortByDate, nil
	case feed.SortByTitle:
		return feed.SortByTitle, nil
	case feed.SortByReadTime:
		return feed.SortByReadTime, nil
	}
	return "", fmt.Errorf("%q is not one of date, title, readTime", raw)
}
