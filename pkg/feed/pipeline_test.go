package feed_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-newsreader/pkg/feed"
)

func sampleArticles() []feed.Article {
	return []feed.Article{
		{
			ID:              "a1",
			Title:           "Alpha React Guide",
			Summary:         "Hooks in practice",
			Tags:            []string{"react", "frontend"},
			PublishedAt:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			ReadTimeMinutes: 3,
		},
		{
			ID:              "a2",
			Title:           "Beta Databases",
			Summary:         "Indexes explained",
			Tags:            []string{"sql"},
			PublishedAt:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			ReadTimeMinutes: 10,
		},
		{
			ID:              "a3",
			Title:           "Zeta Networking",
			Summary:         "TCP deep dive",
			Tags:            []string{"network"},
			PublishedAt:     time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
			ReadTimeMinutes: 7,
		},
	}
}

func titles(articles []feed.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.Title
	}
	return out
}

func ids(articles []feed.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}

func TestFilter_MatchesTitleSummaryAndTags(t *testing.T) {
	articles := sampleArticles()

	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{"title substring", "react", []string{"a1"}},
		{"case insensitive", "REACT", []string{"a1"}},
		{"summary substring", "indexes", []string{"a2"}},
		{"tag substring", "network", []string{"a3"}},
		{"no match", "quantum", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(feed.Filter(articles, tc.query))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("filter %q mismatch (-want +got):\n%s", tc.query, diff)
			}
		})
	}
}

func TestFilter_EmptyQueryPreservesOrder(t *testing.T) {
	articles := sampleArticles()
	got := feed.Filter(articles, "")
	if diff := cmp.Diff(ids(articles), ids(got)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_DateNewestFirst(t *testing.T) {
	got := ids(feed.Sort(sampleArticles(), feed.SortByDate))
	want := []string{"a2", "a3", "a1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("date order mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_DateTiesBreakByID(t *testing.T) {
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	articles := []feed.Article{
		{ID: "b2", Title: "Second", PublishedAt: at},
		{ID: "b1", Title: "First", PublishedAt: at},
	}
	got := ids(feed.Sort(articles, feed.SortByDate))
	want := []string{"b1", "b2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tie break mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_TitleAscending(t *testing.T) {
	got := titles(feed.Sort(sampleArticles(), feed.SortByTitle))
	want := []string{"Alpha React Guide", "Beta Databases", "Zeta Networking"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("title order mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_ReadTimeShortestFirst(t *testing.T) {
	articles := feed.Sort(sampleArticles(), feed.SortByReadTime)
	want := []int{3, 7, 10}
	for i, a := range articles {
		if a.ReadTimeMinutes != want[i] {
			t.Fatalf("read time order = %v, want %v", readTimes(articles), want)
		}
	}
}

func readTimes(articles []feed.Article) []int {
	out := make([]int, len(articles))
	for i, a := range articles {
		out[i] = a.ReadTimeMinutes
	}
	return out
}

func TestSort_UnknownKeyPreservesOrder(t *testing.T) {
	articles := sampleArticles()
	got := ids(feed.Sort(articles, feed.SortKey("relevance")))
	if diff := cmp.Diff(ids(articles), got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestDerive_DoesNotMutateInput(t *testing.T) {
	articles := sampleArticles()
	before := ids(articles)

	feed.Derive(articles, feed.Params{Query: "e", SortBy: feed.SortByTitle})

	if diff := cmp.Diff(before, ids(articles)); diff != "" {
		t.Fatalf("input slice mutated (-want +got):\n%s", diff)
	}
}

func TestDerive_FiltersThenSorts(t *testing.T) {
	articles := sampleArticles()
	got := ids(feed.Derive(articles, feed.Params{Query: "e", SortBy: feed.SortByReadTime}))
	// All three titles contain an "e"; ordered by read time.
	want := []string{"a1", "a3", "a2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pipeline mismatch (-want +got):\n%s", diff)
	}
}
