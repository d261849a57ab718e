package content_test

import (
	"testing"

	"prospector/internal/content"
)

func TestItemText(t *testing.T) {
	tests := []struct {
		name string
		item content.Item
		want string
	}{
		{
			name: "post joins title and body",
			item: content.Item{Kind: content.KindPost, Title: "Need a model", Body: "budget attached"},
			want: "Need a model budget attached",
		},
		{
			name: "post without body uses title",
			item: content.Item{Kind: content.KindPost, Title: "Need a model"},
			want: "Need a model",
		},
		{
			name: "post without title uses body",
			item: content.Item{Kind: content.KindPost, Body: "just the body"},
			want: "just the body",
		},
		{
			name: "comment ignores title",
			item: content.Item{Kind: content.KindComment, Title: "ignored", Body: "comment body"},
			want: "comment body",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.item.Text(); got != tc.want {
				t.Fatalf("Text() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDisplayAuthor(t *testing.T) {
	item := content.Item{Author: "  "}
	if got := item.DisplayAuthor(); got != content.UnknownAuthor {
		t.Fatalf("DisplayAuthor() = %q, want %q", got, content.UnknownAuthor)
	}
	item.Author = "prospector_fan"
	if got := item.DisplayAuthor(); got != "prospector_fan" {
		t.Fatalf("DisplayAuthor() = %q", got)
	}
}
