package graph

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("The quick-brown Fox, jumps! over 42 dogs", 2)
	want := []string{"the", "quick-brown", "fox", "jumps", "over", "dogs"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestKeywords_DistinctAndCapped(t *testing.T) {
	kw := Keywords("database database indexing indexing performance")
	want := []string{"database", "indexing", "performance"}
	if !reflect.DeepEqual(kw, want) {
		t.Errorf("expected %v, got %v", want, kw)
	}

	many := strings.Join([]string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
		"golf", "hotel", "india", "juliet", "kilo", "lima",
	}, " ")
	if kw := Keywords(many); len(kw) != 10 {
		t.Errorf("expected cap of 10 keywords, got %d", len(kw))
	}
}

func TestKeywords_ShortTokensDropped(t *testing.T) {
	kw := Keywords("run the big install now")
	want := []string{"install"}
	if !reflect.DeepEqual(kw, want) {
		t.Errorf("expected %v, got %v", want, kw)
	}
}

func TestJaccard(t *testing.T) {
	cases := []struct {
		a, b []string
		want float64
	}{
		{[]string{"a", "b"}, []string{"a", "b"}, 1},
		{[]string{"a", "b", "c"}, []string{"b", "c", "d"}, 0.5},
		{[]string{"a"}, []string{"b"}, 0},
		{nil, []string{"a"}, 0},
		{nil, nil, 0},
	}
	for _, tc := range cases {
		if got := Jaccard(tc.a, tc.b); got != tc.want {
			t.Errorf("Jaccard(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
