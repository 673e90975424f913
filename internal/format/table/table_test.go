package table

import (
	"reflect"
	"testing"
)

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{
		{"commerce-core-endpoint", "https://prod.example/graphql"},
		{"commerce-store-view-code", "default"},
		{"x", "1"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignLeft})
	want := []string{
		"commerce-core-endpoint    https://prod.example/graphql",
		"commerce-store-view-code  default",
		"x                         1",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected table:\n%q\nwant\n%q", got, want)
	}
}

func TestFormatRightAlignAndRaggedRows(t *testing.T) {
	got := Format([][]string{{"a", "10"}, {"bb"}}, []Alignment{AlignLeft, AlignRight})
	want := []string{"a   10", "bb"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected table %q", got)
	}
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestKeyValuesSortsByKey(t *testing.T) {
	rows := KeyValues(map[string]string{"b": "2", "a": "1"})
	want := [][]string{{"a", "1"}, {"b", "2"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("unexpected rows %q", rows)
	}
}
