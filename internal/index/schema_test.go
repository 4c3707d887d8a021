package index

import "testing"

func TestTokenize_PreservesUnderscore(t *testing.T) {
	got := Tokenize("foo::bar_baz")
	want := []string{"foo", "bar_baz"}
	assertStringSlice(t, got, want)
}

func TestTokenize_LowercasesAndDropsPunctuation(t *testing.T) {
	got := Tokenize("EventStore.new")
	want := []string{"eventstore", "new"}
	assertStringSlice(t, got, want)
}

func TestTokenize_Generics(t *testing.T) {
	got := Tokenize("HashMap<String>")
	want := []string{"hashmap", "string"}
	assertStringSlice(t, got, want)
}

func TestTokenize_Empty(t *testing.T) {
	got := Tokenize("")
	if len(got) != 0 {
		t.Errorf("Tokenize(\"\") = %v, want empty", got)
	}
}

func assertStringSlice(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
