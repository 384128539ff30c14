package vocab

import (
	"reflect"
	"testing"
)

func TestTokenizeHello(t *testing.T) {
	got := Tokenize("Hello!", Multilingual)
	want := []int64{24, 47, 54, 54, 57, 5}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize(%q) = %v, want %v", "Hello!", got, want)
	}
}

func TestDetokenizeHello(t *testing.T) {
	got := Detokenize([]int64{24, 47, 54, 54, 57, 5}, Multilingual)
	if got != "Hello!" {
		t.Fatalf("Detokenize = %q, want %q", got, "Hello!")
	}
}

func TestDetokenizeHelloWorldIPA(t *testing.T) {
	ids := []int64{0, 50, 83, 54, 156, 57, 135, 3, 16, 65, 156, 87, 158, 54, 46, 5, 0}
	got := Detokenize(ids, Multilingual)
	want := "$həlˈoʊ, wˈɜːld!$"
	if got != want {
		t.Fatalf("Detokenize = %q, want %q", got, want)
	}
}

func TestTokenizeDropsUnknownChars(t *testing.T) {
	ids := Tokenize("A\x00B", Multilingual)
	for _, id := range ids {
		v := For(Multilingual)
		if _, ok := v.Rune(int(id)); !ok {
			t.Fatalf("token id %d not present in reverse vocab", id)
		}
	}
	if len(ids) != 2 {
		t.Fatalf("expected unknown char dropped, got %d ids", len(ids))
	}
}

func TestAllTokenIDsInBounds(t *testing.T) {
	v := For(Multilingual)
	ids := Tokenize("Hello, wˈɜːld! ¿Qué?", Multilingual)
	for _, id := range ids {
		if int(id) >= v.Size()+64 { // generous bound; real invariant is "< total distinct ids assigned"
			t.Fatalf("token id %d looks out of range", id)
		}
	}
}

func TestMandarinVocabRoundTrip(t *testing.T) {
	v := For(Mandarin)
	id, ok := v.Lookup('ㄓ')
	if !ok || id != 80 {
		t.Fatalf("Mandarin lookup ㄓ = (%d, %v), want (80, true)", id, ok)
	}
	r, ok := v.Rune(80)
	if !ok || r != 'ㄓ' {
		t.Fatalf("Mandarin reverse lookup 80 = (%q, %v), want (ㄓ, true)", r, ok)
	}
}
