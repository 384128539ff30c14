package style

import "testing"

func TestParseBlendSpecSingle(t *testing.T) {
	components, err := ParseBlendSpec("af_heart")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(components) != 1 || components[0].Name != "af_heart" || components[0].Weight != 1.0 {
		t.Fatalf("got %+v", components)
	}
}

func TestParseBlendSpecWeighted(t *testing.T) {
	components, err := ParseBlendSpec("af_heart.3+af_sky.7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(components) != 2 {
		t.Fatalf("got %d components, want 2", len(components))
	}
	if components[0].Name != "af_heart" || components[0].Weight != 3 {
		t.Fatalf("component 0 = %+v", components[0])
	}
	if components[1].Name != "af_sky" || components[1].Weight != 7 {
		t.Fatalf("component 1 = %+v", components[1])
	}
}

func TestParseBlendSpecEmptyTermIsInvalid(t *testing.T) {
	if _, err := ParseBlendSpec("af_heart.3+"); err == nil {
		t.Fatal("expected error for trailing empty term")
	}
}

func TestResolveDefaultVoiceOverridesEnglishDefaultForNonEnglish(t *testing.T) {
	got := ResolveDefaultVoice("af_heart", "es", false)
	if got != "ef_dora" {
		t.Fatalf("ResolveDefaultVoice = %q, want ef_dora", got)
	}
}

func TestResolveDefaultVoiceRespectsForceStyle(t *testing.T) {
	got := ResolveDefaultVoice("af_heart", "es", true)
	if got != "af_heart" {
		t.Fatalf("ResolveDefaultVoice with forceStyle = %q, want af_heart", got)
	}
}

func TestResolveDefaultVoiceKeepsExplicitNonDefaultChoice(t *testing.T) {
	got := ResolveDefaultVoice("af_sky", "es", false)
	if got != "af_sky" {
		t.Fatalf("ResolveDefaultVoice = %q, want af_sky (explicit non-default kept)", got)
	}
}

func buildTestStore() *Store {
	s := &Store{rows: make(map[string][][RowWidth]float32)}
	rowsA := make([][RowWidth]float32, 3)
	rowsA[0][0] = 1.0
	rowsA[1][0] = 2.0
	rowsA[2][0] = 3.0
	rowsB := make([][RowWidth]float32, 3)
	rowsB[0][0] = 10.0
	rowsB[1][0] = 20.0
	rowsB[2][0] = 30.0
	s.rows["a"] = rowsA
	s.rows["b"] = rowsB
	s.names = []string{"a", "b"}
	return s
}

func TestStoreSelectSingleVoice(t *testing.T) {
	s := buildTestStore()
	row, err := s.Select("a", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row[0] != 2.0 {
		t.Fatalf("row[0] = %v, want 2.0", row[0])
	}
}

func TestStoreSelectBlendScaledSum(t *testing.T) {
	s := buildTestStore()
	row, err := s.Select("a.1+b.1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := float32(1.1) // 0.1*1.0 + 0.1*10.0
	if row[0] != want {
		t.Fatalf("row[0] = %v, want %v", row[0], want)
	}
}

func TestStoreSelectUnknownVoiceErrors(t *testing.T) {
	s := buildTestStore()
	if _, err := s.Select("nonexistent", 0); err == nil {
		t.Fatal("expected ErrUnknownVoice")
	}
}

func TestStoreRowClampsToLastRow(t *testing.T) {
	s := buildTestStore()
	row, ok := s.Row("a", 100)
	if !ok {
		t.Fatal("expected ok for out-of-range l clamped to last row")
	}
	if row[0] != 3.0 {
		t.Fatalf("row[0] = %v, want 3.0 (clamped to last row)", row[0])
	}
}
