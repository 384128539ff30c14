package chinese

import "testing"

func TestToneSandhiBuShi(t *testing.T) {
	chars := []string{"不", "是"}
	pinyins := []string{"bu4", "shi4"}
	got := ApplyToneSandhi(chars, pinyins)
	want := []string{"bu2", "shi4"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ApplyToneSandhi(不是) = %v, want %v", got, want)
		}
	}
}

func TestToneSandhiNiHao(t *testing.T) {
	chars := []string{"你", "好"}
	pinyins := []string{"ni3", "hao3"}
	got := ApplyToneSandhi(chars, pinyins)
	want := []string{"ni2", "hao3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ApplyToneSandhi(你好) = %v, want %v", got, want)
		}
	}
}

func TestToPhonemesNonEmpty(t *testing.T) {
	out := ToPhonemes("你好", false)
	if out == "" {
		t.Fatal("ToPhonemes returned empty string for non-empty Han input")
	}
	lastByte := out[len(out)-1]
	if lastByte < '1' || lastByte > '5' {
		t.Fatalf("expected final tone digit suffix, got output %q", out)
	}
}

func TestPinyinToIPARoundTripShape(t *testing.T) {
	ipa := PinyinToIPA("zhong1")
	if ipa == "" {
		t.Fatal("PinyinToIPA returned empty string")
	}
}
