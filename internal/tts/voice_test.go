package tts

import "testing"

func TestDescribeVoiceParsesPrefix(t *testing.T) {
	info := describeVoice("af_heart")
	if info.Language != "en-us" {
		t.Errorf("Language = %q, want en-us", info.Language)
	}
	if info.Gender != "female" {
		t.Errorf("Gender = %q, want female", info.Gender)
	}
	if info.DisplayName != "Heart" {
		t.Errorf("DisplayName = %q, want Heart", info.DisplayName)
	}
}

func TestDescribeVoiceMandarin(t *testing.T) {
	info := describeVoice("zf_xiaoxiao")
	if info.Language != "zh" {
		t.Errorf("Language = %q, want zh", info.Language)
	}
	if info.Gender != "female" {
		t.Errorf("Gender = %q, want female", info.Gender)
	}
}

func TestDescribeVoiceUnrecognizedPrefix(t *testing.T) {
	info := describeVoice("not_a_standard_id")
	if info.Language != "" || info.Gender != "" {
		t.Errorf("expected empty language/gender for unrecognized prefix, got %+v", info)
	}
}
