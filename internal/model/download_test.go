package model

import "testing"

func TestIsSHA256Hex(t *testing.T) {
	valid := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if !isSHA256Hex(valid) {
		t.Fatalf("expected %q to be recognized as sha256 hex", valid)
	}
	if isSHA256Hex("not-a-hash") {
		t.Fatal("expected non-hex string to be rejected")
	}
	if isSHA256Hex(valid[:10]) {
		t.Fatal("expected short string to be rejected")
	}
}

func TestNormalizeETag(t *testing.T) {
	cases := map[string]string{
		`"abc123"`:    "abc123",
		`W/"abc123"`:  "abc123",
		"  abc123  ":  "abc123",
		"abc123":      "abc123",
	}
	for in, want := range cases {
		if got := normalizeETag(in); got != want {
			t.Errorf("normalizeETag(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveURL(t *testing.T) {
	got := resolveURL("hexgrad/Kokoro-82M-ONNX", ModelFile{Filename: "onnx/model.onnx", Revision: "main"})
	want := "https://huggingface.co/hexgrad/Kokoro-82M-ONNX/resolve/main/onnx/model.onnx"
	if got != want {
		t.Fatalf("resolveURL = %q, want %q", got, want)
	}
}

func TestErrAccessDeniedMessage(t *testing.T) {
	err := &ErrAccessDenied{Repo: "foo/bar"}
	if err.Error() != "access denied for foo/bar" {
		t.Fatalf("Error() = %q", err.Error())
	}

	withMsg := &ErrAccessDenied{Repo: "foo/bar", Msg: "custom message"}
	if withMsg.Error() != "custom message" {
		t.Fatalf("Error() = %q, want custom message", withMsg.Error())
	}
}
