package model

import "fmt"

// Manifest pins a set of files from a single Hugging Face repo at specific
// revisions, optionally with known sha256 checksums.
type Manifest struct {
	Repo  string      `json:"repo"`
	Files []ModelFile `json:"files"`
}

// ModelFile is one file within a Manifest.
type ModelFile struct {
	Filename  string `json:"filename"`
	Revision  string `json:"revision"`
	SHA256    string `json:"sha256"`
	LocalPath string `json:"local_path,omitempty"` // Override local save path (defaults to Filename).
}

// PinnedManifest returns the known file set for repo, or an error if repo
// is not one of the model variants this engine ships manifests for.
func PinnedManifest(repo string) (Manifest, error) {
	switch repo {
	case "hexgrad/Kokoro-82M-ONNX":
		return Manifest{
			Repo: repo,
			Files: []ModelFile{
				{
					Filename: "onnx/model.onnx",
					Revision: "main",
					SHA256:   "",
				},
				{
					Filename: "manifest.json",
					Revision: "main",
					SHA256:   "",
				},
			},
		}, nil
	case "hexgrad/Kokoro-82M-Mandarin-ONNX":
		return Manifest{
			Repo: repo,
			Files: []ModelFile{
				{
					Filename: "onnx/model.onnx",
					Revision: "main",
					SHA256:   "",
				},
				{
					Filename: "manifest.json",
					Revision: "main",
					SHA256:   "",
				},
			},
		}, nil
	default:
		return Manifest{}, fmt.Errorf("no pinned manifest for repo %q", repo)
	}
}

const (
	voiceRepo     = "hexgrad/Kokoro-82M"
	voiceRevision = "main"
)

// VoiceManifest returns the pinned file set for the voice styles: one .npy
// style array per voice, under voices/ in the upstream repo. Downloading it
// saves each array as its own file; no ZIP archive is built from them.
func VoiceManifest() Manifest {
	voices := []string{
		"af_heart", "af_bella", "af_nicole", "af_sarah", "af_sky",
		"am_adam", "am_michael",
		"bf_emma", "bf_isabella",
		"bm_george", "bm_lewis",
	}

	files := make([]ModelFile, len(voices))
	for i, v := range voices {
		files[i] = ModelFile{
			Filename:  "voices/" + v + ".npy",
			Revision:  voiceRevision,
			LocalPath: v + ".npy",
		}
	}

	return Manifest{Repo: voiceRepo, Files: files}
}
