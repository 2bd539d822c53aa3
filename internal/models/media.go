package models

type DownloadMode string

const (
	ModeVideo DownloadMode = "video"
	ModeAudio DownloadMode = "audio"
)

type MediaFile struct {
	SourceURL string       `json:"sourceUrl"`
	Path      string       `json:"path"`
	Title     string       `json:"title"`
	Mode      DownloadMode `json:"mode"`
}

type Transcript struct {
	SourceURL string `json:"sourceUrl"`
	MediaPath string `json:"mediaPath"`
	ModelSize string `json:"modelSize"`
	Text      string `json:"text"`
}
