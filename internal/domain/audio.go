package domain

import "net/url"

const audioServiceURL = "https://dict.youdao.com/dictvoice"

// Voice types understood by the audio service.
const (
	audioTypeUK = "1"
	audioTypeUS = "2"
)

// AudioURLs holds pronunciation URLs for both accents.
type AudioURLs struct {
	US string
	UK string
}

// DeriveAudioURLs builds pronunciation URLs for a headword from the fixed audio
// service template. It is pure and deterministic.
func DeriveAudioURLs(headword string) AudioURLs {
	return AudioURLs{
		US: audioURL(headword, audioTypeUS),
		UK: audioURL(headword, audioTypeUK),
	}
}

func audioURL(headword, voice string) string {
	q := url.Values{}
	q.Set("audio", headword)
	q.Set("type", voice)
	return audioServiceURL + "?" + q.Encode()
}
