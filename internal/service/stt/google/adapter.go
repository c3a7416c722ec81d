// Package google parses Google Cloud Speech-to-Text batch responses.
package google

import (
	"fmt"
	"strconv"

	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/protobuf/encoding/protojson"

	"stt-normalization-service/internal/models"
	"stt-normalization-service/internal/service/stt"
)

// ProviderName is the registry key for this adapter.
const ProviderName = "google"

// Adapter implements stt.Adapter for a LongRunningRecognizeResponse in
// protojson form. Google reports diarization as a per-word SpeakerTag
// rather than an utterance list; maximal runs of the same tag are folded
// into synthetic utterances so diarized Google documents flow through
// the aligner and coalescer like any other vendor's.
type Adapter struct{}

// New creates a new Google STT adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string { return ProviderName }

// Parse translates the response into normalized words and utterances.
//
// When diarization is enabled Google repeats every word, tagged, in the
// final result; only that result is used then. Without diarization the
// per-result word lists are concatenated.
func (a *Adapter) Parse(raw []byte) (stt.Result, error) {
	var resp speechpb.LongRunningRecognizeResponse
	if err := protojson.Unmarshal(raw, &resp); err != nil {
		return stt.Result{}, fmt.Errorf("google: decode payload: %w", err)
	}

	infos := wordInfos(&resp)
	if len(infos) == 0 {
		return stt.Result{}, nil
	}

	words := make([]models.Word, 0, len(infos))
	tags := make([]int32, 0, len(infos))
	for i, wi := range infos {
		if wi.GetStartTime() == nil || wi.GetEndTime() == nil {
			return stt.Result{}, &stt.MalformedWordError{
				Provider: ProviderName, Index: i, Reason: "missing start/end time",
			}
		}
		words = append(words, models.Word{
			Text:       wi.GetWord(),
			Start:      wi.GetStartTime().AsDuration().Seconds(),
			End:        wi.GetEndTime().AsDuration().Seconds(),
			Confidence: float64(wi.GetConfidence()),
		})
		tags = append(tags, wi.GetSpeakerTag())
	}
	if err := stt.ValidateWords(ProviderName, words); err != nil {
		return stt.Result{}, err
	}

	return stt.Result{Words: words, Utterances: utterancesFromTags(words, tags)}, nil
}

// wordInfos selects the word list to normalize. A SpeakerTag of zero
// means "untagged", so any nonzero tag in the last result marks the
// diarized duplicate list.
func wordInfos(resp *speechpb.LongRunningRecognizeResponse) []*speechpb.WordInfo {
	results := resp.GetResults()
	if len(results) == 0 {
		return nil
	}

	last := results[len(results)-1]
	if alts := last.GetAlternatives(); len(alts) > 0 {
		for _, wi := range alts[0].GetWords() {
			if wi.GetSpeakerTag() != 0 {
				return alts[0].GetWords()
			}
		}
	}

	var infos []*speechpb.WordInfo
	for _, r := range results {
		if alts := r.GetAlternatives(); len(alts) > 0 {
			infos = append(infos, alts[0].GetWords()...)
		}
	}
	return infos
}

// utterancesFromTags folds maximal runs of identically-tagged words into
// utterances. Untagged responses produce no utterances, leaving the
// document to the fallback segmenter.
func utterancesFromTags(words []models.Word, tags []int32) []models.Utterance {
	var utterances []models.Utterance
	runStart := -1
	for i := range words {
		if tags[i] == 0 {
			continue
		}
		if runStart >= 0 && tags[i] == tags[runStart] {
			continue
		}
		if runStart >= 0 {
			utterances = append(utterances, tagRun(words, tags, runStart, i))
		}
		runStart = i
	}
	if runStart >= 0 {
		utterances = append(utterances, tagRun(words, tags, runStart, len(words)))
	}
	return utterances
}

func tagRun(words []models.Word, tags []int32, from, to int) models.Utterance {
	start := words[from].Start
	end := words[to-1].End
	// A zero-duration word sitting exactly on a run boundary cannot pass
	// the open overlap test (start < utt.End && end > utt.Start) against
	// an utterance that starts or ends on it, so pad both synthetic
	// boundaries outward. Start may dip below zero for a word at t=0;
	// the aligner only compares times, never indexes by them.
	if words[from].End <= start {
		start -= 0.001
	}
	if end <= words[to-1].Start {
		end += 0.001
	}
	return models.Utterance{
		SpeakerID: "Speaker " + strconv.Itoa(int(tags[from])),
		Start:     start,
		End:       end,
	}
}
