package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CandidateSlot is a feasible slot as handed over by the solver, tagged with a
// sequential id the ranking service can refer back to.
type CandidateSlot struct {
	SlotID          int       `json:"slot_id"`
	DoctorID        int       `json:"doctor_id"`
	DoctorSpecialty string    `json:"doctor_specialty,omitempty"`
	RoomID          int       `json:"room_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
}

// RankedSlot is a candidate slot with its final position. Score is nil when
// the ranking service did not provide one or the fallback ordering was used.
type RankedSlot struct {
	CandidateSlot
	Rank      int      `json:"rank"`
	Score     *float64 `json:"score"`
	Rationale string   `json:"rationale"`
}

// RequestContext is the free-text context rendered into the ranking prompt.
type RequestContext struct {
	ClinicName      string
	ReasonForVisit  string
	Urgency         string
	PreferredStart  string
	PreferredEnd    string
	DurationMinutes int
}

// Generator produces completion text for a prompt. *Client satisfies it; tests
// substitute their own.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DefaultPromptTemplate asks for a strict JSON answer so the response can be
// decoded without heuristics in the common case.
const DefaultPromptTemplate = `You are the scheduling assistant for {clinic_name}.
A client asked for an appointment. Reason for visit: {reason_for_visit}. Urgency: {urgency}.
Preferred window: {preferred_start} to {preferred_end}. Appointment length: {duration_minutes} minutes.

Candidate slots:
{slot_listing}

Order the slots from best to worst for this client. Respond with JSON only, in the form
{"recommendations":[{"slot_id":<int>,"score":<0..1>,"rationale":"<short reason>"}]}.`

const fallbackRationale = "Next earliest available slot for your request."

// Ranker orders feasible slots. Rank is total: the deterministic fallback
// covers every failure of the model path, so callers never see an error.
type Ranker struct {
	client         Generator
	log            *logrus.Logger
	template       string
	maxSuggestions int
}

func NewRanker(client Generator, cfg Config, log *logrus.Logger) *Ranker {
	maxSuggestions := cfg.MaxSuggestions
	if maxSuggestions <= 0 {
		maxSuggestions = defaultMaxSuggestions
	}
	return &Ranker{
		client:         client,
		log:            log,
		template:       DefaultPromptTemplate,
		maxSuggestions: maxSuggestions,
	}
}

// Sources reported by Rank.
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

// Rank orders the slots by the ranking service's judgment, falling back to the
// earliest-first heuristic when the service is unreachable, times out, or
// answers with an uninterpretable payload. The second return value names
// which path produced the ordering.
func (r *Ranker) Rank(ctx context.Context, slots []CandidateSlot, reqCtx RequestContext) ([]RankedSlot, string) {
	if len(slots) == 0 {
		return []RankedSlot{}, SourceFallback
	}
	if r.client == nil {
		return fallbackRanking(slots), SourceFallback
	}

	ranked, err := r.rankWithModel(ctx, slots, reqCtx)
	if err != nil {
		r.log.Warnf("Failed to rank slots with model, using earliest-first fallback: %+v", err)
		return fallbackRanking(slots), SourceFallback
	}
	return ranked, SourceModel
}

func (r *Ranker) rankWithModel(ctx context.Context, slots []CandidateSlot, reqCtx RequestContext) ([]RankedSlot, error) {
	listed := slots
	if len(listed) > r.maxSuggestions {
		listed = listed[:r.maxSuggestions]
	}

	prompt := renderPrompt(r.template, slotListing(listed), reqCtx)
	output, err := r.client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	recs, err := parseRecommendations(output)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]CandidateSlot, len(slots))
	for _, slot := range slots {
		byID[slot.SlotID] = slot
	}

	ranked := make([]RankedSlot, 0, len(slots))
	mentioned := make(map[int]bool, len(recs))
	for _, rec := range recs {
		slot, ok := byID[rec.slotID]
		if !ok || mentioned[rec.slotID] {
			continue
		}
		mentioned[rec.slotID] = true
		ranked = append(ranked, RankedSlot{
			CandidateSlot: slot,
			Rank:          len(ranked) + 1,
			Score:         rec.score,
			Rationale:     rec.rationale,
		})
	}
	if len(ranked) == 0 {
		return nil, fmt.Errorf("%w: no recommendation matched a feasible slot", ErrBadResponse)
	}

	// Feasible slots the model did not mention keep their solver order after
	// the ranked ones.
	for _, slot := range slots {
		if mentioned[slot.SlotID] {
			continue
		}
		ranked = append(ranked, RankedSlot{
			CandidateSlot: slot,
			Rank:          len(ranked) + 1,
		})
	}
	return ranked, nil
}

// fallbackRanking sorts ascending by start time with ties broken by doctor
// then room id, mirroring the solver's own ordering.
func fallbackRanking(slots []CandidateSlot) []RankedSlot {
	ordered := append([]CandidateSlot(nil), slots...)
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].StartTime.Equal(ordered[j].StartTime) {
			return ordered[i].StartTime.Before(ordered[j].StartTime)
		}
		if ordered[i].DoctorID != ordered[j].DoctorID {
			return ordered[i].DoctorID < ordered[j].DoctorID
		}
		return ordered[i].RoomID < ordered[j].RoomID
	})

	ranked := make([]RankedSlot, len(ordered))
	for i, slot := range ordered {
		ranked[i] = RankedSlot{
			CandidateSlot: slot,
			Rank:          i + 1,
			Rationale:     fallbackRationale,
		}
	}
	return ranked
}

func slotListing(slots []CandidateSlot) string {
	lines := make([]string, len(slots))
	for i, slot := range slots {
		specialty := ""
		if slot.DoctorSpecialty != "" {
			specialty = fmt.Sprintf(" (Specialty: %s)", slot.DoctorSpecialty)
		}
		lines[i] = fmt.Sprintf("- slot_id: %d | doctor_id: %d%s | room_id: %d | start: %s | end: %s",
			slot.SlotID, slot.DoctorID, specialty, slot.RoomID,
			slot.StartTime.Format(time.RFC3339), slot.EndTime.Format(time.RFC3339))
	}
	return strings.Join(lines, "\n")
}

func renderPrompt(template, listing string, reqCtx RequestContext) string {
	replacer := strings.NewReplacer(
		"{clinic_name}", reqCtx.ClinicName,
		"{reason_for_visit}", reqCtx.ReasonForVisit,
		"{urgency}", reqCtx.Urgency,
		"{preferred_start}", reqCtx.PreferredStart,
		"{preferred_end}", reqCtx.PreferredEnd,
		"{duration_minutes}", fmt.Sprintf("%d", reqCtx.DurationMinutes),
		"{slot_listing}", listing,
	)
	return strings.TrimSpace(replacer.Replace(template))
}

type recommendation struct {
	slotID    int
	score     *float64
	rationale string
}

// parseRecommendations decodes the model output. The whole string is tried as
// JSON first; when that fails, the outermost {...} substring is decoded.
// Entries without an integer slot_id are skipped; non-numeric scores are
// dropped, not fatal.
func parseRecommendations(raw string) ([]recommendation, error) {
	text := strings.TrimSpace(raw)

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start == -1 || end == -1 || end <= start {
			return nil, fmt.Errorf("%w: response did not contain JSON data", ErrBadResponse)
		}
		if err := json.Unmarshal([]byte(text[start:end+1]), &envelope); err != nil {
			return nil, fmt.Errorf("%w: embedded JSON was malformed", ErrBadResponse)
		}
	}

	rawRecs, ok := envelope["recommendations"]
	if !ok {
		return nil, fmt.Errorf("%w: missing recommendations array", ErrBadResponse)
	}
	var entries []map[string]any
	if err := json.Unmarshal(rawRecs, &entries); err != nil {
		return nil, fmt.Errorf("%w: recommendations was not an array of objects", ErrBadResponse)
	}

	recs := make([]recommendation, 0, len(entries))
	for _, entry := range entries {
		id, ok := integerField(entry, "slot_id")
		if !ok {
			continue
		}
		rec := recommendation{slotID: id}
		if v, ok := entry["score"].(float64); ok {
			score := v
			rec.score = &score
		}
		if v, ok := entry["rationale"].(string); ok {
			rec.rationale = strings.TrimSpace(v)
		}
		recs = append(recs, rec)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: no valid recommendations were returned", ErrBadResponse)
	}
	return recs, nil
}

func integerField(entry map[string]any, key string) (int, bool) {
	v, ok := entry[key].(float64)
	if !ok || v != float64(int(v)) {
		return 0, false
	}
	return int(v), true
}
