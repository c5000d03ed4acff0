package ranking

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func slotAt(id, doctorID, roomID, hour, min int) CandidateSlot {
	start := time.Date(2024, 5, 1, hour, min, 0, 0, time.UTC)
	return CandidateSlot{
		SlotID:    id,
		DoctorID:  doctorID,
		RoomID:    roomID,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
	}
}

type stubGenerator struct {
	output string
	err    error
	prompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.output, s.err
}

func TestParseRecommendationsExtractsEmbeddedJSON(t *testing.T) {
	raw := `Here you go! {"recommendations":[{"slot_id":1,"score":0.9,"rationale":"Early slot"}]}`

	recs, err := parseRecommendations(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].slotID != 1 {
		t.Errorf("slotID = %d, want 1", recs[0].slotID)
	}
	if recs[0].score == nil || *recs[0].score != 0.9 {
		t.Errorf("score = %v, want 0.9", recs[0].score)
	}
	if recs[0].rationale != "Early slot" {
		t.Errorf("rationale = %q", recs[0].rationale)
	}
}

func TestParseRecommendationsSkipsInvalidEntries(t *testing.T) {
	raw := `{"recommendations":[
		{"slot_id":"two","rationale":"not an int"},
		{"rationale":"missing id"},
		{"slot_id":3,"score":"high","rationale":"score dropped"},
		{"slot_id":1.5},
		{"slot_id":2}
	]}`

	recs, err := parseRecommendations(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2: %+v", len(recs), recs)
	}
	if recs[0].slotID != 3 || recs[0].score != nil {
		t.Errorf("entry with bad score should survive without one: %+v", recs[0])
	}
	if recs[1].slotID != 2 {
		t.Errorf("second entry = %+v, want slot 2", recs[1])
	}
}

func TestParseRecommendationsErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no json at all", "sorry, cannot help"},
		{"malformed embedded json", "result: {not json}"},
		{"missing recommendations", `{"answer": 42}`},
		{"recommendations not an array", `{"recommendations": "none"}`},
		{"only invalid entries", `{"recommendations":[{"slot_id":"x"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseRecommendations(tc.raw); !errors.Is(err, ErrBadResponse) {
				t.Fatalf("expected ErrBadResponse, got %v", err)
			}
		})
	}
}

func TestRankUsesModelOrder(t *testing.T) {
	slots := []CandidateSlot{
		slotAt(1, 7, 3, 9, 0),
		slotAt(2, 8, 4, 10, 0),
	}
	gen := &stubGenerator{
		output: `{"recommendations":[{"slot_id":2,"score":0.92,"rationale":"Aligns with lunch break"},{"slot_id":1,"score":0.75,"rationale":"Backup choice"}]}`,
	}
	ranker := NewRanker(gen, Config{}, testLogger())

	ranked, source := ranker.Rank(context.Background(), slots, RequestContext{ReasonForVisit: "Annual check-up", Urgency: "Routine"})

	if source != SourceModel {
		t.Errorf("source = %q, want %q", source, SourceModel)
	}
	if len(ranked) != 2 {
		t.Fatalf("got %d ranked slots, want 2", len(ranked))
	}
	if ranked[0].SlotID != 2 || ranked[0].Rank != 1 {
		t.Errorf("first = slot %d rank %d, want slot 2 rank 1", ranked[0].SlotID, ranked[0].Rank)
	}
	if ranked[0].Score == nil || *ranked[0].Score != 0.92 {
		t.Errorf("first score = %v, want 0.92", ranked[0].Score)
	}
	if !strings.Contains(ranked[0].Rationale, "Aligns") {
		t.Errorf("first rationale = %q", ranked[0].Rationale)
	}
	if ranked[1].SlotID != 1 || ranked[1].Rank != 2 {
		t.Errorf("second = slot %d rank %d, want slot 1 rank 2", ranked[1].SlotID, ranked[1].Rank)
	}
	if !strings.Contains(gen.prompt, "slot_id: 1") || !strings.Contains(gen.prompt, "Annual check-up") {
		t.Errorf("prompt missing slot listing or context:\n%s", gen.prompt)
	}
}

func TestRankAppendsUnmentionedSlots(t *testing.T) {
	slots := []CandidateSlot{
		slotAt(1, 1, 1, 9, 0),
		slotAt(2, 2, 2, 10, 0),
		slotAt(3, 3, 3, 11, 0),
	}
	gen := &stubGenerator{output: `{"recommendations":[{"slot_id":3,"score":0.8},{"slot_id":3,"score":0.7}]}`}
	ranker := NewRanker(gen, Config{}, testLogger())

	ranked, _ := ranker.Rank(context.Background(), slots, RequestContext{})

	if len(ranked) != 3 {
		t.Fatalf("got %d ranked slots, want 3", len(ranked))
	}
	wantOrder := []int{3, 1, 2}
	for i, want := range wantOrder {
		if ranked[i].SlotID != want {
			t.Errorf("position %d = slot %d, want %d", i, ranked[i].SlotID, want)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("position %d rank = %d, want %d", i, ranked[i].Rank, i+1)
		}
	}
	if ranked[1].Score != nil {
		t.Errorf("appended slot should carry no score, got %v", *ranked[1].Score)
	}
}

func TestRankFallsBackOnCommunicationError(t *testing.T) {
	slots := []CandidateSlot{
		slotAt(1, 2, 1, 11, 0),
		slotAt(2, 3, 2, 9, 30),
	}
	gen := &stubGenerator{err: ErrUnreachable}
	ranker := NewRanker(gen, Config{}, testLogger())

	ranked, source := ranker.Rank(context.Background(), slots, RequestContext{})

	if source != SourceFallback {
		t.Errorf("source = %q, want %q", source, SourceFallback)
	}
	if len(ranked) != 2 {
		t.Fatalf("got %d ranked slots, want 2", len(ranked))
	}
	if ranked[0].SlotID != 2 {
		t.Errorf("earliest slot should rank first, got slot %d", ranked[0].SlotID)
	}
	if ranked[0].Rank != 1 || ranked[1].Rank != 2 {
		t.Errorf("ranks = %d, %d", ranked[0].Rank, ranked[1].Rank)
	}
	if !strings.Contains(strings.ToLower(ranked[0].Rationale), "earliest") {
		t.Errorf("fallback rationale should mention earliest availability, got %q", ranked[0].Rationale)
	}
	if ranked[0].Score != nil {
		t.Errorf("fallback should not assign scores")
	}
}

func TestRankFallsBackOnMalformedOutput(t *testing.T) {
	slots := []CandidateSlot{slotAt(1, 1, 1, 9, 0)}
	gen := &stubGenerator{output: "the best slot is probably the morning one"}
	ranker := NewRanker(gen, Config{}, testLogger())

	ranked, source := ranker.Rank(context.Background(), slots, RequestContext{})
	if source != SourceFallback {
		t.Errorf("source = %q, want %q", source, SourceFallback)
	}
	if len(ranked) != 1 || ranked[0].Rank != 1 {
		t.Fatalf("fallback must rank every slot: %+v", ranked)
	}
}

func TestRankFallbackBreaksTiesByDoctorThenRoom(t *testing.T) {
	start := []CandidateSlot{
		slotAt(1, 2, 2, 9, 0),
		slotAt(2, 2, 1, 9, 0),
		slotAt(3, 1, 9, 9, 0),
	}
	ranked := fallbackRanking(start)

	wantSlots := []int{3, 2, 1}
	for i, want := range wantSlots {
		if ranked[i].SlotID != want {
			t.Errorf("position %d = slot %d, want %d", i, ranked[i].SlotID, want)
		}
	}
}

func TestRankLimitsPromptListing(t *testing.T) {
	var slots []CandidateSlot
	for i := 1; i <= 8; i++ {
		slots = append(slots, slotAt(i, i, i, 9, i))
	}
	gen := &stubGenerator{output: `{"recommendations":[{"slot_id":1}]}`}
	ranker := NewRanker(gen, Config{MaxSuggestions: 3}, testLogger())

	ranked, _ := ranker.Rank(context.Background(), slots, RequestContext{})

	if strings.Contains(gen.prompt, "slot_id: 4") {
		t.Errorf("prompt should list at most 3 slots:\n%s", gen.prompt)
	}
	if len(ranked) != len(slots) {
		t.Fatalf("every feasible slot must still be ranked, got %d of %d", len(ranked), len(slots))
	}
}

func TestClientGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"stream":false`) {
			t.Errorf("request body = %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"response":"{\"recommendations\":[{\"slot_id\":1}]}"}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "qwen2.5:1.5b"})
	out, err := client.Generate(context.Background(), "rank these")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "recommendations") {
		t.Errorf("output = %q", out)
	}
}

func TestClientGenerateErrors(t *testing.T) {
	t.Run("unreachable server", func(t *testing.T) {
		client := NewClient(Config{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond})
		if _, err := client.Generate(context.Background(), "x"); !errors.Is(err, ErrUnreachable) {
			t.Fatalf("expected ErrUnreachable, got %v", err)
		}
	})

	t.Run("non-JSON body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, "<html>busy</html>")
		}))
		defer server.Close()

		client := NewClient(Config{BaseURL: server.URL})
		if _, err := client.Generate(context.Background(), "x"); !errors.Is(err, ErrUnreachable) {
			t.Fatalf("expected ErrUnreachable, got %v", err)
		}
	})

	t.Run("error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(Config{BaseURL: server.URL})
		if _, err := client.Generate(context.Background(), "x"); !errors.Is(err, ErrUnreachable) {
			t.Fatalf("expected ErrUnreachable, got %v", err)
		}
	})

	t.Run("empty response text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, `{"done": true}`)
		}))
		defer server.Close()

		client := NewClient(Config{BaseURL: server.URL})
		if _, err := client.Generate(context.Background(), "x"); !errors.Is(err, ErrBadResponse) {
			t.Fatalf("expected ErrBadResponse, got %v", err)
		}
	})
}
