package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type stubGenerator struct {
	response    string
	err         error
	lastSystem  string
	lastMessage string
	calls       int
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, message string) (string, error) {
	s.calls++
	s.lastSystem = system
	s.lastMessage = message
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func TestInterviewerQuestions(t *testing.T) {
	stub := &stubGenerator{response: "```json\n" + `{"questions": [
		{"skill": "docker", "question": "How do you shrink an image?"},
		{"skill": "docker", "question": "  "},
		{"skill": "go", "question": "When would you reach for sync.Pool?"}
	]}` + "\n```"}

	interviewer := NewInterviewer(stub, zap.NewNop(), 0, 0)

	questions, err := interviewer.Questions(context.Background(), []string{"go", "docker"}, []string{"docker"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"How do you shrink an image?", "When would you reach for sync.Pool?"}
	if len(questions) != len(want) {
		t.Fatalf("expected %d questions, got %v", len(want), questions)
	}
	for i := range want {
		if questions[i] != want[i] {
			t.Fatalf("question %d: expected %q, got %q", i, want[i], questions[i])
		}
	}

	if stub.lastSystem != systemPrompt || systemPrompt == "" {
		t.Fatalf("expected embedded system prompt to be sent")
	}

	var req questionRequest
	if err := json.Unmarshal([]byte(stub.lastMessage), &req); err != nil {
		t.Fatalf("message is not json: %v", err)
	}
	if req.QuestionsPerSkill != defaultQuestionsPerSkill {
		t.Fatalf("expected %d questions per skill, got %d", defaultQuestionsPerSkill, req.QuestionsPerSkill)
	}
	if len(req.Skills) != 2 || len(req.Unverified) != 1 || req.Unverified[0] != "docker" {
		t.Fatalf("unexpected request payload: %+v", req)
	}
}

func TestInterviewerNoSkills(t *testing.T) {
	stub := &stubGenerator{}
	interviewer := NewInterviewer(stub, nil, 3, 10)

	questions, err := interviewer.Questions(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 0 || questions == nil {
		t.Fatalf("expected empty non-nil result, got %v", questions)
	}
	if stub.calls != 0 {
		t.Fatalf("expected no generator calls, got %d", stub.calls)
	}
}

func TestInterviewerErrors(t *testing.T) {
	tests := []struct {
		name string
		stub *stubGenerator
	}{
		{name: "generator error", stub: &stubGenerator{err: errors.New("quota")}},
		{name: "not json", stub: &stubGenerator{response: "Sure! Here are some questions."}},
		{name: "no questions", stub: &stubGenerator{response: `{"questions": []}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interviewer := NewInterviewer(tt.stub, zap.NewNop(), 2, 0)
			if _, err := interviewer.Questions(context.Background(), []string{"go"}, nil); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: ` {"a":1} `, want: `{"a":1}`},
		{name: "json fence", input: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", input: "```\n{\"a\":1}\n```", want: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := extractJSON(tt.input); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
