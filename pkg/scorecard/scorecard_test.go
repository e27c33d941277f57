package scorecard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEvaluate(t *testing.T) {
	rules := []Rule{
		{No: 3, ID: "Q3", Section: "bp2", Question: "Third?", OnYes: Pass, OnNo: Fail},
		{No: 1, ID: "Q1", Section: "bp1", Question: "First?", QuestionCategory: "Coverage", OnYes: Pass, OnNo: Fail,
			Finding: "f1", Recommendation: "r1"},
		{No: 2, ID: "q2", Section: "bp1", Question: "Second?", OnYes: Fail, OnNo: Pass},
		{No: 4, ID: "q4", Section: "bp2", Question: "Missing?", OnYes: Pass, OnNo: Fail},
		{No: 5, ID: "q5", Section: "bp2", Question: "Odd verdict?", OnYes: "MAYBE", OnNo: Pass},
	}

	tests := []struct {
		name string
		form Form
		want map[string]bool
	}{
		{
			name: "verdicts",
			form: Form{"q1": "Yes", "q2": "yes", "q3": "NO", "q5": "no"},
			want: map[string]bool{"q1": true, "q2": false, "q3": false, "q5": true},
		},
		{
			name: "justification overrides a fail",
			form: Form{"q1": "no", "q1_justified": "Yes", "q2": "yes", "q2_justified": "no"},
			want: map[string]bool{"q1": true, "q2": false},
		},
		{
			name: "other answers pass",
			form: Form{"q1": "n/a", "q2": "", "q3": "unknown"},
			want: map[string]bool{"q1": true, "q2": true, "q3": true},
		},
		{
			name: "unknown verdict fails",
			form: Form{"q5": "yes"},
			want: map[string]bool{"q5": false},
		},
		{
			name: "empty form",
			form: Form{},
			want: map[string]bool{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make(map[string]bool)
			for _, r := range Evaluate(rules, tt.form) {
				got[r.ID] = r.Meets
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Evaluate mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvaluateResultFields(t *testing.T) {
	rules := []Rule{
		{No: 2, ID: "B", Section: "bp1", Question: "b?", OnYes: Pass, OnNo: Fail},
		{No: 1, ID: "A", Section: "bp1", Question: "a?", QuestionCategory: "Security", OnYes: Pass, OnNo: Fail,
			Finding: "Open SSID", Recommendation: "Enable WPA3"},
	}
	got := Evaluate(rules, Form{"a": "No", "b": "Yes"})

	want := []Result{
		{ID: "a", Category: "bp1", Message: "a?", Answer: "No", Meets: false, Findings: "Open SSID",
			Recommendations: "Enable WPA3", QuestionCategory: "Security"},
		{ID: "b", Category: "bp1", Message: "b?", Answer: "Yes", Meets: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Evaluate mismatch (-want +got):\n%s", diff)
	}
	if got[0].MeetsText() != "No" || got[1].MeetsText() != "Yes" {
		t.Errorf("MeetsText = %q, %q", got[0].MeetsText(), got[1].MeetsText())
	}
}

func TestEvaluateDoesNotReorderInput(t *testing.T) {
	rules := []Rule{{No: 2, ID: "b"}, {No: 1, ID: "a"}}
	Evaluate(rules, Form{})
	if rules[0].ID != "b" {
		t.Errorf("input rules were reordered")
	}
}
