// Package scorecard evaluates survey form answers against best-practice rules and
// turns the results into the markup sections of a scorecard document.
package scorecard

import (
	"cmp"
	"slices"
	"strings"
)

// Rule verdicts.
const (
	Pass = "PASS"
	Fail = "FAIL"
)

// Rule is one best-practice check. Section groups rules into a report section (bp1,
// bp2, ...) and names the placeholders that section fills.
type Rule struct {
	No               int    `yaml:"rule_no"`
	ID               string `yaml:"rule_id"`
	Section          string `yaml:"bp_section"`
	Question         string `yaml:"question"`
	QuestionCategory string `yaml:"question_category"`
	OnYes            string `yaml:"on_yes"`
	OnNo             string `yaml:"on_no"`
	Finding          string `yaml:"finding"`
	Recommendation   string `yaml:"recommendation"`
}

// Form is one form submission: answers keyed by lower-case field name. A rule's
// justification lives under "<rule id>_justified".
type Form map[string]string

// Result is the outcome of one rule against a form.
type Result struct {
	ID               string
	Category         string
	Message          string
	Answer           string
	Meets            bool
	Findings         string
	Recommendations  string
	QuestionCategory string
}

// MeetsText renders Meets as "Yes" or "No".
func (r Result) MeetsText() string {
	if r.Meets {
		return "Yes"
	}
	return "No"
}

// Evaluate checks every rule, in rule number order, against the form. Rules without
// an answer in the form are skipped.
//
// A "yes" or "no" answer takes the rule's OnYes or OnNo verdict; anything but PASS
// counts as failing. A failing answer passes anyway when the form marks the rule as
// justified. Any other answer (n/a, blank) passes.
func Evaluate(rules []Rule, form Form) []Result {
	sorted := slices.Clone(rules)
	slices.SortStableFunc(sorted, func(a, b Rule) int { return cmp.Compare(a.No, b.No) })

	var results []Result
	for _, rule := range sorted {
		id := strings.ToLower(rule.ID)
		answer, ok := form[id]
		if !ok {
			continue
		}
		justified := strings.EqualFold(strings.TrimSpace(form[id+"_justified"]), "yes")

		meets := true
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "yes":
			meets = passes(rule.OnYes) || justified
		case "no":
			meets = passes(rule.OnNo) || justified
		}

		results = append(results, Result{
			ID:               id,
			Category:         rule.Section,
			Message:          rule.Question,
			Answer:           answer,
			Meets:            meets,
			Findings:         rule.Finding,
			Recommendations:  rule.Recommendation,
			QuestionCategory: rule.QuestionCategory,
		})
	}
	return results
}

func passes(verdict string) bool {
	return strings.EqualFold(strings.TrimSpace(verdict), Pass)
}
