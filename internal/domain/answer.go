package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// AnswerValue is the tagged union carried by a ResponseRecord. Exactly one
// payload field is meaningful, selected by Kind. Answers are validated against
// the question's declared type before a response is accepted, so downstream
// scoring never has to duck-type.
type AnswerValue struct {
	Kind    QuestionType `json:"kind"`
	Bool    bool         `json:"bool,omitempty"`
	Number  float64      `json:"number,omitempty"`
	Choice  string       `json:"choice,omitempty"`
	Choices []string     `json:"choices,omitempty"`
	Text    string       `json:"text,omitempty"`
}

// BoolAnswer builds a boolean answer.
func BoolAnswer(v bool) AnswerValue {
	return AnswerValue{Kind: BOOLEAN, Bool: v}
}

// NumberAnswer builds a numeric answer.
func NumberAnswer(v float64) AnswerValue {
	return AnswerValue{Kind: NUMERIC, Number: v}
}

// ChoiceAnswer builds a single-choice answer.
func ChoiceAnswer(v string) AnswerValue {
	return AnswerValue{Kind: MULTIPLE_CHOICE, Choice: v}
}

// MultiAnswer builds a multi-select answer.
func MultiAnswer(vs ...string) AnswerValue {
	return AnswerValue{Kind: MULTI_SELECT, Choices: vs}
}

// TextAnswer builds a free-text answer.
func TextAnswer(v string) AnswerValue {
	return AnswerValue{Kind: TEXT, Text: v}
}

// Matches reports whether the answer's kind satisfies the question's declared
// type. Free-text questions also accept single-choice payloads, matching how
// transcribed intake forms submit them.
func (a AnswerValue) Matches(t QuestionType) bool {
	if a.Kind == t {
		return true
	}
	return t == TEXT && a.Kind == MULTIPLE_CHOICE
}

// Equal reports exact value equality. Skip conditions trigger only on exact
// matches; multi-select answers compare as unordered sets.
func (a AnswerValue) Equal(b AnswerValue) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case BOOLEAN:
		return a.Bool == b.Bool
	case NUMERIC:
		return a.Number == b.Number
	case MULTIPLE_CHOICE:
		return a.Choice == b.Choice
	case TEXT:
		return a.Text == b.Text
	case MULTI_SELECT:
		if len(a.Choices) != len(b.Choices) {
			return false
		}
		as := append([]string(nil), a.Choices...)
		bs := append([]string(nil), b.Choices...)
		sort.Strings(as)
		sort.Strings(bs)
		for i := range as {
			if as[i] != bs[i] {
				return false
			}
		}
		return true
	}
	return false
}

// AsBool returns the boolean payload. ok is false for non-boolean answers.
func (a AnswerValue) AsBool() (bool, bool) {
	if a.Kind != BOOLEAN {
		return false, false
	}
	return a.Bool, true
}

// AsNumber returns the numeric payload. ok is false for non-numeric answers.
func (a AnswerValue) AsNumber() (float64, bool) {
	if a.Kind != NUMERIC {
		return 0, false
	}
	return a.Number, true
}

// AsStrings flattens the answer to its textual values: the selected choice,
// the selected options, or the free text. Boolean and numeric answers yield
// nothing.
func (a AnswerValue) AsStrings() []string {
	switch a.Kind {
	case MULTIPLE_CHOICE:
		if a.Choice == "" {
			return nil
		}
		return []string{a.Choice}
	case MULTI_SELECT:
		return a.Choices
	case TEXT:
		if a.Text == "" {
			return nil
		}
		return []string{a.Text}
	}
	return nil
}

// ContainsFold reports whether any textual value of the answer contains the
// substring, case-insensitively. Used for keyword matching on exposure and
// ethnicity answers.
func (a AnswerValue) ContainsFold(substr string) bool {
	needle := strings.ToLower(substr)
	for _, s := range a.AsStrings() {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// String renders the answer for logging and error messages.
func (a AnswerValue) String() string {
	switch a.Kind {
	case BOOLEAN:
		return fmt.Sprintf("%t", a.Bool)
	case NUMERIC:
		return fmt.Sprintf("%g", a.Number)
	case MULTIPLE_CHOICE:
		return a.Choice
	case MULTI_SELECT:
		return strings.Join(a.Choices, ", ")
	case TEXT:
		return a.Text
	}
	return ""
}

// UnmarshalJSON accepts both the canonical tagged form and a bare JSON value
// (true, 42, "Current smoker", ["Asbestos"]) as submitted by transport
// clients, inferring the kind from the JSON shape in the bare case.
func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	type tagged AnswerValue
	var t tagged
	if err := json.Unmarshal(data, &t); err == nil && t.Kind != "" {
		if !QuestionType(t.Kind).IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidQuestionType, t.Kind)
		}
		*a = AnswerValue(t)
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*a = BoolAnswer(v)
	case float64:
		*a = NumberAnswer(v)
	case string:
		*a = ChoiceAnswer(v)
	case []interface{}:
		choices := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("multi-select answer must contain only strings, got %T", item)
			}
			choices = append(choices, s)
		}
		*a = MultiAnswer(choices...)
	default:
		return fmt.Errorf("unsupported answer payload %T", raw)
	}
	return nil
}
