package section

import "testing"

func TestIsHeadingShaped(t *testing.T) {
	cfg := DefaultHeuristic()

	tests := []struct {
		name string
		line string
		want bool
	}{
		{"empty line", "", false},
		{"whitespace only", "   \t  ", false},
		{"short line", "EDUCATION", true},
		{"short mixed case", "Work History", true},
		{"exactly five words", "one two three four five", true},
		{"six lowercase words", "this line has six small words", false},
		{"long all caps", "PROFESSIONAL EXPERIENCE AND ACHIEVEMENTS AT PREVIOUS EMPLOYERS", true},
		{"long mostly caps", "PROFESSIONAL EXPERIENCE and ACHIEVEMENTS AT PREVIOUS EMPLOYERS", true},
		{"long mostly lowercase", "I worked on several large distributed systems projects", false},
		{"long no alpha", "123 456 789 012 345 678 901", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHeadingShaped(tt.line, cfg); got != tt.want {
				t.Errorf("IsHeadingShaped(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsHeadingShaped_TunableThresholds(t *testing.T) {
	line := "one two three"

	strict := HeuristicConfig{MaxHeadingWords: 2, UppercaseRatio: 0.7}
	if IsHeadingShaped(line, strict) {
		t.Errorf("expected %q not heading-shaped with max words 2", line)
	}

	loose := HeuristicConfig{MaxHeadingWords: 3, UppercaseRatio: 0.7}
	if !IsHeadingShaped(line, loose) {
		t.Errorf("expected %q heading-shaped with max words 3", line)
	}

	caps := "MOSTLY UPPER case WORDS HERE BUT quite LONG SENTENCE overall"
	lowRatio := HeuristicConfig{MaxHeadingWords: 3, UppercaseRatio: 0.5}
	if !IsHeadingShaped(caps, lowRatio) {
		t.Errorf("expected %q heading-shaped with ratio 0.5", caps)
	}
	highRatio := HeuristicConfig{MaxHeadingWords: 3, UppercaseRatio: 0.95}
	if IsHeadingShaped(caps, highRatio) {
		t.Errorf("expected %q not heading-shaped with ratio 0.95", caps)
	}
}
