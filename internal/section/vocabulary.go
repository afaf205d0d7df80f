package section

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// VocabEntry pairs a category with its representative phrases. Both the entry
// slice and each synonym slice are ordered; the scorer iterates them in
// declared order, so tie scores deterministically keep the first match seen.
type VocabEntry struct {
	Category Category `yaml:"category"`
	Synonyms []string `yaml:"synonyms"`
}

// Vocabulary maps categories to their synonym phrases. Loaded once,
// never mutated at run time.
type Vocabulary struct {
	Entries []VocabEntry `yaml:"categories"`
}

// DefaultVocabulary returns the built-in synonym sets.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{Entries: []VocabEntry{
		{Category: Education, Synonyms: []string{
			"education", "academic background", "academics", "schooling",
			"educational background", "bachelor", "master", "university",
			"college", "graduate studies",
		}},
		{Category: Experience, Synonyms: []string{
			"experience", "work history", "employment",
			"professional experience", "career history",
		}},
		{Category: Skills, Synonyms: []string{
			"skills", "competencies", "expertise",
			"technical skills", "areas of expertise",
		}},
	}}
}

// LoadVocabulary reads a vocabulary from a YAML file of the form:
//
//	categories:
//	  - category: education
//	    synonyms: ["education", "academic background"]
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("read vocabulary: %w", err)
	}
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("parse vocabulary: %w", err)
	}
	if err := v.Validate(); err != nil {
		return Vocabulary{}, err
	}
	return v, nil
}

// Validate checks that the vocabulary can actually reach every category it
// names. "other" needs no synonyms (it is reachable by default) and may not
// carry any; every other entry needs at least one.
func (v Vocabulary) Validate() error {
	if len(v.Entries) == 0 {
		return &ConfigurationError{Reason: "vocabulary has no categories"}
	}
	known := map[Category]bool{Education: true, Experience: true, Skills: true}
	seen := map[Category]bool{}
	for _, e := range v.Entries {
		if e.Category == Other {
			return &ConfigurationError{Reason: `vocabulary must not define synonyms for "other"`}
		}
		if !known[e.Category] {
			return &ConfigurationError{Reason: fmt.Sprintf("unknown category %q", e.Category)}
		}
		if seen[e.Category] {
			return &ConfigurationError{Reason: fmt.Sprintf("duplicate category %q", e.Category)}
		}
		seen[e.Category] = true
		if len(e.Synonyms) == 0 {
			return &ConfigurationError{Reason: fmt.Sprintf("category %q has no synonyms", e.Category)}
		}
		for _, s := range e.Synonyms {
			if s == "" {
				return &ConfigurationError{Reason: fmt.Sprintf("category %q has an empty synonym", e.Category)}
			}
		}
	}
	return nil
}

// Synonyms returns the flattened (category, synonym) pairs in iteration order.
// Useful for callers that want to precompute synonym-side representations.
func (v Vocabulary) Synonyms() []string {
	var out []string
	for _, e := range v.Entries {
		out = append(out, e.Synonyms...)
	}
	return out
}
