// Package scoring turns matched terms into the 0-100 screening score.
package scoring

import "github.com/spigell/resume-screener/internal/criteria"

// MaxHalf is the weight of each of the skill and language halves.
const MaxHalf = 50

// Result is the outcome of matching one document against one role.
type Result struct {
	MatchedSkills    []string
	MatchedLanguages []string
	SkillScore       int
	LanguageScore    int
	Total            int
}

// TermMatcher reports which required terms occur in text.
type TermMatcher interface {
	Match(required []string, text string) []string
}

// Evaluate matches text against both requirement sets of role and scores the result.
func Evaluate(role criteria.Role, text string, m TermMatcher) Result {
	skills := m.Match(role.Skills(), text)
	languages := m.Match(role.Languages(), text)

	return Score(role, skills, languages)
}

// Score weights skills and languages equally. Each half is floored independently.
func Score(role criteria.Role, matchedSkills, matchedLanguages []string) Result {
	skill := half(len(matchedSkills), len(role.Skills()))
	language := half(len(matchedLanguages), len(role.Languages()))

	return Result{
		MatchedSkills:    nonNil(matchedSkills),
		MatchedLanguages: nonNil(matchedLanguages),
		SkillScore:       skill,
		LanguageScore:    language,
		Total:            skill + language,
	}
}

func half(matched, required int) int {
	if required == 0 {
		return 0
	}
	if matched > required {
		matched = required
	}
	return MaxHalf * matched / required
}

func nonNil(terms []string) []string {
	if terms == nil {
		return []string{}
	}
	return terms
}
