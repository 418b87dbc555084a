package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-screener/internal/criteria"
	"github.com/spigell/resume-screener/internal/matching"
)

func developer(t *testing.T) criteria.Role {
	t.Helper()

	role, ok := criteria.MustDefault().Lookup("Developer")
	require.True(t, ok)
	return role
}

func TestEvaluateScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		text          string
		wantSkills    []string
		wantLanguages []string
		wantSkill     int
		wantLanguage  int
		wantTotal     int
	}{
		{
			name:          "partial match",
			text:          "Skilled in HTML, CSS, and excellent communication. Experience with Python and JavaScript.",
			wantSkills:    []string{"html", "css", "communication"},
			wantLanguages: []string{"python", "javascript"},
			wantSkill:     30,
			wantLanguage:  33,
			wantTotal:     63,
		},
		{
			name:          "everything listed",
			text:          "web development, problem solving, html, css, communication, python, java, javascript",
			wantSkills:    []string{"web development", "problem solving", "html", "css", "communication"},
			wantLanguages: []string{"python", "java", "javascript"},
			wantSkill:     50,
			wantLanguage:  50,
			wantTotal:     100,
		},
		{
			name:          "empty document",
			text:          "",
			wantSkills:    []string{},
			wantLanguages: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Evaluate(developer(t), tt.text, matching.New())

			assert.Equal(t, tt.wantSkills, got.MatchedSkills)
			assert.Equal(t, tt.wantLanguages, got.MatchedLanguages)
			assert.Equal(t, tt.wantSkill, got.SkillScore)
			assert.Equal(t, tt.wantLanguage, got.LanguageScore)
			assert.Equal(t, tt.wantTotal, got.Total)
		})
	}
}

func TestScoreFloorsEachHalf(t *testing.T) {
	t.Parallel()

	role := developer(t)

	got := Score(role, []string{"html"}, []string{"python"})
	assert.Equal(t, 10, got.SkillScore)
	assert.Equal(t, 16, got.LanguageScore)
	assert.Equal(t, 26, got.Total)

	got = Score(role, nil, nil)
	assert.Equal(t, 0, got.Total)
	assert.NotNil(t, got.MatchedSkills)
	assert.NotNil(t, got.MatchedLanguages)
}

func TestTotalIsSumForEveryRole(t *testing.T) {
	t.Parallel()

	reg := criteria.MustDefault()
	texts := []string{
		"",
		"python, sql, excel",
		"Leadership, project management, communication and Python",
		"data analysis, machine learning, visualization, r, sql, excel, python",
		strings.Repeat("html, ", 20),
	}

	for _, name := range reg.Names() {
		role, _ := reg.Lookup(name)
		for _, text := range texts {
			got := Evaluate(role, text, matching.New())

			assert.Equal(t, got.SkillScore+got.LanguageScore, got.Total, "%s: %q", name, text)
			assert.GreaterOrEqual(t, got.Total, 0)
			assert.LessOrEqual(t, got.Total, 100)
			assert.LessOrEqual(t, got.SkillScore, MaxHalf)
			assert.LessOrEqual(t, got.LanguageScore, MaxHalf)
		}
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	t.Parallel()

	role := developer(t)
	text := "Python, Java, problem-solving, HTML/CSS"
	m := matching.New()

	first := Evaluate(role, text, m)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Evaluate(role, text, m))
	}
}
