package grades

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestPointsScale(t *testing.T) {
	cases := map[string]float64{
		"A": 4.0, "A-": 3.7, "B+": 3.3, "B": 3.0, "B-": 2.7,
		"C+": 2.3, "C": 2.0, "C-": 1.7, "D+": 1.3, "D": 1.0, "F": 0.0,
	}
	for letter, want := range cases {
		got, ok := Points(letter)
		require.True(t, ok, letter)
		require.Equal(t, want, got, letter)
	}
}

func TestPointsUnknownToken(t *testing.T) {
	for _, letter := range []string{"E", "W", "INC", "", "a"} {
		_, ok := Points(letter)
		require.False(t, ok, letter)
	}
}

func TestGPACreditWeighted(t *testing.T) {
	// (4.0*3 + 3.0*4) / 7 = 3.4285...
	gpa := GPA([]CreditGrade{
		{Grade: strPtr("A"), Credits: 3},
		{Grade: strPtr("B"), Credits: 4},
	})
	require.NotNil(t, gpa)
	require.Equal(t, 3.43, Round2(*gpa))
}

func TestGPAExcludesNullAndUnknownGrades(t *testing.T) {
	gpa := GPA([]CreditGrade{
		{Grade: strPtr("A"), Credits: 3},
		{Grade: nil, Credits: 4},
		{Grade: strPtr("INC"), Credits: 3},
	})
	require.NotNil(t, gpa)
	require.Equal(t, 4.0, *gpa)
}

func TestGPAUndefinedWhenNoGradeableCredits(t *testing.T) {
	require.Nil(t, GPA(nil))
	require.Nil(t, GPA([]CreditGrade{{Grade: nil, Credits: 3}}))
	require.Nil(t, GPA([]CreditGrade{{Grade: strPtr("AUDIT"), Credits: 3}}))
}

func TestGPAAllFailingIsZeroNotUndefined(t *testing.T) {
	gpa := GPA([]CreditGrade{{Grade: strPtr("F"), Credits: 3}})
	require.NotNil(t, gpa)
	require.Equal(t, 0.0, *gpa)
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	require.Equal(t, 3.43, Round2(3.425))
	require.Equal(t, 3.42, Round2(3.4249))
	require.Equal(t, 4.0, Round2(3.995))
}

func TestTermRankAcademicCalendar(t *testing.T) {
	require.Less(t, TermRank("Fall"), TermRank("Spring"))
	require.Less(t, TermRank("Spring"), TermRank("Summer"))
	require.Greater(t, TermRank("Maymester"), TermRank("Summer"))
}
