package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var studentSpec = Spec{
	DefaultSort: "student_id",
	Sorts: map[string]string{
		"student_id": "student_id",
		"last_name":  "last_name",
		"email":      "email",
	},
	SearchColumns: []string{"first_name", "last_name", "email"},
}

func TestBuildValidSort(t *testing.T) {
	d := Build(studentSpec, "last_name", "desc", "")
	require.Equal(t, "last_name", d.OrderBy)
	require.Equal(t, Desc, d.Direction)
	require.Equal(t, "ORDER BY last_name DESC", d.OrderClause())
}

func TestBuildUnknownSortFallsBackToDefault(t *testing.T) {
	for _, hostile := range []string{"", "unknown", "email; DROP TABLE student", "1=1 --"} {
		d := Build(studentSpec, hostile, "asc", "")
		require.Equal(t, "student_id", d.OrderBy, "input %q", hostile)
	}
}

func TestBuildInvalidOrderFallsBackToAsc(t *testing.T) {
	for _, hostile := range []string{"", "sideways", "DESC; --", "descending"} {
		d := Build(studentSpec, "email", hostile, "")
		require.Equal(t, Asc, d.Direction, "input %q", hostile)
	}
	d := Build(studentSpec, "email", "DESC", "")
	require.Equal(t, Desc, d.Direction)
}

func TestFilterBindsTermOnce(t *testing.T) {
	d := Build(studentSpec, "student_id", "asc", "smith")
	clause, args := d.Filter(studentSpec, 1)
	require.Equal(t, "(first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1)", clause)
	require.Equal(t, []interface{}{"%smith%"}, args)
}

func TestFilterEmptySearchProducesNoCondition(t *testing.T) {
	d := Build(studentSpec, "student_id", "asc", "   ")
	clause, args := d.Filter(studentSpec, 1)
	require.Empty(t, clause)
	require.Nil(t, args)
}

func TestFilterTermIsNeverInterpolated(t *testing.T) {
	d := Build(studentSpec, "student_id", "asc", "'; DELETE FROM student; --")
	clause, args := d.Filter(studentSpec, 3)
	require.NotContains(t, clause, "DELETE")
	require.Contains(t, clause, "$3")
	require.Equal(t, []interface{}{"%'; DELETE FROM student; --%"}, args)
}
