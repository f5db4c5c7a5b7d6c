package postgres

import (
	"strings"
	"testing"

	"github.com/gocraft/dbr/v2"
	"github.com/gocraft/dbr/v2/dialect"
)

// dbr interpolates placeholders client-side and aborts the exec/query path
// on a mismatch, so interpolating each raw query with representative
// arguments catches a bad placeholder or arity without a database.
func TestRawQueriesInterpolate(t *testing.T) {
	cases := []struct {
		name  string
		query string
		args  []interface{}
	}{
		{
			name:  "upsert profile",
			query: upsertProfileQuery,
			args:  []interface{}{"u1", "candidate"},
		},
		{
			name:  "create application",
			query: createApplicationQuery,
			args: []interface{}{
				"a1", "j1", "u1", "Jane", "Graduate", 3,
				"Go, SQL", "http://localhost/uploads/resumes/r1", "applied",
			},
		},
		{
			name:  "list applications by candidate",
			query: listApplicationsByCandidateQuery,
			args:  []interface{}{"u1"},
		},
		{
			name:  "resolve company",
			query: resolveCompanyQuery,
			args:  []interface{}{"c1", "Acme"},
		},
		{
			name:  "save job",
			query: saveJobQuery,
			args:  []interface{}{"s1", "j1", "u1"},
		},
		{
			name:  "list saved jobs",
			query: listSavedJobsQuery,
			args:  []interface{}{"u1"},
		},
		{
			name:  "list jobs",
			query: listJobsQuery,
			args: []interface{}{
				"u1", "u1",
				"engineer", "engineer",
				"remote", "remote",
				"Acme", "Acme",
				"", "",
			},
		},
		{
			name:  "get job",
			query: getJobQuery,
			args:  []interface{}{"u1", "u1", "j1"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := dbr.InterpolateForDialect(c.query, c.args, dialect.PostgreSQL)
			if err != nil {
				t.Fatalf("InterpolateForDialect: %v", err)
			}
			if strings.Contains(got, "?") {
				t.Errorf("interpolated query still has placeholders: %s", got)
			}
		})
	}
}

func TestRawQueryArityMismatchFails(t *testing.T) {
	_, err := dbr.InterpolateForDialect(upsertProfileQuery, []interface{}{"u1"}, dialect.PostgreSQL)
	if err == nil {
		t.Fatal("expected an error for a missing argument")
	}
}
