package compliance

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/perbu/jmespath"
	"github.com/perbu/jmespath/pkg/value"
)

// Run evaluates every case in suites as a subtest of t, via t.Run, one
// subtest per suite and per case.
func Run(t *testing.T, suites []Suite) {
	t.Helper()
	for i, suite := range suites {
		suite := suite
		name := suite.Comment
		if name == "" {
			name = fmt.Sprintf("suite_%d", i)
		}
		t.Run(name, func(t *testing.T) {
			runSuite(t, suite)
		})
	}
}

func runSuite(t *testing.T, suite Suite) {
	t.Helper()
	doc, err := value.FromJSON(suite.Given)
	if err != nil {
		t.Fatalf("converting given document: %v", err)
	}

	for i, c := range suite.Cases {
		c := c
		t.Run(fmt.Sprintf("case_%d_%s", i, c.Expression), func(t *testing.T) {
			runCase(t, doc, c)
		})
	}
}

func runCase(t *testing.T, doc value.Value, c Case) {
	t.Helper()
	expr, err := jmespath.Compile(c.Expression)
	if err != nil {
		if c.HasResult() {
			t.Fatalf("Compile(%q) error = %v", c.Expression, err)
		}
		return
	}

	got, err := expr.Search(doc)
	if err != nil {
		if c.HasResult() {
			t.Fatalf("Search(%q) error = %v", c.Expression, err)
		}
		return
	}
	if !c.HasResult() {
		t.Fatalf("Search(%q) = %v, want error %q", c.Expression, got, c.Error)
	}

	var want any
	if len(c.Result) > 0 {
		if err := json.Unmarshal(c.Result, &want); err != nil {
			t.Fatalf("parsing expected result: %v", err)
		}
	}

	gotAny := value.ToAny(got)
	if !reflect.DeepEqual(normalize(gotAny), normalize(want)) {
		t.Errorf("Search(%q) = %#v, want %#v", c.Expression, gotAny, want)
	}
}

// normalize round-trips v through JSON so that numeric types (float64 vs.
// int) and nil vs. untyped-nil slices compare equal regardless of which
// path produced them.
func normalize(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}
