package compliance

import "testing"

func TestCompliance(t *testing.T) {
	suites, err := Load("testdata")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	Run(t, suites)
}
