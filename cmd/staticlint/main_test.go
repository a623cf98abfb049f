package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzers(t *testing.T) {
	names := make(map[string]int)
	var sa int
	for _, a := range analyzers() {
		names[a.Name]++
		if strings.HasPrefix(a.Name, "SA") {
			sa++
		}
	}

	for name, n := range names {
		assert.Equal(t, 1, n, "analyzer %s registered twice", name)
	}
	assert.Positive(t, sa)
	for _, want := range []string{"printf", "shadow", "bodyclose", "nilerr", "asciicheck", "nostdlog", "ST1005", "S1000"} {
		assert.Contains(t, names, want)
	}
}
