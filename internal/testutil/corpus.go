// Package testutil provides shared test helpers for the Sign packages.
package testutil

import (
	"io/ioutil"
	"path/filepath"
	"sort"
	"strings"
)

// CorpusDir is the path of the shared corpus relative to the module root.
const CorpusDir = "testdata/corpus"

// Case is a Sign program from the corpus with the expected encoding of each
// of its statements, one per line.
type Case struct {
	Name   string
	Source []byte
	Golden string
	Want   []string
}

// LoadCorpus reads every "*.sn" file under root together with its ".golden"
// sibling. A missing golden file leaves Want empty.
func LoadCorpus(root string) ([]Case, error) {
	paths, err := filepath.Glob(filepath.Join(root, "*.sn"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	cases := make([]Case, 0, len(paths))
	for _, path := range paths {
		src, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, err
		}

		c := Case{
			Name:   strings.TrimSuffix(filepath.Base(path), ".sn"),
			Source: src,
			Golden: strings.TrimSuffix(path, ".sn") + ".golden",
		}

		if data, err := ioutil.ReadFile(c.Golden); err == nil {
			c.Want = splitLines(string(data))
		}

		cases = append(cases, c)
	}
	return cases, nil
}

// WriteGolden replaces the golden file of c.
func WriteGolden(c Case, lines []string) error {
	return ioutil.WriteFile(c.Golden, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

func splitLines(s string) []string {
	lines := []string{}
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
