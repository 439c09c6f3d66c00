package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadWordList reads a word-list file: one phrase per line, blank lines and
// lines starting with '#' ignored, surrounding whitespace trimmed.
func LoadWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open word list %q: %w", path, err)
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("config: read word list %q: %w", path, err)
	}
	return words, nil
}
