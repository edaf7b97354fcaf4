package parser

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Entry is one card parsed out of a deck file: a title, a definition
// and an optional clue.
type Entry struct {
	Title      string
	Definition string
	Clue       string
}

const (
	titlePrefix      = "T:"
	definitionPrefix = "D:"
	cluePrefix       = "C:"
)

type state int

const (
	seeking state = iota
	readingTitle
	readingDefinition
	readingClue
)

// ParseFile reads a deck file from the given path and extracts all entries.
func ParseFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads from an io.Reader and extracts all entries. An entry is
// a T: line followed by a D: line and an optional C: line; bodies may
// span multiple lines, and "---" separates entries. Entries without a
// title are dropped.
func Parse(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	var entries []Entry
	var current Entry
	var block []string
	currentState := seeking

	flushBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.Join(block, "\n")
		switch currentState {
		case readingTitle:
			current.Title = content
		case readingDefinition:
			current.Definition = content
		case readingClue:
			current.Clue = content
		}
		block = nil
	}

	finishEntry := func() {
		flushBlock()
		if current.Title != "" {
			entries = append(entries, current)
		}
		current = Entry{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		if line == "---" {
			finishEntry()
			continue
		}

		var prefix string
		var next state
		switch {
		case strings.HasPrefix(line, titlePrefix):
			prefix, next = titlePrefix, readingTitle
		case strings.HasPrefix(line, definitionPrefix):
			prefix, next = definitionPrefix, readingDefinition
		case strings.HasPrefix(line, cluePrefix):
			prefix, next = cluePrefix, readingClue
		}

		if prefix != "" {
			flushBlock()
			// A new title always starts a new entry.
			if next == readingTitle && currentState != seeking {
				finishEntry()
			}
			currentState = next
			block = append(block, strings.TrimPrefix(strings.TrimPrefix(line, prefix), " "))
		} else if currentState != seeking {
			block = append(block, line)
		}
	}

	finishEntry() // Finish the very last entry in the file

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
