package parser

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/conorfennell/wrongbook/internal/domain"
)

const (
	namePrefix   = "N:"
	imagePrefix  = "I:"
	answerPrefix = "A:"
	separator    = "---"
)

type state int

const (
	seeking state = iota
	readingName
	readingImage
	readingAnswer
)

// ParseFile reads a file from the given path and extracts all entries.
func ParseFile(path string) ([]domain.Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads blocks of the form
//
//	N: name
//	I: path/to/image.png
//	A: answer, possibly
//	spanning lines
//	---
//
// An "N:" line always opens a new block. Blocks are returned as parsed;
// required fields are not checked here.
func Parse(r io.Reader) ([]domain.Entry, error) {
	scanner := bufio.NewScanner(r)
	var entries []domain.Entry
	var current domain.Entry
	var block []string
	currentState := seeking

	flushBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.TrimSpace(strings.Join(block, "\n"))
		switch currentState {
		case readingName:
			current.Name = content
		case readingImage:
			current.ImagePath = content
		case readingAnswer:
			current.Answer = content
		}
		block = nil
	}

	finishEntry := func() {
		flushBlock()
		if current != (domain.Entry{}) {
			entries = append(entries, current)
		}
		current = domain.Entry{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if strings.TrimSpace(line) == separator {
			finishEntry()
			continue
		}

		var next state
		var rest string
		switch {
		case strings.HasPrefix(line, namePrefix):
			next, rest = readingName, line[len(namePrefix):]
		case strings.HasPrefix(line, imagePrefix):
			next, rest = readingImage, line[len(imagePrefix):]
		case strings.HasPrefix(line, answerPrefix):
			next, rest = readingAnswer, line[len(answerPrefix):]
		default:
			if currentState != seeking {
				block = append(block, line)
			}
			continue
		}

		if next == readingName && currentState != seeking {
			finishEntry()
		} else {
			flushBlock()
		}
		currentState = next
		block = append(block, strings.TrimPrefix(rest, " "))
	}

	finishEntry()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
