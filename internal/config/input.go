package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// siteFromInput collects the site identity over three sequential prompts on
// a line-buffered input stream. Fields are trimmed of surrounding whitespace
// but otherwise taken as given; the template reference is fixed to the
// default.
func (b *Builder) siteFromInput(input io.Reader) (Site, error) {
	reader := bufio.NewReader(input)

	name, err := b.promptLine(reader, "Please enter a name for the site: ")
	if err != nil {
		return Site{}, err
	}
	author, err := b.promptLine(reader, "Please enter the site author's name: ")
	if err != nil {
		return Site{}, err
	}
	topicsCSV, err := b.promptLine(reader, "Please enter comma-separated site topics: ")
	if err != nil {
		return Site{}, err
	}

	site := Site{
		Name:     name,
		Author:   author,
		Template: DefaultTemplate,
		Topics:   splitTopics(topicsCSV),
	}

	b.log.Trace(context.Background(), "site assembled from input",
		"name", site.Name, "author", site.Author, "topics", site.Topics)
	return site, nil
}

// promptLine writes a prompt and blockingly reads one line from the reader.
// End of input is treated as an empty line, matching line-buffered stdin
// semantics; only a genuine read failure is an error.
func (b *Builder) promptLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Fprintln(b.out, prompt)

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed reading input from user: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// splitTopics splits a comma-separated topic list, trimming each segment
// independently. Empty segments are kept; the caller asked for them.
func splitTopics(csv string) []string {
	parts := strings.Split(csv, ",")
	topics := make([]string, len(parts))
	for i, part := range parts {
		topics[i] = strings.TrimSpace(part)
	}
	return topics
}
