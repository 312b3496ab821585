// Package docs embeds the pnl documentation topics.
//
// Each topic is a markdown file. Its "bash setup", "bash run" and "console check" code blocks are
// executed by the package tests against a fresh build of pnl, so the examples stay true.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed *.md
var files embed.FS

// index lists the topics, it is not a topic itself.
const index = "readme"

// all stands for every topic.
const all = "*"

// GetAllTopics returns the names of the topics, sorted.
func GetAllTopics() ([]string, error) {
	matches, err := fs.Glob(files, "*.md")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if name := strings.TrimSuffix(m, ".md"); name != index {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// GetTopic returns the markdown of a topic, or of every topic for "*".
func GetTopic(name string) (string, error) {
	if name == all {
		return GetTopics(all)
	}
	content, err := files.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("no topic %q: %w", name, err)
	}
	return string(content), nil
}

// GetTopics returns the markdown of the topics, in order, separated by a blank line.
// "*" expands to every topic.
func GetTopics(names ...string) (string, error) {
	var expanded []string
	for _, name := range names {
		if name != all {
			expanded = append(expanded, name)
			continue
		}
		topics, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		expanded = append(expanded, topics...)
	}

	var b strings.Builder
	for _, name := range expanded {
		content, err := GetTopic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}
