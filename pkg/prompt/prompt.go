// Package prompt assembles the single instruction sent to the language model
// when generating a query.
package prompt

import (
	"fmt"
	"strings"
)

// MaxHistory caps how many previous turns are replayed.
const MaxHistory = 10

type Turn struct {
	Sender string
	Text   string
}

type Input struct {
	Dialect string
	Schema  string
	Prompt  string
	History []Turn
}

var dialectHints = map[string]string{
	"MongoDB":    "Use MongoDB shell syntax, for example db.collection.find({...}) or db.collection.aggregate([...]).",
	"PostgreSQL": "Use SQL that runs on PostgreSQL.",
	"MySQL":      "Use SQL that runs on MySQL 8.",
}

func Build(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert %s developer. Write a %s query for the request below using only the collections, tables and fields in the schema.\n", in.Dialect, in.Dialect)
	if hint, ok := dialectHints[in.Dialect]; ok {
		b.WriteString(hint)
		b.WriteString("\n")
	}
	b.WriteString("Reply with the query only, with no explanation and no markdown fences.\n\n")

	b.WriteString("Schema:\n")
	b.WriteString(strings.TrimSpace(in.Schema))
	b.WriteString("\n\n")

	if history := recent(in.History); len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, t := range history {
			fmt.Fprintf(&b, "%s: %s\n", t.Sender, strings.TrimSpace(t.Text))
		}
		b.WriteString("\n")
	}

	b.WriteString("Request:\n")
	b.WriteString(strings.TrimSpace(in.Prompt))
	return b.String()
}

func recent(history []Turn) []Turn {
	turns := make([]Turn, 0, len(history))
	for _, t := range history {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		if t.Sender == "" {
			t.Sender = "user"
		}
		turns = append(turns, t)
	}
	if len(turns) > MaxHistory {
		turns = turns[len(turns)-MaxHistory:]
	}
	return turns
}
