package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	out := Build(Input{
		Dialect: "MongoDB",
		Schema:  "  users {name, age}  ",
		Prompt:  "all users",
	})

	assert.Contains(t, out, "expert MongoDB developer")
	assert.Contains(t, out, "db.collection.find")
	assert.Contains(t, out, "Schema:\nusers {name, age}\n")
	assert.True(t, strings.HasSuffix(out, "Request:\nall users"))
	assert.NotContains(t, out, "Conversation so far")
}

func TestBuild_History(t *testing.T) {
	var history []Turn
	for i := 0; i < MaxHistory+3; i++ {
		history = append(history, Turn{Sender: "user", Text: fmt.Sprintf("turn-%02d", i)})
	}
	history = append(history, Turn{Sender: "bot", Text: "   "})

	out := Build(Input{Dialect: "MySQL", Schema: "t(a)", Prompt: "p", History: history})

	assert.Contains(t, out, "Conversation so far:")
	assert.NotContains(t, out, "turn-02")
	assert.Contains(t, out, "turn-03")
	assert.Contains(t, out, fmt.Sprintf("user: turn-%02d", MaxHistory+2))
	assert.Contains(t, out, "MySQL 8")
}
