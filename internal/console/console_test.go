package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndented(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Indented("To get started:\r\n\ncd app\nnpm install")

	assert.Equal(t, "\n   To get started:\n   \n   cd app\n   npm install\n", buf.String())
}

func TestMessagesContainText(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)

	c.Success("done")
	c.Warn("careful")
	c.Error("broken")
	c.Info("note")
	c.Step("next")

	out := buf.String()
	for _, s := range []string{"done", "careful", "broken", "note", "next"} {
		assert.Contains(t, out, s)
	}
}
