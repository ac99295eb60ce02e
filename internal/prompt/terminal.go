package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
)

// Terminal asks questions line by line on a reader/writer pair
type Terminal struct {
	in  *bufio.Reader
	raw io.Reader
	out io.Writer
}

// NewTerminal creates a terminal asker
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), raw: in, out: out}
}

// Ask presents q and blocks until it is answered
func (t *Terminal) Ask(ctx context.Context, q Question) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch q.Type {
	case TypeConfirm:
		return t.confirm(q)
	case TypeList:
		return t.list(q)
	case TypeCheckbox:
		return t.checkbox(q)
	case TypePassword:
		return t.password(q)
	default:
		return t.text(q)
	}
}

func (t *Terminal) text(q Question) (interface{}, error) {
	def := ""
	if q.Default != nil {
		def = fmt.Sprint(q.Default)
	}
	for {
		t.ask(q.Message, def)
		line, err := t.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			line = def
		}
		if line == "" && q.Required {
			t.complain("an answer is required")
			continue
		}
		if q.Type == TypeNumber {
			if _, err := strconv.ParseFloat(line, 64); err != nil {
				t.complain("please enter a number")
				continue
			}
		}
		return line, nil
	}
}

func (t *Terminal) confirm(q Question) (interface{}, error) {
	defYes, _ := q.Default.(bool)
	hint := "y/N"
	if defYes {
		hint = "Y/n"
	}
	for {
		t.ask(q.Message, hint)
		line, err := t.readLine()
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(line) {
		case "":
			return defYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		t.complain("please answer yes or no")
	}
}

func (t *Terminal) list(q Question) (interface{}, error) {
	if len(q.Choices) == 0 {
		return nil, fmt.Errorf("list question %s has no choices", q.Name)
	}
	defIdx := defaultIndex(q)
	for i, c := range q.Choices {
		fmt.Fprintf(t.out, "  %s %s\n", hintStyle.Render(fmt.Sprintf("%d)", i+1)), c.Name)
	}
	for {
		t.ask(q.Message, strconv.Itoa(defIdx+1))
		line, err := t.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			return q.Choices[defIdx].Value, nil
		}
		if c, ok := pickChoice(q.Choices, line); ok {
			return c.Value, nil
		}
		t.complain("pick one of the listed options")
	}
}

func (t *Terminal) checkbox(q Question) (interface{}, error) {
	for i, c := range q.Choices {
		fmt.Fprintf(t.out, "  %s %s\n", hintStyle.Render(fmt.Sprintf("%d)", i+1)), c.Name)
	}
	for {
		t.ask(q.Message, "comma separated")
		line, err := t.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			return defaultSelection(q), nil
		}
		selected := make([]string, 0)
		valid := true
		for _, part := range strings.Split(line, ",") {
			c, ok := pickChoice(q.Choices, strings.TrimSpace(part))
			if !ok {
				valid = false
				break
			}
			selected = append(selected, c.Value)
		}
		if valid {
			return selected, nil
		}
		t.complain("pick from the listed options")
	}
}

func (t *Terminal) password(q Question) (interface{}, error) {
	f, ok := t.raw.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return t.text(q)
	}
	t.ask(q.Message, "")
	secret, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(t.out)
	if err != nil {
		return nil, err
	}
	return string(secret), nil
}

func (t *Terminal) ask(message, hint string) {
	if hint != "" {
		fmt.Fprint(t.out, promptStyle.Render("? "+message)+" "+hintStyle.Render("("+hint+")")+" ")
		return
	}
	fmt.Fprint(t.out, promptStyle.Render("? "+message)+" ")
}

func (t *Terminal) complain(msg string) {
	fmt.Fprintln(t.out, errStyle.Render(">> "+msg))
}

// readLine returns the trimmed next line. EOF with pending text still
// yields that text; EOF on an empty read is an error.
func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func pickChoice(choices []Choice, input string) (Choice, bool) {
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(choices) {
		return choices[n-1], true
	}
	for _, c := range choices {
		if c.Value == input || c.Name == input {
			return c, true
		}
	}
	return Choice{}, false
}

func defaultIndex(q Question) int {
	switch d := q.Default.(type) {
	case int:
		if d >= 0 && d < len(q.Choices) {
			return d
		}
	case float64:
		if i := int(d); i >= 0 && i < len(q.Choices) {
			return i
		}
	case string:
		for i, c := range q.Choices {
			if c.Value == d {
				return i
			}
		}
	}
	return 0
}

func defaultSelection(q Question) []string {
	selected := make([]string, 0)
	switch d := q.Default.(type) {
	case []string:
		selected = append(selected, d...)
	case []interface{}:
		for _, v := range d {
			selected = append(selected, fmt.Sprint(v))
		}
	case string:
		selected = append(selected, d)
	}
	return selected
}
