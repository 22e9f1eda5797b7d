// Package cli provides the plain terminal front end: line I/O, output
// formatting and meta-command dispatch.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/arkfall/engine/command"
	"github.com/nathoo/arkfall/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Session   *command.Session
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI on stdin/stdout wired to the given session.
func New(sess *command.Session) *CLI {
	return &CLI{Session: sess, In: os.Stdin, Out: os.Stdout}
}

// Run shows the opening screen, then reads commands until /quit or EOF.
func (c *CLI) Run() {
	c.printLines(command.Intro, "")
	c.printLines(command.StatusLines(c.Session.Engine.State)...)
	c.printLines(c.Session.LocationLines()...)

	scanner := bufio.NewScanner(c.In)
	for c.prompt(); scanner.Scan(); c.prompt() {
		if c.handle(strings.TrimSpace(scanner.Text())) {
			return
		}
	}
}

// handle processes one input line. It reports true when the player quits.
func (c *CLI) handle(input string) bool {
	// Blank lines and # comments are skipped so scripts can be annotated.
	if input == "" || strings.HasPrefix(input, "#") {
		return false
	}
	if c.EchoInput {
		c.printLines(input)
	}
	if strings.HasPrefix(input, "/") {
		return c.handleMeta(input)
	}

	input, ok := c.repeat(input)
	if !ok {
		c.printLines("Nothing to repeat.")
		return false
	}

	res := c.Session.Execute(input)
	c.printLines(res.Output...)
	c.flushDeferred()
	if c.Trace {
		c.printTrace(res)
	}
	return false
}

// repeat resolves "again"/"g" to the previous game command and remembers
// anything else.
func (c *CLI) repeat(input string) (string, bool) {
	switch strings.ToLower(input) {
	case "again", "g":
		return c.lastCmd, c.lastCmd != ""
	default:
		c.lastCmd = input
		return input, true
	}
}

// flushDeferred prints queued narration immediately. The plain front end
// does not wait out the delay.
func (c *CLI) flushDeferred() {
	eng := c.Session.Engine
	for _, d := range eng.Outbox.Drain() {
		if text, ok := eng.Deliver(d); ok {
			c.printLines(text)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	switch cmd := strings.Fields(input)[0]; cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.printLines(
			"System:",
			"  /quit         Exit game",
			"  /help         Show this help",
			"  /state        Debug: dump run state",
			"  /trace        Toggle debug trace output",
			"  again (g)     Repeat your last command",
			"",
		)
		c.printLines(command.HelpLines()...)

	case "/state":
		for _, line := range command.DebugLines(c.Session.Engine) {
			c.printSystem(line)
		}

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}
	return false
}

func (c *CLI) printTrace(res types.Result) {
	if !res.OK {
		c.printSystem("[trace] Rejected: " + res.Reason)
	}
	if len(res.Events) == 0 {
		return
	}
	c.printSystem(fmt.Sprintf("[trace] Events: %d", len(res.Events)))
	for _, e := range res.Events {
		c.printSystem(fmt.Sprintf("[trace]   %s", e.Type))
	}
}

func (c *CLI) prompt() {
	fmt.Fprint(c.Out, "> ")
}

func (c *CLI) printLines(lines ...string) {
	for _, line := range lines {
		fmt.Fprintln(c.Out, line)
	}
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
