package shell

import (
	"errors"
	"strings"
)

// Command parse failures.
var (
	// ErrEmpty indicates the line contained no arguments.
	ErrEmpty = errors.New("empty command")

	// ErrTooManyArgs indicates the line exceeded the argument capacity.
	ErrTooManyArgs = errors.New("too many arguments")
)

// Command is a single parsed shell command line.
type Command struct {
	// Args holds the whitespace-separated arguments, path first.
	Args []string
}

// Path returns the command's path, which is its first argument.
func (c Command) Path() string { return c.Args[0] }

// ParseCommand splits line on spaces into at most maxArgs arguments,
// dropping empty fields. A line with no arguments fails with ErrEmpty; one
// with more than maxArgs fails with ErrTooManyArgs.
func ParseCommand(line string, maxArgs int) (Command, error) {
	args := make([]string, 0, maxArgs)
	for _, arg := range strings.Split(line, " ") {
		if arg == "" {
			continue
		}
		if len(args) == maxArgs {
			return Command{}, ErrTooManyArgs
		}
		args = append(args, arg)
	}

	if len(args) == 0 {
		return Command{}, ErrEmpty
	}
	return Command{Args: args}, nil
}
