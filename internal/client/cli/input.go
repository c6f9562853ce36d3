package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword and isTerminal are test seams for the x/term calls.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	return readLine(reader)
}

// GetOptionalText is GetSimpleText where an empty answer means "keep the
// current value" and yields nil.
func GetOptionalText(reader *bufio.Reader, prompt string, w io.Writer) (*string, error) {
	s, err := GetSimpleText(reader, prompt+" (empty to keep)", w)
	if err != nil || s == "" {
		return nil, err
	}
	return &s, nil
}

// GetBool asks a yes/no question. An empty answer yields nil.
func GetBool(reader *bufio.Reader, prompt string, w io.Writer) (*bool, error) {
	s, err := GetSimpleText(reader, prompt+" [y/n, empty to skip]", w)
	if err != nil {
		return nil, err
	}
	var b bool
	switch strings.ToLower(s) {
	case "":
		return nil, nil
	case "y", "yes", "true":
		b = true
	case "n", "no", "false":
		b = false
	default:
		return nil, fmt.Errorf("expected y or n, got %q", s)
	}
	return &b, nil
}

// GetPassword prints a password prompt to w and reads a password without
// echo when stdin is a terminal. Otherwise it reads one line from reader,
// so input can be piped.
func GetPassword(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return readLine(reader)
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// GetMultiline prints a prompt to w and reads multiple lines until an empty
// line is entered (i.e., the user presses Enter twice). The trailing newline
// on each line is trimmed and the collected text is joined with '\n'.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
