package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/techpix-labs/create-techpix-app/internal/capability"
)

const apiClientQuestion = "Which API client would you like to use?"

// errAborted is returned when the user cancels the prompt.
var errAborted = errors.New("aborted by user")

// promptAPIClient asks which API client to add. A terminal gets an
// interactive select; anything else gets a numbered list read from in.
func promptAPIClient(in io.Reader, out io.Writer) (capability.Variant, error) {
	variants := capability.All()
	if isTerminal(in) && isTerminal(out) {
		return selectInteractive(variants)
	}

	titles := make([]string, len(variants))
	for i, v := range variants {
		titles[i] = v.Title()
	}
	idx, err := selectFromList(bufio.NewReader(in), out, apiClientQuestion, titles)
	if err != nil {
		return "", err
	}
	return variants[idx], nil
}

func selectInteractive(variants []capability.Variant) (capability.Variant, error) {
	options := make([]huh.Option[capability.Variant], len(variants))
	for i, v := range variants {
		options[i] = huh.NewOption(v.Title(), v)
	}

	choice := capability.None
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[capability.Variant]().
				Title(apiClientQuestion).
				Options(options...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", errAborted
		}
		return "", fmt.Errorf("prompting for API client: %w", err)
	}
	return choice, nil
}

// selectFromList prints a numbered menu and reads the chosen index. Empty
// input selects the first item.
func selectFromList(reader *bufio.Reader, w io.Writer, prompt string, items []string) (int, error) {
	fmt.Fprintf(w, "\n%s\n", prompt)
	for i, item := range items {
		fmt.Fprintf(w, "  %d) %s\n", i+1, item)
	}
	fmt.Fprintf(w, "Enter number [1-%d] (default 1): ", len(items))

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("reading selection: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		fmt.Fprintln(w)
		return 0, nil
	}

	num, err := strconv.Atoi(line)
	if err != nil || num < 1 || num > len(items) {
		return 0, fmt.Errorf("invalid selection %q: choose 1-%d", line, len(items))
	}
	return num - 1, nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
