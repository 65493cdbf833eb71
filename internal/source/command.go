package source

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"typeahead/internal/domain"
	appErrors "typeahead/internal/errors"
)

const maxErrorSnippetLen = 200

// Command loads options from an external program. The search text is passed
// as the last argument; every non-empty output line becomes an option, and
// lines holding a JSON object become record options.
type Command struct {
	Name string
	Args []string
}

// Loader returns a loader that runs the command once per search.
func (c Command) Loader() domain.Loader {
	return func(ctx context.Context, search string) ([]domain.Option, error) {
		args := make([]string, 0, len(c.Args)+1)
		args = append(args, c.Args...)
		args = append(args, search)

		//nolint:gosec // G204: running the configured option command is the point
		cmd := exec.CommandContext(ctx, c.Name, args...)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		out, err := cmd.Output()
		if err != nil {
			return nil, formatCommandError(c.Name, args, err, stderr.Bytes())
		}
		return parseLines(out)
	}
}

func parseLines(out []byte) ([]domain.Option, error) {
	var opts []domain.Option
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "{") {
			var record map[string]any
			if err := json.Unmarshal([]byte(line), &record); err == nil {
				opts = append(opts, domain.Labeled(record))
				continue
			}
		}
		opts = append(opts, domain.Primitive(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, parseError("read command output", err)
	}
	return opts, nil
}

func formatCommandError(bin string, args []string, cmdErr error, stderr []byte) error {
	if errors.Is(cmdErr, exec.ErrNotFound) {
		return unavailable(fmt.Sprintf("%s binary not found in PATH", bin), cmdErr)
	}
	snippet := strings.TrimSpace(string(stderr))
	if len(snippet) > maxErrorSnippetLen {
		snippet = snippet[:maxErrorSnippetLen] + "..."
	}
	msg := fmt.Sprintf("%s failed", strings.Join(append([]string{bin}, args...), " "))
	if snippet != "" {
		msg += ": " + snippet
	}
	return appErrors.New(appErrors.CodeLoadFailed, msg, cmdErr)
}
