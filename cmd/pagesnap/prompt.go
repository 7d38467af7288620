package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// prompt asks for the inputs missing from cli, one line each. The proxy is
// only asked for when the URL was, and an empty answer means no proxy.
func prompt(cli *CLI, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	ask := func(question string) (string, error) {
		fmt.Fprint(w, question)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return strings.TrimSpace(scanner.Text()), nil
	}

	askProxy := cli.URL == "" && cli.Proxy == ""

	if cli.URL == "" {
		answer, err := ask("Page URL: ")
		if err != nil {
			return fmt.Errorf("read url: %w", err)
		}
		cli.URL = answer
	}
	if cli.Output == "" {
		answer, err := ask("Output directory: ")
		if err != nil {
			return fmt.Errorf("read output directory: %w", err)
		}
		cli.Output = answer
	}
	if askProxy {
		// A missing final line counts as "no proxy".
		answer, err := ask("Proxy (empty for none): ")
		if err == nil {
			cli.Proxy = answer
		}
	}

	if cli.URL == "" {
		return fmt.Errorf("url is required")
	}
	if cli.Output == "" {
		return fmt.Errorf("output directory is required")
	}
	return nil
}
