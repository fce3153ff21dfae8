package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	trp "github.com/jicksta/tideman"
	"github.com/pkg/errors"
)

// errNoInput is returned when stdin ends before every ballot has been read.
var errNoInput = errors.New("unexpected end of input")

type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{scanner: bufio.NewScanner(in), out: out}
}

// String prints label and returns the next line with surrounding spaces trimmed.
func (p *prompter) String(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", errors.Wrap(err, "read input")
		}
		return "", errNoInput
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// Int keeps asking until the answer is a non-negative integer.
func (p *prompter) Int(label string) (int, error) {
	for {
		line, err := p.String(label)
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 0 {
			return n, nil
		}
	}
}

// collectBallots asks for the number of voters, then each voter's ranking one position at
// a time. The first name that is not a candidate stops collection.
func collectBallots(election *trp.Election, p *prompter) error {
	voters, err := p.Int("Number of voters: ")
	if err != nil {
		return err
	}

	for voter := 1; voter <= voters; voter++ {
		choices := make([]string, 0, len(election.Candidates))
		for rank := 1; rank <= len(election.Candidates); rank++ {
			name, err := p.String(fmt.Sprintf("Rank %d: ", rank))
			if err != nil {
				return err
			}
			if _, ok := election.CandidateIndex(name); !ok {
				return errors.Wrapf(trp.ErrInvalidBallot, "voter %d: unknown candidate %q at rank %d", voter, name, rank)
			}
			choices = append(choices, name)
		}

		if err := election.Vote(strconv.Itoa(voter), choices...); err != nil {
			return err
		}
		fmt.Fprintln(p.out)
	}
	return nil
}
