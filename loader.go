package trp

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var whitespaceSeparator = regexp.MustCompile(`\s+`)

// ReadBallots deserializes ballots from a Reader using the following format:
//
//     <voterID> <choiceA> <choiceB> <choiceC>
//
// Blank lines and lines starting with # are skipped. Ties ("A=B") are not supported and are
// rejected as invalid ballots.
func ReadBallots(reader io.Reader) ([]*Ballot, error) {
	var ballots []*Ballot
	scanner := bufio.NewScanner(reader)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens := whitespaceSeparator.Split(line, -1)
		for _, token := range tokens[1:] {
			if strings.Contains(token, "=") {
				return nil, errors.Wrapf(ErrInvalidBallot, "line %d: tied choices %q", lineNumber, token)
			}
		}
		ballots = append(ballots, &Ballot{
			VoterID: tokens[0],
			Choices: tokens[1:],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read ballots")
	}
	return ballots, nil
}

// ReadElection registers candidates and records every ballot read from reader. The first
// invalid ballot aborts the election.
func ReadElection(electionID string, candidates []string, reader io.Reader) (*Election, error) {
	election, err := NewElection(electionID, candidates)
	if err != nil {
		return nil, err
	}
	ballots, err := ReadBallots(reader)
	if err != nil {
		return nil, err
	}
	for _, ballot := range ballots {
		if err := election.Vote(ballot.VoterID, ballot.Choices...); err != nil {
			return nil, err
		}
	}
	return election, nil
}
