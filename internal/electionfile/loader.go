// Package electionfile reads an election declared in HCL:
//
//     election "tennessee" {
//       candidates = ["Memphis", "Nashville", "Chattanooga", "Knoxville"]
//     }
//
//     ballot "voter-1" {
//       ranking = ["Nashville", "Chattanooga", "Knoxville", "Memphis"]
//       count   = 26
//     }
//
// count is optional and repeats the ballot, numbering the extra voters "voter-1#2" and so on.
// It may not exceed MaxBallotCount.
package electionfile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	trp "github.com/jicksta/tideman"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrMissingElection is returned for a file without an election block.
var ErrMissingElection = errors.New("no election block")

// MaxBallotCount bounds the count attribute of a single ballot block.
const MaxBallotCount = 100000

type fileRoot struct {
	Election *electionBlock `hcl:"election,block"`
	Ballots  []*ballotBlock `hcl:"ballot,block"`
}

type electionBlock struct {
	ID         string   `hcl:"id,label"`
	Candidates []string `hcl:"candidates"`
}

type ballotBlock struct {
	VoterID string   `hcl:"voter,label"`
	Ranking []string `hcl:"ranking"`
	Count   *int     `hcl:"count,optional"`
}

// Definition is a decoded election file. Nothing has been validated against the candidates yet.
type Definition struct {
	ID         string
	Candidates []string
	Ballots    []*trp.Ballot
}

// Loader decodes election files.
type Loader struct {
	log logrus.FieldLogger
}

func NewLoader(logger logrus.FieldLogger) *Loader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Loader{log: logger.WithField("component", "electionfile")}
}

// Load parses the HCL file at path.
func (l *Loader) Load(path string) (*Definition, error) {
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "parse %s", path)
	}
	return l.decode(file.Body, path)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func (l *Loader) Parse(src []byte, filename string) (*Definition, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "parse %s", filename)
	}
	return l.decode(file.Body, filename)
}

func (l *Loader) decode(body hcl.Body, filename string) (*Definition, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, errors.Wrapf(diags, "decode %s", filename)
	}
	if root.Election == nil {
		return nil, errors.Wrapf(ErrMissingElection, "decode %s", filename)
	}

	def := &Definition{
		ID:         root.Election.ID,
		Candidates: root.Election.Candidates,
	}
	for _, block := range root.Ballots {
		count := 1
		if block.Count != nil {
			count = *block.Count
		}
		if count < 1 || count > MaxBallotCount {
			return nil, errors.Wrapf(trp.ErrInvalidBallot, "ballot %q: count must be between 1 and %d, got %d", block.VoterID, MaxBallotCount, count)
		}
		for i := 1; i <= count; i++ {
			voterID := block.VoterID
			if i > 1 {
				voterID = fmt.Sprintf("%s#%d", block.VoterID, i)
			}
			def.Ballots = append(def.Ballots, &trp.Ballot{VoterID: voterID, Choices: block.Ranking})
		}
	}

	l.log.WithFields(logrus.Fields{
		"file":       filename,
		"election":   def.ID,
		"candidates": len(def.Candidates),
		"ballots":    len(def.Ballots),
	}).Debug("election file decoded")
	return def, nil
}

// Election registers the candidates and records every ballot in file order.
func (d *Definition) Election() (*trp.Election, error) {
	builder := trp.NewElectionBuilder(d.ID).Candidates(d.Candidates...)
	builder.Ballots = d.Ballots
	return builder.Election()
}
