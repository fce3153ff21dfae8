package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/fatih/color"
	trp "github.com/jicksta/tideman"
	"github.com/jicksta/tideman/internal/electionfile"
	"github.com/jicksta/tideman/report"
	"github.com/jicksta/tideman/rest"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Exit statuses.
const (
	exitUsage         = 1
	exitCapacity      = 2
	exitInvalidBallot = 3
	exitFailure       = 4
)

const usage = "Usage: tideman [options] [candidate ...]"

// ExitError carries the process exit status for an error.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

type config struct {
	candidates  []string
	ballotsPath string
	configPath  string
	report      bool
	dot         bool
	serveAddr   string
	logLevel    logrus.Level
}

func parseArgs(args []string, output io.Writer) (*config, error) {
	flagSet := flag.NewFlagSet("tideman", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprintln(output, usage)
		fmt.Fprintln(output, "\nOptions:")
		flagSet.PrintDefaults()
	}

	ballotsFlag := flagSet.String("ballots", "", "Read ballots from a file of lines \"<voterID> <first> <second> ...\" instead of prompting.")
	configFlag := flagSet.String("config", "", "Read candidates and ballots from an HCL election file.")
	reportFlag := flagSet.Bool("report", false, "Print the ranking, the ranked pairs and the tally after the winner.")
	dotFlag := flagSet.Bool("dot", false, "Print the locked graph in GraphViz DOT format.")
	serveFlag := flagSet.String("serve", "", "Serve the election API on this address, e.g. :8080.")
	logLevelFlag := flagSet.String("log-level", "warn", "Logging level: debug, info, warn or error.")

	if err := flagSet.Parse(args); err != nil {
		return nil, &ExitError{Code: exitUsage, Message: err.Error()}
	}

	level, err := logrus.ParseLevel(strings.ToLower(*logLevelFlag))
	if err != nil {
		return nil, &ExitError{Code: exitUsage, Message: err.Error()}
	}

	cfg := &config{
		candidates:  flagSet.Args(),
		ballotsPath: *ballotsFlag,
		configPath:  *configFlag,
		report:      *reportFlag,
		dot:         *dotFlag,
		serveAddr:   *serveFlag,
		logLevel:    level,
	}

	if cfg.configPath != "" && (len(cfg.candidates) > 0 || cfg.ballotsPath != "") {
		return nil, &ExitError{Code: exitUsage, Message: "-config cannot be combined with candidates or -ballots"}
	}
	return cfg, nil
}

func newLogger(output io.Writer, level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.Out = output
	logger.Level = level
	logger.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	return logger
}

// run reads an election, counts it and prints the winner. Every error it returns that should
// end the process with a particular status is an *ExitError.
func run(stdin io.Reader, stdout, stderr io.Writer, args []string) error {
	cfg, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, cfg.logLevel)

	if cfg.serveAddr != "" && cfg.configPath == "" && len(cfg.candidates) == 0 {
		return serve(cfg.serveAddr, nil, logger)
	}

	election, err := loadElection(cfg, stdin, stdout, logger)
	if err != nil {
		logger.WithError(err).Debug("election not counted")
		return exitErrorFor(err)
	}

	if cfg.serveAddr != "" {
		return serve(cfg.serveAddr, election, logger)
	}

	return printResults(stdout, cfg, election.Results(), logger)
}

func loadElection(cfg *config, stdin io.Reader, stdout io.Writer, logger logrus.FieldLogger) (*trp.Election, error) {
	if cfg.configPath != "" {
		def, err := electionfile.NewLoader(logger).Load(cfg.configPath)
		if err != nil {
			return nil, err
		}
		return def.Election()
	}

	election, err := trp.NewElection("cli", cfg.candidates)
	if err != nil {
		return nil, err
	}

	if cfg.ballotsPath == "" {
		return election, collectBallots(election, newPrompter(stdin, stdout))
	}

	f, err := os.Open(cfg.ballotsPath)
	if err != nil {
		return nil, errors.Wrap(err, "open ballots")
	}
	defer f.Close()

	ballots, err := trp.ReadBallots(f)
	if err != nil {
		return nil, err
	}
	for _, ballot := range ballots {
		if err := election.Vote(ballot.VoterID, ballot.Choices...); err != nil {
			return nil, err
		}
	}
	logger.WithField("ballots", len(ballots)).Debug("ballots loaded")
	return election, nil
}

func printResults(stdout io.Writer, cfg *config, results *trp.ElectionResults, logger logrus.FieldLogger) error {
	for _, pair := range results.DroppedPairs() {
		logger.WithFields(logrus.Fields{
			"winner":   results.Candidates[pair.Winner],
			"loser":    results.Candidates[pair.Loser],
			"strength": pair.Strength,
		}).Debug("pair skipped, it would create a cycle")
	}

	color.New(color.FgGreen, color.Bold).Fprintln(stdout, results.Winner)

	if cfg.report {
		er := report.NewElectionReport(results)

		fmt.Fprint(stdout, "\nRanking:\n\n")
		er.PrintRanking(stdout)

		fmt.Fprint(stdout, "\nRanked Pairs:\n\n")
		er.PrintRankedPairsTable(stdout)
		for _, pair := range results.DroppedPairs() {
			color.New(color.FgYellow).Fprintf(stdout, "Not locked: %s over %s by %d (cycle)\n",
				results.Candidates[pair.Winner], results.Candidates[pair.Loser], pair.Strength)
		}

		fmt.Fprint(stdout, "\nTally:\n\n")
		er.PrintTallyTable(stdout)
	}

	if cfg.dot {
		b, err := results.Locked.DOT(results.Candidates)
		if err != nil {
			return &ExitError{Code: exitFailure, Message: err.Error()}
		}
		fmt.Fprintf(stdout, "%s\n", b)
	}
	return nil
}

func serve(addr string, election *trp.Election, logger *logrus.Logger) error {
	store := trp.NewMemoryStore(logger)
	if election != nil {
		if _, err := store.CreateElection(election.ID, election.Candidates); err != nil {
			return exitErrorFor(err)
		}
		for _, ballot := range election.Ballots {
			if _, err := store.SaveBallot(election.ID, ballot); err != nil {
				return exitErrorFor(err)
			}
		}
	}

	logger.WithField("addr", addr).Info("serving election API")
	if err := http.ListenAndServe(addr, rest.NewRouter(store, logger)); err != nil {
		return &ExitError{Code: exitFailure, Message: err.Error()}
	}
	return nil
}

// printExitError writes the message for err and returns the process exit status. Election
// errors go to stdout like the rest of the dialogue; other failures go to stderr.
func printExitError(err error, stdout, stderr io.Writer) int {
	exitErr, ok := err.(*ExitError)
	if !ok {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	if exitErr.Code == exitFailure {
		fmt.Fprintln(stderr, exitErr.Message)
	} else {
		fmt.Fprintln(stdout, exitErr.Message)
	}
	return exitErr.Code
}

// exitErrorFor maps an election error to its exit status.
func exitErrorFor(err error) error {
	switch errors.Cause(err) {
	case trp.ErrNoCandidates:
		return &ExitError{Code: exitUsage, Message: usage}
	case trp.ErrDuplicateCandidate:
		return &ExitError{Code: exitUsage, Message: err.Error()}
	case trp.ErrTooManyCandidates:
		return &ExitError{Code: exitCapacity, Message: fmt.Sprintf("Maximum number of candidates is %d", trp.MaxCandidates)}
	case trp.ErrInvalidBallot:
		return &ExitError{Code: exitInvalidBallot, Message: "Invalid vote."}
	default:
		return &ExitError{Code: exitFailure, Message: err.Error()}
	}
}
