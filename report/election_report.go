package report

import (
	"fmt"
	"io"

	trp "github.com/jicksta/tideman"
	"github.com/olekukonko/tablewriter"
)

type ElectionReport struct {
	Results *trp.ElectionResults
}

func NewElectionReport(results *trp.ElectionResults) *ElectionReport {
	return &ElectionReport{
		Results: results,
	}
}

// markdownTable configures a writer for Markdown table formatting
func markdownTable(writer io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(writer)
	table.SetAutoFormatHeaders(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetHeader(header)
	return table
}

// PrintTallyTable prints the preference matrix. The cell in row A, column B is the number of
// voters who ranked A above B.
func (er *ElectionReport) PrintTallyTable(writer io.Writer) {
	candidates := er.Results.Candidates
	matrix := er.Results.Tally.Matrix()

	header := []string{"over →"}
	header = append(header, candidates...)
	table := markdownTable(writer, header)

	for i, row := range matrix {
		cells := []string{candidates[i]}
		for j, count := range row {
			if i == j {
				cells = append(cells, "-")
				continue
			}
			cells = append(cells, fmt.Sprint(count))
		}
		table.Append(cells)
	}

	table.Render()
}

func (er *ElectionReport) PrintRankedPairsTable(writer io.Writer) {
	results := er.Results
	table := markdownTable(writer, []string{"Rank", "Winner", "Loser", "# For", "# Against", "Won by", "Locked?"})

	for i, pair := range results.RankedPairs {
		table.Append([]string{
			fmt.Sprint(i + 1),
			results.Candidates[pair.Winner],
			results.Candidates[pair.Loser],
			fmt.Sprint(results.Tally.Prefer(pair.Winner, pair.Loser)),
			fmt.Sprint(results.Tally.Prefer(pair.Loser, pair.Winner)),
			fmt.Sprint(pair.Strength),
			fmt.Sprint(!results.IsCyclical(i)),
		})
	}

	table.Render()
}

// PrintRanking prints every candidate in final order, winner first.
func (er *ElectionReport) PrintRanking(writer io.Writer) {
	for n, name := range er.Results.Ranking {
		fmt.Fprintf(writer, " %2d. %s\n", n+1, name)
	}
}
