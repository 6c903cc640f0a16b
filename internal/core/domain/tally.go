package domain

import "github.com/google/uuid"

// Tally maps an option ID to the number of responses selecting it. Options
// nobody selected are absent.
type Tally map[string]int

func ComputeTally(responses []Response) Tally {
	tally := make(Tally)
	for _, resp := range responses {
		for _, optionID := range resp.SelectedOptions {
			tally[optionID]++
		}
	}
	return tally
}

// Percentage is round-half-up of 100*tally[optionID]/totalResponses, where
// totalResponses counts response rows. On multiple-choice polls the
// percentages of a poll may add up to more than 100.
func Percentage(tally Tally, optionID string, totalResponses int) int {
	if totalResponses <= 0 {
		return 0
	}
	count := tally[optionID]
	return (200*count + totalResponses) / (2 * totalResponses)
}

type OptionResult struct {
	OptionID   string `json:"option_id"`
	Text       string `json:"text"`
	Votes      int    `json:"votes"`
	Percentage int    `json:"percentage"`
}

type Results struct {
	PollID         uuid.UUID      `json:"poll_id"`
	TotalResponses int            `json:"total_responses"`
	Options        []OptionResult `json:"options"`
}

// Summarize lays the tally of responses out in poll option order.
func Summarize(poll *Poll, responses []Response) Results {
	tally := ComputeTally(responses)
	total := len(responses)

	results := Results{
		PollID:         poll.ID,
		TotalResponses: total,
		Options:        make([]OptionResult, 0, len(poll.Options)),
	}
	for _, opt := range poll.Options {
		results.Options = append(results.Options, OptionResult{
			OptionID:   opt.ID,
			Text:       opt.Text,
			Votes:      tally[opt.ID],
			Percentage: Percentage(tally, opt.ID, total),
		})
	}
	return results
}
