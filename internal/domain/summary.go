package domain

type SummaryStyle string

const (
	SummaryStyleStandup SummaryStyle = "standup"
	SummaryStyleNotes   SummaryStyle = "notes"
)
