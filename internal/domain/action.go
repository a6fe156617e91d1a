package domain

import (
	"fmt"
	"strings"
)

type AgentID string

type Action string

const (
	ActionSummarize    Action = "summarize"
	ActionPostSlack    Action = "post_slack"
	ActionUpdateNotion Action = "update_notion"
	ActionCreateIssue  Action = "create_issue"
	ActionCreateEvent  Action = "create_event"
)

var allActions = []Action{
	ActionSummarize,
	ActionPostSlack,
	ActionUpdateNotion,
	ActionCreateIssue,
	ActionCreateEvent,
}

// Actions returns every action the gateway knows, in declaration order.
func Actions() []Action {
	out := make([]Action, len(allActions))
	copy(out, allActions)
	return out
}

func ParseAction(raw string) (Action, error) {
	candidate := Action(strings.TrimSpace(raw))
	for _, action := range allActions {
		if action == candidate {
			return action, nil
		}
	}

	return "", fmt.Errorf("%w: unknown action %q", ErrValidation, raw)
}

func (a Action) Valid() bool {
	_, err := ParseAction(string(a))
	return err == nil
}
