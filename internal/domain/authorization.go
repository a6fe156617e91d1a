package domain

import (
	"slices"
	"sort"
)

// AuthorizationTable maps agents to the actions they may perform. The zero
// value denies everything. A table never changes after construction.
type AuthorizationTable struct {
	grants map[AgentID]map[Action]struct{}
}

type AgentGrant struct {
	Agent   AgentID
	Actions []Action
}

func NewAuthorizationTable(grants map[AgentID][]Action) AuthorizationTable {
	table := AuthorizationTable{grants: make(map[AgentID]map[Action]struct{}, len(grants))}
	for agent, actions := range grants {
		if agent == "" {
			continue
		}

		set := make(map[Action]struct{}, len(actions))
		for _, action := range actions {
			if !action.Valid() {
				continue
			}
			set[action] = struct{}{}
		}
		table.grants[agent] = set
	}

	return table
}

// DefaultAuthorizationTable is the built-in trusted agent set used when no
// agents file exists.
func DefaultAuthorizationTable() AuthorizationTable {
	return NewAuthorizationTable(map[AgentID][]Action{
		"agent_slackbot": {ActionSummarize, ActionPostSlack},
		"agent_notion":   {ActionUpdateNotion},
		"agent_github":   {ActionCreateIssue},
		"agent_gcal":     {ActionCreateEvent},
	})
}

func (t AuthorizationTable) IsAuthorized(agent AgentID, action Action) bool {
	actions, ok := t.grants[agent]
	if !ok {
		return false
	}

	_, ok = actions[action]
	return ok
}

func (t AuthorizationTable) Len() int {
	return len(t.grants)
}

// Grants lists the table sorted by agent, actions in declaration order.
func (t AuthorizationTable) Grants() []AgentGrant {
	agents := make([]AgentID, 0, len(t.grants))
	for agent := range t.grants {
		agents = append(agents, agent)
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i] < agents[j] })

	result := make([]AgentGrant, 0, len(agents))
	for _, agent := range agents {
		granted := make([]Action, 0, len(t.grants[agent]))
		for _, action := range allActions {
			if _, ok := t.grants[agent][action]; ok {
				granted = append(granted, action)
			}
		}
		result = append(result, AgentGrant{Agent: agent, Actions: granted})
	}

	return result
}

// WithGrant returns a copy of the table with action added for agent.
func (t AuthorizationTable) WithGrant(agent AgentID, action Action) AuthorizationTable {
	grants := make(map[AgentID][]Action, len(t.grants)+1)
	for _, grant := range t.Grants() {
		grants[grant.Agent] = grant.Actions
	}
	if !slices.Contains(grants[agent], action) {
		grants[agent] = append(grants[agent], action)
	}

	return NewAuthorizationTable(grants)
}
