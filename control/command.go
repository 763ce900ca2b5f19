// Package control maps operator commands onto IPC sends against the two
// coupled player processes, re-applying the delay synchronization whenever
// timing is affected.
package control

import (
	"fmt"
	"strconv"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Action names one operator command. Every action addresses the player pair
// as a unit; no command targets a single player.
type Action string

const (
	ActionPlay          Action = "play"
	ActionPause         Action = "pause"
	ActionSeek          Action = "seek"
	ActionSetDelay      Action = "set_delay"
	ActionIncreaseDelay Action = "increase_delay"
	ActionDecreaseDelay Action = "decrease_delay"
	ActionQuit          Action = "quit"
)

// Actions returns every valid action in menu order.
func Actions() []Action {
	return []Action{
		ActionPlay,
		ActionPause,
		ActionSeek,
		ActionSetDelay,
		ActionIncreaseDelay,
		ActionDecreaseDelay,
		ActionQuit,
	}
}

// ActionNames returns the action identifiers as plain strings.
func ActionNames() []string {
	return lo.Map(Actions(), func(a Action, _ int) string {
		return string(a)
	})
}

// Command is one parsed operator request. Commands are stateless and
// constructed fresh per invocation.
type Command struct {
	Action Action
	Value  mo.Option[float64]
}

// Parse validates an action name and its optional numeric argument.
// Invalid input is rejected here; it never reaches the IPC layer.
func Parse(action, rawValue string) (Command, error) {
	a := Action(strings.ToLower(strings.TrimSpace(action)))
	if !lo.Contains(Actions(), a) {
		return Command{}, errUnknownAction(string(a))
	}

	cmd := Command{Action: a, Value: mo.None[float64]()}
	rawValue = strings.TrimSpace(rawValue)

	switch a {
	case ActionSeek:
		if rawValue == "" {
			return Command{}, fmt.Errorf("seek requires a position in seconds, e.g. `seek 120`")
		}
		value, err := strconv.ParseFloat(rawValue, 64)
		if err != nil {
			return Command{}, fmt.Errorf("invalid position %q: seek expects a number of seconds", rawValue)
		}
		cmd.Value = mo.Some(value)

	case ActionSetDelay:
		// An absent value is legal: the dispatcher reports the current
		// delay instead of mutating it.
		if rawValue != "" {
			value, err := strconv.ParseFloat(rawValue, 64)
			if err != nil {
				return Command{}, fmt.Errorf("invalid delay %q: set_delay expects a number of seconds", rawValue)
			}
			cmd.Value = mo.Some(value)
		}
	}

	return cmd, nil
}

// errUnknownAction lists the valid actions and suggests the closest match.
func errUnknownAction(action string) error {
	closest := lo.MinBy(ActionNames(), func(a, b string) bool {
		return levenshtein.Distance(action, a) < levenshtein.Distance(action, b)
	})

	return fmt.Errorf(
		"unknown command %q, did you mean %q? (valid: %s)",
		action, closest, strings.Join(ActionNames(), ", "),
	)
}
