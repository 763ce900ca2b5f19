package control

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/simgunz/cinedual/icon"
	"github.com/simgunz/cinedual/util"
)

// Run executes the interactive control loop: prompt for an action, dispatch
// it, report the outcome, repeat. The quit action and a terminal interrupt
// are the only exits; a single bad command never ends the loop.
func Run(d *Dispatcher) error {
	if !util.IsInteractive() {
		return errors.New("no interactive terminal available; pass an action directly, e.g. `cinedual control pause`")
	}

	for {
		action, err := promptAction()
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			return err
		}

		rawValue, err := promptValue(Action(action))
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				continue
			}
			return err
		}

		cmd, err := Parse(action, rawValue)
		if err != nil {
			fmt.Printf("%s %v\n", icon.Get(icon.Fail), err)
			continue
		}

		result, err := d.Dispatch(cmd)
		if err != nil {
			fmt.Printf("%s %v\n", icon.Get(icon.Fail), err)
			continue
		}

		fmt.Printf("%s %s\n", icon.Get(icon.Success), result.Message)
		if result.Quit {
			return nil
		}
	}
}

// promptAction asks for the next command with fuzzy filtering over the
// action names.
func promptAction() (string, error) {
	var action string
	prompt := &survey.Select{
		Message: "command:",
		Options: ActionNames(),
		Filter: func(filter string, value string, _ int) bool {
			return fuzzy.MatchNormalizedFold(filter, value)
		},
	}
	err := survey.AskOne(prompt, &action)
	return action, err
}

// promptValue asks for the numeric argument of actions that take one.
func promptValue(action Action) (string, error) {
	switch action {
	case ActionSeek:
		return promptInput("position (seconds):", "")
	case ActionSetDelay:
		return promptInput("delay (seconds):", "leave empty to display the current value")
	default:
		return "", nil
	}
}

func promptInput(message, help string) (string, error) {
	var value string
	err := survey.AskOne(&survey.Input{Message: message, Help: help}, &value)
	return value, err
}
