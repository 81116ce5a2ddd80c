package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tripcraft/internal/editor"
)

type suggester interface {
	GenerateSuggestions(ctx context.Context, destination, interests string) ([]string, error)
}

// planner drives an editor.State from line commands. Days and activities are
// addressed by their 1-based position as printed by show; activities may also
// be addressed by id.
type planner struct {
	state       *editor.State
	ids         editor.IDGenerator
	suggester   suggester
	destination string
	interests   string
	out         io.Writer
}

var errQuit = errors.New("quit")

const replHelp = `Commands:
  show                          print the itinerary and suggestions
  add-day                       append an empty day
  remove-day DAY                delete a day
  add DAY                       append a new activity to a day
  rm DAY ACT                    delete an activity
  edit DAY ACT time|activity V  set a field
  move DAY FROM TO              move activity FROM to the position of TO
  suggest                       fetch a new batch of suggestions
  place SUGGESTION DAY          move a suggestion to the end of a day
  json                          print the itinerary as JSON
  help                          show this text
  quit                          leave
`

func (p *planner) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(p.out, "> ")
	for scanner.Scan() {
		err := p.exec(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(p.out, "error:", err)
		}
		fmt.Fprint(p.out, "> ")
	}
	return scanner.Err()
}

func (p *planner) exec(ctx context.Context, line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}

	switch cmd, args := args[0], args[1:]; cmd {
	case "show", "ls":
		printState(p.out, p.state)
	case "add-day":
		fmt.Fprintln(p.out, "added", p.state.AddDay())
	case "remove-day":
		if err := needArgs(args, 1); err != nil {
			return err
		}
		label, err := p.day(args[0])
		if err != nil {
			return err
		}
		return p.state.RemoveDay(label)
	case "add":
		if err := needArgs(args, 1); err != nil {
			return err
		}
		label, err := p.day(args[0])
		if err != nil {
			return err
		}
		a, err := p.state.AddActivity(label)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.out, "added %s to %s\n", a.ID, label)
	case "rm":
		if err := needArgs(args, 2); err != nil {
			return err
		}
		label, id, err := p.activity(args[0], args[1])
		if err != nil {
			return err
		}
		return p.state.RemoveActivity(label, id)
	case "edit":
		if err := needArgs(args, 3); err != nil {
			return err
		}
		label, id, err := p.activity(args[0], args[1])
		if err != nil {
			return err
		}
		return p.state.EditActivity(label, id, args[2], strings.Join(args[3:], " "))
	case "move":
		if err := needArgs(args, 3); err != nil {
			return err
		}
		label, from, err := p.activity(args[0], args[1])
		if err != nil {
			return err
		}
		_, to, err := p.activity(args[0], args[2])
		if err != nil {
			return err
		}
		return p.state.Reorder(label, from, to)
	case "suggest":
		items, err := p.suggester.GenerateSuggestions(ctx, p.destination, p.interests)
		if err != nil {
			return err
		}
		p.state.SetSuggestions(editor.NormalizeSuggestions(items, p.ids))
		printState(p.out, p.state)
	case "place":
		if err := needArgs(args, 2); err != nil {
			return err
		}
		id, err := p.suggestion(args[0])
		if err != nil {
			return err
		}
		label, err := p.day(args[1])
		if err != nil {
			return err
		}
		return p.state.Transfer(id, label)
	case "json":
		return printJSON(p.out, p.state)
	case "help":
		fmt.Fprint(p.out, replHelp)
	case "quit", "exit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

func needArgs(args []string, n int) error {
	if len(args) < n {
		return fmt.Errorf("expected %d argument(s), got %d", n, len(args))
	}
	return nil
}

func (p *planner) day(ref string) (string, error) {
	n, err := strconv.Atoi(ref)
	if err != nil {
		return "", fmt.Errorf("day must be a number, got %q", ref)
	}
	days := p.state.Days()
	if n < 1 || n > len(days) {
		return "", fmt.Errorf("%w: no day %d", editor.ErrDayNotFound, n)
	}
	return days[n-1], nil
}

func (p *planner) activity(dayRef, ref string) (label, id string, err error) {
	label, err = p.day(dayRef)
	if err != nil {
		return "", "", err
	}
	acts, err := p.state.Activities(label)
	if err != nil {
		return "", "", err
	}
	id, err = pick(acts, ref)
	return label, id, err
}

func (p *planner) suggestion(ref string) (string, error) {
	return pick(p.state.Pool(), ref)
}

// pick resolves a 1-based position or an id against list.
func pick(list []editor.Activity, ref string) (string, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(list) {
			return "", fmt.Errorf("%w: no activity %d", editor.ErrActivityNotFound, n)
		}
		return list[n-1].ID, nil
	}
	for _, a := range list {
		if a.ID == ref {
			return a.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q", editor.ErrActivityNotFound, ref)
}
