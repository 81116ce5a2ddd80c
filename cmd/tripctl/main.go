package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"tripcraft/internal/client"
	"tripcraft/internal/config"
	"tripcraft/internal/editor"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "tripctl:", err)
		os.Exit(1)
	}
	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "tripctl:", err)
		os.Exit(1)
	}
}

func destinationFlag() cli.Flag {
	return &cli.StringFlag{Name: "destination", Aliases: []string{"d"}, Usage: "where to go", Required: true}
}

func daysFlag() cli.Flag {
	return &cli.IntFlag{Name: "days", Aliases: []string{"n"}, Usage: "number of days", Required: true}
}

func interestsFlag() cli.Flag {
	return &cli.StringFlag{Name: "interests", Aliases: []string{"i"}, Usage: "comma separated interests (default: general sightseeing)"}
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	return &cli.App{
		Name:      "tripctl",
		Usage:     "plan trips against a tripcraft backend",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "backend base URL",
				EnvVars: []string{"TRIPCRAFT_API_URL"},
				Value:   client.DefaultBaseURL,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "generate an itinerary and print it",
				Flags: []cli.Flag{destinationFlag(), daysFlag(), interestsFlag(), &cli.BoolFlag{Name: "json", Usage: "print the raw JSON"}},
				Action: func(c *cli.Context) error {
					state, err := generate(c, &editor.SequenceGenerator{})
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out, state)
					}
					printState(out, state)
					return nil
				},
			},
			{
				Name:  "suggest",
				Usage: "list extra activities for a destination",
				Flags: []cli.Flag{destinationFlag(), interestsFlag()},
				Action: func(c *cli.Context) error {
					items, err := apiClient(c).GenerateSuggestions(c.Context, c.String("destination"), c.String("interests"))
					if err != nil {
						return err
					}
					for i, item := range items {
						fmt.Fprintf(out, "%2d. %s\n", i+1, item)
					}
					return nil
				},
			},
			{
				Name:  "plan",
				Usage: "generate an itinerary and edit it interactively",
				Flags: []cli.Flag{destinationFlag(), daysFlag(), interestsFlag()},
				Action: func(c *cli.Context) error {
					ids := &editor.SequenceGenerator{}
					state, err := generate(c, ids)
					if err != nil {
						return err
					}
					p := &planner{
						state:       state,
						ids:         ids,
						suggester:   apiClient(c),
						destination: c.String("destination"),
						interests:   c.String("interests"),
						out:         out,
					}
					printState(out, state)
					return p.run(c.Context, in)
				},
			},
		},
	}
}

func apiClient(c *cli.Context) *client.Client {
	return client.New(c.String("api-url"))
}

func generate(c *cli.Context, ids editor.IDGenerator) (*editor.State, error) {
	fmt.Fprintf(c.App.Writer, "Generating a %d-day itinerary for %s...\n", c.Int("days"), c.String("destination"))
	it, err := apiClient(c).GenerateItinerary(c.Context, c.String("destination"), c.Int("days"), c.String("interests"))
	if err != nil {
		return nil, err
	}
	return editor.FromItinerary(it, ids)
}

func printJSON(out io.Writer, state *editor.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return err
	}
	pretty.WriteByte('\n')
	_, err = pretty.WriteTo(out)
	return err
}

func printState(out io.Writer, state *editor.State) {
	days := state.Days()
	if len(days) == 0 {
		fmt.Fprintln(out, "(no days)")
	}
	for i, label := range days {
		fmt.Fprintf(out, "%d) %s\n", i+1, label)
		acts, _ := state.Activities(label)
		if len(acts) == 0 {
			fmt.Fprintln(out, "     (empty)")
		}
		for j, a := range acts {
			fmt.Fprintf(out, "   %2d. %-10s %s  [%s]\n", j+1, a.Time, a.Activity, a.ID)
		}
	}
	if pool := state.Pool(); len(pool) > 0 {
		fmt.Fprintln(out, "Suggestions")
		for j, a := range pool {
			fmt.Fprintf(out, "   %2d. %s  [%s]\n", j+1, a.Activity, a.ID)
		}
	}
}
