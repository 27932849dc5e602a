package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flightify/flightify/internal/session"
	"github.com/flightify/flightify/internal/shuffle"
	"github.com/flightify/flightify/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play a scripted test and print the results",
	Long: `Play one test without the TUI.

Placements come from --place zone=token (repeatable) and then from
--script, a file (or - for stdin) with one gesture per line:

    place z1 Pilot
    remove z1 Pilot
    # comments and blank lines are ignored`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("config")
		places, _ := cmd.Flags().GetStringArray("place")
		script, _ := cmd.Flags().GetString("script")
		seed, _ := cmd.Flags().GetUint64("seed")
		record, _ := cmd.Flags().GetBool("record")

		steps, err := parsePlaceFlags(places)
		if err != nil {
			return err
		}
		if script != "" {
			more, err := readScript(cmd.InOrStdin(), script)
			if err != nil {
				return err
			}
			steps = append(steps, more...)
		}

		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cfg, false)
		if err != nil {
			return err
		}
		defer log.Sync()

		var opts []session.Option
		if seed != 0 {
			opts = append(opts, session.WithShuffler(shuffle.NewSeeded(seed)))
		}
		eng, err := newEngine(cfg, log, opts...)
		if err != nil {
			return err
		}

		res, err := playScript(cmd.OutOrStdout(), eng, key, steps)
		if err != nil {
			return err
		}

		if !record {
			return nil
		}
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		seq, err := st.AttemptRepo().AppendAttempt(cmd.Context(), store.AttemptFromResult(res))
		if err != nil {
			return fmt.Errorf("record attempt: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recorded as attempt #%d\n", seq)
		return nil
	},
}

func init() {
	runCmd.Flags().String("config", "", "Configuration key to play (required)")
	runCmd.Flags().StringArray("place", nil, "Place a token: zone=token (repeatable)")
	runCmd.Flags().String("script", "", "Gesture script file, or - for stdin")
	runCmd.Flags().Uint64("seed", 0, "Shuffle seed for a reproducible item order (0 = random)")
	runCmd.Flags().Bool("record", false, "Append the finished attempt to the attempt log")
	_ = runCmd.MarkFlagRequired("config")
}

// step is one scripted gesture.
type step struct {
	remove bool
	zone   string
	token  string
}

func parsePlaceFlags(values []string) ([]step, error) {
	steps := make([]step, 0, len(values))
	for _, v := range values {
		zone, token, ok := strings.Cut(v, "=")
		zone, token = strings.TrimSpace(zone), strings.TrimSpace(token)
		if !ok || zone == "" || token == "" {
			return nil, fmt.Errorf("invalid --place %q: want zone=token", v)
		}
		steps = append(steps, step{zone: zone, token: token})
	}
	return steps, nil
}

func readScript(stdin io.Reader, path string) ([]step, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		r = f
	}
	return parseScript(r)
}

// parseScript reads "place|remove ZONE TOKEN" lines. TOKEN is the rest of
// the line, so it may contain spaces.
func parseScript(r io.Reader) ([]step, error) {
	var steps []step
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.SplitN(line, " ", 3)
		if len(fields) != 3 || strings.TrimSpace(fields[2]) == "" {
			return nil, fmt.Errorf("script line %d: want \"place|remove ZONE TOKEN\", got %q", n, line)
		}

		s := step{zone: fields[1], token: strings.TrimSpace(fields[2])}
		switch fields[0] {
		case "place":
		case "remove":
			s.remove = true
		default:
			return nil, fmt.Errorf("script line %d: unknown gesture %q", n, fields[0])
		}
		steps = append(steps, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

// playScript runs one attempt from selection to results and prints the
// breakdown to w.
func playScript(w io.Writer, eng *session.Engine, key string, steps []step) (session.Result, error) {
	if err := eng.SelectConfiguration(key); err != nil {
		return session.Result{}, err
	}
	if err := eng.Start(); err != nil {
		return session.Result{}, err
	}

	snap := eng.Snapshot()
	fmt.Fprintf(w, "%s (%s)\n", snap.ConfigurationLabel, snap.ConfigurationKey)
	fmt.Fprintf(w, "Items: %s\n\n", strings.Join(snap.RemainingItems, ", "))

	for _, s := range steps {
		var err error
		if s.remove {
			err = eng.RemoveItem(s.zone, s.token)
		} else {
			err = eng.DropItem(s.zone, s.token)
		}
		if err != nil {
			return session.Result{}, err
		}
	}

	if left := eng.Snapshot().RemainingItems; len(left) > 0 {
		fmt.Fprintf(w, "Not placed: %s\n\n", strings.Join(left, ", "))
	}

	if err := eng.Finish(); err != nil {
		return session.Result{}, err
	}
	res, err := eng.Results()
	if err != nil {
		return session.Result{}, err
	}

	printResult(w, res)

	d := eng.Diagnostics()
	if d != (session.Diagnostics{}) {
		fmt.Fprintf(w, "Ignored gestures: unknown zone %d, unknown token %d, duplicate %d, missing %d, unavailable %d\n",
			d.UnknownZone, d.UnknownToken, d.DuplicateDrops, d.MissingRemovals, d.Unavailable)
	}
	return res, nil
}

func printResult(w io.Writer, res session.Result) {
	for _, v := range res.Verdicts {
		mark := "✗"
		if v.IsCorrect {
			mark = "✓"
		}
		fmt.Fprintf(w, "%s %-16s placed: %s", mark, v.Label, joinOrNone(v.Placed))
		if !v.IsCorrect {
			fmt.Fprintf(w, "   expected: %s", joinOrNone(v.Required))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\nYou got %d / %d fully correct!\n", res.Score.Correct, res.Score.Total)
}

func joinOrNone(tokens []string) string {
	if len(tokens) == 0 {
		return "None"
	}
	return strings.Join(tokens, ", ")
}
