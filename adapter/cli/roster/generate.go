package roster

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/felixgeelhaar/roster-engine/adapter/cli"
	"github.com/felixgeelhaar/roster-engine/internal/roster"
	"github.com/felixgeelhaar/roster-engine/internal/shared/domain"
	"github.com/felixgeelhaar/roster-engine/pkg/config"
	"github.com/spf13/cobra"
)

var (
	generateInputPath string
	generateYear       int
	generateMonth      int
	generateSeed       int64
	generateMaxIters   int
)

// generateCmd is the sole roster subcommand: read a month's engineer
// roster and constraints as JSON, run the driver, print a summary.
var generateCmd = &cobra.Command{
	Use:     "generate",
	Short:   "Generate a monthly shift roster from an engineer/constraint file",
	Aliases: []string{"run", "build"},
	Long: `Generate reads a JSON description of a team (engineers, holidays,
approved time-off requests, and the previous month's trailing six days)
and produces a full shift roster for one calendar month, repairing
coverage, rest-period, and consecutive-day violations until the best
partial result is found.

Examples:
  roster-engine roster generate --input team.json --year 2026 --month 3
  cat team.json | roster-engine roster generate --month 3 --year 2026`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		raw, err := readInput(generateInputPath)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		var doc inputDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("parse input: %w", err)
		}

		input, err := doc.toScheduleInput(generateYear, generateMonth)
		if err != nil {
			return fmt.Errorf("build schedule input: %w", err)
		}

		applyConfigTunables(cfg)

		driverCfg := roster.DriverConfig{
			MaxIterations: generateMaxIters,
			Seed:          generateSeed,
		}
		if driverCfg.MaxIterations == 0 {
			driverCfg.MaxIterations = cfg.MaxIterations
		}
		if driverCfg.Seed == 0 {
			driverCfg.Seed = cfg.RandomSeed
		}

		handler := roster.GenerateRosterHandler{}
		out, err := handler.Handle(cmd.Context(), roster.GenerateRosterQuery{Input: input, Config: driverCfg})
		if err != nil {
			return fmt.Errorf("generate roster: %w", err)
		}

		printSummary(out, cfg)
		if cfg.StrictMode && len(out.Violations) > 0 {
			return fmt.Errorf("strict mode: %d violation(s) remain", len(out.Violations))
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateInputPath, "input", "i", "", "path to JSON input (default: stdin)")
	generateCmd.Flags().IntVar(&generateYear, "year", time.Now().Year(), "roster year")
	generateCmd.Flags().IntVar(&generateMonth, "month", int(time.Now().Month()), "roster month (1-12)")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "deterministic RNG seed (0 = use config default)")
	generateCmd.Flags().IntVar(&generateMaxIters, "max-iterations", 0, "driver iteration cap (0 = use config default)")

	cli.AddCommand(rosterCmd)
	rosterCmd.AddCommand(generateCmd)
}

// rosterCmd groups roster-related subcommands under a single namespace,
// mirroring the teacher's grouping of its domain subcommands (e.g.
// "schedule") under the root.
var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Generate and inspect monthly shift rosters",
}

func applyConfigTunables(cfg *config.Config) {
	if cfg.PreferredNightCount > 0 {
		roster.PreferredNightCount = cfg.PreferredNightCount
	}
	if cfg.MaxFloaters > 0 {
		roster.MaxFloaters = cfg.MaxFloaters
	}
	if cfg.MaxFloaterShiftsPerWeek > 0 {
		roster.MaxFloaterShiftsPerWeek = cfg.MaxFloaterShiftsPerWeek
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// inputDocument is the wire format accepted on the CLI boundary. It uses
// plain strings for identifiers and dates because roster.Engineer's
// EngineerID wraps an unexported value and is not itself JSON-friendly;
// toScheduleInput is the single place that bridges the two.
type inputDocument struct {
	Engineers        []engineerDoc   `json:"engineers"`
	Holidays         []holidayDoc    `json:"holidays"`
	ApprovedRequests []requestDoc    `json:"approved_requests"`
	Coverage         map[string]coverageDoc `json:"coverage"`
	PreviousMonthTail *tailDoc       `json:"previous_month_tail"`
}

type engineerDoc struct {
	ID               string              `json:"id"`
	Tier             string              `json:"tier"`
	IsFloater        bool                `json:"is_floater"`
	InTraining       bool                `json:"in_training"`
	State            string              `json:"state"`
	PreferWeekday    []string            `json:"prefer_weekday"`
	PreferWeekend    []string            `json:"prefer_weekend"`
	UnavailableDays  map[string]string   `json:"unavailable_days"` // date -> "predetermined_off" | "unavailable"
	FixedOffWeekdays []string            `json:"fixed_off_weekdays"`
}

type holidayDoc struct {
	Date   string   `json:"date"`
	Name   string   `json:"name"`
	States []string `json:"states"`
}

type requestDoc struct {
	EngineerID string   `json:"engineer_id"`
	Type       string   `json:"type"`
	Dates      []string `json:"dates"`
}

type coverageDoc struct {
	Minimum  int `json:"minimum"`
	Preferred int `json:"preferred"`
}

type tailDoc struct {
	Days []string                    `json:"days"`
	Grid map[string]map[string]string `json:"grid"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday, "friday": time.Friday,
	"saturday": time.Saturday,
}

func (d inputDocument) toScheduleInput(year, month int) (*roster.ScheduleInput, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month %d out of range", month)
	}

	engineers := make([]roster.Engineer, 0, len(d.Engineers))
	for _, ed := range d.Engineers {
		e := roster.Engineer{
			ID:         domain.NewUserID(ed.ID),
			Tier:       roster.Tier(ed.Tier),
			IsFloater:  ed.IsFloater,
			InTraining: ed.InTraining,
			State:      ed.State,
			Preferences: roster.Preferences{
				Weekday: shiftSet(ed.PreferWeekday),
				Weekend: shiftSet(ed.PreferWeekend),
			},
			UnavailableDays:  map[string]bool{},
			UnavailableTypes: map[string]roster.UnavailabilityTag{},
		}
		for date, tag := range ed.UnavailableDays {
			e.UnavailableDays[date] = true
			e.UnavailableTypes[date] = roster.UnavailabilityTag(tag)
		}
		for _, wd := range ed.FixedOffWeekdays {
			day, ok := weekdayNames[strings.ToLower(wd)]
			if !ok {
				return nil, fmt.Errorf("engineer %s: unknown weekday %q", ed.ID, wd)
			}
			e.FixedOffDays = append(e.FixedOffDays, day)
		}
		engineers = append(engineers, e)
	}

	holidays := make([]roster.HolidayEntry, 0, len(d.Holidays))
	for _, hd := range d.Holidays {
		holidays = append(holidays, roster.HolidayEntry{Date: hd.Date, Name: hd.Name, States: hd.States})
	}

	requests := make([]roster.ApprovedRequest, 0, len(d.ApprovedRequests))
	for _, rd := range d.ApprovedRequests {
		requests = append(requests, roster.ApprovedRequest{
			EngineerID: domain.NewUserID(rd.EngineerID),
			Type:       roster.RequestType(rd.Type),
			Dates:      rd.Dates,
		})
	}

	var coverage map[roster.Shift]roster.CoverageRequirement
	if len(d.Coverage) > 0 {
		coverage = map[roster.Shift]roster.CoverageRequirement{}
		for shiftName, cd := range d.Coverage {
			shift, ok := roster.CanonicalShift(shiftName)
			if !ok {
				return nil, fmt.Errorf("unknown shift in coverage override: %q", shiftName)
			}
			coverage[shift] = roster.CoverageRequirement{Minimum: cd.Minimum, Preferred: cd.Preferred}
		}
	}

	var tail *roster.TailSchedule
	if d.PreviousMonthTail != nil {
		tail = &roster.TailSchedule{Grid: map[roster.EngineerID]map[string]roster.Shift{}}
		for _, ds := range d.PreviousMonthTail.Days {
			t, err := time.Parse("2006-01-02", ds)
			if err != nil {
				return nil, fmt.Errorf("previous_month_tail.days: %w", err)
			}
			tail.Days = append(tail.Days, t)
		}
		for id, byDate := range d.PreviousMonthTail.Grid {
			row := map[string]roster.Shift{}
			for date, token := range byDate {
				shift, ok := roster.CanonicalShift(token)
				if !ok {
					return nil, fmt.Errorf("previous_month_tail.grid[%s][%s]: unknown shift %q", id, date, token)
				}
				row[date] = shift
			}
			tail.Grid[domain.NewUserID(id)] = row
		}
	}

	return &roster.ScheduleInput{
		Engineers:             engineers,
		Year:                  year,
		Month:                 time.Month(month),
		Holidays:              holidays,
		ApprovedRequests:      requests,
		Coverage:              coverage,
		PreviousMonthSchedule: tail,
	}, nil
}

func shiftSet(names []string) map[roster.Shift]bool {
	if len(names) == 0 {
		return nil
	}
	set := map[roster.Shift]bool{}
	for _, n := range names {
		if shift, ok := roster.CanonicalShift(n); ok {
			set[shift] = true
		}
	}
	return set
}

func printSummary(out *roster.ScheduleOutput, cfg *config.Config) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Roster version: %s\n", out.Version)
	if out.Success {
		fmt.Println("Status: all constraints satisfied")
	} else {
		fmt.Printf("Status: %d violation(s) remain in best partial result\n", len(out.Violations))
	}
	fmt.Println(strings.Repeat("-", 60))

	assigned, unassigned := 0, 0
	for _, day := range out.Stats.PerDay {
		for shift, count := range day.Counts {
			if shift == roster.Unassigned {
				unassigned += count
			} else if shift.IsWork() {
				assigned += count
			}
		}
	}
	fmt.Printf("Assigned work shifts: %d\n", assigned)
	if unassigned > 0 {
		fmt.Printf("Unassigned slots: %d\n", unassigned)
	}

	if len(out.Violations) > 0 {
		fmt.Println("\nViolations:")
		for _, v := range out.Violations {
			loc := v.Date
			if v.EngineerID.String() != "" {
				loc = strings.TrimSpace(loc + " " + v.EngineerID.String())
			}
			fmt.Printf("  [%s] %s %s\n", v.Kind, loc, v.Message)
		}
	}

	if len(out.Options) > 0 {
		fmt.Println("\nRecovery options:")
		for _, opt := range out.Options {
			fmt.Printf("  (%s) %s — %s\n", opt.Severity, opt.Title, opt.Impact)
		}
	}

	if cfg.ReportPath != "" {
		if err := writeReport(cfg.ReportPath, out); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write report: %v\n", err)
		} else {
			fmt.Printf("\nFull report written to %s\n", cfg.ReportPath)
		}
	}
}

func writeReport(path string, out *roster.ScheduleOutput) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
