// Command competition works with competition data offline: deriving teams and
// standings from exported files, converting roster spreadsheets and seeding
// the participant directory.
package main

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	competitiondomain "github.com/Black-And-White-Club/tripquest/app/modules/competition/domain"
	competitionimport "github.com/Black-And-White-Club/tripquest/app/modules/competition/infrastructure/importer"
	competitiondb "github.com/Black-And-White-Club/tripquest/app/modules/competition/infrastructure/repositories"
	"github.com/Black-And-White-Club/tripquest/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	rosterFlag := &cli.StringFlag{Name: "roster", Usage: "roster text file", Required: true}
	directoryFlag := &cli.StringFlag{Name: "directory", Usage: "participant directory JSON file", Required: true}
	documentFlag := &cli.StringFlag{Name: "document", Usage: "competition document JSON file"}
	configFlag := &cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"}

	return &cli.App{
		Name:   "competition",
		Usage:  "offline competition tools",
		Writer: out,
		Commands: []*cli.Command{
			{
				Name:  "teams",
				Usage: "derive teams from a roster and a directory",
				Flags: []cli.Flag{rosterFlag, directoryFlag, documentFlag},
				Action: func(c *cli.Context) error {
					in, err := loadInputs(c)
					if err != nil {
						return err
					}
					d := competitiondomain.DeriveTeamsReport(in.roster, in.directory, in.doc.Teams)
					printTeams(c.App.Writer, d)
					return nil
				},
			},
			{
				Name:  "leaderboard",
				Usage: "rank teams by approved stars",
				Flags: []cli.Flag{rosterFlag, directoryFlag, documentFlag,
					&cli.IntFlag{Name: "top", Usage: "only show the first n teams"},
				},
				Action: func(c *cli.Context) error {
					in, err := loadInputs(c)
					if err != nil {
						return err
					}
					teams := competitiondomain.DeriveTeams(in.roster, in.directory, in.doc.Teams)
					rows := competitiondomain.Leaderboard(in.doc, teams)
					if n := c.Int("top"); n > 0 {
						rows = competitiondomain.Podium(rows, n)
					}
					printLeaderboard(c.App.Writer, rows)
					return nil
				},
			},
			{
				Name:      "import-roster",
				Usage:     "convert an XLSX or CSV roster sheet to roster text",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "write the roster text here instead of stdout"},
					&cli.BoolFlag{Name: "save", Usage: "also store the roster page in the database"},
					configFlag,
				},
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						return fmt.Errorf("missing roster file argument")
					}
					data, err := os.ReadFile(path)
					if err != nil {
						return err
					}
					text, err := competitionimport.RosterText(filepath.Base(path), data)
					if err != nil {
						return err
					}

					if o := c.String("out"); o != "" {
						if err := os.WriteFile(o, []byte(text+"\n"), 0o644); err != nil {
							return err
						}
					} else {
						fmt.Fprintln(c.App.Writer, text)
					}

					if !c.Bool("save") {
						return nil
					}
					return withRepository(c, func(repo competitiondb.Repository, cfg *config.Config) error {
						if err := repo.SavePage(c.Context, nil, cfg.Competition.RosterPage, text); err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "saved roster page %q\n", cfg.Competition.RosterPage)
						return nil
					})
				},
			},
			{
				Name:      "seed-directory",
				Usage:     "upsert participants from a directory JSON file",
				ArgsUsage: "<file>",
				Flags:     []cli.Flag{configFlag},
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						return fmt.Errorf("missing directory file argument")
					}
					data, err := os.ReadFile(path)
					if err != nil {
						return err
					}
					participants, err := parseDirectory(data)
					if err != nil {
						return err
					}

					rows := make([]competitiondb.Participant, len(participants))
					for i, p := range participants {
						rows[i] = competitiondb.Participant{ID: p.ID, FullName: p.FullName, DisplayName: p.DisplayName}
					}
					return withRepository(c, func(repo competitiondb.Repository, _ *config.Config) error {
						if err := repo.UpsertParticipants(c.Context, nil, rows); err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "upserted %d participants\n", len(rows))
						return nil
					})
				},
			},
		},
	}
}

type inputs struct {
	roster    string
	directory []competitiondomain.Participant
	doc       competitiondomain.Document
}

func loadInputs(c *cli.Context) (inputs, error) {
	var in inputs

	roster, err := os.ReadFile(c.String("roster"))
	if err != nil {
		return in, err
	}
	in.roster = string(roster)

	dir, err := os.ReadFile(c.String("directory"))
	if err != nil {
		return in, err
	}
	if in.directory, err = parseDirectory(dir); err != nil {
		return in, err
	}

	in.doc = competitiondomain.EmptyDocument()
	if p := c.String("document"); p != "" {
		text, err := os.ReadFile(p)
		if err != nil {
			return in, err
		}
		decoded := competitiondomain.DecodeDetailed(string(text))
		if decoded.DroppedRows > 0 {
			fmt.Fprintf(c.App.ErrWriter, "warning: dropped %d invalid rows from %s\n", decoded.DroppedRows, p)
		}
		in.doc = decoded.Document
	}
	return in, nil
}

func withRepository(c *cli.Context, fn func(competitiondb.Repository, *config.Config) error) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	defer db.Close()

	return fn(competitiondb.NewRepository(db), cfg)
}

func printTeams(w io.Writer, d competitiondomain.Derivation) {
	for _, t := range d.Teams {
		leader := "-"
		if t.LeaderID != nil {
			leader = *t.LeaderID
		}
		fmt.Fprintf(w, "%s\t%s\tleader=%s\tmembers=%s\n", t.ID, t.Name, leader, strings.Join(t.MemberIDs, ","))
	}
	for _, u := range d.Unresolved {
		fmt.Fprintf(w, "unresolved\t%s\t%q\n", u.TeamID, u.RawName)
	}
}

func printLeaderboard(w io.Writer, rows []competitiondomain.LeaderboardRow) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tTEAM\tSTARS\tAPPROVED")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", r.Rank, r.Team.Name, r.Stars, r.ApprovedCount)
	}
	tw.Flush()
}
