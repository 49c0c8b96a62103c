package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"alcyxob/loadx/internal/domain"
	"alcyxob/loadx/internal/progression"
	"alcyxob/loadx/internal/service"

	"github.com/urfave/cli/v2"
)

func newCLI() *cli.App {
	styleFlag := &cli.StringFlag{Name: "style", Aliases: []string{"s"}, Usage: "training style: " + strings.Join(domain.StyleKeys, ", "), Required: true}
	yesFlag := &cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "confirm the removal"}

	return &cli.App{
		Name:  "loadx",
		Usage: "strength-training log with prescribed progressions",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: ".", Usage: "config.yaml file or the directory holding it", EnvVars: []string{"LOADX_CONFIG"}},
			&cli.StringFlag{Name: "email", Usage: "account email", EnvVars: []string{"LOADX_EMAIL"}},
			&cli.StringFlag{Name: "password", Usage: "account password", EnvVars: []string{"LOADX_PASSWORD"}},
		},
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "create an athlete or coach account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "role", Value: "athlete", Usage: "athlete or coach"},
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "last-name", Usage: "coach only"},
					&cli.StringFlag{Name: "confirm-password", Usage: "coach only"},
					&cli.StringFlag{Name: "cref", Usage: "coach license id"},
				},
				Action: withApp(registerAction),
			},
			{
				Name:   "login",
				Usage:  "check credentials and show the account",
				Action: withAccount(loginAction),
			},
			{
				Name:  "photo",
				Usage: "set the profile photo",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true},
				},
				Action: withAccount(photoAction),
			},
			{
				Name:  "log",
				Usage: "exercise log of a training style",
				Subcommands: []*cli.Command{
					{
						Name:  "add",
						Flags: []cli.Flag{styleFlag, &cli.StringFlag{Name: "group", Aliases: []string{"g"}}, &cli.StringFlag{Name: "name", Aliases: []string{"n"}}, &cli.StringFlag{Name: "max", Aliases: []string{"m"}}},
						Action: withAccount(logAddAction),
					},
					{
						Name:   "list",
						Flags:  []cli.Flag{styleFlag, &cli.StringFlag{Name: "group", Aliases: []string{"g"}, Usage: "only this muscle group"}},
						Action: withAccount(logListAction),
					},
					{
						Name:   "update",
						Flags:  []cli.Flag{styleFlag, &cli.StringFlag{Name: "id", Required: true}, &cli.StringFlag{Name: "group"}, &cli.StringFlag{Name: "name"}, &cli.StringFlag{Name: "max"}},
						Action: withAccount(logUpdateAction),
					},
					{
						Name:   "delete",
						Flags:  []cli.Flag{styleFlag, &cli.StringFlag{Name: "id", Required: true}, yesFlag},
						Action: withAccount(logDeleteAction),
					},
					{
						Name:   "groups",
						Flags:  []cli.Flag{styleFlag},
						Action: withAccount(logGroupsAction),
					},
				},
			},
			{
				Name: "workout",
				Subcommands: []*cli.Command{
					{
						Name:   "finish",
						Usage:  "archive the current log as a session",
						Flags:  []cli.Flag{styleFlag},
						Action: withAccount(workoutFinishAction),
					},
				},
			},
			{
				Name:  "history",
				Usage: "archived sessions",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Flags:  []cli.Flag{styleFlag, &cli.StringFlag{Name: "date", Usage: "YYYY-MM-DD"}},
						Action: withAccount(historyListAction),
					},
					{
						Name:   "clear",
						Flags:  []cli.Flag{styleFlag, yesFlag},
						Action: withAccount(historyClearAction),
					},
					{
						Name:   "delete",
						Flags:  []cli.Flag{styleFlag, &cli.StringFlag{Name: "id", Required: true}, yesFlag},
						Action: withAccount(historyDeleteAction),
					},
				},
			},
			{
				Name:  "roster",
				Usage: "athletes linked to a coach",
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Flags:  []cli.Flag{&cli.StringFlag{Name: "name"}, &cli.StringFlag{Name: "serial"}},
						Action: withAccount(rosterAddAction),
					},
					{
						Name:   "list",
						Action: withAccount(rosterListAction),
					},
				},
			},
			{
				Name:  "guided",
				Usage: "coach-prescribed exercises",
				Subcommands: []*cli.Command{
					{
						Name:  "submit",
						Usage: "replace an athlete's guided exercises",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "serial", Usage: "athlete serial number"},
							&cli.StringFlag{Name: "program", Value: domain.ProgramLowVolume, Usage: "Low Volume or Modo Free"},
							&cli.StringFlag{Name: "sub-module", Required: true},
							&cli.StringSliceFlag{Name: "exercise", Aliases: []string{"x"}, Usage: "muscle group and name as \"Peito:Supino\", repeatable"},
						},
						Action: withAccount(guidedSubmitAction),
					},
					{
						Name:   "list",
						Action: withAccount(guidedListAction),
					},
					{
						Name:   "set-max",
						Flags:  []cli.Flag{&cli.StringFlag{Name: "id", Required: true}, &cli.StringFlag{Name: "max", Required: true}},
						Action: withAccount(guidedSetMaxAction),
					},
				},
			},
			{
				Name: "progression",
				Subcommands: []*cli.Command{
					{
						Name:  "show",
						Usage: "print the prescribed sets of a style",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "style", Aliases: []string{"s"}, Required: true},
							&cli.BoolFlag{Name: "first", Usage: "first exercise of the cycle"},
							&cli.StringFlag{Name: "max", Usage: "max weight in kg"},
						},
						Action: progressionShowAction,
					},
				},
			},
		},
	}
}

func registerAction(c *cli.Context, a *app) error {
	role := domain.Role(strings.ToUpper(c.String("role")))
	account, err := a.auth.Register(c.Context, service.RegisterInput{
		Role:            role,
		Name:            c.String("name"),
		LastName:        c.String("last-name"),
		Email:           c.String("email"),
		Password:        c.String("password"),
		ConfirmPassword: c.String("confirm-password"),
		Cref:            c.String("cref"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "registered %s as %s, serial number %s\n", account.Email, account.Role, account.SerialNumber)
	return nil
}

func loginAction(c *cli.Context, _ *app, account *domain.Account) error {
	printAccount(c.App.Writer, account)
	return nil
}

func photoAction(c *cli.Context, a *app, account *domain.Account) error {
	image, err := os.ReadFile(c.String("file"))
	if err != nil {
		return err
	}
	updated, err := a.auth.UpdatePhoto(c.Context, account, image)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "photo updated (%d bytes stored)\n", len(updated.Photo))
	return nil
}

func logAddAction(c *cli.Context, a *app, account *domain.Account) error {
	entry, err := a.exercises.AddEntry(c.Context, account.Email, c.String("style"), service.EntryInput{
		MuscleGroup: c.String("group"),
		Name:        c.String("name"),
		MaxWeight:   c.String("max"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "logged %s (%s) id %s\n", entry.Name, entry.MuscleGroup, entry.ID)
	return nil
}

func logListAction(c *cli.Context, a *app, account *domain.Account) error {
	style := c.String("style")
	cards, err := a.exercises.Cards(c.Context, account.Email, style)
	if err != nil {
		return err
	}
	group := c.String("group")
	w := c.App.Writer
	for _, card := range cards {
		if group != "" && card.Entry.MuscleGroup != group {
			continue
		}
		fmt.Fprintf(w, "%s  %s [%s] max %s  (%s %s)\n", card.Entry.ID, card.Entry.Name, card.Entry.MuscleGroup, orNoData(card.Entry.MaxWeight), card.Entry.Date, card.Entry.Time)
		printSetGroups(w, card.Groups())
	}
	if len(cards) == 0 {
		fmt.Fprintln(w, "no exercises logged")
	}
	return nil
}

func logUpdateAction(c *cli.Context, a *app, account *domain.Account) error {
	var patch service.EntryPatch
	if c.IsSet("group") {
		v := c.String("group")
		patch.MuscleGroup = &v
	}
	if c.IsSet("name") {
		v := c.String("name")
		patch.Name = &v
	}
	if c.IsSet("max") {
		v := c.String("max")
		patch.MaxWeight = &v
	}
	found, err := a.exercises.UpdateEntry(c.Context, account.Email, c.String("style"), c.String("id"), patch)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintln(c.App.Writer, "no exercise with this id")
		return nil
	}
	fmt.Fprintln(c.App.Writer, "exercise updated")
	return nil
}

func logDeleteAction(c *cli.Context, a *app, account *domain.Account) error {
	pending := a.exercises.RequestDelete(account.Email, c.String("style"), c.String("id"))
	if !c.Bool("yes") {
		fmt.Fprintf(c.App.Writer, "exercise %s would be deleted, run again with --yes to confirm\n", pending.TargetID)
		return a.exercises.CancelDelete(pending.Token)
	}
	found, err := a.exercises.ConfirmDelete(c.Context, pending.Token)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintln(c.App.Writer, "no exercise with this id")
		return nil
	}
	fmt.Fprintln(c.App.Writer, "exercise deleted")
	return nil
}

func logGroupsAction(c *cli.Context, a *app, account *domain.Account) error {
	groups, err := a.exercises.UniqueMuscleGroups(c.Context, account.Email, c.String("style"))
	if err != nil {
		return err
	}
	for _, g := range groups {
		fmt.Fprintln(c.App.Writer, g)
	}
	return nil
}

func workoutFinishAction(c *cli.Context, a *app, account *domain.Account) error {
	style := c.String("style")
	session, err := a.archive.FinishWorkout(c.Context, account.Email, style)
	if err != nil {
		return err
	}
	if session == nil {
		fmt.Fprintln(c.App.Writer, "nothing logged, no session archived")
		return nil
	}
	fmt.Fprintf(c.App.Writer, "archived %q with %d exercises on %s %s\n", session.Title(style), len(session.Exercises), session.Date, session.Time)
	return nil
}

func historyListAction(c *cli.Context, a *app, account *domain.Account) error {
	style := c.String("style")
	history, err := a.archive.History(c.Context, account.Email, style)
	if err != nil {
		return err
	}
	if date := c.String("date"); date != "" {
		if history, err = a.archive.FilterByCalendarDate(history, date); err != nil {
			return err
		}
	}

	w := c.App.Writer
	for _, session := range history {
		fmt.Fprintf(w, "%s  %s  %s %s\n", session.ID, session.Title(style), session.Date, session.Time)
		for _, card := range service.BuildCards(style, session.Exercises) {
			fmt.Fprintf(w, "  %s [%s] max %s\n", card.Entry.Name, card.Entry.MuscleGroup, orNoData(card.Entry.MaxWeight))
			printSetGroups(w, card.Groups())
		}
	}
	if len(history) == 0 {
		fmt.Fprintln(w, "no sessions")
	}
	return nil
}

func historyClearAction(c *cli.Context, a *app, account *domain.Account) error {
	style := c.String("style")
	pending := a.archive.RequestClearHistory(account.Email, style)
	if !c.Bool("yes") {
		history, err := a.archive.History(c.Context, account.Email, style)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "%d sessions would be removed, run again with --yes to confirm\n", len(history))
		return a.archive.Cancel(pending.Token)
	}
	if err := a.archive.Confirm(c.Context, pending.Token); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "history cleared")
	return nil
}

func historyDeleteAction(c *cli.Context, a *app, account *domain.Account) error {
	pending := a.archive.RequestDeleteSession(account.Email, c.String("style"), c.String("id"))
	if !c.Bool("yes") {
		fmt.Fprintf(c.App.Writer, "session %s would be removed, run again with --yes to confirm\n", pending.TargetID)
		return a.archive.Cancel(pending.Token)
	}
	if err := a.archive.Confirm(c.Context, pending.Token); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "session deleted")
	return nil
}

func rosterAddAction(c *cli.Context, a *app, account *domain.Account) error {
	roster, err := a.coach.AddRosterEntry(c.Context, account, c.String("name"), c.String("serial"))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "roster has %d athletes\n", len(roster))
	return nil
}

func rosterListAction(c *cli.Context, a *app, account *domain.Account) error {
	profiles, err := a.coach.RosterProfiles(c.Context, account)
	if err != nil {
		return err
	}
	for _, p := range profiles {
		email := "(no account)"
		if p.Account != nil {
			email = p.Account.Email
		}
		fmt.Fprintf(c.App.Writer, "%s  %s  %s\n", p.Entry.SerialNumber, p.Entry.DisplayName, email)
	}
	return nil
}

func guidedSubmitAction(c *cli.Context, a *app, account *domain.Account) error {
	draft, err := a.guided.NewDraft(account)
	if err != nil {
		return err
	}
	draft.SelectStyle(c.String("program"))
	draft.SelectSubModule(c.String("sub-module"))
	for _, arg := range c.StringSlice("exercise") {
		group, name, ok := strings.Cut(arg, ":")
		if !ok {
			return fmt.Errorf("exercise %q must look like \"Peito:Supino\"", arg)
		}
		draft.SelectMuscleGroup(group)
		if _, err := draft.AddExercise(name); err != nil {
			return err
		}
	}

	n := draft.Len()
	if err := a.guided.SubmitForSerial(c.Context, account, c.String("serial"), draft); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "assigned %d exercises\n", n)
	return nil
}

func guidedListAction(c *cli.Context, a *app, account *domain.Account) error {
	views, err := a.guided.Grouped(c.Context, account.Email)
	if err != nil {
		return err
	}
	w := c.App.Writer
	for _, v := range views {
		fmt.Fprintln(w, v.MuscleGroup)
		for _, card := range v.Cards {
			ex := card.Exercise
			fmt.Fprintf(w, "  %s  %s (%s / %s) max %s\n", ex.ID, ex.Name, ex.Style, ex.SubModule, orNoData(ex.MaxWeight))
			printSetGroups(w, progression.GroupByKind(card.Sets))
		}
	}
	if len(views) == 0 {
		fmt.Fprintln(w, "no guided exercises")
	}
	return nil
}

func guidedSetMaxAction(c *cli.Context, a *app, account *domain.Account) error {
	ex, err := a.guided.AthleteEditMaxWeight(c.Context, account.Email, c.String("id"), c.String("max"))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s max weight set to %s\n", ex.Name, ex.MaxWeight)
	return nil
}

func progressionShowAction(c *cli.Context) error {
	steps := progression.For(c.String("style"), c.Bool("first"))
	if len(steps) == 0 {
		fmt.Fprintln(c.App.Writer, "no prescribed scheme")
		return nil
	}
	printSetGroups(c.App.Writer, progression.GroupByKind(progression.Prescribe(c.String("max"), steps)))
	return nil
}

func printAccount(w io.Writer, a *domain.Account) {
	fmt.Fprintf(w, "%s <%s>\nrole: %s\nserial: %s\n", a.DisplayName(), a.Email, a.Role, a.SerialNumber)
	if a.Cref != "" {
		fmt.Fprintf(w, "cref: %s\n", a.Cref)
	}
}

func printSetGroups(w io.Writer, groups []progression.SetGroup) {
	for _, g := range groups {
		fmt.Fprintf(w, "    %s\n", g.Kind.Title())
		for _, s := range g.Sets {
			label := ""
			if s.Label != "" {
				label = " " + s.Label
			}
			fmt.Fprintf(w, "      %d. %s reps @ %s = %s%s\n", s.Index, s.RepRange, s.PercentageExpression, s.Load, label)
		}
	}
}

func orNoData(v string) string {
	if v == "" {
		return progression.NoData
	}
	return v
}
