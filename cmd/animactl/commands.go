package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"anima/config"
	"anima/db"
	"anima/internal/logger"
	"anima/models"
	"anima/progression"
	"anima/services"
	"anima/utils"

	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	game       *services.GameService
	auth       *services.AuthService
	store      services.UserStore
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "animactl",
		Short:         "Operator tool for the Anima habit backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "config/config.yml", "Path to config file")

	root.AddCommand(
		newCatalogCmd(),
		a.newCreateUserCmd(),
		a.newShowCmd(),
		a.newResetDayCmd(),
		a.newDecayCmd(),
	)
	return root
}

// open connects to Mongo with the server's config and wires the services.
func (a *app) open(ctx context.Context) (func(), error) {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return nil, err
	}
	if _, err := logger.New("warn"); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if cfg.JWT.Secret != "" {
		utils.SetJWTSecret(cfg.JWT.Secret)
	}

	if err := db.ConnectMongoDB(ctx, cfg.Database.URI); err != nil {
		return nil, err
	}
	store := services.NewMongoStore(db.MongoDatabase)
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = db.DisconnectMongoDB(context.Background())
		return nil, err
	}

	a.store = store
	a.game = services.NewGameService(store, services.WithLocation(loc), services.WithLogger(logger.Log))
	a.auth = services.NewAuthService(store, a.game)
	return func() { _ = db.DisconnectMongoDB(context.Background()) }, nil
}

func (a *app) lookup(ctx context.Context, email string) (models.User, error) {
	if email == "" {
		return models.User{}, fmt.Errorf("--email is required")
	}
	return a.store.FindByEmail(ctx, strings.ToLower(email))
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List shop items and prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			printCatalog(cmd.OutOrStdout())
			return nil
		},
	}
}

func printCatalog(out io.Writer) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE")
	for _, item := range progression.Catalog() {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%d\n", item.ID, item.Emoji, item.Name, item.Category, item.Price)
	}
	w.Flush()
}

func (a *app) newCreateUserCmd() *cobra.Command {
	var reg services.Registration
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Register a user with a starter pet",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			closeFn, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			sess, err := a.auth.Register(ctx, reg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) with a %s pet\n",
				sess.User.Username, sess.User.ID.Hex(), sess.User.Pet.Species)
			return nil
		},
	}
	cmd.Flags().StringVar(&reg.Email, "email", "", "Email (required)")
	cmd.Flags().StringVar(&reg.Password, "password", "", "Password, at least 6 characters (required)")
	cmd.Flags().StringVar(&reg.Username, "username", "", "Display name (defaults to the email's local part)")
	cmd.Flags().StringVar(&reg.Species, "species", "EMBER", "EMBER, AQUA or TERRA")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) newShowCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a user's pet, coins and habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			closeFn, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			user, err := a.lookup(ctx, email)
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), user)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "User email")
	return cmd
}

func printUser(out io.Writer, u models.User) {
	p := u.Pet
	fmt.Fprintf(out, "%s <%s>  coins=%d\n", u.Username, u.Email, u.Coins)
	fmt.Fprintf(out, "pet %s: stage %d (%s)  xp=%d  hp=%d  STR=%d INT=%d SPI=%d\n",
		p.Nickname, p.Stage, p.EvolutionPath, p.TotalXP, p.HP, p.Stats.Str, p.Stats.Int, p.Stats.Spi)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "HABIT\tSTAT\tDIFF\tSTREAK\tTODAY")
	for _, h := range u.Habits {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%t\n", h.Name, h.StatCategory, h.Difficulty, h.Streak, h.IsCompletedToday)
	}
	w.Flush()
}

func (a *app) newResetDayCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "reset-day",
		Short: "Run the daily rollover for a user now",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			closeFn, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			user, err := a.lookup(ctx, email)
			if err != nil {
				return err
			}
			res, err := a.game.RunDailyReset(ctx, user.ID)
			if err != nil {
				return err
			}
			if !res.Applied {
				fmt.Fprintln(cmd.OutOrStdout(), "already rolled over today")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled over: %d completions cleared, %d streaks broken, freeze used: %t\n",
				res.CompletionsCleared, res.StreaksBroken, res.FreezeUsed)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "User email")
	return cmd
}

func (a *app) newDecayCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "decay",
		Short: "Apply the rollover and inactivity decay owed by a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			closeFn, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			user, err := a.lookup(ctx, email)
			if err != nil {
				return err
			}
			view, err := a.game.ApplyDecay(ctx, user.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "hp %d -> %d\n", user.Pet.HP, view.Pet.HP)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "User email")
	return cmd
}
