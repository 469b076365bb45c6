package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterkuimelis/setrogue/internal/config"
	"github.com/peterkuimelis/setrogue/internal/enemy"
	"github.com/peterkuimelis/setrogue/internal/game"
	"github.com/peterkuimelis/setrogue/internal/log"
	srnet "github.com/peterkuimelis/setrogue/internal/net"
	"github.com/peterkuimelis/setrogue/internal/round"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cmd := os.Args[1]
	switch cmd {
	case "simulate":
		runSimulate(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "join":
		runJoin(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  setrogue simulate [--enemy NAME] [--tier T] [--seed N] [--rounds K] [--think MS] [--weapons IDS] [--catalog FILE]")
	fmt.Println("  setrogue serve [--addr ADDR] [--catalog FILE]")
	fmt.Println("  setrogue join [--addr ADDR] [--enemy NAME] [--tier T] [--seed N] [--weapons IDS]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  simulate  Play rounds with a bot and print the event log")
	fmt.Println("  serve     Host rounds for TCP clients")
	fmt.Println("  join      Connect to a server and play a round in the terminal")
}

// loadCatalog returns nil when path is empty.
func loadCatalog(path string) *config.Catalog {
	if path == "" {
		return nil
	}
	c, err := config.Load(path)
	if err != nil {
		fail(fmt.Errorf("load catalog: %w", err))
	}
	return c
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	enemyName := fs.String("enemy", "", "enemy to fight (empty picks one at random)")
	tier := fs.Int("tier", 0, "tier for random enemies, 0 for any")
	seed := fs.Int64("seed", 0, "random seed, 0 seeds from the clock")
	rounds := fs.Int("rounds", 1, "number of rounds to play")
	think := fs.Float64("think", 1500, "bot think time per match in ms")
	weapons := fs.String("weapons", "", "comma-separated weapon ids")
	catalogFile := fs.String("catalog", "catalog.yaml", "path to catalog file (empty for built-ins only)")
	quiet := fs.Bool("quiet", false, "print only round summaries")
	fs.Parse(args)

	catalog := loadCatalog(*catalogFile)
	reg, err := config.NewRegistry(catalog)
	if err != nil {
		fail(err)
	}
	settings := config.DefaultRound()
	var loadout []game.Weapon
	if catalog != nil {
		settings = catalog.Round
		if ids := splitIDs(*weapons); len(ids) > 0 {
			if loadout, err = catalog.WeaponsByID(ids); err != nil {
				fail(err)
			}
		}
	}
	if *seed != 0 {
		settings.Seed = *seed
	}
	rng := game.NewRNG(settings.Seed)

	wins := 0
	for i := 1; i <= *rounds; i++ {
		e, err := pickEnemy(reg, *enemyName, *tier, rng)
		if err != nil {
			fail(err)
		}
		var logger log.EventLogger = log.NewMemoryLogger()
		if !*quiet {
			logger = log.NewTextLogger(os.Stdout)
		}
		r, err := round.New(round.Config{
			Settings: settings,
			Enemy:    e,
			Weapons:  loadout,
			Number:   i,
			RNG:      rng,
			Logger:   logger,
		})
		if err != nil {
			fail(err)
		}
		n, err := round.Bot{ThinkMs: *think}.Play(r)
		if err != nil {
			fail(err)
		}
		if r.Status() == round.StatusWon {
			wins++
		}
		fmt.Printf("Round %d vs %s: %s (%s) after %d matches, score %.1f, %.1fs\n",
			i, e.Name, r.Status(), r.Reason(), n, r.Score(), r.ElapsedMs()/1000)
	}
	fmt.Printf("Won %d of %d rounds\n", wins, *rounds)
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":9000", "TCP address to listen on")
	catalogFile := fs.String("catalog", "catalog.yaml", "path to catalog file (empty for built-ins only)")
	fs.Parse(args)

	lobby, err := srnet.NewLobby(loadCatalog(*catalogFile))
	if err != nil {
		fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &srnet.Server{Addr: *addr, Lobby: lobby}
	if err := srv.Run(ctx); err != nil {
		fail(err)
	}
	slog.Info("shutting down")
}

func runJoin(args []string) {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	enemyName := fs.String("enemy", "", "enemy to fight (empty picks one at random)")
	tier := fs.Int("tier", 0, "tier for random enemies, 0 for any")
	seed := fs.Int64("seed", 0, "random seed, 0 lets the server choose")
	weapons := fs.String("weapons", "", "comma-separated weapon ids")
	fs.Parse(args)

	start := srnet.ClientMessage{
		Enemy:   *enemyName,
		Tier:    *tier,
		Seed:    *seed,
		Weapons: splitIDs(*weapons),
	}
	if err := srnet.Connect(context.Background(), *addr, start); err != nil {
		fail(err)
	}
}

func pickEnemy(reg *enemy.Registry, name string, tier int, rng game.RNG) (*enemy.Instance, error) {
	if name == "" {
		return reg.Random(tier, rng)
	}
	return reg.Create(name)
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
