package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-rando/internal/engine/spoiler"
	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/logic"
	"github.com/KirkDiggler/rpg-rando/internal/orchestrators/generation"
	"github.com/KirkDiggler/rpg-rando/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-rando/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-rando/internal/redis"
	"github.com/KirkDiggler/rpg-rando/internal/repositories/results"
)

var (
	worldPath    string
	settingsPath string
	players      int
	seed         int64
	showSpoiler  bool
	redisAddr    string
	maxAttempts  int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a rando locally",
	Long: `Generate a rando from a world and a settings file without a server.

  rando generate --settings data/settings/solo.yaml --spoiler
  rando generate --settings data/settings/solo.yaml --players 3 --seed 42`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&worldPath, "world", "data/worlds/hallownest.yaml", "World definition file")
	generateCmd.Flags().StringVar(&settingsPath, "settings", "", "Settings file")
	generateCmd.Flags().IntVar(&players, "players", 0, "Copy a single settings block to this many players")
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "Override the first player's seed")
	generateCmd.Flags().BoolVar(&showSpoiler, "spoiler", false, "Print the spoiler log of every player")
	generateCmd.Flags().StringVar(&redisAddr, "redis", "", "Store the results in this Redis instance")
	generateCmd.Flags().IntVar(&maxAttempts, "max-attempts", generation.DefaultMaxAttempts, "Attempt budget")
	_ = generateCmd.MarkFlagRequired("settings")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	world, err := logic.LoadWorld(worldPath)
	if err != nil {
		return err
	}

	settings, err := logic.LoadSettings(settingsPath)
	if err != nil {
		return err
	}
	settings, err = expandPlayers(settings, players)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		settings[0].Seed = seed
	}

	cfg := &generation.Config{
		World:       world,
		EventBus:    events.NewBus(),
		IDGenerator: idgen.NewUUID("rando"),
		Clock:       clock.New(),
		MaxAttempts: maxAttempts,
	}
	if redisAddr != "" {
		client, err := redis.NewClient(redisAddr, nil)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		cfg.ResultsRepo, err = results.NewRedisRepository(&results.Config{Client: client})
		if err != nil {
			return err
		}
	}

	svc, err := generation.NewOrchestrator(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	started := time.Now()
	out, err := svc.Generate(ctx, &generation.GenerateInput{Settings: settings})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	color.Green.Printf("Generated %s in %d attempt(s), %s\n", out.RandoID, out.Attempts, time.Since(started).Round(time.Millisecond))
	for _, result := range out.Results {
		fmt.Printf("  %s starts at %s with %d start item(s)\n",
			result.Nickname(result.PlayerID), result.StartName, len(result.StartItems))
	}

	if showSpoiler {
		for _, result := range out.Results {
			text := result.Spoiler
			if text == "" {
				text = spoiler.Build(world, result)
			}
			printSpoiler(text)
		}
	}

	return nil
}

// expandPlayers copies a single settings block to n players. Only the first
// player's seed is used so copies keep theirs.
func expandPlayers(settings []rando.Settings, n int) ([]rando.Settings, error) {
	if n <= 0 || n == len(settings) {
		return settings, nil
	}
	if len(settings) != 1 {
		return nil, fmt.Errorf("--players needs a single settings block, file has %d", len(settings))
	}

	out := make([]rando.Settings, n)
	for i := range out {
		out[i] = settings[0]
	}
	return out, nil
}

func printSpoiler(text string) {
	headers := []string{
		spoiler.HeaderSettings,
		spoiler.HeaderTransitions,
		spoiler.HeaderProgression,
		spoiler.HeaderItems,
		spoiler.HeaderShops,
	}

	fmt.Println()
	for _, line := range strings.Split(text, "\n") {
		switch {
		case slices.Contains(headers, line):
			color.Bold.Println(color.Cyan.Sprint(line))
		case strings.HasPrefix(line, "("):
			color.Yellow.Println(line)
		case strings.HasSuffix(line, ":") && !strings.HasPrefix(line, " "):
			color.Magenta.Println(line)
		default:
			fmt.Println(line)
		}
	}
}
