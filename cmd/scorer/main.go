// scorer is a terminal scoring device. It opens a live session against
// the API server for one or more sibling matches, applies score edits
// optimistically, and keeps the local view in step through the Kafka
// change feed and the polling fallback.
//
// Commands on stdin:
//
//	score <hole> <player#> <gross> [dot ...]
//	press <hole> <A|B>
//	board
//	quit
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/dt604/bloodsheet-golf/internal/auth"
	"github.com/dt604/bloodsheet-golf/internal/client"
	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/dt604/bloodsheet-golf/internal/infra"
	"github.com/dt604/bloodsheet-golf/internal/scoring"
	livesync "github.com/dt604/bloodsheet-golf/internal/sync"
	"github.com/google/uuid"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if err := run(logger); err != nil {
		logger.Error("scorer failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.ScorerToken == "" {
		return fmt.Errorf("SCORER_TOKEN is required")
	}
	matchIDs, err := parseMatchIDs(cfg.ScorerMatchIDs)
	if err != nil {
		return err
	}
	userID, err := auth.SubjectFromToken(cfg.ScorerToken)
	if err != nil {
		return fmt.Errorf("read token subject: %w", err)
	}

	store := client.New(cfg.ScorerAPIURL, cfg.ScorerToken)
	consumer := infra.NewKafkaConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, "scorer-"+userID.String(), cfg.KafkaEnabled, logger)
	feed := infra.NewKafkaFeed(consumer, logger)
	defer feed.Close()

	session, err := livesync.Open(ctx, store, feed, userID, matchIDs, logger, livesync.Options{})
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer session.Close()

	go func() {
		for rc := range session.Events() {
			fmt.Printf("\n* hole %d scored for another player (gross %d)\n> ",
				rc.Score.HoleNumber, rc.Score.Gross)
		}
	}()

	printBoard(session)
	return repl(ctx, session, matchIDs[0])
}

func parseMatchIDs(raw string) ([]uuid.UUID, error) {
	if raw == "" {
		return nil, fmt.Errorf("SCORER_MATCH_IDS is required (comma separated)")
	}
	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad match id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// repl reads commands until EOF or quit. Edits go to the first match;
// sibling matches are view-only on this screen.
func repl(ctx context.Context, session *livesync.Session, matchID uuid.UUID) error {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}
		switch fields[0] {
		case "quit", "q":
			return nil
		case "board", "b":
			printBoard(session)
		case "score", "s":
			if err := cmdScore(session, matchID, fields[1:]); err != nil {
				fmt.Println("error:", err)
			}
		case "press", "p":
			if err := cmdPress(ctx, session, matchID, fields[1:]); err != nil {
				fmt.Println("error:", err)
			}
		default:
			fmt.Println("commands: score <hole> <player#> <gross> [dot ...], press <hole> <A|B>, board, quit")
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}

func cmdScore(session *livesync.Session, matchID uuid.UUID, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: score <hole> <player#> <gross> [dot ...]")
	}
	hole, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad hole %q", args[0])
	}
	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad player number %q", args[1])
	}
	gross, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("bad gross %q", args[2])
	}
	var dots []domain.TrashTag
	for _, d := range args[3:] {
		dots = append(dots, domain.TrashTag(d))
	}

	card, err := session.Card(matchID)
	if err != nil {
		return err
	}
	if idx < 1 || idx > len(card.Players) {
		return fmt.Errorf("player number out of range, roster has %d", len(card.Players))
	}
	player := card.Players[idx-1]
	if err := session.RecordScore(matchID, hole, player.UserID, gross, dots); err != nil {
		return err
	}
	fmt.Printf("hole %d: %s gross %d\n", hole, player.DisplayName, gross)
	return nil
}

func cmdPress(ctx context.Context, session *livesync.Session, matchID uuid.UUID, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: press <hole> <A|B>")
	}
	hole, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad hole %q", args[0])
	}
	team := domain.Team(strings.ToUpper(args[1]))
	if team != domain.TeamA && team != domain.TeamB {
		return fmt.Errorf("team must be A or B")
	}
	press, err := session.OpenPress(ctx, matchID, hole, team)
	if err != nil {
		return err
	}
	fmt.Printf("press opened from hole %d by team %s\n", press.StartHole, press.PressedByTeam)
	return nil
}

func printBoard(session *livesync.Session) {
	for _, card := range session.Cards() {
		fmt.Printf("\n%s  %s  wager %s\n", card.Course.Name, card.Match.Format, cents(card.Match.WagerAmount))
		for i, p := range card.Players {
			fmt.Printf("  %d. %s (team %s, hcp %.1f)\n", i+1, p.DisplayName, p.Team, p.EffectiveHandicap())
		}
		if card.Match.Format == domain.FormatSkins {
			continue
		}
		for _, seg := range []scoring.Segment{scoring.Front, scoring.Back, scoring.Overall} {
			st := card.SegmentStatus(seg)
			fmt.Printf("  %-8s %s\n", seg.Name, st.Label())
		}
		for _, win := range card.PressWindows() {
			fmt.Printf("  %s: %s\n", win.Name(), win.Label())
		}
	}
	fmt.Println()
}

func cents(amount int64) string {
	return fmt.Sprintf("$%d.%02d", amount/100, amount%100)
}
