package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/Garsondee/trail-arena/internal/arena"
)

type runStats struct {
	runIndex int
	seed     int64

	outcome     arena.Outcome
	description string
	ticks       int
	scores      [2]int
	lengths     [2]int

	firstEatTick  int
	firstBumpTick int

	eaten       int
	foreignHits int
	selfHits    int
	markerBumps int
	starved     int
	noSpace     int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var modeName string
	var speedName string
	var size string

	flag.IntVar(&runs, "runs", 10, "number of headless matches")
	flag.IntVar(&ticks, "ticks", 20000, "tick cap per match")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&modeName, "mode", "standard", "game mode: standard, infinite or starve")
	flag.StringVar(&speedName, "speed", "medium", "speed tier: slow, medium or fast")
	flag.StringVar(&size, "board", "1000x900", "board size WIDTHxHEIGHT")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		os.Exit(2)
	}
	mode, err := arena.ParseMode(modeName)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}
	speed, err := arena.ParseSpeed(speedName)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}
	var w, h int
	if _, err := fmt.Sscanf(size, "%dx%d", &w, &h); err != nil {
		fmt.Printf("error: -board %q: %v\n", size, err)
		os.Exit(2)
	}

	fmt.Printf("=== Headless Match Report ===\n")
	fmt.Printf("mode=%s speed=%s board=%dx%d runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		mode, speed, w, h, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs, err := runBotMatch(i+1, seed, ticks,
			arena.WithBoard(w, h), arena.WithMode(mode), arena.WithSpeed(speed))
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			os.Exit(1)
		}
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(all)
}

// runBotMatch plays one bot-vs-bot match until it finishes or hits the tick cap.
func runBotMatch(runIndex int, seed int64, ticks int, opts ...arena.SimOption) (runStats, error) {
	opts = append(opts, arena.WithSeed(seed), arena.WithBots())
	s, err := arena.NewSim(opts...)
	if err != nil {
		return runStats{}, err
	}
	s.RunUntil(func(s *arena.Sim) bool { return s.Match.Finished() }, ticks)
	return collectStats(runIndex, seed, s.Match), nil
}

func collectStats(runIndex int, seed int64, m *arena.Match) runStats {
	ml := m.Log()
	r := arena.DetermineOutcome(m)
	return runStats{
		runIndex:      runIndex,
		seed:          seed,
		outcome:       r.Outcome,
		description:   r.Description,
		ticks:         m.Tick(),
		scores:        r.Scores,
		lengths:       r.Lengths,
		firstEatTick:  firstTick(ml, arena.CatPickup, arena.KeyEaten),
		firstBumpTick: firstTick(ml, arena.CatCollision, arena.KeyMarker),
		eaten:         ml.CountCategory(arena.CatPickup, arena.KeyEaten),
		foreignHits:   ml.CountCategory(arena.CatCollision, arena.KeyForeign),
		selfHits:      ml.CountCategory(arena.CatCollision, arena.KeySelf),
		markerBumps:   ml.CountCategory(arena.CatCollision, arena.KeyMarker),
		starved:       ml.CountCategory(arena.CatLength, arena.KeyStarved),
		noSpace:       ml.CountCategory(arena.CatPickup, arena.KeyNoSpace),
	}
}

func firstTick(ml *arena.MatchLog, category, key string) int {
	if es := ml.Filter(category, key); len(es) > 0 {
		return es[0].Tick
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result=%s reason=%s ticks=%d\n", rs.outcome, rs.description, rs.ticks)
	fmt.Printf("scores: p1=%d p2=%d lengths: p1=%d p2=%d\n",
		rs.scores[0], rs.scores[1], rs.lengths[0], rs.lengths[1])
	fmt.Printf("phase_markers: first_eat=%d first_marker_bump=%d\n", rs.firstEatTick, rs.firstBumpTick)
	fmt.Printf("event_totals: eaten=%d foreign=%d self=%d marker=%d starved=%d no_space=%d\n",
		rs.eaten, rs.foreignHits, rs.selfHits, rs.markerBumps, rs.starved, rs.noSpace)
	if timedOut(rs) {
		fmt.Println("note: tick cap reached before a result")
	}
	fmt.Println()
}

// outcomeCounts tallies results by outcome.
func outcomeCounts(all []runStats) map[arena.Outcome]int {
	counts := map[arena.Outcome]int{}
	for _, rs := range all {
		counts[rs.outcome]++
	}
	return counts
}

func timedOut(rs runStats) bool {
	return rs.outcome == arena.OutcomeOngoing
}

// detectImbalance flags a player-slot bias: one side winning at least twice
// as often as the other over enough decided matches.
func detectImbalance(counts map[arena.Outcome]int) (bool, string) {
	p1, p2 := counts[arena.OutcomePlayer1], counts[arena.OutcomePlayer2]
	if p1+p2 < 6 {
		return false, fmt.Sprintf("too_few_decided=%d", p1+p2)
	}
	switch {
	case p1 >= 2*p2:
		return true, fmt.Sprintf("player1_favoured=%d:%d", p1, p2)
	case p2 >= 2*p1:
		return true, fmt.Sprintf("player2_favoured=%d:%d", p1, p2)
	}
	return false, fmt.Sprintf("balanced=%d:%d", p1, p2)
}

func median(vals []int) int {
	if len(vals) == 0 {
		return -1
	}
	s := append([]int(nil), vals...)
	sort.Ints(s)
	return s[len(s)/2]
}

func printAggregate(all []runStats) {
	counts := outcomeCounts(all)
	totalEaten := 0
	totalForeign := 0
	totalSelf := 0
	totalMarker := 0
	totalStarved := 0
	finishedTicks := make([]int, 0, len(all))
	eatTicks := make([]int, 0, len(all))
	sumTicks := 0

	for _, rs := range all {
		totalEaten += rs.eaten
		totalForeign += rs.foreignHits
		totalSelf += rs.selfHits
		totalMarker += rs.markerBumps
		totalStarved += rs.starved
		if !timedOut(rs) {
			finishedTicks = append(finishedTicks, rs.ticks)
			sumTicks += rs.ticks
		}
		if rs.firstEatTick >= 0 {
			eatTicks = append(eatTicks, rs.firstEatTick)
		}
	}

	fmt.Printf("=== Aggregate ===\n")
	fmt.Printf("outcomes: player1=%d player2=%d draw=%d timeout=%d\n",
		counts[arena.OutcomePlayer1], counts[arena.OutcomePlayer2], counts[arena.OutcomeDraw], counts[arena.OutcomeOngoing])
	if n := len(finishedTicks); n > 0 {
		fmt.Printf("match_length: avg=%.1f median=%d\n", float64(sumTicks)/float64(n), median(finishedTicks))
	}
	fmt.Printf("median_first_eat=%d\n", median(eatTicks))
	fmt.Printf("event_totals: eaten=%d foreign=%d self=%d marker=%d starved=%d\n",
		totalEaten, totalForeign, totalSelf, totalMarker, totalStarved)
	if lopsided, reason := detectImbalance(counts); lopsided {
		fmt.Printf("imbalance: %s\n", reason)
	} else {
		fmt.Printf("imbalance: none (%s)\n", reason)
	}
}
