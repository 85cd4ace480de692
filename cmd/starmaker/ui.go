package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"starmaker/internal/balance"
	"starmaker/internal/game"

	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgMagenta, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printError(msg string) {
	danger.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptOptional(label string) (string, error) {
	fmt.Printf("%s: ", label)
	text, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = struct{}{}
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if _, ok := normalized[text]; ok {
			return text, nil
		}
		printWarn("Invalid option. Please pick one of the listed values.")
	}
}

func promptInt(label string, min int) (int, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(text)
		if err != nil {
			printWarn("Enter a whole number.")
			continue
		}
		if v < min {
			printWarn(fmt.Sprintf("Value must be >= %d", min))
			continue
		}
		return v, nil
	}
}

func decodeInto[T any](in any) (T, error) {
	var out T
	raw, err := json.Marshal(in)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

func renderSummary(raw map[string]any) error {
	s, err := decodeInto[game.CareerSummary](raw)
	if err != nil {
		return err
	}
	accent.Printf("\n== %s (%s) ==\n", s.StageName, s.Genre)
	fmt.Printf("Level:      %d\n", s.Level)
	fmt.Printf("Money:      %s\n", s.Money)
	fmt.Printf("Energy:     %d/%d\n", s.Energy, s.MaxEnergy)
	fmt.Printf("Prestige:   %d\n", s.Prestige)
	fmt.Printf("Reputation: %d\n", s.Reputation)
	fmt.Printf("Fans:       %s\n", s.Fans)
	fmt.Printf("Songs:      %d\n", s.Songs)
	fmt.Printf("Team:       %d\n", s.TeamSize)
	fmt.Printf("Awards:     %d\n", s.Awards)
	fmt.Printf("Retirement: %.0f%%\n", s.RetirementProgress*100)
	fmt.Println()
	return nil
}

func renderSnapshot(raw map[string]any) error {
	state, err := decodeInto[game.GameState](raw)
	if err != nil {
		return err
	}
	accent.Printf("\n== %s aka %s ==\n", state.Artist.Name, state.Artist.StageName)
	fmt.Printf("Money:          %s\n", game.FormatMoney(state.Artist.Money))
	fmt.Printf("Energy:         %d/%d\n", state.Artist.Energy, state.Artist.MaxEnergy)
	fmt.Printf("Level:          %d (%d xp)\n", state.Artist.Level, state.Artist.Experience)
	fmt.Printf("Prestige:       %d\n", state.Artist.Prestige)
	fmt.Printf("Reputation:     %d\n", state.Artist.Reputation)
	fmt.Printf("Studio:         tier %d, fidelity %d\n",
		state.Studio.Quality, state.Studio.SoundFidelity)

	total, hardcore, casual, haters := game.FanBuckets(&state)
	fmt.Printf("Fans:           %s (hardcore %s, casual %s, haters %s)\n",
		game.FormatCompact(int64(total)),
		game.FormatCompact(int64(hardcore)),
		game.FormatCompact(int64(casual)),
		game.FormatCompact(int64(haters)),
	)
	fmt.Printf("StarGram:       %s followers\n", game.FormatCompact(int64(state.SocialMedia.StarGram.Followers)))
	fmt.Printf("TwittArt:       %s followers\n", game.FormatCompact(int64(state.SocialMedia.TwittArt.Followers)))

	fmt.Println()
	accent.Println("Team")
	if game.TeamSize(&state) == 0 {
		printInfo("No team hired yet.")
	} else {
		fmt.Printf("%-14s %-18s %8s %10s\n", "ROLE", "NAME", "SKILL", "SALARY")
		for _, role := range game.TeamRoles {
			if m := state.Team.Member(role); m != nil {
				fmt.Printf("%-14s %-18s %8d %10s\n", role, truncate(m.Name, 18), m.Skill, game.FormatMoney(m.Salary))
			}
		}
	}

	fmt.Println()
	accent.Println("Discography")
	if len(state.Songs) == 0 {
		printInfo("No songs recorded yet.")
	} else {
		fmt.Printf("%-26s %-8s %8s %12s %12s\n", "TITLE", "TYPE", "QUALITY", "STREAMS", "EARNINGS")
		for _, song := range state.Songs {
			fmt.Printf("%-26s %-8s %8d %12s %12s\n",
				truncate(song.Title, 26),
				song.Type,
				song.Quality,
				game.FormatCompact(song.Streams),
				game.FormatMoney(song.Earnings),
			)
		}
	}

	if len(state.Tours) > 0 {
		fmt.Println()
		accent.Println("Shows Played")
		fmt.Printf("%-22s %-10s %12s %10s %-16s\n", "VENUE", "CITY", "REVENUE", "NEW FANS", "WHEN")
		for _, t := range state.Tours {
			fmt.Printf("%-22s %-10s %12s %10d %-16s\n",
				truncate(t.VenueName, 22), t.City, game.FormatMoney(t.Revenue), t.NewFans,
				formatWhen(t.PerformedAt))
		}
	}

	if len(state.Awards) > 0 {
		fmt.Println()
		accent.Println("Awards")
		for _, a := range state.Awards {
			fmt.Printf("  %s (%d)\n", a.Name, a.Year)
		}
	}
	fmt.Println()
	return nil
}

func renderCatalog(raw map[string]any) error {
	sheet, err := decodeInto[balance.Sheet](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== TEAM CANDIDATES ==")
	fmt.Printf("%-14s %-18s %-14s %10s\n", "ID", "NAME", "ROLE", "SALARY")
	for _, c := range sheet.TeamCandidates {
		fmt.Printf("%-14s %-18s %-14s %10s\n", c.ID, truncate(c.Name, 18), c.Role, game.FormatMoney(c.Salary))
	}

	accent.Println("\n== EQUIPMENT ==")
	fmt.Printf("%-14s %-22s %10s %8s\n", "ID", "NAME", "COST", "QUALITY")
	for _, e := range sheet.Equipment {
		fmt.Printf("%-14s %-22s %10s %8d\n", e.ID, truncate(e.Name, 22), game.FormatMoney(e.Cost), e.Quality)
	}

	accent.Println("\n== STUDIO ROOMS ==")
	fmt.Printf("%-14s %-22s %10s %8s\n", "ID", "NAME", "COST", "BOOST")
	for _, r := range sheet.Rooms {
		fmt.Printf("%-14s %-22s %10s %8d\n", r.ID, truncate(r.Name, 22), game.FormatMoney(r.Cost), r.Boost)
	}

	accent.Println("\n== STUDIO UPGRADES ==")
	fmt.Printf("%-22s %-24s %10s %8s\n", "ID", "NAME", "COST", "BOOST")
	for _, u := range sheet.Upgrades {
		fmt.Printf("%-22s %-24s %10s %8d\n", u.ID, truncate(u.Name, 24), game.FormatMoney(u.Cost), u.QualityBoost)
	}

	accent.Println("\n== VENUES ==")
	fmt.Printf("%-12s %-18s %-10s %-10s %10s %12s\n", "ID", "NAME", "CITY", "TYPE", "CAPACITY", "BASE PAY")
	for _, v := range sheet.Venues {
		fmt.Printf("%-12s %-18s %-10s %-10s %10d %12s\n",
			v.ID, truncate(v.Name, 18), v.City, v.Type, v.Capacity, game.FormatMoney(v.BaseRevenue))
	}

	accent.Println("\n== CONTRACTS ==")
	fmt.Printf("%-24s %-14s %-12s %8s %12s\n", "ID", "PARTNER", "TYPE", "ROYALTY", "ADVANCE")
	for _, c := range sheet.Contracts {
		fmt.Printf("%-24s %-14s %-12s %7.0f%% %12s\n",
			c.ID, c.Partner, c.Type, c.RoyaltyRate*100, game.FormatMoney(c.Value))
	}

	accent.Println("\n== BRAND DEALS ==")
	fmt.Printf("%-10s %-12s %12s %10s\n", "ID", "BRAND", "VALUE", "PRESTIGE")
	for _, d := range sheet.BrandDeals {
		fmt.Printf("%-10s %-12s %12s %10d\n", d.ID, d.Brand, game.FormatMoney(d.Value), d.Prestige)
	}

	accent.Println("\n== INVESTMENTS ==")
	fmt.Printf("%-14s %-18s %14s\n", "ID", "NAME", "MIN STAKE")
	for _, i := range sheet.Investments {
		fmt.Printf("%-14s %-18s %14s\n", i.ID, truncate(i.Name, 18), game.FormatMoney(i.MinInvestment))
	}

	accent.Println("\n== LUXURY ==")
	fmt.Printf("%-18s %-24s %12s %10s\n", "ID", "NAME", "COST", "PRESTIGE")
	for _, l := range sheet.LuxuryItems {
		fmt.Printf("%-18s %-24s %12s %10d\n", l.ID, truncate(l.Name, 24), game.FormatMoney(l.Cost), l.Prestige)
	}

	accent.Println("\n== MEDIA EVENTS ==")
	fmt.Printf("%-18s %-26s %-8s %8s %10s\n", "ID", "NAME", "TYPE", "IMPACT", "COST")
	for _, m := range sheet.MediaEvents {
		fmt.Printf("%-18s %-26s %-8s %8d %10s\n", m.ID, truncate(m.Name, 26), m.Type, m.Impact, game.FormatMoney(m.Cost))
	}

	accent.Println("\n== MERCH TEMPLATES ==")
	fmt.Printf("%-14s %-10s %8s\n", "ID", "TYPE", "PRICE")
	for _, m := range sheet.MerchTemplates {
		fmt.Printf("%-14s %-10s %8s\n", m.ID, m.Type, game.FormatMoney(m.BasePrice))
	}

	accent.Println("\n== DIRECTORS ==")
	fmt.Printf("%-14s %-16s %10s %8s\n", "ID", "NAME", "FEE", "QUALITY")
	for _, d := range sheet.Directors {
		fmt.Printf("%-14s %-16s %10s %8d\n", d.ID, truncate(d.Name, 16), game.FormatMoney(d.Cost), d.Quality)
	}
	fmt.Println()
	return nil
}

func renderLatestPost(raw map[string]any) error {
	state, err := decodeInto[game.GameState](raw)
	if err != nil {
		return err
	}
	posts := state.SocialMedia.StarGram.Posts
	if len(posts) == 0 {
		printInfo("No posts yet.")
		return nil
	}
	post := posts[0]
	accent.Println("\n== POSTED ==")
	fmt.Printf("%s\n", post.Content)
	fmt.Printf("Likes: %d  Followers: %s", post.Likes,
		game.FormatCompact(int64(state.SocialMedia.StarGram.Followers)))
	if post.IsViral {
		success.Print("  VIRAL!")
	}
	fmt.Println()
	for _, c := range post.Comments {
		fmt.Printf("  %s: %s\n", c.Author, c.Content)
	}
	fmt.Println()
	return nil
}

func renderMerchDrop(raw map[string]any) error {
	state, err := decodeInto[game.GameState](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== MERCH DROP ==")
	fmt.Printf("%-26s %-10s %10s %12s\n", "PRODUCT", "TYPE", "UNITS", "REVENUE")
	for _, m := range state.Merchandise {
		fmt.Printf("%-26s %-10s %10d %12s\n",
			truncate(m.Name, 26), m.Type, m.UnitsSold, game.FormatMoney(m.Revenue))
	}
	fmt.Printf("\nBalance: %s\n\n", game.FormatMoney(state.Artist.Money))
	return nil
}

func renderMoneyLine(raw map[string]any, verb string) error {
	state, err := decodeInto[game.GameState](raw)
	if err != nil {
		return err
	}
	printSuccess(fmt.Sprintf("%s. Balance %s, energy %d/%d.",
		verb, game.FormatMoney(state.Artist.Money), state.Artist.Energy, state.Artist.MaxEnergy))
	return nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func formatWhen(unixMilli int64) string {
	if unixMilli == 0 {
		return "-"
	}
	return time.UnixMilli(unixMilli).Local().Format("2006-01-02 15:04")
}
