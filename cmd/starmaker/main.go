package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	cl "starmaker/internal/cli"
	"starmaker/internal/config"
	"starmaker/internal/syncq"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL
	if sess, err := cl.LoadSession(); err == nil {
		apiBase = sess.ServerURL
	}

	root := &cobra.Command{
		Use:          "starmaker",
		Short:        "Music career tycoon client",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "server", apiBase, "api server base url")

	root.AddCommand(
		newConnectCmd(&apiBase),
		newNewGameCmd(&apiBase),
		newStatusCmd(&apiBase),
		newSummaryCmd(&apiBase),
		newCatalogCmd(&apiBase),
		newDashboardCmd(&apiBase),
		newHireCmd(&apiBase),
		newFireCmd(&apiBase),
		newStudioCmd(&apiBase),
		newRecordCmd(&apiBase),
		newVideoCmd(&apiBase),
		newPerformCmd(&apiBase),
		newMediaCmd(&apiBase),
		newPressCmd(&apiBase),
		newPostCmd(&apiBase),
		newRelationshipCmd(&apiBase),
		newSignCmd(&apiBase),
		newInvestCmd(&apiBase),
		newBuyCmd(&apiBase),
		newFanclubCmd(&apiBase),
		newMerchCmd(&apiBase),
		newFashionCmd(&apiBase),
		newPopupCmd(&apiBase),
		newAwardsCmd(&apiBase),
		newRestCmd(&apiBase),
		newResetCmd(&apiBase),
		newSyncCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	token := ""
	if sess, err := cl.LoadSession(); err == nil {
		token = sess.Token
	}
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"), token)
}

func actionCtx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

// queueIfOffline captures a failed mutation in the local sync queue when
// the server was unreachable. API rejections are not queued.
func queueIfOffline(err error, method, path string, body map[string]any) bool {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return false
	}
	if pushErr := syncq.Push(syncq.Command{Method: method, Path: path, Body: body}); pushErr != nil {
		printError(fmt.Sprintf("Server unreachable and queueing failed: %v", pushErr))
		return false
	}
	printWarn("Server unreachable. Action queued; run `starmaker sync` once online.")
	return true
}

func newConnectCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "connect [url]",
		Short: "Pin the CLI to an api server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server := *apiBase
			if len(args) == 1 {
				server = args[0]
			}
			token, err := promptOptional("Auth token (blank if the server has none)")
			if err != nil {
				return err
			}
			if err := cl.SaveSession(cl.Session{
				ServerURL: strings.TrimRight(strings.TrimSpace(server), "/"),
				Token:     token,
			}); err != nil {
				return err
			}
			printSuccess("Connected. Session saved.")
			return nil
		},
	}
}

func newNewGameCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a new career (overwrites the current save)",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := promptRequired("Artist name")
			if err != nil {
				return err
			}
			stageName, err := promptRequired("Stage name")
			if err != nil {
				return err
			}
			genre, err := promptChoice("Genre", []string{"pop", "rock", "hip-hop", "r&b", "electronic", "country"}, "pop")
			if err != nil {
				return err
			}
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).NewGame(ctx, name, stageName, genre)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Career started for %s.", stageName))
			return renderSnapshot(out)
		},
	}
}

func newStatusCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the full career snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).Snapshot(ctx)
			if err != nil {
				return err
			}
			return renderSnapshot(out)
		},
	}
}

func newSummaryCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the condensed career header",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).Summary(ctx)
			if err != nil {
				return err
			}
			return renderSummary(out)
		},
	}
}

func newCatalogCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List everything money can buy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).Catalog(ctx)
			if err != nil {
				return err
			}
			return renderCatalog(out)
		},
	}
}

func newDashboardCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dash",
		Short: "Live career dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd.Context(), newClient(apiBase))
		},
	}
}

func newHireCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "hire [candidate-id]",
		Short: "Hire a team member (pays three months salary up front)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidateID := ""
			if len(args) == 1 {
				candidateID = args[0]
			} else {
				var err error
				candidateID, err = promptRequired("Candidate id (see `starmaker catalog`)")
				if err != nil {
					return err
				}
			}
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).Hire(ctx, "", candidateID)
			if err != nil {
				if queueIfOffline(err, "POST", "/v1/team/hire", map[string]any{"candidateId": candidateID}) {
					return nil
				}
				return err
			}
			return renderMoneyLine(out, "Hired")
		},
	}
}

func newFireCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fire [role]",
		Short: "Fire a team member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).Fire(ctx, args[0])
			if err != nil {
				return err
			}
			return renderMoneyLine(out, "Fired "+args[0])
		},
	}
}

func newStudioCmd(apiBase *string) *cobra.Command {
	studio := &cobra.Command{
		Use:   "studio",
		Short: "Studio purchases and upgrades",
	}
	studio.AddCommand(
		&cobra.Command{
			Use:   "equipment [id]",
			Short: "Buy studio equipment",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := actionCtx(cmd)
				defer cancel()
				out, err := newClient(apiBase).BuyEquipment(ctx, args[0])
				if err != nil {
					if queueIfOffline(err, "POST", "/v1/studio/equipment", map[string]any{"id": args[0]}) {
						return nil
					}
					return err
				}
				return renderMoneyLine(out, "Equipment installed")
			},
		},
		&cobra.Command{
			Use:   "room [id]",
			Short: "Build a studio room",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := actionCtx(cmd)
				defer cancel()
				out, err := newClient(apiBase).BuildRoom(ctx, args[0])
				if err != nil {
					return err
				}
				return renderMoneyLine(out, "Room built")
			},
		},
		&cobra.Command{
			Use:   "upgrade [id]",
			Short: "Buy a studio upgrade",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := actionCtx(cmd)
				defer cancel()
				out, err := newClient(apiBase).BuyUpgrade(ctx, args[0])
				if err != nil {
					return err
				}
				return renderMoneyLine(out, "Upgrade installed")
			},
		},
		&cobra.Command{
			Use:   "tier",
			Short: "Upgrade the studio to the next tier",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := actionCtx(cmd)
				defer cancel()
				out, err := newClient(apiBase).UpgradeStudioTier(ctx)
				if err != nil {
					return err
				}
				return renderMoneyLine(out, "Studio tier upgraded")
			},
		},
	)
	return studio
}

func newRecordCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "record",
		Short: "Record a single, EP, or album",
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := promptRequired("Title")
			if err != nil {
				return err
			}
			songType, err := promptChoice("Type", []string{"single", "ep", "album"}, "single")
			if err != nil {
				return err
			}
			theme, err := promptOptional("Theme (optional)")
			if err != nil {
				return err
			}
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).RecordSong(ctx, title, songType, theme)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Recorded %q.", title))
			return renderSnapshot(out)
		},
	}
}

func newVideoCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "video [song-id] [director-id]",
		Short: "Shoot a music video for a song",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).ShootVideo(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			return renderMoneyLine(out, "Video shot")
		},
	}
}

func newPerformCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "perform [venue-id]",
		Short: "Play a show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).Perform(ctx, args[0])
			if err != nil {
				if queueIfOffline(err, "POST", "/v1/shows", map[string]any{"venueId": args[0]}) {
					return nil
				}
				return err
			}
			return renderMoneyLine(out, "Show played")
		},
	}
}

func newMediaCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "media [event-id]",
		Short: "Book a media appearance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).BookMediaEvent(ctx, args[0])
			if err != nil {
				return err
			}
			return renderMoneyLine(out, "Appearance booked")
		},
	}
}

func newPressCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "press",
		Short: "Hold a press conference",
		RunE: func(cmd *cobra.Command, args []string) error {
			topic, err := promptRequired("Topic")
			if err != nil {
				return err
			}
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).HoldPressConference(ctx, topic)
			if err != nil {
				return err
			}
			return renderMoneyLine(out, "Press conference held")
		},
	}
}

func newPostCmd(apiBase *string) *cobra.Command {
	post := &cobra.Command{
		Use:   "post",
		Short: "Publish a social media post",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := promptRequired("Post content")
			if err != nil {
				return err
			}
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).PublishPost(ctx, content)
			if err != nil {
				return err
			}
			return renderLatestPost(out)
		},
	}
	post.AddCommand(&cobra.Command{
		Use:   "draft",
		Short: "Ask the collaborator to draft a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).GeneratePost(ctx)
			if err != nil {
				return err
			}
			if content, ok := out["content"].(string); ok {
				printInfo(content)
			}
			return nil
		},
	})
	return post
}

func newRelationshipCmd(apiBase *string) *cobra.Command {
	rel := &cobra.Command{
		Use:   "relations",
		Short: "Collaborations, rivalries, and entourage",
	}
	rel.AddCommand(
		&cobra.Command{
			Use:   "collab [artist]",
			Short: "Collaborate with another artist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := actionCtx(cmd)
				defer cancel()
				out, err := newClient(apiBase).Collaborate(ctx, args[0])
				if err != nil {
					return err
				}
				return renderMoneyLine(out, "Collab with "+args[0])
			},
		},
		&cobra.Command{
			Use:   "rival [artist]",
			Short: "Start a public rivalry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := actionCtx(cmd)
				defer cancel()
				out, err := newClient(apiBase).StartRivalry(ctx, args[0])
				if err != nil {
					return err
				}
				return renderMoneyLine(out, "Rivalry with "+args[0])
			},
		},
		&cobra.Command{
			Use:   "entourage [name]",
			Short: "Add someone to the entourage",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := actionCtx(cmd)
				defer cancel()
				out, err := newClient(apiBase).AddToEntourage(ctx, args[0])
				if err != nil {
					return err
				}
				return renderMoneyLine(out, args[0]+" joined the entourage")
			},
		},
	)
	return rel
}

func newSignCmd(apiBase *string) *cobra.Command {
	sign := &cobra.Command{
		Use:   "sign",
		Short: "Sign label contracts and brand deals",
	}
	sign.AddCommand(
		&cobra.Command{
			Use:   "contract [id]",
			Short: "Sign a label contract",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := actionCtx(cmd)
				defer cancel()
				out, err := newClient(apiBase).SignContract(ctx, args[0])
				if err != nil {
					return err
				}
				return renderMoneyLine(out, "Contract signed")
			},
		},
		&cobra.Command{
			Use:   "deal [id]",
			Short: "Sign a brand endorsement",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := actionCtx(cmd)
				defer cancel()
				out, err := newClient(apiBase).SignBrandDeal(ctx, args[0])
				if err != nil {
					return err
				}
				return renderMoneyLine(out, "Deal signed")
			},
		},
	)
	return sign
}

func newInvestCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "invest [option-id]",
		Short: "Put money into a business investment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).Invest(ctx, args[0])
			if err != nil {
				return err
			}
			return renderMoneyLine(out, "Invested")
		},
	}
}

func newBuyCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "buy [item-id]",
		Short: "Buy a luxury item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).BuyLuxury(ctx, args[0])
			if err != nil {
				return err
			}
			return renderMoneyLine(out, "Purchased")
		},
	}
}

func newFanclubCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fanclub",
		Short: "Buy the next fan club tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, err := promptInt("Tier", 1)
			if err != nil {
				return err
			}
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).UpgradeFanClub(ctx, tier)
			if err != nil {
				return err
			}
			return renderMoneyLine(out, fmt.Sprintf("Fan club tier %d unlocked", tier))
		},
	}
}

func newMerchCmd(apiBase *string) *cobra.Command {
	merch := &cobra.Command{
		Use:   "merch",
		Short: "Merchandise lines and drops",
	}
	merch.AddCommand(
		&cobra.Command{
			Use:   "launch [template-id]",
			Short: "Launch a new product line",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name, err := promptRequired("Product name")
				if err != nil {
					return err
				}
				ctx, cancel := actionCtx(cmd)
				defer cancel()
				out, err := newClient(apiBase).LaunchMerch(ctx, args[0], name)
				if err != nil {
					return err
				}
				return renderMoneyLine(out, fmt.Sprintf("Launched %q", name))
			},
		},
		&cobra.Command{
			Use:   "drop",
			Short: "Run a sales window across every product line",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := actionCtx(cmd)
				defer cancel()
				out, err := newClient(apiBase).RunMerchDrop(ctx)
				if err != nil {
					return err
				}
				return renderMerchDrop(out)
			},
		},
	)
	return merch
}

func newFashionCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fashion [name]",
		Short: "Launch a branded fashion line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).LaunchFashionLine(ctx, args[0])
			if err != nil {
				return err
			}
			return renderMoneyLine(out, "Fashion line launched")
		},
	}
}

func newPopupCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "popup [city]",
		Short: "Open a popup store in a fashion capital",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).OpenPopupStore(ctx, args[0])
			if err != nil {
				return err
			}
			return renderMoneyLine(out, "Popup opened in "+args[0])
		},
	}
}

func newAwardsCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "awards",
		Short: "Claim any newly earned awards",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).ClaimAwards(ctx)
			if err != nil {
				return err
			}
			return renderSnapshot(out)
		},
	}
}

func newRestCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rest",
		Short: "Pay for a retreat and refill energy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).Rest(ctx)
			if err != nil {
				return err
			}
			return renderMoneyLine(out, "Rested")
		},
	}
}

func newResetCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the save and start from nothing",
		RunE: func(cmd *cobra.Command, args []string) error {
			confirm, err := promptChoice("Really delete the save", []string{"yes", "no"}, "no")
			if err != nil {
				return err
			}
			if confirm != "yes" {
				printInfo("Aborted.")
				return nil
			}
			ctx, cancel := actionCtx(cmd)
			defer cancel()
			if err := newClient(apiBase).Reset(ctx); err != nil {
				return err
			}
			printSuccess("Save deleted.")
			return nil
		},
	}
}

func newSyncCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replay queued offline actions to the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			queue, err := syncq.Load()
			if err != nil {
				return err
			}
			if len(queue) == 0 {
				printInfo("Sync queue is empty.")
				return nil
			}
			client := newClient(apiBase)
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			remaining := make([]syncq.Command, 0, len(queue))
			replayed := 0
			for _, q := range queue {
				if _, err := client.Do(ctx, q.Method, q.Path, q.Body); err != nil {
					remaining = append(remaining, q)
					printError(fmt.Sprintf("Sync failed for %s %s: %v", q.Method, q.Path, err))
					continue
				}
				replayed++
			}
			if err := syncq.Save(remaining); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Sync complete: replayed=%d remaining=%d", replayed, len(remaining)))
			return nil
		},
	}
}
