package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HendrikReh/chessbuddy/internal/store"
)

func newRetrieveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retrieve",
		Short: "Query games, positions, players, batches, and patterns.",
	}
	cmd.AddCommand(
		newRetrieveSimilarCmd(),
		newRetrieveGameCmd(),
		newRetrieveGamesCmd(),
		newRetrieveFENCmd(),
		newRetrievePlayerCmd(),
		newRetrieveBatchCmd(),
		newRetrievePatternCmd(),
		newRetrieveExportCmd(),
	)
	return cmd
}

func withStore(cmd *cobra.Command, fn func(s *store.Store) error) error {
	ctx := cmd.Context()
	cfg, err := buildConfig(true, false)
	if err != nil {
		return err
	}
	s, pool, err := connectStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(s)
}

func newRetrieveSimilarCmd() *cobra.Command {
	var fenText string
	var limit int
	cmd := &cobra.Command{
		Use:   "similar",
		Short: "Find the top-k FENs by cosine distance to a given position.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *store.Store) error {
				ctx := cmd.Context()
				fenID, found, err := s.FindFENByText(ctx, fenText)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("no stored fen matches %q", fenText)
				}
				results, err := s.FindSimilarFENs(ctx, fenID, limit)
				if err != nil {
					return err
				}
				for _, r := range results {
					fmt.Printf("%s\tdistance=%.4f\tusage=%d\t%s\n", r.FENID, r.Distance, r.UsageCount, r.FENText)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&fenText, "fen", "", "FEN text to compare against")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum rows to return")
	return cmd
}

func newRetrieveGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game <game-id>",
		Short: "Show one game's detail.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *store.Store) error {
				detail, err := s.GetGameDetail(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Println(detail.Game.String())
				return nil
			})
		},
	}
	return cmd
}

func newRetrieveGamesCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "games",
		Short: "List games, most recently ingested first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *store.Store) error {
				games, err := s.ListGames(cmd.Context(), limit, offset)
				if err != nil {
					return err
				}
				for _, g := range games {
					fmt.Println(g.Game.String())
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")
	return cmd
}

func newRetrieveFENCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fen <fen-id>",
		Short: "Show one FEN's detail, including usage count.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *store.Store) error {
				detail, err := s.GetFENDetails(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Printf("%s usage_count=%d\n", detail.FEN.String(), detail.UsageCount)
				return nil
			})
		},
	}
	return cmd
}

func newRetrievePlayerCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "player <name-substring>",
		Short: "Search players by case-insensitive name substring.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *store.Store) error {
				players, err := s.SearchPlayers(cmd.Context(), args[0], limit)
				if err != nil {
					return err
				}
				for _, p := range players {
					fmt.Println(p.String())
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows to return")
	return cmd
}

func newRetrieveBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <batch-id>",
		Short: "Show one batch's summary.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *store.Store) error {
				b, err := s.GetBatchSummary(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Printf("batch_id=%s source=%s label=%s games=%d\n", b.BatchID, b.SourcePath, b.Label, b.GameCount)
				return nil
			})
		},
	}
	return cmd
}

// patternFilters holds the flag-backed subset of store.PatternQuery the
// CLI exposes: pattern id, detecting color, minimum confidence, ECO prefix
// and opening substring, plus paging. The other store.PatternQuery fields
// (player names, dates, ratings, move counts) have no flag.
type patternFilters struct {
	patternID        string
	detectedBy       string
	minConfidence    float64
	ecoPrefix        string
	openingSubstring string
	limit            int
	offset           int
}

func (f patternFilters) toQuery() store.PatternQuery {
	q := store.PatternQuery{Limit: f.limit, Offset: f.offset}
	if f.patternID != "" {
		q.PatternIDs = []string{f.patternID}
	}
	if f.detectedBy != "" {
		q.DetectedBy = chessmodelColor(f.detectedBy)
	}
	if f.minConfidence > 0 {
		q.MinConfidence = optFloat(f.minConfidence)
	}
	if f.ecoPrefix != "" {
		q.ECOPrefix = optString(f.ecoPrefix)
	}
	if f.openingSubstring != "" {
		q.OpeningSubstring = optString(f.openingSubstring)
	}
	return q
}

func newRetrievePatternCmd() *cobra.Command {
	var f patternFilters
	cmd := &cobra.Command{
		Use:   "pattern",
		Short: "Query games matching pattern-detection filters, with a summary.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *store.Store) error {
				q := f.toQuery()
				summary, err := s.SummarizePatternQuery(cmd.Context(), q)
				if err != nil {
					return err
				}
				fmt.Printf("count=%d avg_confidence=%.3f white_initiated=%d black_initiated=%d\n",
					summary.Count, summary.AverageConfidence, summary.WhiteInitiated, summary.BlackInitiated)

				rows, err := s.QueryGamesWithPattern(cmd.Context(), q)
				if err != nil {
					return err
				}
				for _, r := range rows {
					fmt.Printf("%s\t%s\t%s vs %s\tmoves=%d\tconfidence=%.2f\n",
						r.GameID, r.PatternID, r.WhiteName, r.BlackName, r.MoveCount, r.Confidence)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&f.patternID, "pattern-id", "", "restrict to one pattern id")
	cmd.Flags().StringVar(&f.detectedBy, "detected-by", "", "restrict to the initiating color (white|black)")
	cmd.Flags().Float64Var(&f.minConfidence, "min-confidence", 0, "minimum detector confidence")
	cmd.Flags().StringVar(&f.ecoPrefix, "eco-prefix", "", "restrict to an ECO code prefix")
	cmd.Flags().StringVar(&f.openingSubstring, "opening", "", "restrict to an opening-name substring")
	cmd.Flags().IntVar(&f.limit, "limit", 50, "maximum rows to return")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "rows to skip")
	return cmd
}

func newRetrieveExportCmd() *cobra.Command {
	var f patternFilters
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a pattern query's rows as JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *store.Store) error {
				rows, err := s.QueryGamesWithPattern(cmd.Context(), f.toQuery())
				if err != nil {
					return err
				}
				data, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return err
				}
				if outPath == "" {
					fmt.Println(string(data))
					return nil
				}
				return os.WriteFile(outPath, data, 0o644)
			})
		},
	}
	cmd.Flags().StringVar(&f.patternID, "pattern-id", "", "restrict to one pattern id")
	cmd.Flags().StringVar(&f.detectedBy, "detected-by", "", "restrict to the initiating color (white|black)")
	cmd.Flags().Float64Var(&f.minConfidence, "min-confidence", 0, "minimum detector confidence")
	cmd.Flags().IntVar(&f.limit, "limit", 200, "maximum rows to export")
	cmd.Flags().StringVar(&outPath, "out", "", "output file path (defaults to stdout)")
	return cmd
}
