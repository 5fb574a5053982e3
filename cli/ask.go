package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clinassist/client"
	"clinassist/logging"
	"clinassist/session"
)

var (
	askQuery  string
	askDomain string
	askJSON   bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Submit one query and print the answer",
	Long: `Submit a single clinical question and print the answer with its top
evidence sources.

Examples:
  clinassist ask -q "What are the symptoms of COVID-19?" -d covid
  clinassist ask -q "How is diabetes managed?" --json`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuery, "query", "q", "", "clinical question (required)")
	askCmd.Flags().StringVarP(&askDomain, "domain", "d", "", "domain filter (covid, diabetes, heart_attack, knee_injuries)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the raw answer bundle as JSON")
	askCmd.MarkFlagRequired("query")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	domain := client.Domain(askDomain)
	if !domain.Valid() {
		return fmt.Errorf("unknown domain %q", askDomain)
	}

	log := logging.New(cfg.Logging)
	defer log.Sync()

	gateway := client.New(cfg.API.URL, cfg.API.Timeout(), log)
	q := session.NewQuery()

	attempt, err := q.Begin(askQuery, domain)
	if err != nil {
		return err
	}

	bundle, err := gateway.SubmitQuery(context.Background(), attempt.Query, attempt.Domain)
	q.Resolve(attempt.Seq, bundle, err)
	if q.Status() == session.StatusFailed {
		return fmt.Errorf("%s", q.Err())
	}

	if askJSON {
		return json.NewEncoder(os.Stdout).Encode(bundle)
	}

	fmt.Printf("Confidence: %s\n\n", bundle.ConfidenceLevel())
	fmt.Println(bundle.Response)

	top := bundle.TopSources()
	if len(top) > 0 {
		fmt.Printf("\nEvidence sources (top %d):\n", len(top))
		for i, src := range top {
			fmt.Printf("  #%d %s (page %d, %s) — %.1f%% match\n",
				i+1, src.Source, src.Page, src.ChunkType, src.Similarity*100)
		}
	}
	if extra := bundle.ExtraSourceCount(); extra > 0 {
		fmt.Printf("  + %d additional sources referenced\n", extra)
	}
	return nil
}
