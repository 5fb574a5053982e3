package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"clinassist/client"
	"clinassist/logging"
	"clinassist/session"
)

var (
	graphQuery  string
	graphDomain string
	graphType   string
	graphOut    string
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Generate a visualization of the retrieved evidence",
	Long: `Generate a visualization over the evidence retrieved for a query and
save it as an image file.

Types: wordcloud, term_frequency, sources, similarity

Examples:
  clinassist graph -q "knee ligament recovery" -d knee_injuries -t similarity
  clinassist graph -q "COVID-19 treatments" -t wordcloud -o covid.png`,
	RunE: runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringVarP(&graphQuery, "query", "q", "", "clinical question (required)")
	graphCmd.Flags().StringVarP(&graphDomain, "domain", "d", "", "domain filter")
	graphCmd.Flags().StringVarP(&graphType, "type", "t", string(client.VizWordCloud), "visualization type")
	graphCmd.Flags().StringVarP(&graphOut, "out", "o", "", "output file (default under the configured graph dir)")
	graphCmd.MarkFlagRequired("query")
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	domain := client.Domain(graphDomain)
	if !domain.Valid() {
		return fmt.Errorf("unknown domain %q", graphDomain)
	}
	kind := client.VizKind(graphType)
	valid := false
	for _, k := range client.KnownVizKinds() {
		if k == kind {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown visualization type %q", graphType)
	}

	log := logging.New(cfg.Logging)
	defer log.Sync()

	gateway := client.New(cfg.API.URL, cfg.API.Timeout(), log)

	viz := session.NewViz(kind)
	attempt, err := viz.Begin(graphQuery, domain)
	if err != nil {
		return err
	}

	payload, err := gateway.GenerateGraph(context.Background(), attempt.Query, attempt.Domain, attempt.Kind)
	viz.Resolve(attempt.Seq, payload, err)
	if viz.Status() == session.VizFailed {
		return fmt.Errorf("%s", viz.Err())
	}

	if client.IsRemoteImage(payload) {
		fmt.Println(payload)
		return nil
	}

	raw, ext, err := client.DecodeImage(payload)
	if err != nil {
		return err
	}

	out := graphOut
	if out == "" {
		if err := os.MkdirAll(cfg.Graph.Dir, 0o755); err != nil {
			return err
		}
		out = filepath.Join(cfg.Graph.Dir, fmt.Sprintf("%s_%d.%s", kind, time.Now().Unix(), ext))
	}
	if err := os.WriteFile(out, raw, 0o644); err != nil {
		return err
	}

	fmt.Println(out)
	return nil
}
