package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/boardsync/internal/adapters/driven/config/file"
	"github.com/custodia-labs/boardsync/internal/connectors/github"
	"github.com/custodia-labs/boardsync/internal/core/domain"
	"github.com/custodia-labs/boardsync/internal/core/ports/driving"
	"github.com/custodia-labs/boardsync/internal/core/services"
	"github.com/custodia-labs/boardsync/internal/logger"
	ghnormaliser "github.com/custodia-labs/boardsync/internal/normalisers/github"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Apply one label event to the configured project boards",
	Long: `Reads a webhook payload and its event name, matches the label against the
configured label to project table, and adds the item to (labeled) or removes
the issue's items from (unlabeled) every matching project.

Inside a workflow the event, token and configuration are taken from
GITHUB_EVENT_NAME, GITHUB_EVENT_PATH, PAT_TOKEN or GITHUB_TOKEN, and
INPUT_CONFIG when the corresponding flags are not set.`,
	Example: `  boardsync run --event-name issues --event-path event.json \
    --config '[{"label":"bug","projectNumber":3}]'

  boardsync run --config-file boardsync.toml --event-path - < event.json`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var runFlags struct {
	eventName  string
	eventPath  string
	config     string
	configFile string
	token      string
	graphqlURL string
	timeout    time.Duration
	features   []string
	output     string
}

// newLabelSync builds the service graph; tests replace it.
// The rate state is the board client's, read once the run is over.
var newLabelSync = func(
	ctx context.Context, cfg github.ClientConfig,
) (driving.LabelSync, *github.RateLimitState, error) {
	client, err := github.NewClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	sync := services.NewLabelSyncService(
		ghnormaliser.NewEventNormaliser(),
		services.NewItemService(client),
	)
	return sync, client.RateLimit(), nil
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.eventName, "event-name", "", "webhook event name, e.g. issues (env GITHUB_EVENT_NAME)")
	f.StringVar(&runFlags.eventPath, "event-path", "", `path to the webhook payload, "-" for stdin (env GITHUB_EVENT_PATH)`)
	f.StringVar(&runFlags.config, "config", "", "JSON array of {label, projectNumber} rows (env INPUT_CONFIG)")
	f.StringVar(&runFlags.configFile, "config-file", "", "JSON or TOML configuration file")
	f.StringVar(&runFlags.token, "token", "", "GitHub token (env PAT_TOKEN, then GITHUB_TOKEN)")
	f.StringVar(&runFlags.graphqlURL, "graphql-url", "", "API root; GraphQL is served at <url>/graphql (env GRAPHQL_API_BASE)")
	f.DurationVar(&runFlags.timeout, "timeout", github.DefaultTimeout, "per request timeout")
	f.StringSliceVar(&runFlags.features, "graphql-feature", nil, "GraphQL-Features header value (repeatable)")
	f.StringVarP(&runFlags.output, "output", "o", "text", `result format: "text" or "json"`)

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if runFlags.output != "text" && runFlags.output != "json" {
		return errInvalidFlag("output", runFlags.output)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	event, err := readEvent(cmd.InOrStdin())
	if err != nil {
		return err
	}

	clientCfg := github.ClientConfig{
		BaseURL:  firstNonEmpty(runFlags.graphqlURL, getenv("GRAPHQL_API_BASE"), cfg.GitHub.BaseURL),
		Token:    firstNonEmpty(runFlags.token, getenv("PAT_TOKEN"), getenv("GITHUB_TOKEN")),
		Timeout:  runFlags.timeout,
		Features: runFlags.features,
	}
	if len(clientCfg.Features) == 0 {
		clientCfg.Features = cfg.GitHub.Features
	}

	sync, rate, err := newLabelSync(ctx, clientCfg)
	if err != nil {
		return fmt.Errorf("create board client: %w", err)
	}

	result, err := sync.Run(ctx, event, cfg.Projects)
	logQuota(rate)
	if err != nil {
		if hint := failureHint(err, rate); hint != "" {
			return fmt.Errorf("%w\n\nHint: %s", err, hint)
		}
		return err
	}

	return printResult(cmd.OutOrStdout(), result)
}

// loadConfig reads the mapping table from --config-file, --config or INPUT_CONFIG.
func loadConfig() (*file.Config, error) {
	if runFlags.configFile != "" && runFlags.config != "" {
		return nil, errors.New("use either --config or --config-file, not both")
	}

	if runFlags.configFile != "" {
		return file.Load(runFlags.configFile)
	}

	rows, err := file.ParseMappings(firstNonEmpty(runFlags.config, getenv("INPUT_CONFIG")))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &file.Config{Projects: rows}, nil
}

// readEvent loads the webhook delivery named by the event flags.
func readEvent(stdin io.Reader) (domain.Event, error) {
	name := firstNonEmpty(runFlags.eventName, getenv("GITHUB_EVENT_NAME"))
	if name == "" {
		return domain.Event{}, fmt.Errorf("%w: event name is required (--event-name or GITHUB_EVENT_NAME)",
			domain.ErrInvalidInput)
	}

	path := firstNonEmpty(runFlags.eventPath, getenv("GITHUB_EVENT_PATH"))
	if path == "" {
		return domain.Event{}, fmt.Errorf("%w: event payload is required (--event-path or GITHUB_EVENT_PATH)",
			domain.ErrInvalidInput)
	}

	var (
		payload []byte
		err     error
	)
	if path == "-" {
		payload, err = io.ReadAll(stdin)
	} else {
		payload, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.Event{}, fmt.Errorf("read event payload: %w", err)
	}

	return domain.Event{Kind: domain.EventKind(name), Payload: payload}, nil
}

func printResult(w io.Writer, result *domain.RunResult) error {
	if runFlags.output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	item := result.Context
	if result.Matched() == 0 {
		fmt.Fprintf(w, "No project changes for %s %q on %s\n", item.Action, item.Label, describeItem(item))
		return nil
	}
	for _, added := range result.Added {
		fmt.Fprintf(w, "Added %s to project %d (item %s)\n",
			describeItem(item), added.ProjectNumber, added.ItemID)
	}
	for _, removed := range result.Removed {
		fmt.Fprintf(w, "Removed %d item(s) for %s via project %d\n",
			len(removed.ItemIDs), describeItem(item), removed.ProjectNumber)
	}
	return nil
}

func describeItem(item domain.ItemContext) string {
	if !item.HasItem() {
		return "an event without an issue or pull request"
	}
	return fmt.Sprintf("%s #%d", item.ItemType, item.ItemNumber)
}

// failureHint suggests a remedy for credential and quota failures.
func failureHint(err error, rate *github.RateLimitState) string {
	switch {
	case github.IsRateLimited(err):
		var resetAt time.Time
		if rate != nil {
			resetAt = rate.ResetTime()
		}
		var rlErr *github.RateLimitError
		if resetAt.IsZero() && errors.As(err, &rlErr) {
			resetAt = rlErr.ResetAt
		}
		if resetAt.IsZero() {
			return "the GitHub API quota is exhausted; retry later"
		}
		return fmt.Sprintf("the GitHub API quota is exhausted; it resets at %s", resetAt.UTC().Format(time.RFC3339))
	case github.IsUnauthorized(err):
		return "the token was rejected; check PAT_TOKEN or GITHUB_TOKEN"
	case github.IsForbidden(err):
		return "the token cannot write to the project; organization projects need a token with the project scope, " +
			"the workflow GITHUB_TOKEN is not enough"
	}
	return ""
}

func logQuota(rate *github.RateLimitState) {
	if rate == nil || rate.Remaining() < 0 {
		return
	}
	logger.Debug("GraphQL quota: %d of %d remaining, resets at %s",
		rate.Remaining(), rate.Limit(), rate.ResetTime().UTC().Format(time.RFC3339))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func errInvalidFlag(name, value string) error {
	return fmt.Errorf("%w: invalid value %q for --%s", domain.ErrInvalidInput, value, name)
}
