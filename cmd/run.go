package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"paperscout/internal/arxiv"
	"paperscout/internal/contacts"
	"paperscout/internal/export"
	"paperscout/internal/logger"
	"paperscout/internal/pipeline"
	"paperscout/internal/scout"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes            = "Yes"
	PromptNo             = "No"
	PromptBack           = "back"
	PromptTopPapers      = "Show top papers"
	PromptPaperDetails   = "Show one paper in detail"
	PromptDumpToFile     = "Dump papers to file"
	PromptAppendSeenFile = "Append all papers to seen file"

	abstractLogLength = 300
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Write exports?",
	Items: []string{PromptYes, PromptNo, PromptTopPapers, PromptPaperDetails, PromptDumpToFile, PromptAppendSeenFile},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, score and export recent arXiv papers",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("months", 6, "how many months back to include")
	runCmd.Flags().Int("page-size", 200, "arXiv API page size")
	runCmd.Flags().Int("max-total", 5000, "hard cap on total papers fetched")
	runCmd.Flags().String("categories", "cs.CL,cs.AI,cs.LG", "comma-separated arXiv categories")
	runCmd.Flags().Duration("page-interval", 3*time.Second, "wait between API pages")
	runCmd.Flags().Int("min-score", 0, "drop papers scored under this threshold")
	runCmd.Flags().StringP("seen-file", "e", "", "JSON file with papers from previous runs to exclude")
	runCmd.Flags().String("out-dir", "out", "directory for exported files")
	runCmd.Flags().Int("top-n", 30, "number of top papers in the report")
	runCmd.Flags().Bool("report", false, "generate a markdown report of the top papers")
	runCmd.Flags().Bool("html", false, "also render the report as HTML")
	runCmd.Flags().BoolP("auto-approve", "y", false, "write exports without asking for confirmation")

	viper.BindPFlag("search.months", runCmd.Flags().Lookup("months"))
	viper.BindPFlag("search.page-size", runCmd.Flags().Lookup("page-size"))
	viper.BindPFlag("search.max-total", runCmd.Flags().Lookup("max-total"))
	viper.BindPFlag("search.categories", runCmd.Flags().Lookup("categories"))
	viper.BindPFlag("search.page-interval", runCmd.Flags().Lookup("page-interval"))
	viper.BindPFlag("min-score", runCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("seen-file", runCmd.Flags().Lookup("seen-file"))
	viper.BindPFlag("output.dir", runCmd.Flags().Lookup("out-dir"))
	viper.BindPFlag("output.top-n", runCmd.Flags().Lookup("top-n"))
	viper.BindPFlag("output.report", runCmd.Flags().Lookup("report"))
	viper.BindPFlag("output.html", runCmd.Flags().Lookup("html"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting paper-scout", zap.String("version", version))

	client := arxiv.New(ctx, logger, config.Search.PageInterval)
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	logger.Info("starting the fetch",
		zap.Strings("categories", config.Search.Categories),
		zap.Int("months", config.Search.Months),
	)

	papers, err := client.Fetch(config.Search)
	if err != nil {
		logger.Fatal("fetching papers", zap.Error(err))
	}

	logger.Info("fetched papers", zap.Int("count", papers.Len()))

	if papers.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no papers found"))
		return
	}

	preScore := pipeline.New([]pipeline.Filter{
		pipeline.NewDedupe(),
		pipeline.NewSeenFile(config.SeenFile),
		pipeline.NewCategory(config.Search.Categories),
	}, logger)

	papers, err = preScore.Run(ctx, papers)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	scorePapers(papers)

	postScore := pipeline.New([]pipeline.Filter{
		pipeline.NewMinScore(config.MinScore),
	}, logger)

	papers, err = postScore.Run(ctx, papers)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if papers.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no papers left after filters"))
		return
	}

	papers.SortByFitScore()

	action := PromptYes
	for {
		var err error
		if cmd.Flag("auto-approve").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		logger.Info("current list of papers", zap.Int("count", papers.Len()))

		if err := handleAction(action, logger, config, papers); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, config *Config, papers *arxiv.Papers) error {
	switch action {
	case PromptYes:
		if err := writeExports(logger, config, papers); err != nil {
			return err
		}
		return errExit
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptTopPapers:
		showTopPapers(logger, config, papers)
		return nil
	case PromptPaperDetails:
		if err := showPaperDetails(logger, config, papers); err != nil {
			return fmt.Errorf("show paper details: %w", err)
		}
		return nil
	case PromptDumpToFile:
		filename, err := papers.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendSeenFile:
		if config.SeenFile == "" {
			logger.Warn("seen file is not configured", zap.String("hint", "set the seen-file flag or config key"))
			return nil
		}
		if err := appendToSeenFile(config.SeenFile, papers); err != nil {
			return fmt.Errorf("append to seen file: %w", err)
		}
		logger.Info("appended to seen file", zap.String("filename", config.SeenFile))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// scorePapers runs the relevance core on every paper and merges the results,
// pitch and contact fields back onto the records.
func scorePapers(papers *arxiv.Papers) {
	for _, p := range papers.Items {
		result := scout.Score(scout.Document{Title: p.Title, Abstract: p.Abstract})
		p.FitScore = result.Score
		p.FitTags = result.Tags
		p.FitReasons = result.Reasons
		p.Benchmarks = result.Benchmarks

		p.PitchLine, p.PitchBullets = scout.Pitch(result.Tags, result.Benchmarks)

		p.ContactName, p.ContactHint = contacts.PickPrimary(p.Authors)
		p.SearchQuery = contacts.BuildSearchQuery(p.ContactName, "")
		p.SearchURL = contacts.GoogleSearchURL(p.SearchQuery)
		if p.SearchQuery != "" {
			p.SearchDisclaimer = contacts.Disclaimer
		}
	}
}

func writeExports(logger *zap.Logger, config *Config, papers *arxiv.Papers) error {
	now := time.Now().UTC()
	day := now.Format("2006-01-02")

	csvPath := filepath.Join(config.Output.Dir, fmt.Sprintf("papers_%s.csv", day))
	if err := export.WriteCSV(csvPath, papers); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}

	jsonPath := filepath.Join(config.Output.Dir, fmt.Sprintf("papers_%s.json", day))
	if err := export.WriteJSON(jsonPath, papers); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}

	logger.Info("saved exports",
		zap.String("csv", csvPath),
		zap.String("json", jsonPath),
		zap.Int("papers", papers.Len()),
	)

	if !config.Output.Report {
		return nil
	}

	report := export.BuildReport(papers, export.ReportMeta{
		GeneratedAt: now,
		WindowLabel: fmt.Sprintf("last %d months", config.Search.Months),
		Categories:  fmt.Sprintf("%v", config.Search.Categories),
		TotalPapers: papers.Len(),
		TopN:        config.Output.TopN,
	})

	stamp := now.Format("2006-01-02_1504")
	mdPath := filepath.Join(config.Output.Dir, fmt.Sprintf("report_%s.md", stamp))
	if err := export.WriteMarkdown(mdPath, report); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	logger.Info("saved report", zap.String("markdown", mdPath))

	if config.Output.HTML {
		htmlPath := filepath.Join(config.Output.Dir, fmt.Sprintf("report_%s.html", stamp))
		if err := export.WriteHTML(htmlPath, report); err != nil {
			return fmt.Errorf("writing HTML report: %w", err)
		}
		logger.Info("saved report", zap.String("html", htmlPath))
	}

	return nil
}

func showTopPapers(log *zap.Logger, config *Config, papers *arxiv.Papers) {
	for _, p := range papers.Top(config.Output.TopN) {
		fields := []zap.Field{
			zap.Int("fit_score", p.FitScore),
			zap.Strings("fit_tags", p.FitTags),
			zap.Strings("benchmarks", p.Benchmarks),
		}
		fields = append(fields, logger.StringFields(
			logger.StringField{Key: "url", Value: p.URL},
			logger.StringField{Key: "contact", Value: p.ContactName},
			logger.StringField{Key: "pitch", Value: p.PitchLine},
			logger.StringField{Key: "abstract", Value: logger.TruncateForLog(p.Abstract, abstractLogLength)},
		)...)
		log.Info(p.Title, fields...)
	}
}

// showPaperDetails lets the user pick a single paper by id and prints
// its full record, with the abstract clipped to keep log lines readable.
func showPaperDetails(log *zap.Logger, config *Config, papers *arxiv.Papers) error {
	items := []string{PromptBack}
	for _, p := range papers.Top(config.Output.TopN) {
		items = append(items, fmt.Sprintf("%s %s", p.ID, p.Title))
	}

	detailsPrompt := promptui.Select{
		Label: "Choose a paper",
		Items: items,
		Size:  len(items),
	}

	_, selected, err := detailsPrompt.Run()
	if err != nil {
		return err
	}
	if selected == PromptBack {
		return nil
	}

	id := strings.SplitN(selected, " ", 2)[0]
	p := papers.FindByID(id)
	if p == nil {
		return fmt.Errorf("paper %s not found", id)
	}

	fields := []zap.Field{
		zap.Int("fit_score", p.FitScore),
		zap.Strings("fit_tags", p.FitTags),
		zap.Strings("fit_reasons", p.FitReasons),
		zap.Strings("benchmarks", p.Benchmarks),
		zap.Strings("pitch_bullets", p.PitchBullets),
	}
	fields = append(fields, logger.StringFields(
		logger.StringField{Key: "url", Value: p.URL},
		logger.StringField{Key: "contact", Value: p.ContactName},
		logger.StringField{Key: "contact_hint", Value: p.ContactHint},
		logger.StringField{Key: "pitch", Value: p.PitchLine},
		logger.StringField{Key: "abstract", Value: logger.TruncateForLog(p.Abstract, abstractLogLength)},
	)...)
	log.Info(p.Title, fields...)
	return nil
}

func appendToSeenFile(path string, papers *arxiv.Papers) error {
	seen, err := arxiv.SeenFromFile(path)
	if errors.Is(err, os.ErrNotExist) {
		seen = &arxiv.SeenPapers{}
	} else if err != nil {
		return err
	}

	seen.Append(papers.ToSeen())
	return seen.ToFile(path)
}
