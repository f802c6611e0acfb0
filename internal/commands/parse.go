package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ledgerfold-dev/ledgerfold/internal/backup"
	"github.com/ledgerfold-dev/ledgerfold/internal/config"
	"github.com/ledgerfold-dev/ledgerfold/internal/ledger"
	"github.com/ledgerfold-dev/ledgerfold/internal/logger"
	"github.com/ledgerfold-dev/ledgerfold/internal/runlog"
	"github.com/ledgerfold-dev/ledgerfold/internal/sheets"
	"github.com/ledgerfold-dev/ledgerfold/internal/statement"
)

func newParseCommand() *cobra.Command {
	var opts parseOptions

	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Normalize statements and fold them into the daily ledger",
		Long: "Normalize bank statement CSVs into the daily ledger. With no file\n" +
			"arguments, every CSV in the current directory is processed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.files = args
			return runParse(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to ledgerfold.yaml")
	cmd.Flags().BoolVar(&opts.noBackup, "no-backup", false, "disable backup")
	cmd.Flags().BoolVar(&opts.noUpload, "no-upload", false, "disable spreadsheet upload")
	cmd.Flags().StringVar(&opts.spreadsheetID, "spreadsheet", "", "spreadsheet ID to upload to")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "sheet name within the spreadsheet")
	cmd.Flags().StringVar(&opts.credentials, "credentials", "", "Google service account key file")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log resolution decisions")

	return cmd
}

type parseOptions struct {
	files         []string
	configPath    string
	noBackup      bool
	noUpload      bool
	spreadsheetID string
	sheet         string
	credentials   string
	verbose       bool
}

// runParse is the whole batch: normalize every statement, fold into one
// ledger, print the snapshot, back up, upload. A failure on any file
// aborts the run before backup or upload, so a partial ledger can never
// be mistaken for a complete one.
func runParse(ctx context.Context, opts parseOptions) error {
	log := logger.New(opts.verbose)

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.spreadsheetID != "" {
		cfg.Sheets.SpreadsheetID = opts.spreadsheetID
	}
	if opts.sheet != "" {
		cfg.Sheets.Sheet = opts.sheet
	}
	if opts.credentials != "" {
		cfg.Sheets.CredentialsFile = opts.credentials
	}
	if len(cfg.Separator) != 1 {
		return fmt.Errorf("separator must be a single character, got %q", cfg.Separator)
	}

	files := opts.files
	if len(files) == 0 {
		files, err = statement.Scan(".")
		if err != nil {
			return err
		}
	}
	if len(files) == 0 {
		return errors.New("no CSV files to process")
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("statement %s: %w", f, err)
		}
	}

	norm := statement.NewNormalizer(cfg.Separator, cfg.Filters, log)
	led := ledger.New()
	var entries []runlog.Entry

	for _, f := range files {
		lines, err := statement.ReadLines(f)
		if err != nil {
			return err
		}
		st, err := norm.Normalize(f, lines)
		if err != nil {
			return err
		}
		led.Ingest(st.Transactions, st.From, st.To)
		log.Info().Str("file", f).Int("transactions", len(st.Transactions)).Msg("statement folded")
		entries = append(entries, runlog.Entry{
			Timestamp:    time.Now(),
			File:         f,
			HeaderLines:  st.HeaderLines,
			DateColumn:   st.Roles.Date,
			MoneyColumn:  st.Roles.Money,
			DescColumn:   st.Roles.Description,
			Sign:         st.Sign,
			Transactions: len(st.Transactions),
		})
	}

	var snap strings.Builder
	if err := led.Snapshot(&snap); err != nil {
		return err
	}
	fmt.Print(snap.String())

	if opts.noBackup || !cfg.Backup.Enabled {
		log.Info().Msg("skipping backup")
	} else {
		dir, err := backup.Run(cfg.Backup.Dir, files, snap.String(), time.Now())
		if err != nil {
			return err
		}
		if err := runlog.Append(cfg.Backup.Dir, entries); err != nil {
			return err
		}
		log.Info().Str("dir", dir).Msg("backup written")
	}

	if opts.noUpload || !cfg.Sheets.Enabled {
		color.Yellow("Skipping upload")
		return nil
	}
	if cfg.Sheets.SpreadsheetID == "" {
		return errors.New("sheets.spreadsheet_id not set: configure it or pass --no-upload")
	}

	exp, err := sheets.NewExporter(ctx, cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID, cfg.Sheets.Sheet)
	if err != nil {
		return err
	}
	if err := exp.Upload(ctx, led.Render()); err != nil {
		return err
	}
	color.Green("Uploaded %d days to sheet %s", led.Size(), cfg.Sheets.Sheet)
	return nil
}

// loadConfig falls back to defaults when no config file exists and none
// was named explicitly.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.FileName
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}
