// Command genlunar compiles the curated lunar day-count table into a Go
// source file for package lunarday, or into a TOML table file that
// lunarday.LoadTableFile accepts.
//
// The source is a CSV file with a header row whose first column contains
// "음력", followed by one row per lunar year:
//
//	year,total_days,m1,m2,...,m12
//
// where m1..m12 select month variants (see monthDays). Korean sources
// usually publish EUC-KR; pass --encoding euc-kr for those. The input may
// also be an https URL.
//
// Usage:
//
//	go run . --input ../../data/lunardays.csv --output ../../table_data.go
//	go run . --input lunardays.csv --format toml --output lunar.toml
//
// Every flag can also be set in genlunar.toml, in a .env file or through
// GENLUNAR_* environment variables (GENLUNAR_LOG_LEVEL=debug).
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"go/format"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	monthsPerYear = 12
	headerMarker  = "음력"

	httpTimeout = 30 * time.Second
	maxRetries  = 3

	// Maximum response size to prevent memory exhaustion.
	maxCSVResponseSize = 1 * 1024 * 1024

	userAgent = "lunarday-generator/1.0 (https://github.com/rabitt1ove/lunarday)"
)

// retryBaseDelay is the base delay between retry attempts (variable for testing).
var retryBaseDelay = 2 * time.Second

// monthDays and monthFrac describe the month variants the CSV refers to:
// 0 and 1 are plain 29 and 30 day months, 2..5 are months followed by an
// inserted leap month, monthFrac being the length of the regular part.
var (
	monthDays = []int{29, 30, 58, 59, 59, 60}
	monthFrac = []int{0, 0, 29, 30, 30, 30}
)

type lunarYear struct {
	year   int
	days   int
	months [monthsPerYear]int
}

// tableFile is the TOML layout read by lunarday.LoadTable.
type tableFile struct {
	BaseYear   int     `toml:"base_year"`
	Epoch      string  `toml:"epoch"`
	YearDays   []int   `toml:"year_days"`
	MonthDays  []int   `toml:"month_days"`
	MonthFrac  []int   `toml:"month_frac"`
	MonthIndex [][]int `toml:"month_index"`
}

type options struct {
	input     string
	output    string
	format    string
	encoding  string
	pkg       string
	epoch     string
	logLevel  string
	logFormat string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:          "genlunar",
		Short:        "compile the lunar day-count table",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := optionsFrom(v)
			log, err := newLogger(opts.logLevel, opts.logFormat)
			if err != nil {
				return err
			}
			defer log.Sync()
			return run(cmd.Context(), opts, log)
		},
	}

	f := cmd.Flags()
	f.String("config", "", "config file (default ./genlunar.toml when present)")
	f.String("input", "lunardays.csv", "CSV source: file path or https URL")
	f.String("output", "table_data.go", `output file path, "-" for stdout`)
	f.String("format", "go", "output format: go or toml")
	f.String("encoding", "utf-8", "input encoding: utf-8 or euc-kr")
	f.String("package", "lunarday", "package name of the generated Go file")
	f.String("epoch", "2001-01-24", "solar date of lunar new year of the first table year")
	f.String("log-level", "info", "debug, info, warn or error")
	f.String("log-format", "console", "console or json")
	return cmd
}

// loadConfig layers .env, GENLUNAR_* variables and the optional config file
// under the command line flags.
func loadConfig(v *viper.Viper, flags *pflag.FlagSet) error {
	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	v.SetEnvPrefix("GENLUNAR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	explicit := v.GetString("config")
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("genlunar")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func optionsFrom(v *viper.Viper) options {
	return options{
		input:     v.GetString("input"),
		output:    v.GetString("output"),
		format:    v.GetString("format"),
		encoding:  v.GetString("encoding"),
		pkg:       v.GetString("package"),
		epoch:     v.GetString("epoch"),
		logLevel:  v.GetString("log-level"),
		logFormat: v.GetString("log-format"),
	}
}

// newLogger builds a zap logger writing to stderr, so "-" output stays clean.
func newLogger(level, encoding string) (*zap.Logger, error) {
	var cfg zap.Config
	if encoding == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log.Named("genlunar"), nil
}

func run(ctx context.Context, opts options, log *zap.Logger) error {
	if _, err := time.Parse(time.DateOnly, opts.epoch); err != nil {
		return fmt.Errorf("invalid epoch %q: %w", opts.epoch, err)
	}

	client := &http.Client{Timeout: httpTimeout}
	src, err := openInput(ctx, client, opts.input, log)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer src.Close()

	r, err := decodeInput(src, opts.encoding)
	if err != nil {
		return err
	}

	years, err := parseCSV(r)
	if err != nil {
		return fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(years) == 0 {
		return errors.New("validation failed: no lunar years in input")
	}

	var out []byte
	switch opts.format {
	case "go":
		out, err = generate(years, opts.pkg, opts.epoch)
	case "toml":
		out, err = generateTOML(years, opts.epoch)
	default:
		return fmt.Errorf("unknown format %q (want go or toml)", opts.format)
	}
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", opts.format, err)
	}

	if opts.output == "-" {
		_, err = os.Stdout.Write(out)
	} else {
		err = os.WriteFile(opts.output, out, 0644)
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	log.Info("wrote lunar table",
		zap.Int("first_year", years[0].year),
		zap.Int("years", len(years)),
		zap.String("format", opts.format),
		zap.String("output", opts.output))
	return nil
}

// openInput opens a local file, or fetches an https URL with retries.
func openInput(ctx context.Context, client *http.Client, src string, log *zap.Logger) (io.ReadCloser, error) {
	parsed, err := url.Parse(src)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		log.Debug("reading local file", zap.String("path", src))
		return os.Open(src)
	}
	if parsed.Scheme != "https" {
		return nil, fmt.Errorf("URL %q: only HTTPS is allowed", src)
	}
	return fetchWithRetry(ctx, client, src, log)
}

type limitedBody struct {
	io.Reader
	io.Closer
}

// fetchWithRetry fetches a URL with exponential backoff retries.
func fetchWithRetry(ctx context.Context, client *http.Client, src string, log *zap.Logger) (io.ReadCloser, error) {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay * time.Duration(1<<(attempt-1))
			log.Info("retrying", zap.Duration("delay", delay), zap.Int("attempt", attempt+1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		log.Info("fetching", zap.String("url", src))
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("GET %s: %w", src, err)
			log.Warn("fetch failed", zap.Error(err))
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("GET %s: status %d", src, resp.StatusCode)
			log.Warn("fetch failed (retryable)", zap.Int("status", resp.StatusCode))
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("GET %s: status %d", src, resp.StatusCode)
		}

		return limitedBody{io.LimitReader(resp.Body, maxCSVResponseSize), resp.Body}, nil
	}
	return nil, lastErr
}

// decodeInput converts the input to UTF-8. A leading UTF-8 byte order mark,
// as written by spreadsheet exports, is dropped.
func decodeInput(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder()), nil
	case "euc-kr", "euckr", "cp949":
		return transform.NewReader(r, korean.EUCKR.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q (want utf-8 or euc-kr)", encoding)
	}
}

// parseCSV parses the lunar table CSV and validates its format.
func parseCSV(r io.Reader) ([]lunarYear, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	// Read and validate header.
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) < 2+monthsPerYear {
		return nil, fmt.Errorf("unexpected header columns: %d (expected %d)", len(header), 2+monthsPerYear)
	}
	if !strings.Contains(header[0], headerMarker) {
		return nil, fmt.Errorf("unexpected header: %q (expected to contain '%s')", header[0], headerMarker)
	}

	var years []lunarYear
	lineNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum+1, err)
		}
		lineNum++

		if blank(record) {
			continue
		}
		if len(record) < 2+monthsPerYear {
			return nil, fmt.Errorf("line %d: expected %d columns, got %d", lineNum, 2+monthsPerYear, len(record))
		}

		fields := make([]int, 2+monthsPerYear)
		for i := range fields {
			n, err := strconv.Atoi(strings.TrimSpace(record[i]))
			if err != nil {
				return nil, fmt.Errorf("line %d: column %d: invalid number %q", lineNum, i+1, record[i])
			}
			fields[i] = n
		}

		ly := lunarYear{year: fields[0], days: fields[1]}
		if len(years) > 0 && ly.year != years[len(years)-1].year+1 {
			return nil, fmt.Errorf("line %d: year %d does not follow %d", lineNum, ly.year, years[len(years)-1].year)
		}
		if ly.days <= 0 {
			return nil, fmt.Errorf("line %d: invalid year length %d", lineNum, ly.days)
		}
		for m, v := range fields[2:] {
			if v < 0 || v >= len(monthDays) {
				return nil, fmt.Errorf("line %d: month %d: unknown variant %d", lineNum, m+1, v)
			}
			ly.months[m] = v
		}
		years = append(years, ly)
	}

	return years, nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func joinInts(ns []int) string {
	s := make([]string, len(ns))
	for i, n := range ns {
		s[i] = strconv.Itoa(n)
	}
	return strings.Join(s, ", ")
}

// decades splits years into runs of ten for the generated comments.
func decades(years []lunarYear) [][]lunarYear {
	var out [][]lunarYear
	for len(years) > 10 {
		out = append(out, years[:10])
		years = years[10:]
	}
	return append(out, years)
}

// generate produces a formatted Go source file containing the table data.
func generate(years []lunarYear, pkg, epoch string) ([]byte, error) {
	var b strings.Builder
	b.WriteString("// Code generated by cmd/genlunar; DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	b.WriteString("var builtinTableData = TableData{\n")
	fmt.Fprintf(&b, "\tBaseYear:  %d,\n", years[0].year)
	fmt.Fprintf(&b, "\tEpoch:     %q,\n", epoch)
	fmt.Fprintf(&b, "\tMonthDays: []int{%s},\n", joinInts(monthDays))
	fmt.Fprintf(&b, "\tMonthFrac: []int{%s},\n", joinInts(monthFrac))

	b.WriteString("\tYearDays: []int{\n")
	for _, dec := range decades(years) {
		days := make([]int, len(dec))
		for i, ly := range dec {
			days[i] = ly.days
		}
		fmt.Fprintf(&b, "\t\t// %d ~ %d\n", dec[0].year, dec[len(dec)-1].year)
		fmt.Fprintf(&b, "\t\t%s,\n", joinInts(days))
	}
	b.WriteString("\t},\n")

	b.WriteString("\tMonthIndex: [][]int{\n")
	for i, dec := range decades(years) {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\t\t// %d ~ %d\n", dec[0].year, dec[len(dec)-1].year)
		for _, ly := range dec {
			fmt.Fprintf(&b, "\t\t{%s},\n", joinInts(ly.months[:]))
		}
	}
	b.WriteString("\t},\n")
	b.WriteString("}\n")

	return format.Source([]byte(b.String()))
}

// generateTOML produces a table file for lunarday.LoadTableFile.
func generateTOML(years []lunarYear, epoch string) ([]byte, error) {
	tf := tableFile{
		BaseYear:   years[0].year,
		Epoch:      epoch,
		MonthDays:  monthDays,
		MonthFrac:  monthFrac,
		YearDays:   make([]int, len(years)),
		MonthIndex: make([][]int, len(years)),
	}
	for i, ly := range years {
		tf.YearDays[i] = ly.days
		tf.MonthIndex[i] = append([]int(nil), ly.months[:]...)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Generated by cmd/genlunar; DO NOT EDIT.\n# Lunar years %d ~ %d.\n\n",
		years[0].year, years[len(years)-1].year)
	if err := toml.NewEncoder(&buf).Encode(tf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
