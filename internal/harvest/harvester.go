// Package harvest drives the per-year, per-file results processing flow.
package harvest

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/lasf-data/results-cli/internal/config"
	"github.com/lasf-data/results-cli/internal/fetcher"
	"github.com/lasf-data/results-cli/internal/lister"
	"github.com/lasf-data/results-cli/internal/model"
	"github.com/lasf-data/results-cli/internal/ocr"
	"github.com/lasf-data/results-cli/internal/parse"
	"github.com/lasf-data/results-cli/internal/sink"
)

// ErrUnsupportedFormat marks files whose extension is neither PDF nor a
// spreadsheet. Such files are reported and skipped, never fatal.
var ErrUnsupportedFormat = eris.New("harvest: unsupported file format")

// Harvester owns one processing run: link discovery, download, dispatch to
// the right parser, and CSV output. The dedup set lives for this run only.
type Harvester struct {
	cfg       config.HarvestConfig
	fetcher   fetcher.Fetcher
	lister    lister.LinkLister
	extractor ocr.Extractor

	// workbook opens a downloaded spreadsheet; swapped in tests.
	workbook func(path string) ([]fetcher.Sheet, error)

	// processed holds filenames already handled this run, so duplicate
	// links pointing at the same file cost one fetch, not two.
	processed map[string]struct{}

	filesDone      int
	recordsWritten int
}

// New creates a Harvester with an empty dedup set.
func New(cfg config.HarvestConfig, f fetcher.Fetcher, l lister.LinkLister, ex ocr.Extractor) *Harvester {
	return &Harvester{
		cfg:       cfg,
		fetcher:   f,
		lister:    l,
		extractor: ex,
		workbook:  fetcher.ReadWorkbook,
		processed: make(map[string]struct{}),
	}
}

// Run processes every configured year in sequence. Per-year and per-file
// failures are logged and skipped; only setup failures are returned.
func (h *Harvester) Run(ctx context.Context) error {
	if err := os.MkdirAll(h.cfg.DownloadDir, 0o755); err != nil {
		return eris.Wrapf(err, "harvest: create download dir %s", h.cfg.DownloadDir)
	}
	if err := os.MkdirAll(h.cfg.OutputDir, 0o755); err != nil {
		return eris.Wrapf(err, "harvest: create output dir %s", h.cfg.OutputDir)
	}

	for year := h.cfg.StartYear; year <= h.cfg.EndYear; year++ {
		if err := h.processYear(ctx, year); err != nil {
			zap.L().Error("year failed, continuing",
				zap.Int("year", year),
				zap.Error(err),
			)
		}
	}

	fmt.Printf("Processed %d files, wrote %d records\n", h.filesDone, h.recordsWritten)
	fmt.Println("Data processing completed successfully!")
	return nil
}

func (h *Harvester) processYear(ctx context.Context, year int) error {
	fmt.Printf("Processing year: %d\n", year)

	links, err := h.lister.ListResultLinks(ctx, h.cfg.BaseURL, year)
	if err != nil {
		return eris.Wrapf(err, "harvest: list links for %d", year)
	}

	for _, link := range links {
		text := strings.ToLower(link.Text)
		if !strings.Contains(text, "rezultatai") && !strings.Contains(text, "results") {
			continue
		}

		fileURL, err := resolveLink(h.cfg.BaseURL, link.Href)
		if err != nil {
			zap.L().Warn("skipping unresolvable link",
				zap.String("href", link.Href),
				zap.Error(err),
			)
			continue
		}

		if err := h.processFile(ctx, fileURL, year); err != nil {
			if eris.Is(err, ErrUnsupportedFormat) {
				zap.L().Warn("skipping unsupported file",
					zap.String("url", fileURL),
				)
				continue
			}
			// Fetch, extraction, and sink failures cost this file only.
			zap.L().Error("file failed, continuing",
				zap.String("url", fileURL),
				zap.Int("year", year),
				zap.Error(err),
			)
		}
	}

	return nil
}

func (h *Harvester) processFile(ctx context.Context, fileURL string, year int) error {
	fileName, err := fileNameFromURL(fileURL)
	if err != nil {
		return err
	}

	if _, seen := h.processed[fileName]; seen {
		zap.L().Debug("file already processed this run",
			zap.String("file", fileName),
		)
		return nil
	}
	h.processed[fileName] = struct{}{}

	fmt.Printf("Processing file: %s\n", fileName)

	localPath := filepath.Join(h.cfg.DownloadDir, fileName)
	if _, err := h.fetcher.DownloadToFile(ctx, fileURL, localPath); err != nil {
		return eris.Wrapf(err, "harvest: download %s", fileURL)
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		err = h.processPDF(ctx, localPath, fileName, year)
	case ".xlsx", ".xls":
		err = h.processWorkbook(localPath, fileName, year)
	default:
		return eris.Wrapf(ErrUnsupportedFormat, "%s", fileName)
	}
	if err == nil {
		h.filesDone++
	}
	return err
}

func (h *Harvester) processPDF(ctx context.Context, localPath, fileName string, year int) error {
	text, err := h.extractor.ExtractText(ctx, localPath)
	if err != nil {
		return eris.Wrapf(err, "harvest: extract text from %s", fileName)
	}

	typ := parse.Classify(text)
	pctx := model.ParseContext{
		Year:        year,
		Competition: parse.CompetitionName(fileName, text),
		Type:        typ,
	}
	fmt.Printf("Processing %s results for %s %d\n", typ, pctx.Competition, year)

	records, rowErrs := parse.ParsePDF(text, typ)
	h.logRowErrors(fileName, "", rowErrs)

	return h.write(records, pctx)
}

func (h *Harvester) processWorkbook(localPath, fileName string, year int) error {
	sheets, err := h.workbook(localPath)
	if err != nil {
		return eris.Wrapf(err, "harvest: open workbook %s", fileName)
	}

	competition := parse.CompetitionName(fileName, "")
	for _, sheet := range sheets {
		typ, ok := parse.ClassifySheet(sheet.Name)
		if !ok {
			zap.L().Debug("skipping sheet with unrecognized name",
				zap.String("file", fileName),
				zap.String("sheet", sheet.Name),
			)
			continue
		}

		fmt.Printf("Processing %s results for %s %d\n", typ, competition, year)

		records, rowErrs := parse.ParseSheet(sheet, typ)
		h.logRowErrors(fileName, sheet.Name, rowErrs)

		pctx := model.ParseContext{Year: year, Competition: competition, Type: typ}
		if err := h.write(records, pctx); err != nil {
			return err
		}
	}

	return nil
}

func (h *Harvester) write(records []model.ResultRecord, pctx model.ParseContext) error {
	outPath, err := sink.Write(records, pctx, h.cfg.OutputDir)
	if err != nil {
		return eris.Wrapf(err, "harvest: save %s %s results", pctx.Competition, pctx.Type)
	}
	h.recordsWritten += len(records)
	fmt.Printf("Saved results to: %s\n", outPath)
	return nil
}

func (h *Harvester) logRowErrors(fileName, sheetName string, rowErrs []parse.RowError) {
	for _, re := range rowErrs {
		zap.L().Warn("skipping unparseable row",
			zap.String("file", fileName),
			zap.String("sheet", sheetName),
			zap.Int("row", re.Row),
			zap.Error(re.Err),
		)
	}
}

// resolveLink resolves a possibly relative href against the listing page URL.
func resolveLink(baseURL, href string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", eris.Wrapf(err, "harvest: parse base url %s", baseURL)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", eris.Wrapf(err, "harvest: parse href %s", href)
	}
	return base.ResolveReference(ref).String(), nil
}

// fileNameFromURL takes the trailing path segment as the local filename.
func fileNameFromURL(fileURL string) (string, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", eris.Wrapf(err, "harvest: parse file url %s", fileURL)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return "", eris.Errorf("harvest: no filename in url %s", fileURL)
	}
	return name, nil
}
