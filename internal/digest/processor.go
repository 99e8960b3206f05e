// Package digest runs the full pipeline for one request: extract, segment,
// rank, refine, and assemble the digest.
package digest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hyperjump/yomu/internal/extract"
	"github.com/hyperjump/yomu/internal/models"
	"github.com/hyperjump/yomu/internal/ranking"
	"github.com/hyperjump/yomu/internal/refine"
	"github.com/hyperjump/yomu/internal/segment"
	"github.com/hyperjump/yomu/pkg/utils"
)

// Linguistics is the word and sentence analysis a run needs.
type Linguistics interface {
	ranking.Tokenizer
	refine.SentenceSplitter
}

// PageExtractor reads a document into pages.
type PageExtractor interface {
	ExtractPages(path string) ([]models.Page, error)
}

// Processor turns run requests into digests. It holds no per-run state and
// may be reused for successive runs.
type Processor struct {
	lang       Linguistics
	extractor  PageExtractor
	segmenter  *segment.Segmenter
	baseDir    string
	extensions map[string]struct{}
	workers    int
	logger     *zap.Logger
	now        func() time.Time
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger. Nil means no logging.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) { p.logger = utils.OrNop(logger) }
}

// WithClock replaces time.Now for timestamps and durations.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		if now != nil {
			p.now = now
		}
	}
}

// WithBaseDir sets the directory relative document paths are looked up in first.
func WithBaseDir(dir string) Option {
	return func(p *Processor) { p.baseDir = dir }
}

// WithExtensions restricts accepted documents to the given extensions.
func WithExtensions(exts []string) Option {
	return func(p *Processor) {
		p.extensions = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			p.extensions[strings.ToLower(ext)] = struct{}{}
		}
	}
}

// WithWorkers bounds how many documents are extracted concurrently.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithExtractor replaces the file extractor.
func WithExtractor(e PageExtractor) Option {
	return func(p *Processor) { p.extractor = e }
}

// WithSegmenter replaces the section segmenter.
func WithSegmenter(s *segment.Segmenter) Option {
	return func(p *Processor) { p.segmenter = s }
}

// NewProcessor returns a Processor accepting PDF documents by default.
func NewProcessor(lang Linguistics, opts ...Option) *Processor {
	p := &Processor{
		lang:      lang,
		extractor: extract.NewExtractor(),
		segmenter: segment.New(),
		workers:   4,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	WithExtensions([]string{".pdf"})(p)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// loaded is the outcome for one requested document.
type loaded struct {
	name     string
	sections []*models.Section
	err      error
}

// Process runs the pipeline for req. Documents that are missing, have an
// unaccepted extension, or fail extraction are skipped and listed in
// metadata.skipped_documents. An invalid request or a cancelled ctx are the
// only errors.
func (p *Processor) Process(ctx context.Context, req *models.RunRequest) (*models.Digest, error) {
	start := p.now()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	log := p.logger.With(zap.String("run_id", uuid.NewString()))
	log.Info("Run started",
		zap.Int("documents", len(req.Documents)),
		zap.String("persona", strings.ToLower(req.Query.Persona)),
		zap.String("job", utils.Truncate(req.Query.Job, 80)))

	slots, err := p.loadAll(ctx, log, req.Documents)
	if err != nil {
		return nil, err
	}

	meta := models.DigestMetadata{
		InputDocuments: []string{},
		Persona:        req.Query.Persona,
		JobToBeDone:    req.Query.Job,
	}
	var sections []*models.Section
	for _, s := range slots {
		if s.err != nil {
			meta.SkippedDocuments = append(meta.SkippedDocuments, s.name)
			continue
		}
		meta.InputDocuments = append(meta.InputDocuments, s.name)
		sections = append(sections, s.sections...)
	}

	ranker := ranking.NewRanker(p.lang, nil).WithLogger(log)
	query := ranker.AnalyzeQuery(req.Query.Persona, req.Query.Job)
	top := ranker.Rank(query, sections, req.MaxSections)

	refiner := refine.New(p.lang, req.ExcerptLength)
	d := models.NewDigest(meta)
	for _, sec := range top {
		d.ExtractedSections = append(d.ExtractedSections, models.ExtractedSection{
			Document:       sec.DocumentName(),
			SectionTitle:   sec.Title,
			ImportanceRank: sec.ImportanceRank,
			PageNumber:     sec.PageNumber,
		})
		d.SubsectionAnalysis = append(d.SubsectionAnalysis, models.SubsectionAnalysis{
			Document:       sec.DocumentName(),
			SectionTitle:   sec.Title,
			RefinedText:    refiner.Refine(sec.Content),
			ImportanceRank: sec.ImportanceRank,
			PageNumber:     sec.PageNumber,
		})
	}

	end := p.now()
	d.Metadata.ProcessingTimestamp = end.Format(time.RFC3339)
	d.Metadata.ProcessingTimeSeconds = math.Round(end.Sub(start).Seconds()*100) / 100

	log.Info("Run finished",
		zap.Int("sections", len(sections)),
		zap.Int("selected", len(top)),
		zap.Int("skipped", len(meta.SkippedDocuments)),
		zap.Duration("elapsed", end.Sub(start)))
	return d, nil
}

// loadAll extracts, segments and tokenizes every document concurrently.
// Results land in per-document slots so their order follows the request.
func (p *Processor) loadAll(ctx context.Context, log *zap.Logger, refs []models.DocumentRef) ([]loaded, error) {
	slots := make([]loaded, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = p.load(ref)
			if slots[i].err != nil {
				log.Warn("Skipping document", zap.String("document", ref.Path), zap.Error(slots[i].err))
			} else {
				log.Debug("Document loaded", zap.String("document", ref.Path), zap.Int("sections", len(slots[i].sections)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

func (p *Processor) load(ref models.DocumentRef) loaded {
	path := p.resolve(ref.Path)
	doc := models.NewDocument(path)
	if ref.Title != "" {
		doc.Title = ref.Title
	}
	out := loaded{name: doc.Filename}

	if _, ok := p.extensions[strings.ToLower(filepath.Ext(path))]; !ok {
		out.err = fmt.Errorf("%w: %s", extract.ErrUnsupportedFormat, filepath.Ext(path))
		return out
	}
	info, err := os.Stat(path)
	if err != nil {
		out.err = err
		return out
	}
	if info.IsDir() {
		out.err = errors.New("is a directory")
		return out
	}

	pages, err := p.extractor.ExtractPages(path)
	if err != nil {
		out.err = fmt.Errorf("extract %s: %w", doc.Filename, err)
		return out
	}
	out.sections = p.segmenter.SegmentPages(doc, pages)
	for _, sec := range out.sections {
		sec.Tokens = p.lang.Tokenize(sec.Content)
	}
	return out
}

// resolve looks a relative path up in the base directory first, then as given.
func (p *Processor) resolve(path string) string {
	if filepath.IsAbs(path) || p.baseDir == "" {
		return path
	}
	joined := filepath.Join(p.baseDir, path)
	if _, err := os.Stat(joined); err == nil {
		return joined
	}
	return path
}
