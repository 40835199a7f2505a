package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/himanshu-yaduvanshi/article-automation/internal/metrics"
	"github.com/himanshu-yaduvanshi/article-automation/internal/normalize"
)

// Runner executes the acquire -> extract -> normalize sequence for each
// article task and assembles the resulting ledger records.
type Runner struct {
	acquirer   Acquirer
	extractor  Extractor
	normalizer *normalize.Normalizer
	ledger     Ledger
	clock      Clock
	logger     *zap.Logger
}

// NewRunner constructs a Runner.
func NewRunner(
	acquirer Acquirer,
	extractor Extractor,
	normalizer *normalize.Normalizer,
	ledger Ledger,
	clock Clock,
	logger *zap.Logger,
) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		acquirer:   acquirer,
		extractor:  extractor,
		normalizer: normalizer,
		ledger:     ledger,
		clock:      clock,
		logger:     logger,
	}
}

// Process handles one task end to end and returns its record. Failures
// never escape: an unreachable page produces an explicit failure record
// with every schema key empty rather than a crash or a dropped task.
func (r *Runner) Process(ctx context.Context, task ArticleTask) ArticleRecord {
	doc, err := r.acquirer.Acquire(ctx, task.URL)
	if err != nil || doc == nil || strings.TrimSpace(doc.Text) == "" {
		if err != nil {
			r.logger.Error("acquisition failed", zap.String("url", task.URL), zap.Error(err))
		} else {
			r.logger.Error("acquisition returned no text", zap.String("url", task.URL))
		}
		metrics.TaskProcessed("acquisition_failed")
		return r.failureRecord(task)
	}

	raw := r.extractor.Run(ctx, doc.Text)
	parsed := r.normalizer.ParseFeatures(raw)
	if parsed.Failed {
		r.logger.Warn("feature payload unparseable, recording empty features",
			zap.String("url", task.URL))
	}

	fields := parsed.Fields
	fields["article_date"], _ = r.normalizer.StandardizeDate(fields["article_date"], "en")
	fields["date"], _ = r.normalizer.StandardizeDate(fields["date"], "en")

	metrics.TaskProcessed("succeeded")
	return ArticleRecord{
		Features:             FeaturesFromMap(fields),
		ID:                   uuid.NewString(),
		ArticleReceivedMonth: receivedMonth(task.ReceivedDate),
		ArticleURL:           task.URL,
		PageSource:           doc.SourceURL,
		PageTitle:            doc.Title,
		PageContent:          doc.Text,
		ProcessedAt:          r.clock.Now().UTC().Format(time.RFC3339),
	}
}

// ProcessBatch runs tasks strictly one at a time in order, appending
// each record to the ledger. A failed task never aborts the batch; a
// failed ledger save does, since persistence errors are the one class
// allowed to surface.
func (r *Runner) ProcessBatch(ctx context.Context, tasks []ArticleTask) ([]ArticleRecord, error) {
	records := make([]ArticleRecord, 0, len(tasks))
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return records, fmt.Errorf("batch canceled: %w", err)
		}
		record := r.Process(ctx, task)
		r.ledger.Append(record)
		records = append(records, record)
		r.logger.Info("article processed",
			zap.String("url", task.URL),
			zap.Bool("acquisition_failed", record.AcquisitionFailed),
		)
	}

	if err := r.ledger.Save(); err != nil {
		return records, fmt.Errorf("persist ledger: %w", err)
	}
	return records, nil
}

func (r *Runner) failureRecord(task ArticleTask) ArticleRecord {
	return ArticleRecord{
		ID:                   uuid.NewString(),
		ArticleReceivedMonth: receivedMonth(task.ReceivedDate),
		ArticleURL:           task.URL,
		PageSource:           task.URL,
		ProcessedAt:          r.clock.Now().UTC().Format(time.RFC3339),
		AcquisitionFailed:    true,
	}
}

func receivedMonth(t time.Time) string {
	return t.Format("January 2006")
}
