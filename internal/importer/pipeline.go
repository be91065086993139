package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/smartspend-dev/spendcsv/internal/categorize"
	"github.com/smartspend-dev/spendcsv/internal/columns"
	"github.com/smartspend-dev/spendcsv/internal/dates"
	"github.com/smartspend-dev/spendcsv/internal/logging"
	"github.com/smartspend-dev/spendcsv/internal/merchant"
	"github.com/smartspend-dev/spendcsv/internal/model"
)

// Pipeline converts whole files into transactions. It holds no per-file
// state and is safe for concurrent use.
type Pipeline struct {
	categorizer *categorize.Categorizer
	readers     *Registry
}

// NewPipeline creates a Pipeline. Nil arguments select the defaults.
func NewPipeline(c *categorize.Categorizer, readers *Registry) *Pipeline {
	if c == nil {
		c = categorize.Default()
	}
	if readers == nil {
		readers = DefaultRegistry()
	}
	return &Pipeline{categorizer: c, readers: readers}
}

// Process reads the file at path and transforms every row. Any failure,
// including a panic, yields an error result and no transactions.
func (p *Pipeline) Process(ctx context.Context, path string) (res model.Result) {
	defer recoverInto(&res)

	data, err := os.ReadFile(path)
	if err != nil {
		return model.Failure(fmt.Errorf("reading %s: %w", path, err))
	}
	return p.process(ctx, filepath.Base(path), bytes.NewReader(data))
}

// ProcessReader is Process for content that is not on disk, such as an
// upload. name selects the reader by extension.
func (p *Pipeline) ProcessReader(ctx context.Context, name string, r io.Reader) (res model.Result) {
	defer recoverInto(&res)

	data, err := io.ReadAll(r)
	if err != nil {
		return model.Failure(fmt.Errorf("reading %s: %w", name, err))
	}
	return p.process(ctx, name, bytes.NewReader(data))
}

func (p *Pipeline) process(ctx context.Context, name string, r io.Reader) model.Result {
	logger := logging.FromContext(ctx).With("run", uuid.NewString(), "file", name)

	rd, err := p.readers.ForFile(name)
	if err != nil {
		return model.Failure(err)
	}
	table, err := rd.Read(r)
	if err != nil {
		logger.Error("reading file", "format", rd.Format(), "err", err)
		return model.Failure(err)
	}

	txns, err := p.Transform(ctx, table)
	if err != nil {
		logger.Error("transforming rows", "err", err)
		return model.Failure(err)
	}
	logger.Info("processed file", "format", rd.Format(), "rows", len(txns))
	return model.Success(txns)
}

// Transform resolves the column roles of table once and builds one
// transaction per row, in row order. The first bad row fails the whole table.
func (p *Pipeline) Transform(ctx context.Context, table *Table) ([]model.Transaction, error) {
	roles, err := columns.Resolve(table.Header)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug("resolved columns",
		"date", roles.Name(roles.Date),
		"description", roles.Name(roles.Description),
		"amount", roles.Name(roles.Amount),
		"debit", roles.HasDebit(),
		"credit", roles.HasCredit(),
	)

	txns := make([]model.Transaction, 0, len(table.Rows))
	for _, row := range table.Rows {
		txn, err := p.transformRow(row, roles)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row.Line, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func (p *Pipeline) transformRow(row RawRow, roles columns.Roles) (model.Transaction, error) {
	signed, err := ResolveAmount(row, roles)
	if err != nil {
		return model.Transaction{}, err
	}
	amount, _ := signed.Abs().Float64()

	desc := row.Cell(roles.Description)
	return model.Transaction{
		Date:                dates.Normalize(row.Cell(roles.Date)),
		Description:         desc,
		Amount:              amount,
		IsExpense:           signed.IsNegative(),
		Category:            p.categorizer.Categorize(desc, signed),
		Merchant:            merchant.Extract(desc),
		OriginalDescription: desc,
	}, nil
}

func recoverInto(res *model.Result) {
	if r := recover(); r != nil {
		*res = model.Failure(fmt.Errorf("internal error: %v", r))
	}
}
